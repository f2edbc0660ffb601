// Package wizard implements the interactive "clusterstage init" flow.
//
// Questions are asked with huh forms grouped by topic (identity, scheduler,
// queues). Answers are collected into a [WizardResult], converted with
// [BuildConfig] and written with [WriteConfig].
package wizard
