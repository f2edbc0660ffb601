package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/imamik/clusterstage/internal/config"
)

// RegionOption represents a cloud region offered by the wizard.
type RegionOption struct {
	Value       string
	Description string
}

// Regions lists the regions offered by default. Any other region can be
// entered in the configuration file directly.
var Regions = []RegionOption{
	{Value: "us-east-1", Description: "N. Virginia"},
	{Value: "us-east-2", Description: "Ohio"},
	{Value: "us-west-2", Description: "Oregon"},
	{Value: "eu-west-1", Description: "Ireland"},
	{Value: "eu-central-1", Description: "Frankfurt"},
	{Value: "ap-southeast-1", Description: "Singapore"},
}

// SchedulerOption describes a scheduler choice.
type SchedulerOption struct {
	Value       config.Scheduler
	Description string
}

// Schedulers lists the schedulers offered by the wizard.
var Schedulers = []SchedulerOption{
	{Value: config.SchedulerSlurm, Description: "Slurm workload manager (supports multiple instance types per queue)"},
	{Value: config.SchedulerAWSBatch, Description: "AWS Batch managed compute environments"},
	{Value: config.SchedulerSGE, Description: "Son of Grid Engine"},
	{Value: config.SchedulerTorque, Description: "Torque resource manager"},
}

// RegionsToOptions converts regions to huh select options.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Regions))
	for i, r := range Regions {
		opts[i] = huh.NewOption(r.Value+" ("+r.Description+")", r.Value)
	}
	return opts
}

// SchedulersToOptions converts schedulers to huh select options.
func SchedulersToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Schedulers))
	for i, s := range Schedulers {
		opts[i] = huh.NewOption(string(s.Value)+" - "+s.Description, string(s.Value))
	}
	return opts
}
