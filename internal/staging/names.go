package staging

import (
	"github.com/imamik/clusterstage/internal/util/naming"
)

// PrefixNames generates bucket names from a fixed prefix and a random suffix.
type PrefixNames struct {
	Prefix string
}

// Generate implements NameGenerator.
func (n PrefixNames) Generate() string {
	return naming.StagingBucket(n.Prefix)
}

// StaticNames returns the given names in order and then repeats the last one.
// Useful for deterministic runs.
type StaticNames struct {
	Names []string
	next  int
}

// Generate implements NameGenerator.
func (n *StaticNames) Generate() string {
	if len(n.Names) == 0 {
		return ""
	}
	name := n.Names[min(n.next, len(n.Names)-1)]
	n.next++
	return name
}
