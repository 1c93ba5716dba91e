// Package app defines the CLI option contracts shared by all atlas commands.
package app

import (
	"github.com/spf13/pflag"
)

// NamedFlagSets groups flag sets by section name and remembers the order in
// which sections were created, so help output stays stable.
type NamedFlagSets struct {
	// Order is the list of section names in creation order.
	Order []string

	// FlagSets maps section names to their flag sets.
	FlagSets map[string]*pflag.FlagSet
}

// FlagSet returns the flag set for the given section, creating it on first use.
func (nfs *NamedFlagSets) FlagSet(name string) *pflag.FlagSet {
	if nfs.FlagSets == nil {
		nfs.FlagSets = make(map[string]*pflag.FlagSet)
	}
	if _, ok := nfs.FlagSets[name]; !ok {
		nfs.FlagSets[name] = pflag.NewFlagSet(name, pflag.ExitOnError)
		nfs.Order = append(nfs.Order, name)
	}
	return nfs.FlagSets[name]
}

// CliOptions is the complete option set of a command: flag registration,
// default completion, and validation.
type CliOptions interface {
	// Flags returns all flags grouped by section.
	Flags() NamedFlagSets

	// Complete fills in values that cannot be derived statically, such as
	// secrets sourced from environment variables.
	Complete() error

	// Validate checks the final option values.
	Validate() error
}
