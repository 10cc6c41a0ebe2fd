// Package cliargs renders argument sets into the flag form a runtime
// container expects on its command line.
//
// An argument set describes its flags once, through AddFlags, binding each
// flag to one of its fields with the field's current value as default. The
// same definitions serve both directions: ToParameters walks them to emit
// "--flag value" pairs, and a runtime can parse those pairs back with Parse.
package cliargs

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flagger is implemented by argument sets that can describe themselves as flags.
type Flagger interface {
	// AddFlags registers one flag per field on fs. Each flag must be bound to
	// the receiver's field and default to its current value.
	AddFlags(fs *pflag.FlagSet)
}

// ToParameters renders f into command line arguments, skipping the named flags.
//
// Flags are emitted in registration order. Boolean flags appear bare and only
// when true; other flags are emitted as "--name", "value" unless their value
// renders empty.
func ToParameters(f Flagger, skip ...string) []string {
	skipped := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		skipped[s] = struct{}{}
	}

	fs := newFlagSet()
	f.AddFlags(fs)

	var out []string
	fs.VisitAll(func(fl *pflag.Flag) {
		if _, ok := skipped[fl.Name]; ok {
			return
		}
		value := fl.Value.String()
		switch fl.Value.Type() {
		case "bool":
			if value == "true" {
				out = append(out, "--"+fl.Name)
			}
		default:
			if isEmpty(value) {
				return
			}
			out = append(out, "--"+fl.Name, value)
		}
	})
	return out
}

// Parse parses args into f using the flags f registers.
func Parse(f Flagger, args []string) error {
	fs := newFlagSet()
	f.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}
	return nil
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("runtime", pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

func isEmpty(value string) bool {
	switch value {
	case "", "[]", "map[]", "{}":
		return true
	}
	return false
}
