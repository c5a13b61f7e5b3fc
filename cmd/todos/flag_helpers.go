package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, name := range flags {
		if flagChanged(cmd.Flag(name)) {
			return true
		}
	}
	return false
}

func flagChanged(flag *pflag.Flag) bool {
	return flag != nil && flag.Changed
}
