package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"wish/core"
)

// builtinsCmd lists the commands the shell handles itself.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the shell's builtin commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		builtins := core.BuiltinNames()
		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
