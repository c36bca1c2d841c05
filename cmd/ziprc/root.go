package main

import (
	"github.com/spf13/cobra"
)

var (
	// Flags
	configFile string
	outputPath string
	debug      bool
	noColor    bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ziprc <rulefile>",
		Short: "Pack files into a zip archive according to a .ziplist rule file",
		Long: `ziprc reads an ordered list of include/exclude/rename rules and packs the
matching files from the rule file's directory into a zip archive. By default
the archive lands next to the rule file, named after it with a .zip extension.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], false)
		},
	}

	addRootFlags(cmd)
	cmd.AddCommand(newPlanCmd())
	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "settings file path (default: discovered next to the rule file)")
	cmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output archive path (default: <rulefile base>.zip)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <rulefile>",
		Short: "Resolve the rule file and print the archive plan without writing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], true)
		},
	}
}
