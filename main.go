package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jfarrand/syllabus/cmd"
	"github.com/jfarrand/syllabus/cmd/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "syllabus",
		Short:         "Edit course outlines with optimistic sync",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	config.AddGlobalFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	rootCmd.AddCommand(cmd.NewPullCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewMoveCmd())
	rootCmd.AddCommand(cmd.NewSectionsCmd())
	rootCmd.AddCommand(cmd.NewRemoteCmd())
	rootCmd.AddCommand(cmd.NewTuiCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
