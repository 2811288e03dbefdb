package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jfarrand/syllabus/cmd/config"
	"github.com/jfarrand/syllabus/pkg/registry"
)

// NewRemoteCmd manages the named remotes in the registry.
func NewRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage outline service remotes",
	}
	cmd.AddCommand(newRemoteAddCmd(), newRemoteListCmd(), newRemoteRemoveCmd())
	return cmd
}

func newRemoteAddCmd() *cobra.Command {
	var (
		baseURL  string
		courseID string
		tokenEnv string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a remote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.LoadRegistry()
			if err != nil {
				return err
			}
			if err := reg.Add(registry.Remote{
				Name:     args[0],
				BaseURL:  baseURL,
				CourseID: courseID,
				TokenEnv: tokenEnv,
			}); err != nil {
				return err
			}
			if err := reg.Save(); err != nil {
				return err
			}
			fmt.Printf("Added remote %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "base URL of the outline service (required)")
	cmd.Flags().StringVar(&courseID, "course", "", "course scope id (required)")
	cmd.Flags().StringVar(&tokenEnv, "token-env", "", "environment variable holding the bearer token")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

func newRemoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List registered remotes",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.LoadRegistry()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tURL\tCOURSE")
			for _, rem := range reg.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", rem.Name, rem.BaseURL, rem.CourseID)
			}
			return w.Flush()
		},
	}
}

func newRemoteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Short:   "Remove a remote",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.LoadRegistry()
			if err != nil {
				return err
			}
			reg.Remove(args[0])
			return reg.Save()
		},
	}
}
