package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jfarrand/syllabus/cmd/config"
	"github.com/jfarrand/syllabus/pkg/models"
)

var listCaser = cases.Title(language.English)

// NewListCmd prints the outline.
func NewListCmd() *cobra.Command {
	var (
		listJSON   bool
		listCached bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "Show the course outline",
		Aliases: []string{"ls"},
		Long: `Show the course outline in display order.

Examples:
  syllabus list            # fetch and show the outline
  syllabus list --cached   # show the last pulled outline without a network call
  syllabus list --json     # machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rem, err := config.ResolveRemote()
			if err != nil {
				return err
			}

			var o models.Outline
			if listCached {
				store, err := config.OpenCache()
				if err != nil {
					return err
				}
				defer store.Close()
				o, _, err = store.Get(rem.CourseID)
				if err != nil {
					return fmt.Errorf("no cached outline for %q; run 'syllabus pull' first", rem.Name)
				}
			} else {
				course, err := config.NewCourse(rem)
				if err != nil {
					return err
				}
				o, err = course.Load(context.Background())
				if err != nil {
					return err
				}
			}

			if listJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(o)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, sec := range o.Sections {
				marker := ""
				if sec.Collapsed {
					marker = " (collapsed)"
				}
				fmt.Fprintf(w, "%d\t%s%s\t#%d\n", sec.Order+1, sec.Title, marker, sec.ID)
				for _, it := range sec.Items {
					fmt.Fprintf(w, "\t  %d. %s\t[%s]\t#%d\n", it.Order+1, it.Title, listCaser.String(string(it.Type)), it.ID)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&listCached, "cached", false, "use the cached outline instead of fetching")
	return cmd
}
