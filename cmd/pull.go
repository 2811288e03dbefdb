package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfarrand/syllabus/cmd/config"
)

// NewPullCmd fetches the outline from the remote and refreshes the cache.
func NewPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch the outline from the remote",
		RunE: func(cmd *cobra.Command, args []string) error {
			rem, err := config.ResolveRemote()
			if err != nil {
				return err
			}
			course, err := config.NewCourse(rem)
			if err != nil {
				return err
			}

			o, err := course.Load(context.Background())
			if err != nil {
				return fmt.Errorf("pull %q: %w", rem.Name, err)
			}

			store, err := config.OpenCache()
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Put(rem.CourseID, o); err != nil {
				return fmt.Errorf("cache outline: %w", err)
			}

			items := 0
			for _, s := range o.Sections {
				items += len(s.Items)
			}
			fmt.Printf("Pulled %d sections, %d items from %s\n", len(o.Sections), items, rem.Name)
			return nil
		},
	}
}
