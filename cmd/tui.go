package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jfarrand/syllabus/cmd/config"
	"github.com/jfarrand/syllabus/internal/tui/outline"
	"github.com/jfarrand/syllabus/pkg/cache"
)

// NewTuiCmd launches the interactive outline editor.
func NewTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit the course outline interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			rem, err := config.ResolveRemote()
			if err != nil {
				return err
			}
			course, err := config.NewCourse(rem)
			if err != nil {
				return err
			}

			store, err := config.OpenCache()
			if err != nil {
				return err
			}
			defer store.Close()

			// A cached outline lets the editor paint before the load finishes.
			cached, _, err := store.Get(rem.CourseID)
			if err != nil && !errors.Is(err, cache.ErrNotCached) {
				return err
			}

			p := tea.NewProgram(outline.New(course, cached), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run editor: %w", err)
			}

			// Persist whatever the session settled on for the next cold start.
			final := course.Ctrl.Outline()
			if len(final.Sections) > 0 {
				if err := store.Put(rem.CourseID, final); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
