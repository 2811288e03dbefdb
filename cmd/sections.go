package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jfarrand/syllabus/cmd/config"
	"github.com/jfarrand/syllabus/pkg/service"
)

// NewSectionsCmd groups section-level edits: add, rename, remove, duplicate.
func NewSectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sections",
		Short:   "Edit sections",
		Aliases: []string{"section"},
	}
	cmd.AddCommand(
		newSectionsAddCmd(),
		newSectionsRenameCmd(),
		newSectionsRemoveCmd(),
		newSectionsDuplicateCmd(),
	)
	return cmd
}

func newSectionsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a section at the end of the outline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return withCourse(func(ctx context.Context, course *service.Course) error {
				sec, err := course.AddSection(ctx, title)
				if err != nil {
					return err
				}
				fmt.Printf("Added section %q (#%d)\n", sec.Title, sec.ID)
				return nil
			})
		},
	}
}

func newSectionsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a section",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSectionID(args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			return withCourse(func(ctx context.Context, course *service.Course) error {
				if err := course.RenameSection(ctx, id, title); err != nil {
					return err
				}
				fmt.Printf("Renamed section #%d to %q\n", id, title)
				return nil
			})
		},
	}
}

func newSectionsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Short:   "Delete a section and its items",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSectionID(args[0])
			if err != nil {
				return err
			}
			return withCourse(func(ctx context.Context, course *service.Course) error {
				if err := course.RemoveSection(ctx, id); err != nil {
					return err
				}
				fmt.Printf("Removed section #%d\n", id)
				return nil
			})
		},
	}
}

func newSectionsDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate <id>",
		Short:   "Duplicate a section with all its items",
		Aliases: []string{"dup"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSectionID(args[0])
			if err != nil {
				return err
			}
			return withCourse(func(ctx context.Context, course *service.Course) error {
				if err := course.DuplicateSection(ctx, id); err != nil {
					return err
				}
				fmt.Printf("Duplicated section #%d\n", id)
				return nil
			})
		},
	}
}

func parseSectionID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("section id %q is not a number", arg)
	}
	return id, nil
}

// withCourse loads the outline, runs one edit, and refreshes the cache with
// the settled state.
func withCourse(fn func(context.Context, *service.Course) error) error {
	rem, err := config.ResolveRemote()
	if err != nil {
		return err
	}
	course, err := config.NewCourse(rem)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if _, err := course.Load(ctx); err != nil {
		return err
	}
	if err := fn(ctx, course); err != nil {
		return err
	}

	store, err := config.OpenCache()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Put(rem.CourseID, course.Ctrl.Outline())
}
