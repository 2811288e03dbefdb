package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jfarrand/syllabus/cmd/config"
	"github.com/jfarrand/syllabus/pkg/faults"
	"github.com/jfarrand/syllabus/pkg/service"
)

// NewMoveCmd reorders sections or items from the command line. Positions are
// 1-based as printed by 'syllabus list'.
func NewMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Reorder sections or items",
	}
	cmd.AddCommand(newMoveSectionCmd(), newMoveItemCmd())
	return cmd
}

func newMoveSectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "section <from> <to>",
		Short: "Move a section to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parsePositions(args[0], args[1])
			if err != nil {
				return err
			}
			return runMove(func(ctx context.Context, course *service.Course) error {
				return course.MoveSection(ctx, from, to)
			})
		},
	}
}

func newMoveItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <section-id> <from> <to>",
		Short: "Move an item within its section",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sectionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("section id %q is not a number", args[0])
			}
			from, to, err := parsePositions(args[1], args[2])
			if err != nil {
				return err
			}
			return runMove(func(ctx context.Context, course *service.Course) error {
				return course.MoveItem(ctx, sectionID, from, to)
			})
		},
	}
}

// parsePositions converts 1-based CLI positions to 0-based indices.
func parsePositions(fromArg, toArg string) (int, int, error) {
	from, err := strconv.Atoi(fromArg)
	if err != nil || from < 1 {
		return 0, 0, fmt.Errorf("position %q must be a positive number", fromArg)
	}
	to, err := strconv.Atoi(toArg)
	if err != nil || to < 1 {
		return 0, 0, fmt.Errorf("position %q must be a positive number", toArg)
	}
	return from - 1, to - 1, nil
}

// runMove loads the outline, applies one move through the controller, and
// reports the outcome. On failure the outline is already rolled back; the
// error code tells the user whether an immediate retry makes sense.
func runMove(move func(context.Context, *service.Course) error) error {
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

	if err := move(ctx, course); err != nil {
		var ce *faults.ClassifiedError
		if errors.As(err, &ce) {
			switch ce.Code {
			case faults.CodeNetworkError:
				return fmt.Errorf("order not saved (no connection), local state unchanged: %s", ce.Message)
			case faults.CodeServerError:
				return fmt.Errorf("order rejected by the server, local state unchanged: %s", ce.Message)
			default:
				return fmt.Errorf("order not saved (%s), local state unchanged: %s", ce.Code, ce.Message)
			}
		}
		return err
	}

	store, err := config.OpenCache()
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Put(rem.CourseID, course.Ctrl.Outline()); err != nil {
		return fmt.Errorf("cache outline: %w", err)
	}

	fmt.Println("Order saved.")
	return nil
}
