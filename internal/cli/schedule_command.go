package cli

import (
	"context"

	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/validation"

	"github.com/jedib0t/go-pretty/v6/table"
)

// CheckCommand lists open work orders overlapping a planned job
type CheckCommand struct {
	app *App
}

// NewCheckCommand creates a new check command handler
func NewCheckCommand(app *App) *CheckCommand {
	return &CheckCommand{app: app}
}

// Execute runs the check command
func (c *CheckCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "check", "usage: wh check START HOURS")
	}
	start, err := c.app.parseTime(args[0])
	if err != nil {
		return err
	}
	hours, err := validation.ParseHours(args[1])
	if err != nil {
		return err
	}
	b, err := c.app.business()
	if err != nil {
		return err
	}
	check, err := b.CheckSchedule(ctx, start, hours)
	if err != nil {
		return err
	}

	c.app.printf("Slot %s to %s (%.2fh)\n", c.app.formatTime(check.Start), c.app.formatTime(check.End), check.Hours)
	if len(check.Conflicts) == 0 {
		c.app.printf("No conflicts\n")
		return nil
	}

	t := newTable(c.app.out, table.Row{"ID", "Plate", "Created", "ETA", "Overlap"})
	for _, conflict := range check.Conflicts {
		w := conflict.WorkOrder
		t.AppendRow(table.Row{
			w.ID,
			w.Plate,
			c.app.formatTime(w.CreatedAt),
			c.app.formatTime(w.EstimatedCompletion),
			conflict.Overlap,
		})
	}
	t.Render()
	return nil
}
