package cli

import (
	"context"
	"strings"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/validation"

	"github.com/jedib0t/go-pretty/v6/table"
)

// CreateOptions holds the flags of the create command
type CreateOptions struct {
	Description string
	At          string
}

// CreateCommand opens a work order
type CreateCommand struct {
	app  *App
	opts CreateOptions
}

// NewCreateCommand creates a new create command handler
func NewCreateCommand(app *App, opts CreateOptions) *CreateCommand {
	return &CreateCommand{app: app, opts: opts}
}

// Execute runs the create command
func (c *CreateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "create", "usage: wh create PLATE HOURS")
	}
	hours, err := validation.ParseHours(args[1])
	if err != nil {
		return err
	}
	createdAt, err := c.app.parseOptionalTime(c.opts.At)
	if err != nil {
		return err
	}

	b, err := c.app.business()
	if err != nil {
		return err
	}
	progress, err := b.OpenWorkOrder(ctx, args[0], c.opts.Description, createdAt, hours)
	if err != nil {
		return err
	}

	w := progress.WorkOrder
	c.app.printf("Opened work order %d for %s (ref %s)\n", w.ID, w.Plate, w.Reference)
	c.app.printf("ETA %s (%s)\n", c.app.formatTime(w.EstimatedCompletion), c.app.relative(w.EstimatedCompletion))
	return nil
}

// ListOptions holds the flags of the list command
type ListOptions struct {
	Plate string
	Open  bool
	Limit int
}

func (o ListOptions) filter() domain.WorkOrderFilter {
	f := domain.WorkOrderFilter{OpenOnly: o.Open, Limit: o.Limit}
	if strings.TrimSpace(o.Plate) != "" {
		plate := o.Plate
		f.Plate = &plate
	}
	return f
}

// ListCommand lists work orders with their progress
type ListCommand struct {
	app  *App
	opts ListOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{app: app, opts: opts}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	b, err := c.app.business()
	if err != nil {
		return err
	}
	rows, err := b.ListProgress(ctx, c.opts.filter())
	if err != nil {
		return err
	}
	c.app.renderProgress(rows)
	return nil
}

// ShowCommand prints a work order with its pauses
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: wh show ID|REFERENCE")
	}
	b, err := c.app.business()
	if err != nil {
		return err
	}
	detail, err := b.GetWorkOrderDetail(ctx, args[0])
	if err != nil {
		return err
	}

	w := detail.WorkOrder
	c.app.printf("Work order %d: %s\n", w.ID, w.Plate)
	c.app.printf("Reference:   %s\n", w.Reference)
	if w.Description != "" {
		c.app.printf("Description: %s\n", w.Description)
	}
	c.app.printf("Created:     %s\n", c.app.formatTime(w.CreatedAt))
	c.app.printf("Estimate:    %.2fh\n", w.EstimatedHours)
	c.app.printf("ETA:         %s (%s)\n", c.app.formatTime(w.EstimatedCompletion), c.app.relative(w.EstimatedCompletion))
	if w.ActualCompletion != nil {
		c.app.printf("Completed:   %s\n", c.app.formatTime(*w.ActualCompletion))
	} else {
		c.app.printf("Projected:   %s\n", c.app.formatTime(detail.ProjectedCompletion))
	}
	c.app.printf("Worked:      %s of %s (%.0f%%)\n",
		domain.FormatMinutes(detail.WorkedMinutes), domain.FormatMinutes(detail.EstimatedMinutes), detail.PercentComplete)
	c.app.printf("Paused:      %s in %d pause(s)\n", domain.FormatMinutes(detail.PausedMinutes), detail.PauseCount)
	c.app.printf("Status:      %s\n", statusLabel(detail.WorkOrderProgress))

	if len(detail.Pauses) > 0 {
		c.app.printf("\n")
		c.app.renderPauses(detail.Pauses)
	}
	return nil
}

// CompleteCommand closes a work order
type CompleteCommand struct {
	app *App
	at  string
}

// NewCompleteCommand creates a new complete command handler; an empty at means now
func NewCompleteCommand(app *App, at string) *CompleteCommand {
	return &CompleteCommand{app: app, at: at}
}

// Execute runs the complete command
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "complete", "usage: wh complete ID|REFERENCE")
	}
	at, err := c.app.parseOptionalTime(c.at)
	if err != nil {
		return err
	}
	b, err := c.app.business()
	if err != nil {
		return err
	}
	progress, err := b.CloseWorkOrder(ctx, args[0], at)
	if err != nil {
		return err
	}

	w := progress.WorkOrder
	c.app.printf("Completed work order %d for %s at %s (%s worked, %s)\n",
		w.ID, w.Plate, c.app.formatTimePtr(w.ActualCompletion, ""),
		domain.FormatMinutes(progress.WorkedMinutes), statusLabel(progress))
	return nil
}

// EstimateCommand revises the estimate of an open work order
type EstimateCommand struct {
	app *App
}

// NewEstimateCommand creates a new estimate command handler
func NewEstimateCommand(app *App) *EstimateCommand {
	return &EstimateCommand{app: app}
}

// Execute runs the estimate command
func (c *EstimateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "estimate", "usage: wh estimate ID|REFERENCE HOURS")
	}
	hours, err := validation.ParseHours(args[1])
	if err != nil {
		return err
	}
	b, err := c.app.business()
	if err != nil {
		return err
	}
	progress, err := b.ReviseEstimate(ctx, args[0], hours)
	if err != nil {
		return err
	}

	w := progress.WorkOrder
	c.app.printf("Estimate for %s is now %.2fh, ETA %s\n", w.Plate, w.EstimatedHours, c.app.formatTime(w.EstimatedCompletion))
	return nil
}

// DeleteCommand removes a work order and its pauses
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: wh delete ID|REFERENCE")
	}
	b, err := c.app.business()
	if err != nil {
		return err
	}
	w, err := b.GetWorkOrder(ctx, args[0])
	if err != nil {
		return err
	}
	if err := b.DeleteWorkOrder(ctx, args[0]); err != nil {
		return err
	}
	c.app.printf("Deleted work order %d for %s\n", w.ID, w.Plate)
	return nil
}

// OverdueCommand lists open work orders past their ETA
type OverdueCommand struct {
	app *App
}

// NewOverdueCommand creates a new overdue command handler
func NewOverdueCommand(app *App) *OverdueCommand {
	return &OverdueCommand{app: app}
}

// Execute runs the overdue command
func (c *OverdueCommand) Execute(ctx context.Context, args []string) error {
	b, err := c.app.business()
	if err != nil {
		return err
	}
	orders, err := b.ListOverdue(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		c.app.printf("No overdue work orders\n")
		return nil
	}

	t := newTable(c.app.out, table.Row{"ID", "Plate", "ETA", "Late by"})
	for _, w := range orders {
		t.AppendRow(table.Row{
			w.ID,
			w.Plate,
			c.app.formatTime(w.EstimatedCompletion),
			c.app.relative(w.EstimatedCompletion),
		})
	}
	t.Render()
	return nil
}
