package cli

import (
	"context"

	"fleet-workhours/internal/errors"
)

// PauseOptions holds the flags of the pause commands
type PauseOptions struct {
	Reason string
	At     string
}

// PauseStartCommand opens a pause on a work order
type PauseStartCommand struct {
	app  *App
	opts PauseOptions
}

// NewPauseStartCommand creates a new pause start command handler
func NewPauseStartCommand(app *App, opts PauseOptions) *PauseStartCommand {
	return &PauseStartCommand{app: app, opts: opts}
}

// Execute runs the pause start command
func (c *PauseStartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "pause start", "usage: wh pause start ID|REFERENCE")
	}
	at, err := c.app.parseOptionalTime(c.opts.At)
	if err != nil {
		return err
	}
	b, err := c.app.business()
	if err != nil {
		return err
	}
	session, err := b.StartPause(ctx, args[0], c.opts.Reason, at)
	if err != nil {
		return err
	}
	c.app.printf("Paused work order %d at %s\n", session.Pause.WorkOrderID, c.app.formatTime(session.Pause.StartTime))
	return nil
}

// PauseStopCommand closes the active pause of a work order
type PauseStopCommand struct {
	app  *App
	opts PauseOptions
}

// NewPauseStopCommand creates a new pause stop command handler
func NewPauseStopCommand(app *App, opts PauseOptions) *PauseStopCommand {
	return &PauseStopCommand{app: app, opts: opts}
}

// Execute runs the pause stop command
func (c *PauseStopCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "pause stop", "usage: wh pause stop ID|REFERENCE")
	}
	at, err := c.app.parseOptionalTime(c.opts.At)
	if err != nil {
		return err
	}
	b, err := c.app.business()
	if err != nil {
		return err
	}
	session, err := b.StopPause(ctx, args[0], at)
	if err != nil {
		return err
	}
	c.app.printf("Resumed work order %d after %s of working time\n", session.Pause.WorkOrderID, session.Duration)
	return nil
}

// PauseListCommand lists the pauses of a work order
type PauseListCommand struct {
	app *App
}

// NewPauseListCommand creates a new pause list command handler
func NewPauseListCommand(app *App) *PauseListCommand {
	return &PauseListCommand{app: app}
}

// Execute runs the pause list command
func (c *PauseListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "pause list", "usage: wh pause list ID|REFERENCE")
	}
	b, err := c.app.business()
	if err != nil {
		return err
	}
	pauses, err := b.ListPauses(ctx, args[0])
	if err != nil {
		return err
	}
	c.app.renderPauses(pauses)
	return nil
}
