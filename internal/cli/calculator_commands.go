package cli

import (
	"context"
	"strings"

	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/validation"
)

// ElapsedCommand prints the working time between two timestamps
type ElapsedCommand struct {
	app *App
}

// NewElapsedCommand creates a new elapsed command handler
func NewElapsedCommand(app *App) *ElapsedCommand {
	return &ElapsedCommand{app: app}
}

// Execute runs the elapsed command
func (c *ElapsedCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "elapsed", "usage: wh elapsed START END")
	}
	start, err := c.app.parseTime(args[0])
	if err != nil {
		return err
	}
	end, err := c.app.parseTime(args[1])
	if err != nil {
		return err
	}

	res, err := c.app.calculator.Elapsed(ctx, start, end)
	if err != nil {
		return err
	}
	c.app.printf("%s (%.2f h) of working time from %s to %s\n",
		res.Duration, res.Hours, c.app.formatTime(res.Start), c.app.formatTime(res.End))
	return nil
}

// EtaCommand prints when a job started at a timestamp finishes
type EtaCommand struct {
	app *App
}

// NewEtaCommand creates a new eta command handler
func NewEtaCommand(app *App) *EtaCommand {
	return &EtaCommand{app: app}
}

// Execute runs the eta command
func (c *EtaCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "eta", "usage: wh eta START HOURS")
	}
	start, err := c.app.parseTime(args[0])
	if err != nil {
		return err
	}
	hours, err := validation.ParseHours(args[1])
	if err != nil {
		return err
	}

	res, err := c.app.calculator.Completion(ctx, start, hours)
	if err != nil {
		return err
	}
	c.app.printf("%s (%s)\n", c.app.formatTime(res.Completion), c.app.relative(res.Completion))
	return nil
}

// WindowCommand prints the working window in effect
type WindowCommand struct {
	app *App
}

// NewWindowCommand creates a new window command handler
func NewWindowCommand(app *App) *WindowCommand {
	return &WindowCommand{app: app}
}

// Execute runs the window command
func (c *WindowCommand) Execute(ctx context.Context, args []string) error {
	info := c.app.calculator.Window(ctx)
	c.app.printf("Working window: %s-%s (%.2f h per day)\n", info.Open, info.Close, info.LengthHours)
	if len(info.Workdays) > 0 {
		c.app.printf("Workdays: %s\n", strings.Join(info.Workdays, ", "))
	} else {
		c.app.printf("Workdays: every day\n")
	}
	if len(info.Holidays) > 0 {
		c.app.printf("Holidays: %s\n", strings.Join(info.Holidays, ", "))
	}
	return nil
}
