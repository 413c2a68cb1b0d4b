package cli

import (
	"context"

	"fleet-workhours/internal/httpapi"
)

// ServeCommand runs the JSON API until the context is cancelled
type ServeCommand struct {
	app  *App
	addr string
}

// NewServeCommand creates a new serve command handler; an empty addr uses the configured one
func NewServeCommand(app *App, addr string) *ServeCommand {
	return &ServeCommand{app: app, addr: addr}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	b, err := c.app.business()
	if err != nil {
		return err
	}

	addr := c.addr
	if addr == "" {
		addr = c.app.config.Server.Addr
	}
	server := httpapi.NewServer(b,
		httpapi.WithLocation(c.app.loc),
		httpapi.WithRequestLog(c.app.config.Application.Verbose),
		httpapi.WithTimeouts(c.app.config.Server.ReadTimeout, c.app.config.Server.WriteTimeout),
	)

	c.app.printf("Serving the working-hours API on %s\n", addr)
	return server.ListenAndServe(ctx, addr)
}
