package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/restoremesh-go/internal/cli/connection"
)

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show server health, version and registry state",
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	client := connection.NewHTTPClient(flags.Server, flags.Timeout)

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := client.GetJSON(ctx, "/health", &health); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	var version struct {
		Version string `json:"version"`
	}
	if err := client.GetJSON(ctx, "/version", &version); err != nil {
		return fmt.Errorf("version: %w", err)
	}

	var registry struct {
		Entries     int    `json:"entries"`
		Connections int    `json:"connections"`
		Lifetime    string `json:"lifetime"`
	}
	if err := client.GetJSON(ctx, "/debug/registry", &registry); err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	return render(c, map[string]any{
		"server":      client.BaseURL(),
		"status":      health.Status,
		"version":     version.Version,
		"entries":     registry.Entries,
		"connections": registry.Connections,
		"lifetime":    registry.Lifetime,
	})
}
