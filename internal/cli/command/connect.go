package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/restoremesh-go/internal/cli/connection"
)

// ConnectCommand returns the connect command.
func ConnectCommand() *cli.Command {
	return &cli.Command{
		Name:  "connect",
		Usage: "Open a connection, set fields and print its restoration token",
		Flags: []cli.Flag{
			fieldFlag(),
		},
		Action: connectAction,
	}
}

func fieldFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "set",
		Usage: "Session field as key=value (repeatable)",
	}
}

func connectAction(c *cli.Context) error {
	fields, err := parseFields(c.StringSlice("set"))
	if err != nil {
		return err
	}

	client, err := dial(c)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := applyFields(client, fields); err != nil {
		return err
	}

	return render(c, map[string]any{
		"token":  client.Token(),
		"fields": len(fields),
	})
}

// parseFields splits key=value pairs in order.
func parseFields(pairs []string) ([][2]string, error) {
	fields := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q: expected key=value", p)
		}
		fields = append(fields, [2]string{k, v})
	}
	return fields, nil
}

func applyFields(client *connection.Client, fields [][2]string) error {
	for _, f := range fields {
		if err := client.SetField(f[0], f[1]); err != nil {
			return fmt.Errorf("set %s: %w", f[0], err)
		}
	}
	return nil
}

// dial opens a connection using the global flags.
func dial(c *cli.Context) (*connection.Client, error) {
	flags := ParseGlobalFlags(c)
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := connection.Dial(ctx, flags.Server, flags.Timeout)
	if err != nil {
		return nil, fmt.Errorf("connect failed: %w", err)
	}
	return client, nil
}
