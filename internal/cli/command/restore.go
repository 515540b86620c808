package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// RestoreCommand returns the restore command.
func RestoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "Open a connection and restore the session behind a token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "token",
				Aliases:  []string{"t"},
				Usage:    "Restoration token printed by connect",
				Required: true,
			},
		},
		Action: restoreAction,
	}
}

func restoreAction(c *cli.Context) error {
	client, err := dial(c)
	if err != nil {
		return err
	}
	defer client.Close()

	status, err := client.Restore(c.String("token"))
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	result := map[string]any{
		"status": status,
		"token":  client.Token(),
	}
	fields, err := client.Fields()
	if err != nil {
		return fmt.Errorf("read fields: %w", err)
	}
	for k, v := range fields {
		result["field."+k] = v
	}
	return render(c, result)
}
