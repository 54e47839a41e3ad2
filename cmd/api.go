package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/gamedex/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIQuery posts a raw Apicalypse query to a resource endpoint and
// prints the JSON response.
func (r *Runner) APIQuery(ctx context.Context, cmd *cli.Command) error {
	resource := cmd.StringArg("resource")
	body := cmd.String("body")
	pretty := cmd.Bool("pretty")

	if resource == "" {
		return fmt.Errorf("%w: a resource endpoint is required (e.g. platforms, games)", shared.ErrMissingArgument)
	}
	if r.exec == nil {
		return fmt.Errorf("%w: IGDB credentials not configured", shared.ErrMissingCredentials)
	}

	r.logger.Infof("querying %v", resource)

	data, err := r.exec.Execute(ctx, resource, body)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err == nil {
			data = buf.Bytes()
		}
	}

	r.writePlain("%s\n", data)
	return nil
}
