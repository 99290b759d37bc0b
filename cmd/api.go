package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/boxtube/internal/shared"
	"github.com/urfave/cli/v3"
)

// rawFetcher is satisfied by catalog clients that expose untyped responses.
type rawFetcher interface {
	FetchRaw(ctx context.Context, resource string, params url.Values) ([]byte, error)
}

// APIGet performs a raw GET against a catalog resource and prints the JSON
// response.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	resource := cmd.StringArg("resource")
	if resource == "" {
		return fmt.Errorf("%w: resource", shared.ErrMissingArgument)
	}

	fetcher, ok := r.catalog.(rawFetcher)
	if !ok {
		return fmt.Errorf("%w: raw access", shared.ErrNotImplemented)
	}

	params := url.Values{}
	for _, pair := range cmd.StringSlice("param") {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return fmt.Errorf("%w: --param wants key=value, got %q", shared.ErrInvalidFlag, pair)
		}
		params.Add(key, value)
	}

	body, err := fetcher.FetchRaw(ctx, resource, params)
	if err != nil {
		return err
	}

	if cmd.Bool("raw") {
		return r.writePlain("%s\n", body)
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return r.writePlain("%s\n", body)
	}
	return r.writeJSON(parsed, true)
}

// apiCommand exposes the catalog API for debugging
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Raw catalog API access",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "GET a resource (search, videos, channels) with query parameters",
				Arguments: []cli.Argument{&cli.StringArg{Name: "resource"}},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "param", Aliases: []string{"p"}, Usage: "Query parameter as key=value (repeatable)"},
					&cli.BoolFlag{Name: "raw", Usage: "Print the body without re-indenting"},
				},
				Action: r.APIGet,
			},
		},
	}
}
