package app

import (
	"context"
	"fmt"
	"io"

	"vinyl-pricer/internal/config"
	"vinyl-pricer/internal/discogs"
	"vinyl-pricer/internal/prompt"
)

// Run is the entry point for a single price lookup. Any error is reported on
// stderr before it is returned; no report line is printed in that case.
func Run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "error: "+err.Error())
		return err
	}

	r := newRunner(prompt.New(stdin, stdout), discogs.New(cfg), stdout, stderr)
	return r.Execute(ctx)
}
