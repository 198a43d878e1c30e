package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"vinyl-pricer/internal/discogs"
	"vinyl-pricer/internal/grade"
	"vinyl-pricer/internal/prompt"
	"vinyl-pricer/internal/report"
)

type inputs interface {
	ReleaseID(ctx context.Context) (int, error)
	Grade(ctx context.Context) (grade.Code, error)
}

type marketplace interface {
	ReleaseInfo(ctx context.Context, releaseID int) (discogs.ReleaseInfo, error)
	PriceSuggestion(ctx context.Context, releaseID int, code grade.Code) (discogs.PriceSuggestion, error)
}

type runner struct {
	in     inputs
	market marketplace
	out    io.Writer
	errOut io.Writer
	log    *log.Logger
}

func newRunner(in inputs, market marketplace, stdout, stderr io.Writer) *runner {
	return &runner{
		in:     in,
		market: market,
		out:    stdout,
		errOut: stderr,
		log:    log.New(stderr, "vinyl-pricer: ", log.LstdFlags),
	}
}

func (r *runner) Execute(ctx context.Context) error {
	releaseID, err := r.in.ReleaseID(ctx)
	if err != nil {
		return r.fail(err)
	}
	code, err := r.in.Grade(ctx)
	if err != nil {
		return r.fail(err)
	}
	label, ok := code.Label()
	if !ok {
		return r.fail(fmt.Errorf("unknown grade %q", code))
	}

	r.log.Printf("Fetching release %d", releaseID)
	info, err := r.market.ReleaseInfo(ctx, releaseID)
	if err != nil {
		return r.fail(err)
	}
	r.log.Printf("Found %q (release %d)", info.Title, info.ID)

	r.log.Printf("Fetching price suggestions for release %d (%s)", releaseID, code)
	price, err := r.market.PriceSuggestion(ctx, releaseID, code)
	if err != nil {
		return r.fail(err)
	}

	fmt.Fprintln(r.out, report.Format(label, info.Title, info.Artists, price.Amount, price.Currency))
	return nil
}

// fail prints a user-facing message for err and returns it unchanged.
func (r *runner) fail(err error) error {
	fmt.Fprintln(r.errOut, "error: "+describe(err))
	return err
}

func describe(err error) string {
	var (
		notFound *discogs.NotFoundError
		noGrade  *discogs.GradeNotAvailableError
		upstream *discogs.UpstreamError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return "interrupted"
	case errors.As(err, &notFound):
		return fmt.Sprintf("release %d was not found on Discogs", notFound.ID)
	case errors.As(err, &noGrade):
		return noGrade.Error()
	case errors.As(err, &upstream):
		return "Discogs request failed: " + upstream.Error()
	case errors.Is(err, prompt.ErrInputClosed):
		return "no input; nothing to look up"
	default:
		return err.Error()
	}
}
