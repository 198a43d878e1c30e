// Package prompt reads and validates the interactive inputs: a release ID and
// a condition grade. Invalid input is reported and asked for again; only a
// closed input stream or a cancelled context ends a prompt without a value.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"vinyl-pricer/internal/grade"
)

const (
	releasePrompt = "Enter the release ID for the price suggestion: "
	gradePrompt   = "Enter the code in parentheses of the record's grade: "
	legendTitle   = " Record Grading Options "
)

// ErrInputClosed is returned when input ends before a valid value was read.
var ErrInputClosed = errors.New("input closed before a valid value was entered")

// ReleaseIDReason tells why a release ID was rejected.
type ReleaseIDReason int

const (
	NotANumber ReleaseIDReason = iota
	NotPositive
)

// InvalidReleaseIDError is produced for a release ID that is not an integer
// or is below 1.
type InvalidReleaseIDError struct {
	Input  string
	Reason ReleaseIDReason
}

func (e *InvalidReleaseIDError) Error() string {
	if e.Reason == NotPositive {
		return "Release ID must be a positive integer."
	}
	return "Not a valid release ID."
}

// InvalidGradeError is produced for a grade code outside the catalog.
type InvalidGradeError struct {
	Input string
}

func (e *InvalidGradeError) Error() string {
	return "Invalid record grade. Please input a grade from the following list."
}

// outcome is the result of a single prompt attempt.
type outcome[T any] struct {
	value T
	err   error
}

func (o outcome[T]) ok() bool { return o.err == nil }

// inputLine is one read from the input stream.
type inputLine struct {
	text string
	err  error
}

// Collector prompts on out and reads answers from in.
type Collector struct {
	in    *bufio.Reader
	out   io.Writer
	lines chan inputLine
	start sync.Once

	headerStyle lipgloss.Style
	errorStyle  lipgloss.Style
}

// New returns a Collector. Styling is dropped automatically when out is not
// a terminal.
func New(in io.Reader, out io.Writer) *Collector {
	r := lipgloss.NewRenderer(out)
	return &Collector{
		in:          bufio.NewReader(in),
		out:         out,
		lines:       make(chan inputLine),
		headerStyle: r.NewStyle().Bold(true),
		errorStyle:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// ReleaseID asks until a positive integer is entered or ctx is done.
func (c *Collector) ReleaseID(ctx context.Context) (int, error) {
	for {
		line, err := c.ask(ctx, releasePrompt)
		if err != nil {
			return 0, err
		}
		res := parseReleaseID(line)
		if res.ok() {
			return res.value, nil
		}
		c.printError(res.err)
	}
}

// Grade prints the grading legend and asks until a catalog code is entered
// or ctx is done.
func (c *Collector) Grade(ctx context.Context) (grade.Code, error) {
	c.printLegend()
	for {
		line, err := c.ask(ctx, gradePrompt)
		if err != nil {
			return "", err
		}
		res := parseGrade(line)
		if res.ok() {
			return res.value, nil
		}
		c.printError(res.err)
		fmt.Fprintln(c.out, grade.CodeList())
	}
}

func parseReleaseID(line string) outcome[int] {
	input := strings.TrimSpace(line)
	id, err := strconv.Atoi(input)
	if err != nil {
		return outcome[int]{err: &InvalidReleaseIDError{Input: input, Reason: NotANumber}}
	}
	if id < 1 {
		return outcome[int]{err: &InvalidReleaseIDError{Input: input, Reason: NotPositive}}
	}
	return outcome[int]{value: id}
}

func parseGrade(line string) outcome[grade.Code] {
	input := strings.TrimSpace(line)
	code, err := grade.Parse(input)
	if err != nil {
		return outcome[grade.Code]{err: &InvalidGradeError{Input: input}}
	}
	return outcome[grade.Code]{value: code}
}

// ask writes the prompt and returns the next line without its terminator.
// A final line without a newline is still returned. Reads happen on a
// separate goroutine so a cancelled ctx is noticed while stdin blocks.
func (c *Collector) ask(ctx context.Context, prompt string) (string, error) {
	c.start.Do(func() { go c.readLines() })

	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(c.out, prompt)
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out)
			return "", ErrInputClosed
		}
		if l.err != nil {
			fmt.Fprintln(c.out)
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return l.text, nil
	}
}

// readLines feeds c.lines until the input ends, then closes it.
func (c *Collector) readLines() {
	defer close(c.lines)
	for {
		text, err := c.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if text != "" {
					c.lines <- inputLine{text: strings.TrimRight(text, "\r\n")}
				}
				return
			}
			c.lines <- inputLine{err: err}
			return
		}
		c.lines <- inputLine{text: strings.TrimRight(text, "\r\n")}
	}
}

func (c *Collector) printError(err error) {
	fmt.Fprintln(c.out, c.errorStyle.Render("ERROR: "+err.Error()))
}

func (c *Collector) printLegend() {
	rows := grade.Legend()
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	side := (width - len(legendTitle)) / 2
	if side < 3 {
		side = 3
	}
	header := strings.Repeat("=", side) + legendTitle + strings.Repeat("=", side)

	fmt.Fprintln(c.out, c.headerStyle.Render(header))
	for _, row := range rows {
		fmt.Fprintln(c.out, row)
	}
	fmt.Fprintln(c.out, c.headerStyle.Render(strings.Repeat("=", len(header))))
}
