package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"vinyl-pricer/internal/grade"
)

func TestReleaseIDRepromptsUntilValid(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       int
		wantErrMsg []string
	}{
		{"valid first try", "249504\n", 249504, nil},
		{"surrounding spaces", "  42 \r\n", 42, nil},
		{"not a number", "abc\n12\n", 12, []string{"ERROR: Not a valid release ID."}},
		{"decimal", "1.5\n7\n", 7, []string{"ERROR: Not a valid release ID."}},
		{"empty line", "\n3\n", 3, []string{"ERROR: Not a valid release ID."}},
		{"zero", "0\n5\n", 5, []string{"ERROR: Release ID must be a positive integer."}},
		{"negative", "-8\n1\n", 1, []string{"ERROR: Release ID must be a positive integer."}},
		{"overflow", "99999999999999999999999\n9\n", 9, []string{"ERROR: Not a valid release ID."}},
		{
			"several bad then good",
			"x\n-1\n0\n249504\n",
			249504,
			[]string{"ERROR: Not a valid release ID.", "ERROR: Release ID must be a positive integer."},
		},
		{"last line without newline", "77", 77, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := New(strings.NewReader(tt.input), &out)

			got, err := c.ReleaseID(context.Background())
			if err != nil {
				t.Fatalf("ReleaseID() returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ReleaseID() = %d, want %d", got, tt.want)
			}

			lines := strings.Count(tt.input, "\n")
			if !strings.HasSuffix(tt.input, "\n") {
				lines++
			}
			if n := strings.Count(out.String(), releasePrompt); n != lines {
				t.Errorf("prompted %d times, want %d", n, lines)
			}
			for _, msg := range tt.wantErrMsg {
				if !strings.Contains(out.String(), msg) {
					t.Errorf("output missing %q:\n%s", msg, out.String())
				}
			}
			if len(tt.wantErrMsg) == 0 && strings.Contains(out.String(), "ERROR") {
				t.Errorf("unexpected error output:\n%s", out.String())
			}
		})
	}
}

func TestReleaseIDInputClosed(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("nope\n"), &out)

	if _, err := c.ReleaseID(context.Background()); !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
}

func TestGradeRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("nm\nXX\n\nVG+\n"), &out)

	got, err := c.Grade(context.Background())
	if err != nil {
		t.Fatalf("Grade() returned error: %v", err)
	}
	if got != grade.VeryGoodPlus {
		t.Fatalf("Grade() = %q, want VG+", got)
	}

	text := out.String()
	if n := strings.Count(text, gradePrompt); n != 4 {
		t.Errorf("prompted %d times, want 4", n)
	}
	if n := strings.Count(text, "ERROR: Invalid record grade."); n != 3 {
		t.Errorf("reported %d errors, want 3", n)
	}
	if n := strings.Count(text, "[M, NM, VG+, VG, G+, G, F, P]"); n != 3 {
		t.Errorf("listed valid codes %d times, want 3", n)
	}
}

func TestGradeAcceptsEveryCode(t *testing.T) {
	for _, code := range grade.Codes() {
		var out bytes.Buffer
		c := New(strings.NewReader(string(code)+"\n"), &out)
		got, err := c.Grade(context.Background())
		if err != nil {
			t.Fatalf("Grade(%q) returned error: %v", code, err)
		}
		if got != code {
			t.Fatalf("Grade(%q) = %q", code, got)
		}
	}
}

func TestGradePrintsLegendOnce(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("bad\nNM\n"), &out)
	if _, err := c.Grade(context.Background()); err != nil {
		t.Fatalf("Grade() returned error: %v", err)
	}

	text := out.String()
	if n := strings.Count(text, "Record Grading Options"); n != 1 {
		t.Fatalf("legend printed %d times, want 1", n)
	}
	for _, code := range grade.Codes() {
		label, _ := grade.Label(code)
		if !strings.Contains(text, label) {
			t.Errorf("legend missing %q", label)
		}
	}
	if strings.Contains(text, "\x1b[") {
		t.Errorf("expected no ANSI styling for a non-terminal writer")
	}
}

func TestGradeInputClosed(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)

	if _, err := c.Grade(context.Background()); !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
}

func TestParseOutcomes(t *testing.T) {
	res := parseReleaseID("abc")
	var idErr *InvalidReleaseIDError
	if !errors.As(res.err, &idErr) || idErr.Reason != NotANumber || idErr.Input != "abc" {
		t.Fatalf("parseReleaseID(abc) = %+v", res)
	}

	res = parseReleaseID("0")
	if !errors.As(res.err, &idErr) || idErr.Reason != NotPositive {
		t.Fatalf("parseReleaseID(0) = %+v", res)
	}

	g := parseGrade("Z")
	var gradeErr *InvalidGradeError
	if !errors.As(g.err, &gradeErr) || gradeErr.Input != "Z" {
		t.Fatalf("parseGrade(Z) = %+v", g)
	}
	if g := parseGrade("G+"); !g.ok() || g.value != grade.GoodPlus {
		t.Fatalf("parseGrade(G+) = %+v", g)
	}
}

func TestPromptsStopWhenContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	c := New(pr, &out)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := c.ReleaseID(ctx)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("ReleaseID kept blocking on input after cancellation")
	}
}

func TestGradeCancelledContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	c := New(pr, &out)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Grade(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
