package prompt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	wrapped := fmt.Errorf("ask: %w", terminal.InterruptErr)
	if err := translateSurveyErr(wrapped); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected wrapped interrupt to map to ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestIndexOf(t *testing.T) {
	opts := []string{"a", "b"}
	if got := indexOf(opts, "b"); got != 1 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf(opts, "z"); got != -1 {
		t.Fatalf("indexOf missing = %d", got)
	}
}

func TestInfoWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	d := NewSurveyDriver(&buf)
	if err := d.Info(context.Background(), "<p>hi</p>"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if buf.String() != "<p>hi</p>\n" {
		t.Fatalf("output %q", buf.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Info(ctx, "late"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if _, err := d.Input(ctx, InputConfig{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error from Input, got %v", err)
	}
}
