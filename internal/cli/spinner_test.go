package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsFrames(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Computing layout...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Computing layout...") {
		t.Errorf("spinner output %q should contain the message", out)
	}
	if !strings.Contains(out, spinnerFrames[0]) {
		t.Error("spinner should draw at least one frame")
	}
	if !s.Cancelled() {
		t.Error("Cancelled should report true after Stop")
	}
}

func TestSpinnerCancellation(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerTo(ctx, io.Discard, "Rendering...")
			s.Start()
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner should be cancelled with its context")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), io.Discard, "Stopping...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}
