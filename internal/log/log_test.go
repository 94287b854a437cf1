package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDebugf(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  string
	}{
		{name: "enabled", debug: true, want: "[DEBUG] hello 42\n"},
		{name: "disabled", debug: false, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, "", tt.debug)
			l.SetFlags(0)
			l.Debugf("hello %d", 42)
			if buf.String() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "doc ", true)
	l.SetFlags(0)

	l.With("[req-1] ").Printf("served")
	if got := buf.String(); got != "doc [req-1] served\n" {
		t.Errorf("Unexpected output %q", got)
	}

	// the parent prefix is unchanged
	buf.Reset()
	l.Printf("plain")
	if got := buf.String(); got != "doc plain\n" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != Default() {
		t.Error("Expected default logger for empty context")
	}

	var buf bytes.Buffer
	l := New(&buf, "", false)
	ctx := WithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Error("Expected logger from context")
	}

	FromContext(ctx).Printf("via context")
	if !strings.Contains(buf.String(), "via context") {
		t.Errorf("Expected output in buffer, got %q", buf.String())
	}
}
