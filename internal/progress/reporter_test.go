package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")

	var buf bytes.Buffer
	r := NewReporter(&buf, "Simulating snowfall")
	if _, ok := r.(*CIReporter); !ok {
		t.Fatalf("expected CIReporter, got %T", r)
	}

	r.Start(17)
	r.Update(3, "3 live")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Simulating snowfall (max 17)", "[3/17] 3 live", "Simulating snowfall complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewReporterInTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")

	var buf bytes.Buffer
	r := NewReporter(&buf, "Simulating snowfall")
	if _, ok := r.(*TerminalReporter); !ok {
		t.Fatalf("expected TerminalReporter, got %T", r)
	}

	// Update before Start must not panic.
	r.Update(1, "early")
	r.Start(5)
	r.Update(2, "two live")
	r.Finish()
}
