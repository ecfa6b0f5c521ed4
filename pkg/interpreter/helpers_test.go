package interpreter

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// harness wires an interpreter to in-memory I/O and records exit calls and
// sleeps instead of performing them.
type harness struct {
	interp *Interpreter
	sess   *Session
	out    *bytes.Buffer
	exits  []int
	sleeps []time.Duration
}

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newHarness(t *testing.T, stdin string) *harness {
	t.Helper()
	h := &harness{sess: NewSession(), out: &bytes.Buffer{}}
	h.interp = New(
		WithStdout(h.out),
		WithStdin(strings.NewReader(stdin)),
		WithExit(func(code int) { h.exits = append(h.exits, code) }),
		WithClock(func() time.Time { return fixedNow }, func(d time.Duration) { h.sleeps = append(h.sleeps, d) }),
	)
	return h
}

func (h *harness) run(src string) []Diagnostic {
	return Diagnostics(h.interp.Interpret(h.sess, src))
}

// runSource interprets src in a fresh interpreter and returns what it
// printed together with any diagnostics.
func runSource(t *testing.T, src string) (string, []Diagnostic) {
	t.Helper()
	h := newHarness(t, "")
	diags := h.run(src)
	return h.out.String(), diags
}

// mustRun fails the test on any diagnostic and returns stdout.
func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, diags := runSource(t, src)
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics for %q: %v\noutput so far: %q", src, diags, out)
	}
	return out
}

func messages(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}
