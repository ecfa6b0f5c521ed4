package interpreter

import (
	"errors"
	"fmt"
	"strings"
)

// Session is the context shared by consecutive chunks of one program or REPL
// run. It keeps every submitted line so diagnostics can quote the source and
// line numbers keep counting across chunks.
type Session struct {
	// Interactive marks a REPL session.
	Interactive bool

	lines []string
}

func NewSession() *Session {
	return &Session{}
}

// add records a chunk and returns the number of lines that preceded it.
func (s *Session) add(source string) int {
	offset := len(s.lines)
	s.lines = append(s.lines, strings.Split(strings.TrimSuffix(source, "\n"), "\n")...)
	return offset
}

// Line returns source line n (1-based), or "" when out of range.
func (s *Session) Line(n int) string {
	if s == nil || n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

// Lines reports how many lines have been submitted.
func (s *Session) Lines() int {
	return len(s.lines)
}

// Phase names the pipeline stage that produced a diagnostic.
type Phase string

const (
	PhaseLex     Phase = "lex"
	PhaseParse   Phase = "parse"
	PhaseResolve Phase = "resolve"
	PhaseRuntime Phase = "runtime"
)

type Diagnostic struct {
	Phase   Phase
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[Error line: %d]: %s", d.Line, d.Message)
}

// ChunkError carries every diagnostic produced while interpreting a chunk.
type ChunkError struct {
	Diagnostics []Diagnostic
}

func (e *ChunkError) Error() string {
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}
	return strings.Join(parts, "\n")
}

// Diagnostics extracts the diagnostics from an Interpret error. Errors of
// other types yield nil.
func Diagnostics(err error) []Diagnostic {
	var chunkErr *ChunkError
	if errors.As(err, &chunkErr) {
		return chunkErr.Diagnostics
	}
	return nil
}

// FormatDiagnostic renders the header line, the offending source line and a
// caret under the reported column.
func FormatDiagnostic(sess *Session, d Diagnostic) string {
	var sb strings.Builder
	sb.WriteString(d.String())
	line := sess.Line(d.Line)
	if line == "" {
		return sb.String()
	}
	sb.WriteString("\n")
	sb.WriteString(line)
	sb.WriteString("\n")
	for idx, r := range line {
		if idx >= d.Column-1 {
			break
		}
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
	}
	sb.WriteString("^")
	return sb.String()
}

// RuntimeError is a failure raised while executing, anchored at the token
// whose evaluation failed.
type RuntimeError struct {
	Line    int
	Column  int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func runtimeDiagnostic(err error) Diagnostic {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return Diagnostic{Phase: PhaseRuntime, Line: rtErr.Line, Column: rtErr.Column, Message: rtErr.Message}
	}
	return Diagnostic{Phase: PhaseRuntime, Message: err.Error()}
}
