package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"crispy/interpreter-go/pkg/driver"
	"crispy/interpreter-go/pkg/interpreter"
)

var banner = fmt.Sprintf("Crispy interactive shell version %s\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.", driver.Version)

const replHelp = `REPL commands:
  :help    Show this message
  :env     List global names
  :quit    Exit the REPL`

// lineEditor is the part of liner.State the REPL uses.
type lineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// historyEditor is a liner.State that persists its history on Close.
type historyEditor struct {
	*liner.State
	path   string
	logger *slog.Logger
	closed bool
}

func openLiner(historyPath string, logger *slog.Logger) lineEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			if _, err := state.ReadHistory(f); err != nil {
				logger.Warn("reading history failed", "path", historyPath, "error", err)
			}
			_ = f.Close()
		}
	}
	return &historyEditor{State: state, path: historyPath, logger: logger}
}

func (e *historyEditor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.path != "" {
		if f, err := os.Create(e.path); err == nil {
			if _, err := e.WriteHistory(f); err != nil {
				e.logger.Warn("writing history failed", "path", e.path, "error", err)
			}
			_ = f.Close()
		} else {
			e.logger.Warn("writing history failed", "path", e.path, "error", err)
		}
	}
	return e.State.Close()
}

func (a *app) runREPL() int {
	cfg, logger, err := a.setup(".")
	if err != nil {
		fmt.Fprintf(a.stderr, "failed to load config: %v\n", err)
		return exitUsage
	}
	open := a.openEditor
	if open == nil {
		open = openLiner
	}
	editor := open(cfg.HistoryPath(), logger)
	defer editor.Close()

	interp := a.newInterpreter(logger, func(code int) {
		_ = editor.Close()
		a.exit(code)
	})
	a.preload(interp, cfg, logger)

	fmt.Fprintln(a.stdout, banner)
	sess := interpreter.NewSession()
	sess.Interactive = true
	a.replLoop(editor, interp, sess, cfg)
	return exitOK
}

func (a *app) replLoop(editor lineEditor, interp *interpreter.Interpreter, sess *interpreter.Session, cfg *driver.Config) {
	for {
		chunk, ok := readChunk(editor, cfg.Prompt, cfg.ContinuationPrompt)
		if !ok {
			fmt.Fprintln(a.stdout)
			return
		}
		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			continue
		}
		editor.AppendHistory(chunk)

		switch trimmed {
		case ":quit", ":q":
			return
		case ":help":
			fmt.Fprintln(a.stdout, replHelp)
			continue
		case ":env":
			fmt.Fprintln(a.stdout, strings.Join(interp.GlobalEnvironment().Keys(), " "))
			continue
		}
		a.interpret(interp, sess, chunk)
	}
}

// readChunk prompts until the collected lines close every bracket, string
// and block comment. ok is false at end of input; Ctrl+C discards the
// pending lines.
func readChunk(editor lineEditor, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := editor.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if src := b.String(); chunkComplete(src) {
			return src, true
		}
	}
}

// chunkComplete reports whether src leaves no bracket, string or block
// comment open. Surplus closing brackets count as complete so the parser
// can report them.
func chunkComplete(src string) bool {
	depth := 0
	for i := 0; i < len(src); i++ {
		switch c := src[i]; {
		case c == '"':
			end := strings.IndexByte(src[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			nl := strings.IndexByte(src[i:], '\n')
			if nl < 0 {
				return depth <= 0
			}
			i += nl
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return false
			}
			i += end + 3
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		}
	}
	return depth <= 0
}
