package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"crispy/interpreter-go/pkg/driver"
	"crispy/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "crispy " + driver.Version

// Exit codes.
const (
	exitOK          = 0
	exitUsage       = 1
	exitDiagnostics = 65
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   os.Exit,
	}
	return a.run(args)
}

// app carries the process streams so commands can be exercised in tests.
type app struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	exit    func(int)
	verbose bool

	// openEditor is swapped out in tests; nil means liner.
	openEditor func(historyPath string, logger *slog.Logger) lineEditor
}

func (a *app) run(args []string) int {
	for len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
		a.verbose = true
		args = args[1:]
	}
	if len(args) == 0 {
		return a.runREPL()
	}

	switch args[0] {
	case "--help", "-h", "help":
		a.printUsage(a.stdout)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(a.stdout, cliToolVersion)
		return exitOK
	case "repl":
		if len(args) > 1 {
			fmt.Fprintf(a.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
			return exitUsage
		}
		return a.runREPL()
	case "run":
		return a.runEntry(args[1:])
	case "check":
		return a.runCheck(args[1:])
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(a.stderr, "unknown flag %s\n", args[0])
			a.printUsage(a.stderr)
			return exitUsage
		}
		return a.runEntry(args)
	}
}

func (a *app) printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  crispy [-v]                  start the interactive shell
  crispy [-v] <file>           run a script
  crispy [-v] run <file>       run a script
  crispy [-v] check <files...> report syntax and scope errors without running
  crispy --version             print the version

Settings are read from %s in the current directory or a parent, or from
the file named by %s.
`, driver.ConfigFileName, driver.EnvConfig)
}

// setup loads the config nearest to dir and builds the logger.
func (a *app) setup(dir string) (*driver.Config, *slog.Logger, error) {
	cfg, err := driver.LocateConfig(dir)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Level()
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path, "preload", len(cfg.Preload))
	}
	return cfg, logger, nil
}

func (a *app) newInterpreter(logger *slog.Logger, exit func(int)) *interpreter.Interpreter {
	return interpreter.New(
		interpreter.WithStdout(a.stdout),
		interpreter.WithStdin(a.stdin),
		interpreter.WithLogger(logger),
		interpreter.WithExit(exit),
	)
}

// preload runs each configured script in its own session. It reports
// whether all of them ran cleanly.
func (a *app) preload(interp *interpreter.Interpreter, cfg *driver.Config, logger *slog.Logger) bool {
	ok := true
	for _, path := range cfg.Preload {
		logger.Debug("preloading", "path", path)
		source, err := driver.LoadScript(path)
		if err != nil {
			fmt.Fprintf(a.stderr, "failed to preload: %v\n", err)
			return false
		}
		if !a.interpret(interp, interpreter.NewSession(), source) {
			ok = false
		}
	}
	return ok
}

// interpret runs one chunk and prints its diagnostics. It reports whether
// the chunk was free of errors.
func (a *app) interpret(interp *interpreter.Interpreter, sess *interpreter.Session, source string) bool {
	err := interp.Interpret(sess, source)
	if err == nil {
		return true
	}
	diags := interpreter.Diagnostics(err)
	if len(diags) == 0 {
		fmt.Fprintln(a.stderr, err)
		return false
	}
	for _, d := range diags {
		fmt.Fprintln(a.stderr, interpreter.FormatDiagnostic(sess, d))
	}
	return false
}

func (a *app) runEntry(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "crispy run requires a source file")
		return exitUsage
	}
	if len(args) > 1 {
		fmt.Fprintf(a.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return exitUsage
	}
	entry := strings.TrimSpace(args[0])

	dir := "."
	if abs, err := filepath.Abs(entry); err == nil {
		dir = filepath.Dir(abs)
	}
	cfg, logger, err := a.setup(dir)
	if err != nil {
		fmt.Fprintf(a.stderr, "failed to load config: %v\n", err)
		return exitUsage
	}

	source, err := driver.LoadScript(entry)
	if err != nil {
		fmt.Fprintf(a.stderr, "failed to load program: %v\n", err)
		return exitUsage
	}
	if !driver.IsScript(entry) {
		logger.Warn("running a file without the usual extension", "path", entry, "extension", driver.ScriptExtension)
	}

	interp := a.newInterpreter(logger, a.exit)
	if !a.preload(interp, cfg, logger) {
		return exitDiagnostics
	}
	if !a.interpret(interp, interpreter.NewSession(), source) {
		return exitDiagnostics
	}
	return exitOK
}

func (a *app) runCheck(paths []string) int {
	if len(paths) == 0 {
		fmt.Fprintln(a.stderr, "crispy check requires at least one source file")
		return exitUsage
	}
	if _, _, err := a.setup("."); err != nil {
		fmt.Fprintf(a.stderr, "failed to load config: %v\n", err)
		return exitUsage
	}

	reports, err := driver.CheckFiles(context.Background(), paths, 0)
	if err != nil {
		fmt.Fprintf(a.stderr, "check interrupted: %v\n", err)
		return exitUsage
	}
	code := exitOK
	for _, report := range reports {
		switch {
		case report.Err != nil:
			fmt.Fprintf(a.stderr, "%v\n", report.Err)
			code = exitUsage
		case len(report.Diagnostics) > 0:
			for _, d := range report.Diagnostics {
				fmt.Fprintf(a.stderr, "%s: %s\n", report.Path, d)
			}
			if code == exitOK {
				code = exitDiagnostics
			}
		default:
			fmt.Fprintf(a.stdout, "%s: ok\n", report.Path)
		}
	}
	return code
}
