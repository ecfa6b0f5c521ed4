package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Version is the interpreter release checked against a config's requires
// field.
const Version = "0.1.0"

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "crispy.yml"

// Environment overrides.
const (
	EnvConfig  = "CRISPY_CONFIG"
	EnvHistory = "CRISPY_HISTORY"
)

const historyFileName = ".crispy_history"

// ErrConfigNotFound is returned by FindConfig when no crispy.yml exists in
// the start directory or any of its parents.
var ErrConfigNotFound = errors.New("crispy.yml not found")

// Config holds the CLI settings read from crispy.yml.
type Config struct {
	// Path is the absolute path of the file the config came from, or ""
	// for the built-in defaults.
	Path               string
	Prompt             string
	ContinuationPrompt string
	HistoryFile        string
	LogLevel           string
	// Preload lists scripts, as absolute paths, run before the entry file
	// or the REPL.
	Preload  []string
	Requires string
}

type configFile struct {
	Prompt             *string    `yaml:"prompt"`
	ContinuationPrompt *string    `yaml:"continuation_prompt"`
	HistoryFile        string     `yaml:"history_file"`
	LogLevel           string     `yaml:"log_level"`
	Preload            stringList `yaml:"preload"`
	Requires           string     `yaml:"requires"`
}

// stringList accepts either a single scalar or a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, strings.TrimSpace(str))
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("config: expected string or sequence but found %s", value.ShortTag())
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the settings used when no crispy.yml is found.
func DefaultConfig() *Config {
	return &Config{
		Prompt:             ">>> ",
		ContinuationPrompt: "... ",
		LogLevel:           "warn",
	}
}

// LoadConfig parses and validates the config file at path. An empty file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if raw.Prompt != nil {
		cfg.Prompt = *raw.Prompt
	}
	if raw.ContinuationPrompt != nil {
		cfg.ContinuationPrompt = *raw.ContinuationPrompt
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	cfg.Requires = strings.TrimSpace(raw.Requires)
	dir := filepath.Dir(path)
	if history := strings.TrimSpace(raw.HistoryFile); history != "" {
		cfg.HistoryFile = resolveRelative(dir, history)
	}
	for _, script := range raw.Preload {
		if script == "" {
			// Kept so validate can report the position.
			cfg.Preload = append(cfg.Preload, "")
			continue
		}
		cfg.Preload = append(cfg.Preload, resolveRelative(dir, script))
	}
	return cfg
}

func resolveRelative(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

func (c *Config) validate() error {
	errs := ValidationError{Path: c.Path}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, err.Error())
	}
	if strings.ContainsAny(c.Prompt, "\r\n") {
		errs.Issues = append(errs.Issues, "prompt must be a single line")
	}
	if strings.ContainsAny(c.ContinuationPrompt, "\r\n") {
		errs.Issues = append(errs.Issues, "continuation_prompt must be a single line")
	}
	for i, script := range c.Preload {
		if script == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("preload[%d] must be a non-empty path", i))
			continue
		}
		info, err := os.Stat(script)
		switch {
		case err != nil:
			errs.Issues = append(errs.Issues, fmt.Sprintf("preload[%d]: %s does not exist", i, script))
		case info.IsDir():
			errs.Issues = append(errs.Issues, fmt.Sprintf("preload[%d]: %s is a directory", i, script))
		}
	}
	if c.Requires != "" {
		if issue := checkRequires(c.Requires); issue != "" {
			errs.Issues = append(errs.Issues, issue)
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func checkRequires(requires string) string {
	want := canonicalVersion(requires)
	if !semver.IsValid(want) {
		return fmt.Sprintf("requires %q is not a semantic version", requires)
	}
	if semver.Compare(canonicalVersion(Version), want) < 0 {
		return fmt.Sprintf("requires crispy %s but this is %s", strings.TrimPrefix(want, "v"), Version)
	}
	return ""
}

func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// ParseLogLevel maps a log_level setting onto a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log_level %q must be one of debug, info, warn, error", level)
	}
}

// Level is the parsed LogLevel; validated configs never fail here.
func (c *Config) Level() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

// HistoryPath is where the REPL keeps its history: CRISPY_HISTORY, then
// history_file, then ~/.crispy_history. It is "" when none can be
// determined.
func (c *Config) HistoryPath() string {
	if env := strings.TrimSpace(os.Getenv(EnvHistory)); env != "" {
		return env
	}
	if c.HistoryFile != "" {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

// FindConfig walks from start up to the filesystem root looking for
// crispy.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// LocateConfig loads the config named by CRISPY_CONFIG, or the nearest
// crispy.yml above start, falling back to DefaultConfig.
func LocateConfig(start string) (*Config, error) {
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		return LoadConfig(env)
	}
	path, err := FindConfig(start)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadConfig(path)
}
