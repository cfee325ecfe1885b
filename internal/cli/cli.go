package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/specialistvlad/schedgrid/internal/app"
	"github.com/specialistvlad/schedgrid/internal/document"
	"github.com/specialistvlad/schedgrid/internal/publish"
	"github.com/specialistvlad/schedgrid/internal/watch"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// varsFlag collects repeated -var name=value flags.
type varsFlag map[string]string

func (v varsFlag) String() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + v[k]
	}
	return strings.Join(pairs, ",")
}

func (v varsFlag) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("expected name=value, got %q", raw)
	}
	v[strings.TrimSpace(name)] = value
	return nil
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("schedgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
schedgrid - Builds job schedule graphs from HCL definitions and writes them as
scheduler documents.

Usage:
  schedgrid [options] DEFINITION_PATH

Arguments:
  DEFINITION_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	vars := varsFlag{}
	outputFlag := flagSet.String("output", "", "Output file or directory. Empty writes to stdout.")
	oFlag := flagSet.String("o", "", "Output file or directory (shorthand).")
	formatFlag := flagSet.String("format", string(document.FormatXML), "Document format. Options: 'xml' or 'hcl'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	settingsFlag := flagSet.String("settings", "", "Path to a YAML settings file. Flags override its values.")
	envFileFlag := flagSet.String("env-file", "", "Path to a dotenv file with the S3 credentials.")
	publishFlag := flagSet.Bool("publish", false, "Upload documents to the configured S3 bucket.")
	watchFlag := flagSet.Bool("watch", false, "Regenerate whenever a definition file changes.")
	debounceFlag := flagSet.Duration("debounce", watch.DefaultDebounce, "Quiet period before regenerating in watch mode.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server in watch mode. 0 is disabled.")
	flagSet.Var(vars, "var", "Set a definition variable as name=value. Repeatable.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No definition path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected one definition path, got %d", flagSet.NArg())
	}

	cfg := app.Config{
		DefinitionPath:  flagSet.Arg(0),
		LogFormat:       *logFormatFlag,
		LogLevel:        *logLevelFlag,
		Debounce:        *debounceFlag,
		HealthcheckPort: *healthPortFlag,
		Variables:       map[string]string{},
	}
	format := *formatFlag

	if *settingsFlag != "" {
		s, err := app.LoadSettings(*settingsFlag)
		if err != nil {
			return nil, false, usageError("%s", err.Error())
		}
		applySettings(&cfg, &format, s)
		slog.Debug("Settings file applied.", "path", *settingsFlag)
	}

	// Flags given on the command line win over the settings file. Visit runs
	// in lexical order, so -output wins over -o.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.OutputPath = *oFlag
		case "output":
			cfg.OutputPath = *outputFlag
		case "format":
			format = *formatFlag
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "publish":
			cfg.Publish = *publishFlag
		case "watch":
			cfg.Watch = *watchFlag
		case "debounce":
			cfg.Debounce = *debounceFlag
		case "healthcheck-port":
			cfg.HealthcheckPort = *healthPortFlag
		}
	})
	for k, v := range vars {
		cfg.Variables[k] = v
	}

	var err error
	if cfg.Format, err = document.ParseFormat(format); err != nil {
		return nil, false, usageError("invalid format: %s", err)
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if cfg.Publish {
		getenv, err := app.LoadEnv(*envFileFlag)
		if err != nil {
			return nil, false, usageError("%s", err.Error())
		}
		if cfg.S3, err = publish.ConfigFromEnv(cfg.S3, getenv); err != nil {
			return nil, false, usageError("%s", err.Error())
		}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "path", config.DefinitionPath, "format", config.Format)
	return config, false, nil
}

func applySettings(cfg *app.Config, format *string, s *app.Settings) {
	if s.Output != "" {
		cfg.OutputPath = s.Output
	}
	if s.Format != "" {
		*format = s.Format
	}
	if s.LogLevel != "" {
		cfg.LogLevel = s.LogLevel
	}
	if s.LogFormat != "" {
		cfg.LogFormat = s.LogFormat
	}
	for k, v := range s.Variables {
		cfg.Variables[k] = v
	}
	cfg.Publish = s.Publish
	cfg.Watch = s.Watch
	if s.Debounce > time.Duration(0) {
		cfg.Debounce = s.Debounce
	}
	if s.HealthcheckPort != 0 {
		cfg.HealthcheckPort = s.HealthcheckPort
	}
	cfg.S3 = s.S3
}
