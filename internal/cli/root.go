package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/diaries/internal/config"
	"github.com/wesleyorama2/diaries/internal/diaries"
	"github.com/wesleyorama2/diaries/internal/http"
	"github.com/wesleyorama2/diaries/internal/logger"
	"github.com/wesleyorama2/diaries/internal/output"
)

var version = "0.1.0"

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfg       *config.Config
	api       *diaries.API
	formatter output.FormatProvider
	format    output.OutputFormat
	log       *zap.Logger
	extract   []string
	validate  bool
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree, so tests can run commands side by side.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "diaries",
		Short:   "A terminal client for the Diaries service",
		Version: version,
		Long: `diaries talks to a Diaries service over HTTP. It lists, reads, creates,
updates and removes diaries, and can sample the latency of an endpoint.

Settings come from an optional config file, a .env file, DIARIES_*
environment variables and flags, in increasing order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a YAML or JSON config file")
	flags.String("env-file", ".env", "dotenv file to load before reading the environment")
	flags.String("base-url", config.DefaultBaseURL, "base URL of the Diaries service")
	flags.Bool("insecure", false, "skip TLS certificate verification")
	flags.Duration("timeout", config.DefaultRequestTimeout, "request timeout")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringP("output", "o", string(output.FormatText), "output format (text, json, yaml)")
	flags.BoolP("verbose", "v", false, "show timing and headers, and log every exchange")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringArrayP("extract", "e", nil, "print only the value at this JSONPath, e.g. $.id (repeatable)")
	flags.Bool("validate", false, "check response payloads against the diary schema")

	root.AddCommand(
		newListCommand(a),
		newGetCommand(a),
		newAddCommand(a),
		newUpdateCommand(a),
		newRemoveCommand(a),
		newLatencyCommand(a),
	)

	return root
}

// Execute runs the command line until completion or an interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")
	envFile, _ := flags.GetString("env-file")

	cfg, err := config.Load(config.Options{
		File:     configFile,
		EnvFiles: []string{envFile},
		Flags:    flags,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	format, _ := flags.GetString("output")
	a.format, err = output.ParseFormat(format)
	if err != nil {
		return err
	}

	noColor, _ := flags.GetBool("no-color")
	noColor = noColor || !output.ColorEnabled(cmd.OutOrStdout())
	a.formatter = output.GetFormatter(a.format, cfg.LogRequests, noColor)

	a.extract, _ = flags.GetStringArray("extract")
	a.validate, _ = flags.GetBool("validate")

	level := cfg.LogLevel
	if cfg.LogRequests {
		level = "debug"
	}
	a.log = logger.NewWithWriter(level, cmd.ErrOrStderr())

	a.api = diaries.NewAPI(http.NewClient(
		http.WithBaseURL(cfg.BaseURL),
		http.WithTimeout(cfg.RequestTimeout),
		http.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
		http.WithHeader("User-Agent", "diaries/"+version),
		http.WithLogger(a.log),
	))

	return nil
}

// StatusError reports a response outside the 2xx range. The response has
// already been printed when it is returned.
type StatusError struct {
	Method     string
	Target     string
	StatusCode int
	Reason     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Target, e.StatusCode, e.Reason)
}

// ErrValidation marks a response whose payload failed schema validation.
var ErrValidation = errors.New("response failed validation")

// render prints an exchange in the selected format and turns non-2xx
// responses into a StatusError.
func (a *app) render(w io.Writer, resp *http.Response, check func(*http.Response) error) error {
	if len(a.extract) > 0 {
		if err := a.printExtract(w, resp); err != nil {
			return err
		}
	} else {
		if a.format == output.FormatText {
			fmt.Fprint(w, a.formatter.FormatRequest(resp.Request()))
		}
		fmt.Fprint(w, a.formatter.FormatResponse(resp))
	}

	if !resp.IsSuccess() {
		return &StatusError{
			Method:     resp.Request().Method().String(),
			Target:     resp.Request().Target(),
			StatusCode: resp.StatusCode,
			Reason:     resp.Reason,
		}
	}

	if a.validate && check != nil {
		if err := check(resp); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return nil
}
