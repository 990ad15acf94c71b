// Package cli implements the nhi command line: one-off checks from arguments
// or stdin, and the HTTP server.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"nhi/internal/platform/logger"
)

// globals holds flags shared by every subcommand.
type globals struct {
	logLevel  string
	logFormat string
	logger    *slog.Logger
	errOut    io.Writer
}

func (g *globals) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("NHI_LOG_LEVEL"),
			Destination: &g.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (text, json)",
			Value:       "text",
			Sources:     cli.EnvVars("NHI_LOG_FORMAT"),
			Destination: &g.logFormat,
		},
	}
}

func (g *globals) configure(ctx context.Context, _ *cli.Command) (context.Context, error) {
	l, err := logger.NewWithWriter(g.errOut, g.logLevel, g.logFormat)
	if err != nil {
		return ctx, err
	}
	g.logger = l
	return ctx, nil
}

// New builds the root command. Values are read from in when check gets no
// arguments; results go to out and logs to errOut.
func New(in io.Reader, out, errOut io.Writer, version string) *cli.Command {
	g := &globals{errOut: errOut}

	return &cli.Command{
		Name:      "nhi",
		Usage:     "Validate New Zealand National Health Index numbers",
		Version:   version,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags:     g.flags(),
		Before:    g.configure,
		Commands: []*cli.Command{
			cmdCheck(g, in, out),
			cmdServe(g),
		},
	}
}

// Run executes the CLI against the process standard streams.
func Run(ctx context.Context, args []string, version string) error {
	return New(os.Stdin, os.Stdout, os.Stderr, version).Run(ctx, args)
}
