package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"nhi/internal/check"
)

// ErrInvalidValues is returned by check when at least one value was rejected.
var ErrInvalidValues = errors.New("one or more values are not valid NHIs")

func cmdCheck(g *globals, in io.Reader, out io.Writer) *cli.Command {
	var excludeTest, quiet bool

	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"c"},
		Usage:     "Check NHI values given as arguments, or one per line on stdin",
		ArgsUsage: "[VALUE...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "exclude-test",
				Usage:       "Reject NHIs reserved for testing (Z prefix)",
				Sources:     cli.EnvVars("NHI_CHECK_EXCLUDE_TEST"),
				Destination: &excludeTest,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "Print nothing; report through the exit status only",
				Destination: &quiet,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			values := c.Args().Slice()
			if len(values) == 0 {
				var err error
				if values, err = readValues(in); err != nil {
					return fmt.Errorf("read values from stdin: %w", err)
				}
			}
			if len(values) == 0 {
				return errors.New("no values to check")
			}

			svc := check.New()
			opts := check.Options{ExcludeTest: excludeTest}

			invalid := 0
			for _, v := range values {
				res := svc.Check(ctx, v, opts)
				if !res.Valid {
					invalid++
				}
				if !quiet {
					writeResult(out, res)
				}
			}

			g.logger.Debug("check finished", "total", len(values), "invalid", invalid)
			if invalid > 0 {
				return ErrInvalidValues
			}
			return nil
		},
	}
}

func writeResult(w io.Writer, res check.Result) {
	if res.Valid {
		fmt.Fprintf(w, "%s\tvalid\n", res.Input)
		return
	}
	fmt.Fprintf(w, "%s\tinvalid\t%s\n", res.Input, res.Reason)
}

// readValues returns the trimmed, non-empty lines of r.
func readValues(r io.Reader) ([]string, error) {
	var values []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			values = append(values, line)
		}
	}
	return values, sc.Err()
}
