package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"expenses/internal/core"
	"expenses/internal/services"
)

// ErrUsage marks command line syntax problems.
var ErrUsage = errors.New("usage error")

// Options holds the raw command line values.
type Options struct {
	File   string
	From   string
	To     string
	Export string
}

// ParseArgs parses args (without the program name). Flags may appear before
// or after the positional file argument. flag.ErrHelp is returned for -h.
func ParseArgs(program string, args []string, stderr io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.From, "from", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&opts.To, "to", "", "End date (YYYY-MM-DD)")
	fs.StringVar(&opts.Export, "export", "", "Export summary to a CSV file (e.g., summary.csv)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Analyze expenses from a CSV file and summarize spending by category.\n\n")
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [--from YYYY-MM-DD] [--to YYYY-MM-DD] [--export PATH] file\n\nOptions:\n", program)
		fs.PrintDefaults()
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return Options{}, err
			}
			return Options{}, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	switch len(positional) {
	case 0:
		fs.Usage()
		return Options{}, fmt.Errorf("%w: the following arguments are required: file", ErrUsage)
	case 1:
		opts.File = positional[0]
	default:
		fs.Usage()
		return Options{}, fmt.Errorf("%w: unrecognized arguments: %s", ErrUsage, strings.Join(positional[1:], " "))
	}
	return opts, nil
}

// Resolve turns raw options into a request, checking in order: the input
// file exists, --from parses, --to parses, and --from is not after --to.
func Resolve(opts Options) (services.Request, error) {
	file, err := ResolvePath(opts.File)
	if err != nil {
		return services.Request{}, err
	}
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return services.Request{}, core.NewNotFoundError(file, err)
		}
		return services.Request{}, fmt.Errorf("stat %s: %w", file, err)
	}

	from, err := parseBound(opts.From, "--from")
	if err != nil {
		return services.Request{}, err
	}
	to, err := parseBound(opts.To, "--to")
	if err != nil {
		return services.Request{}, err
	}
	rng, err := core.NewDateRange(from, to)
	if err != nil {
		return services.Request{}, err
	}

	req := services.Request{File: file, Range: rng}
	if opts.Export != "" {
		if req.ExportPath, err = ResolvePath(opts.Export); err != nil {
			return services.Request{}, err
		}
	}
	return req, nil
}

func parseBound(value, flagName string) (core.Date, error) {
	if value == "" {
		return core.Date{}, nil
	}
	d, ok := core.ParseDate(value)
	if !ok {
		return core.Date{}, core.NewValidationError(fmt.Sprintf("Invalid %s date format. Use YYYY-MM-DD.", flagName))
	}
	return d, nil
}

// ResolvePath expands a leading ~ and returns an absolute path.
func ResolvePath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", p, err)
		}
		p = filepath.Join(home, p[1:])
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return abs, nil
}
