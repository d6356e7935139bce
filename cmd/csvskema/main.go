package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/reoring/csvskema/i18n"
	"github.com/reoring/csvskema/internal/config"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	e := &env{cfg: cfg, stdout: stdout, stderr: stderr}
	switch args[0] {
	case "parse":
		return parseCmd(ctx, e, args[1:])
	case "infer":
		return inferCmd(ctx, e, args[1:])
	case "aggregate":
		return aggregateCmd(ctx, e, args[1:])
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "csvskema CLI\n\nUsage:\n  csvskema parse -schema schema.yaml [-d SEP] [-strict] file.csv...\n  csvskema infer [-d SEP] file.csv...\n  csvskema aggregate -k KEY [-k KEY] -v COL [-v COL] [-d SEP] file.csv...\n\nEnvironment:\n  CSVSKEMA_DELIMITER, CSVSKEMA_STRICT, CSVSKEMA_LANG, CSVSKEMA_LOG_LEVEL, CSVSKEMA_LOG_FORMAT")
}

// env carries what every subcommand shares.
type env struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
}

// bindCommon registers the flags shared by all subcommands, seeded from cfg.
func bindCommon(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Delimiter, "d", cfg.Delimiter, "field delimiter (one character)")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "message language: en or ja")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
}

// prepare validates cfg after flag parsing and applies the message language.
func (e *env) prepare(cfg config.Config) (rune, bool) {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(e.stderr, err)
		return 0, false
	}
	i18n.SetLanguage(strings.ToLower(cfg.Lang))
	sep, _ := cfg.Sep()
	return sep, true
}

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
