package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	kongcompletion "github.com/jotaen/kong-completion"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/banksean/buildc/internal/progress"
	"github.com/banksean/buildc/internal/telemetry"
)

// Context carries process-wide dependencies every subcommand's Run method
// receives, matching banksean-sand's cmd/sand Context pattern.
type Context struct {
	Sink progress.Sink
}

// CLI is the top-level command surface: create, build, run, completion, and
// version, matching cmd/sand/main.go's CLI struct shape (a plain struct with
// cmd:""-tagged subcommand fields).
type CLI struct {
	LogFile  string `default:"" placeholder:"<log-file-path>" help:"location of log file (leave empty to disable file logging)"`
	LogLevel string `default:"info" placeholder:"<debug|info|warn|error>" help:"the logging level (debug, info, warn, error)"`
	Quiet    bool   `short:"q" help:"suppress progress output"`

	Create     CreateCmd          `cmd:"" help:"generate a new project skeleton"`
	Build      BuildCmd           `cmd:"" help:"compile the project"`
	Run        RunCmd             `cmd:"" help:"build the project, then execute the produced binary"`
	Version    VersionCmd         `cmd:"" help:"print version information about this command"`
	Completion kongcompletion.Cmd `cmd:"" help:"print shell completion scripts"`
}

func (c *CLI) initSlog() {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w = os.Stderr
	var handler slog.Handler
	if c.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		handler = slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}

func main() {
	var cli CLI

	parser := kong.Must(&cli,
		kong.Name("buildc"),
		kong.Description("A driver that compiles and links C/C++ projects."),
		kong.UsageOnError(),
	)
	kongcompletion.Register(parser)

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cli.initSlog()

	shutdown := telemetry.Setup()
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	sink := progress.Sink(progress.NewTerminalSink(os.Stdout))
	if cli.Quiet {
		sink = progress.NewNullSink()
	}

	err = kctx.Run(&Context{Sink: sink})
	kctx.FatalIfErrorf(err)
}
