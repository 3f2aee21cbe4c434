package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/xremap/internal/daemon"
	"github.com/Alia5/xremap/internal/log"
	"github.com/Alia5/xremap/internal/notify"
	"github.com/Alia5/xremap/internal/remap"
	"github.com/Alia5/xremap/internal/rules"
	"github.com/Alia5/xremap/internal/util"
	"github.com/Alia5/xremap/internal/watch"
	"github.com/Alia5/xremap/internal/x11"
)

const banner = "xremap started. Listening for key events..."

type Run struct {
	Rules    string        `arg:"" optional:"" help:"Rule file (YAML, TOML or JSON); defaults to $XDG_CONFIG_HOME/xremap/config.yml" type:"path"`
	Display  string        `help:"X display to connect to (defaults to $DISPLAY)" env:"XREMAP_DISPLAY"`
	Method   string        `help:"How output keys are synthesized" enum:"sendevent,xtest" default:"sendevent" env:"XREMAP_METHOD"`
	Watch    bool          `help:"Reload the rule file when it changes" default:"true" negatable:"" env:"XREMAP_WATCH"`
	Debounce time.Duration `help:"Delay before reloading a changed rule file" default:"200ms" env:"XREMAP_DEBOUNCE"`
	Notify   bool          `help:"Show a desktop notification when a reload is rejected" default:"true" negatable:"" env:"XREMAP_NOTIFY"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Start(ctx, logger, rawLogger)
}

func (r *Run) Start(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	path := rulesPath(r.Rules)
	logger.Info("Starting xremap", "rules", path)

	table, err := loadTable(path)
	if err != nil {
		return err
	}
	logTable(logger, table)

	method, err := x11.ParseMethod(r.Method)
	if err != nil {
		return err
	}
	conn, err := x11.Connect(x11.Options{Display: r.Display, Method: method, Logger: logger, Raw: rawLogger})
	if err != nil {
		return err
	}
	defer conn.Close()

	engine := remap.New(table, conn, conn, remap.Options{Root: conn.Root(), Keymap: conn, Logger: logger})
	cfg := daemon.Config{Engine: engine, Source: conn, Logger: logger}

	if r.Watch {
		w, err := watch.New(path, r.Debounce, logger)
		if err != nil {
			logger.Warn("Rule file watching disabled", "error", err)
		} else {
			go func() { _ = w.Run(ctx) }()
			cfg.Reloads = w.Reloads()
			cfg.Load = func() (*rules.Table, error) {
				t, err := loadTable(path)
				if err == nil {
					logTable(logger, t)
				}
				return t, err
			}
		}
	}
	if r.Notify {
		n := notify.New(notify.UrgencyCritical, 10000)
		defer n.Close()
		cfg.Notifier = n
	}

	loop := daemon.New(cfg)
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-loop.Ready():
	}
	logger.Info("xremap initialized successfully")
	printBanner(os.Stdout, util.IsTerminal(os.Stdout))

	return <-errCh
}

func printBanner(w io.Writer, tty bool) {
	if !tty {
		return
	}
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "Press Ctrl-C to quit")
}
