// Command boardsim brings up a board on the simulated LPC18xx chip and runs
// its millisecond tick, logging every vendor library call.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lpcbsp/boards"
	"lpcbsp/config"
	"lpcbsp/core"
	"lpcbsp/host/serial"
	"lpcbsp/sim"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "boardsim",
		Usage: "bring up a board on a simulated LPC18xx",
		Commands: []*cli.Command{
			runCommand(),
			boardsCommand(),
		},
	}
}

// newLogger builds the logger of the run command.
var newLogger = consoleLogger

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run SystemInit and BoardInit, then tick for a while",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Usage: "YAML board profile"},
			&cli.StringFlag{Name: "board", Usage: "built-in board, overrides the profile"},
			&cli.DurationFlag{Name: "duration", Value: time.Second, Usage: "how long to run the tick"},
			&cli.DurationFlag{Name: "blink", Value: 250 * time.Millisecond, Usage: "LED toggle interval"},
			&cli.UintFlag{Name: "reset-polls", Usage: "polls before a USB controller leaves reset"},
			&cli.UintFlag{Name: "reset-limit", Usage: "bound the USB reset wait (0 keeps the profile value)"},
			&cli.StringFlag{Name: "serial", Usage: "host serial device used as the board UART"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every vendor library call"},
		},
		Action: run,
	}
}

func boardsCommand() *cli.Command {
	return &cli.Command{
		Name:  "boards",
		Usage: "list built-in boards",
		Action: func(c *cli.Context) error {
			for _, name := range boards.Names() {
				cfg, _ := boards.ByName(name)
				ports := make([]string, 0, len(cfg.USB))
				for _, u := range cfg.USB {
					ports = append(ports, fmt.Sprintf("usb%d=%s", u.Port, u.Role))
				}
				fmt.Fprintf(c.App.Writer, "%-10s leds=%d tick=%t %s\n",
					name, len(cfg.LEDs), cfg.TickOwned, strings.Join(ports, " "))
			}
			return nil
		},
	}
}

func consoleLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	if verbose {
		cfg.Level.SetLevel(zap.DebugLevel)
	}
	return cfg.Build()
}

func loadBoard(c *cli.Context) (core.BoardConfig, error) {
	profile := config.DefaultProfile()
	if path := c.String("profile"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return core.BoardConfig{}, errors.Wrap(err, "read profile")
		}
		if profile, err = config.LoadConfig(data); err != nil {
			return core.BoardConfig{}, err
		}
	}
	if name := c.String("board"); name != "" {
		profile.Board = strings.ToLower(name)
		if err := profile.Validate(); err != nil {
			return core.BoardConfig{}, err
		}
	}

	cfg, err := profile.BoardConfig()
	if err != nil {
		return core.BoardConfig{}, err
	}
	if limit := c.Uint("reset-limit"); limit != 0 {
		cfg.ResetPollLimit = uint32(limit)
	}
	return cfg, nil
}

func run(c *cli.Context) error {
	zl, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	log := zl.Sugar().Named("boardsim")

	cfg, err := loadBoard(c)
	if err != nil {
		return err
	}

	chip := sim.NewChip()
	if polls := c.Uint("reset-polls"); polls != 0 {
		for _, u := range cfg.USB {
			chip.USB(u.Port).USBCMD.ClearAfter(core.USBCMD_RST, int(polls))
		}
	}
	core.SetChip(chip)
	core.SetLogger(log.Named("core"))

	if dev := c.String("serial"); dev != "" {
		port, err := serial.Open(serial.DefaultConfig(dev))
		if err != nil {
			return err
		}
		defer port.Close()
		core.SetUART(port)
	}

	core.SystemInit(cfg)
	if err := core.BoardInit(cfg); err != nil {
		log.Warnw("bring-up incomplete", zap.Error(err))
	}
	for _, call := range chip.Trace() {
		log.Debugw("vendor call", "call", call.String())
	}

	if !cfg.TickOwned {
		log.Infow("tick owned by an external scheduler, not running it")
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, c.Duration("duration"))
	defer cancel()

	tick := sim.NewSysTick(clock.New(), chip)
	if err := tick.Start(ctx); err != nil {
		return err
	}
	defer tick.Stop()

	blink(ctx, uint32(c.Duration("blink")/time.Millisecond))

	log.Infow("tick stopped", "millis", core.Millis(), "buttons", core.ButtonRead())
	return nil
}

// blink toggles the LED every interval ms of board time and echoes the
// UART until ctx is done.
func blink(ctx context.Context, interval uint32) {
	if interval == 0 {
		interval = 1
	}
	var (
		on    bool
		start = core.Millis()
		buf   = make([]byte, 64)
	)
	for {
		select {
		case <-ctx.Done():
			core.LEDWrite(false)
			return
		default:
		}

		if core.MillisSince(start) >= interval {
			start += interval
			on = !on
			core.LEDWrite(on)
		}
		if n := core.UARTRead(buf); n > 0 {
			core.UARTWrite(buf[:n])
		}
		time.Sleep(time.Millisecond)
	}
}
