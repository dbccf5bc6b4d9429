package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"

	"lpcbsp/core"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	obs, logs := observer.New(zapcore.DebugLevel)
	prev := newLogger
	newLogger = func(bool) (*zap.Logger, error) {
		return zap.New(obs), nil
	}
	t.Cleanup(func() { newLogger = prev })
	return logs
}

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.yaml")
	test.That(t, os.WriteFile(path, []byte(body), 0o600), test.ShouldBeNil)
	return path
}

func TestBoardsCommand(t *testing.T) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out

	test.That(t, app.Run([]string{"boardsim", "boards"}), test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldEqual,
		"ea4357     leds=0 tick=true usb0=device\n"+
			"mcb1800    leds=8 tick=true usb0=otg usb1=host\n")
}

func TestRunBadArguments(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		msg  string
	}{
		{"missing profile", []string{"--profile", filepath.Join(t.TempDir(), "none.yaml")}, "read profile"},
		{"unknown board flag", []string{"--board", "lpcxpresso"}, `unknown board "lpcxpresso"`},
		{"profile typo", []string{"--profile", writeProfile(t, "reset_poll_limt: 5\n")}, "reset_poll_limt"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			observeLogs(t)
			app := newApp()
			app.Writer = &bytes.Buffer{}

			err := app.Run(append([]string{"boardsim", "run"}, tc.args...))
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.msg)
		})
	}
}

// Bring-up state is process wide, so this is the only test that gets as
// far as BoardInit.
func TestRunFlagsOverrideProfile(t *testing.T) {
	logs := observeLogs(t)
	profile := writeProfile(t, "board: ea4357\nreset_poll_limit: 50\n")

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{
		"boardsim", "run",
		"--profile", profile,
		"--board", "mcb1800",
		"--reset-polls", "3",
		"--reset-limit", "2",
		"--duration", "20ms",
	})
	test.That(t, err, test.ShouldBeNil)

	// --board wins over the profile
	test.That(t, logs.FilterMessageSnippet("mcb1800: core clock").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessageSnippet("ea4357").Len(), test.ShouldEqual, 0)

	// both mcb1800 ports stay in reset past the 2 poll limit
	warn := logs.FilterMessage("bring-up incomplete").All()
	test.That(t, warn, test.ShouldHaveLength, 1)
	var bringUp error
	for _, f := range warn[0].Context {
		if f.Key == "error" {
			bringUp, _ = f.Interface.(error)
		}
	}
	test.That(t, bringUp, test.ShouldNotBeNil)

	errs := multierr.Errors(bringUp)
	test.That(t, errs, test.ShouldHaveLength, 2)
	for i, err := range errs {
		var rte *core.ResetTimeoutError
		test.That(t, errors.As(err, &rte), test.ShouldBeTrue)
		test.That(t, rte.Port, test.ShouldEqual, core.USBPort(i))
		test.That(t, rte.Polls, test.ShouldEqual, uint32(2))
	}

	test.That(t, logs.FilterMessage("tick stopped").Len(), test.ShouldEqual, 1)
}
