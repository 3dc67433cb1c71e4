package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zinnia/internal/application"
	"zinnia/internal/cli"
	"zinnia/internal/domain"
)

type fakeLamp struct {
	calls []string
	err   error
	state domain.LampState
}

func (f *fakeLamp) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeLamp) SetBrightness(_ context.Context, percent int) error {
	if err := domain.ValidatePercent(percent); err != nil {
		return err
	}
	return f.record("set:" + strconv.Itoa(percent))
}

func (f *fakeLamp) TurnOn(_ context.Context) error { return f.record("on") }

func (f *fakeLamp) TurnOnAt(ctx context.Context, percent int) error {
	return f.SetBrightness(ctx, percent)
}

func (f *fakeLamp) TurnOff(_ context.Context) error { return f.record("off") }
func (f *fakeLamp) Toggle(_ context.Context) error  { return f.record("toggle") }

func (f *fakeLamp) Status(_ context.Context) (domain.LampState, error) {
	return f.state, f.record("status")
}

func (f *fakeLamp) Info(_ context.Context) (domain.Device, error) {
	return domain.Device{ID: "dev1", Name: "Zinnia", Category: "dj", Type: domain.DeviceTypeLight, Online: true},
		f.record("info")
}

func newApp(lamp cli.Lamp) *cli.App {
	return &cli.App{
		Lamp:     lamp,
		Notifier: &application.NoopNotifier{},
		Ramp:     application.DefaultRamp(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func run(t *testing.T, app *cli.App, stdin string, args ...string) string {
	t.Helper()

	builds := 0
	cmd := cli.NewRootCommand(func(_, _ string) (*cli.App, error) {
		builds++
		return app, nil
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.LessOrEqual(t, builds, 1)
	return out.String()
}

func TestCLI_Brightness(t *testing.T) {
	lamp := &fakeLamp{}

	out := run(t, newApp(lamp), "", "50")

	assert.Equal(t, []string{"set:50"}, lamp.calls)
	assert.Contains(t, out, "Brightness set to 50%")
}

func TestCLI_BrightnessOutOfRange(t *testing.T) {
	lamp := &fakeLamp{}

	out := run(t, newApp(lamp), "", "150")

	assert.Empty(t, lamp.calls)
	assert.Contains(t, out, "Brightness must be between 0% and 100%")
}

func TestCLI_UnknownArgument(t *testing.T) {
	lamp := &fakeLamp{}

	out := run(t, newApp(lamp), "", "dim")

	assert.Empty(t, lamp.calls)
	assert.Contains(t, out, "valid commands: on [0-100], off, [0-100], routine")
}

func TestCLI_On(t *testing.T) {
	lamp := &fakeLamp{}
	out := run(t, newApp(lamp), "", "on")
	assert.Equal(t, []string{"on"}, lamp.calls)
	assert.Contains(t, out, "Lamp on")

	lamp = &fakeLamp{}
	run(t, newApp(lamp), "", "on", "70")
	assert.Equal(t, []string{"set:70"}, lamp.calls)

	lamp = &fakeLamp{}
	out = run(t, newApp(lamp), "", "on", "bright")
	assert.Empty(t, lamp.calls)
	assert.Contains(t, out, "numeric")
}

func TestCLI_OffAndToggle(t *testing.T) {
	lamp := &fakeLamp{}
	run(t, newApp(lamp), "", "off")
	run(t, newApp(lamp), "", "toggle")

	assert.Equal(t, []string{"off", "toggle"}, lamp.calls)
}

func TestCLI_TransportFailureStillSucceeds(t *testing.T) {
	lamp := &fakeLamp{err: &domain.TransportError{Op: "POST", Path: "/x", Err: errors.New("timeout")}}

	out := run(t, newApp(lamp), "", "off")

	assert.Contains(t, out, "did not accept the command")
}

func TestCLI_Routine(t *testing.T) {
	lamp := &fakeLamp{}

	out := run(t, newApp(lamp), "", "routine", "--delay", "0s")

	assert.Equal(t, []string{
		"set:10", "set:20", "set:30", "set:40", "set:50",
		"set:60", "set:70", "set:80", "set:90", "set:100",
	}, lamp.calls)
	assert.Contains(t, out, "Setting brightness to 10%")
	assert.Contains(t, out, "Routine complete!")
}

func TestCLI_RoutineFlags(t *testing.T) {
	lamp := &fakeLamp{}

	run(t, newApp(lamp), "", "routine", "--delay", "0s", "--start", "50", "--step", "25")

	assert.Equal(t, []string{"set:50", "set:75", "set:100"}, lamp.calls)
}

func TestCLI_Status(t *testing.T) {
	lamp := &fakeLamp{state: domain.LampState{On: true, Brightness: 600, WorkMode: "white"}}

	out := run(t, newApp(lamp), "", "status")
	assert.Contains(t, out, "Lamp is on at 60% (white mode)")

	out = run(t, newApp(lamp), "", "status", "--json")
	assert.Contains(t, out, `"brightness_percent": 60`)
}

func TestCLI_Info(t *testing.T) {
	lamp := &fakeLamp{}

	out := run(t, newApp(lamp), "", "info")

	assert.Contains(t, out, "Zinnia (dev1)")
	assert.Contains(t, out, "online")
}

func TestCLI_Version(t *testing.T) {
	cmd := cli.NewRootCommand(func(_, _ string) (*cli.App, error) {
		t.Fatal("version must not load configuration")
		return nil, nil
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "zinnia version")
}

func TestCLI_ConfigError(t *testing.T) {
	cmd := cli.NewRootCommand(func(_, _ string) (*cli.App, error) {
		return nil, errors.New("reading config file: no such file")
	})
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"off"})

	assert.Error(t, cmd.Execute())
}

func TestMenu(t *testing.T) {
	lamp := &fakeLamp{}

	input := strings.Join([]string{"1", "2", "3", "4", "5", "6", "35", "8", "0", "6", "abc", "9"}, "\n")
	out := run(t, newApp(lamp), input)

	assert.Equal(t, []string{"on", "off", "set:100", "set:50", "set:10", "set:35", "toggle"}, lamp.calls)
	assert.Contains(t, out, "SMART ZINNIA CONTROL")
	assert.Contains(t, out, "Invalid option!")
	assert.Contains(t, out, "Invalid value! Use numbers from 0 to 100")
	assert.Contains(t, out, "Exiting...")
}

func TestMenu_EndOfInput(t *testing.T) {
	lamp := &fakeLamp{}

	out := run(t, newApp(lamp), "2\n")

	assert.Equal(t, []string{"off"}, lamp.calls)
	assert.Contains(t, out, "Exiting...")
}

func TestMenu_Routine(t *testing.T) {
	lamp := &fakeLamp{}
	app := newApp(lamp)
	app.Ramp = application.Ramp{Start: 80, End: 100, Step: 10}

	out := run(t, app, "7\n9\n")

	assert.Equal(t, []string{"set:80", "set:90", "set:100"}, lamp.calls)
	assert.Contains(t, out, "Routine complete!")
}
