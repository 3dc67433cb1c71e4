package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

type menu struct {
	app   *App
	lines <-chan string
	out   io.Writer
}

func newMenu(app *App, in io.Reader, out io.Writer) *menu {
	return &menu{app: app, lines: readLines(in), out: out}
}

// readLines feeds input lines to a channel so the menu can stop waiting on
// input when its context ends.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()
	return lines
}

func (m *menu) show() {
	rule := strings.Repeat("=", 30)
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, rule)
	fmt.Fprintln(m.out, "  SMART ZINNIA CONTROL  ")
	fmt.Fprintln(m.out, rule)
	fmt.Fprintln(m.out, "1. Turn on")
	fmt.Fprintln(m.out, "2. Turn off")
	fmt.Fprintln(m.out, "3. Maximum brightness (100%)")
	fmt.Fprintln(m.out, "4. Medium brightness (50%)")
	fmt.Fprintln(m.out, "5. Minimum brightness (10%)")
	fmt.Fprintln(m.out, "6. Custom brightness")
	fmt.Fprintln(m.out, "7. Automatic routine")
	fmt.Fprintln(m.out, "8. Toggle state")
	fmt.Fprintln(m.out, "9. Quit")
	fmt.Fprintln(m.out, rule)
}

func (m *menu) prompt(ctx context.Context, text string) (string, bool) {
	fmt.Fprint(m.out, text)
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-m.lines:
		return line, ok
	}
}

// Run shows the menu until the user quits, input ends or ctx is done.
func (m *menu) Run(ctx context.Context) error {
	m.app.serveMetrics(ctx)

	for {
		m.show()

		choice, ok := m.prompt(ctx, "Choose (1-9): ")
		if !ok || choice == "9" {
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		}

		m.handle(ctx, choice)

		if err := pause(ctx, m.app.Pause); err != nil {
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		}
	}
}

func (m *menu) handle(ctx context.Context, choice string) {
	lamp := m.app.Lamp

	switch choice {
	case "1":
		report(m.out, lamp.TurnOn(ctx), "Lamp on")
	case "2":
		report(m.out, lamp.TurnOff(ctx), "Lamp off")
	case "3":
		report(m.out, lamp.SetBrightness(ctx, 100), "Maximum brightness")
	case "4":
		report(m.out, lamp.SetBrightness(ctx, 50), "Medium brightness")
	case "5":
		report(m.out, lamp.SetBrightness(ctx, 10), "Minimum brightness")
	case "6":
		line, ok := m.prompt(ctx, "Enter brightness (0-100%): ")
		if !ok {
			return
		}
		percent, err := parsePercent(line)
		if err != nil {
			fmt.Fprintln(m.out, "❌ Invalid value! Use numbers from 0 to 100")
			return
		}
		report(m.out, lamp.SetBrightness(ctx, percent), fmt.Sprintf("Brightness set to %d%%", percent))
	case "7":
		if err := runRoutine(ctx, m.app, m.app.Ramp, m.app.Delay, m.out); err != nil {
			fmt.Fprintf(m.out, "❌ Error: %v\n", err)
		}
	case "8":
		report(m.out, lamp.Toggle(ctx), "State toggled")
	default:
		fmt.Fprintln(m.out, "❌ Invalid option!")
	}
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
