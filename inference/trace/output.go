package trace

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// OutputFormatter renders events for human-readable display.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
}

// NewOutputFormatter creates a formatter with color support detection.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}

	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f.Fd())
	}

	return &OutputFormatter{useColor: useColor, writer: w}
}

// ConsoleHandler returns a handler that prints formatted events to stdout.
func ConsoleHandler() Handler {
	formatter := NewOutputFormatter(os.Stdout)
	return func(event Event) {
		if output := formatter.Format(event); output != "" {
			fmt.Fprintln(formatter.writer, output)
		}
	}
}

// Format converts an event to a human-readable line.
func (f *OutputFormatter) Format(event Event) string {
	latency := f.formatLatency(event.Latency)

	switch event.Name {
	case EngineRunBegin:
		return fmt.Sprintf("%s %s Run starting with %d rules on %d facts",
			latency,
			f.colorize("===", color.FgYellow),
			event.Data["rules.count"],
			event.Data["facts.count"])

	case EngineCycle:
		return fmt.Sprintf("%s Cycle %d derived %s",
			latency,
			event.Data["cycle"],
			f.colorizeCount("Facts", event.Data["derived.count"].(int)))

	case EngineFixpoint:
		return fmt.Sprintf("%s %s Fixpoint after %d cycles with %s total",
			latency,
			f.colorize("===", color.FgGreen),
			event.Data["cycles"],
			f.colorizeCount("Facts", event.Data["facts.count"].(int)))

	case RuleEvaluated:
		derived := event.Data["derived.count"].(int)
		if derived == 0 {
			return ""
		}
		return fmt.Sprintf("%s Rule %q derived %s",
			latency,
			event.Data["label"],
			f.colorizeCount("Facts", derived))

	case FactAsserted:
		return fmt.Sprintf("%s %s %s",
			latency,
			f.colorize("+", color.FgGreen),
			event.Data["fact"])

	case FactRetracted:
		return fmt.Sprintf("%s %s %s",
			latency,
			f.colorize("-", color.FgRed),
			event.Data["fact"])

	case StoreSnapshot:
		return fmt.Sprintf("%s Snapshot of %s written",
			latency,
			f.colorizeCount("Facts", event.Data["facts.count"].(int)))

	case StoreRestore:
		return fmt.Sprintf("%s Restored %s",
			latency,
			f.colorizeCount("Facts", event.Data["facts.count"].(int)))

	default:
		return fmt.Sprintf("%s %s %v", latency, event.Name, event.Data)
	}
}

// formatLatency formats a duration as [XXXms] or [XXXµs] with color coding.
func (f *OutputFormatter) formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		s := fmt.Sprintf("[%dµs]", d.Microseconds())
		if !f.useColor {
			return s
		}
		return color.GreenString(s)
	}

	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("[%.1fms]", ms)
	if !f.useColor {
		return s
	}

	switch {
	case ms < 50:
		return color.GreenString(s)
	case ms < 200:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

func (f *OutputFormatter) colorize(s string, attr color.Attribute) string {
	if !f.useColor {
		return s
	}
	return color.New(attr).Sprint(s)
}

func (f *OutputFormatter) colorizeCount(label string, count int) string {
	text := fmt.Sprintf("%d %s", count, label)
	if !f.useColor {
		return text
	}
	return color.CyanString(text)
}

// isTerminal checks if the file descriptor is a terminal.
func isTerminal(fd uintptr) bool {
	return fd == uintptr(1) || fd == uintptr(2) // stdout or stderr
}
