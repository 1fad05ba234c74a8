package ui

import (
	"fmt"
	"strings"
	"time"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// singleLine folds line breaks into spaces so multi-line firmware bodies fit
// the status line.
func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// formatHashRate renders a GH/s value, switching to TH/s above 1000.
func formatHashRate(ghs float64) string {
	if ghs >= 1000 {
		return fmt.Sprintf("%.2f TH/s", ghs/1000)
	}
	return fmt.Sprintf("%.1f GH/s", ghs)
}

// formatTemp renders a temperature in degrees Celsius.
func formatTemp(c float64) string {
	return fmt.Sprintf("%.1f °C", c)
}

// formatUptime renders seconds as "3d 4h 12m".
func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// formatMillivolts renders a millivolt reading as volts.
func formatMillivolts(mv float64) string {
	return fmt.Sprintf("%.3f V", mv/1000)
}

// formatAge renders how long ago t was, e.g. "12s ago".
func formatAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return t.Format("15:04:05")
	}
}
