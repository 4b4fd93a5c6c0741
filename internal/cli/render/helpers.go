package render

import (
	"math/big"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/batchlab/batchctl/internal/domain/models"
)

// gasPrinter groups large gas figures for readability (1,234,567)
var gasPrinter = message.NewPrinter(language.English)

// FormatSuccess formats a success message with the success icon
func FormatSuccess(msg string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", msg)
}

// FormatWarning formats a warning message with the warning icon
func FormatWarning(msg string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", msg)
}

// FormatError formats an error message with the error icon
func FormatError(msg string) string {
	// Show just the tail of an error chain
	parts := strings.Split(msg, ": ")
	tail := parts[len(parts)-1]
	if len(tail) > 0 {
		tail = strings.ToUpper(tail[:1]) + tail[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", tail)
}

// FormatGas renders a gas amount with digit grouping.
func FormatGas(gas *big.Int) string {
	if gas == nil {
		return "-"
	}
	if gas.IsInt64() {
		return gasPrinter.Sprintf("%d", gas.Int64())
	}
	return gas.String()
}

// FormatStatus colors a batch lifecycle status.
func FormatStatus(status models.BatchStatus) string {
	switch status {
	case models.BatchStatusConfirmed:
		return color.New(color.FgGreen).Sprint("confirmed")
	case models.BatchStatusFailed:
		return color.New(color.FgRed).Sprint("failed")
	case models.BatchStatusPending:
		return color.New(color.FgYellow).Sprint("pending")
	default:
		return string(status)
	}
}

// FormatAge renders a millisecond timestamp as a relative age.
func FormatAge(timestampMillis int64) string {
	if timestampMillis == 0 {
		return "-"
	}
	age := time.Since(time.UnixMilli(timestampMillis))
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return gasPrinter.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return gasPrinter.Sprintf("%dh ago", int(age.Hours()))
	default:
		return gasPrinter.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

// ShortHash truncates a hash or address for table display.
func ShortHash(s string) string {
	if len(s) <= 14 {
		return s
	}
	return s[:10] + "…" + s[len(s)-4:]
}
