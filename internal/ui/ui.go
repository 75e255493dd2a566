package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Printers
var (
	Brand  = color.New(color.FgHiMagenta, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

const Web = "\U0001F578" // 🕸

// SetColor turns colored output on or off for every printer.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Banner prints the teapa banner.
func Banner(subtitle string) {
	fmt.Printf("%s %s: %s\n\n", Web, Brand.Sprint("teapa"), subtitle)
}

// KV prints an aligned key/value line.
func KV(key string, value any) {
	fmt.Printf("  %s %v\n", Subtle.Sprintf("%-10s", key+":"), value)
}

// Table prints rows under headers to stdout. See FTable.
func Table(headers []string, rows [][]string) {
	FTable(os.Stdout, headers, rows)
}

// FTable writes an indented table whose columns are as wide as their longest
// cell, counted in runes. Cells past the last header are dropped. Nothing is
// written when rows is empty.
func FTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
	}

	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("\u2500", n)
	}
	Subtle.Fprintln(w, tableLine(widths, headers))
	Subtle.Fprintln(w, tableLine(widths, rule))
	for _, row := range rows {
		fmt.Fprintln(w, tableLine(widths, row))
	}
}

func tableLine(widths []int, cells []string) string {
	var b strings.Builder
	for i, n := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		fmt.Fprintf(&b, "  %-*s", n, cell)
	}
	return strings.TrimRight(b.String(), " ")
}

const (
	iconOK   = "\u2713"
	iconFail = "\u2717"
	iconWarn = "\u26A0"
)

// StatusIcon is a green check for ok and a red cross otherwise.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint(iconOK)
	}
	return Bad.Sprint(iconFail)
}

func WarnIcon() string { return Warn.Sprint(iconWarn) }
