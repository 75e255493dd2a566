package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func plain(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	SetColor(false)
	t.Cleanup(func() { color.NoColor = prev })
}

func TestFTable(t *testing.T) {
	plain(t)

	var b strings.Builder
	FTable(&b, []string{"NODE", "LABEL", "DEGREE"}, [][]string{
		{"ana", "Ana Pérez", "2"},
		{"c1", "Contrato", "1", "extra"},
	})

	want := strings.Join([]string{
		"  NODE  LABEL      DEGREE",
		"  ────  ─────────  ──────",
		"  ana   Ana Pérez  2",
		"  c1    Contrato   1",
	}, "\n") + "\n"
	if b.String() != want {
		t.Errorf("unexpected table:\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestFTableShortRow(t *testing.T) {
	plain(t)

	var b strings.Builder
	FTable(&b, []string{"TYPE", "COUNT"}, [][]string{{"negocio"}})
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 3 || lines[2] != "  negocio" {
		t.Errorf("unexpected lines: %q", lines)
	}
}

func TestFTableEmpty(t *testing.T) {
	var b strings.Builder
	FTable(&b, []string{"A"}, nil)
	if b.Len() != 0 {
		t.Errorf("expected no output, got %q", b.String())
	}
}

func TestStatusIcon(t *testing.T) {
	plain(t)

	if StatusIcon(true) != "✓" || StatusIcon(false) != "✗" {
		t.Errorf("unexpected icons %q %q", StatusIcon(true), StatusIcon(false))
	}
	if WarnIcon() != "⚠" {
		t.Errorf("unexpected warn icon %q", WarnIcon())
	}
}
