// Package logging builds the slog logger shared by the CLI and the view.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/config"
)

// Field names used across packages.
const (
	FieldViewID   = "view_id"
	FieldNodes    = "nodes"
	FieldLinks    = "links"
	FieldQuery    = "query"
	FieldLinkType = "link_type"
	FieldAlpha    = "alpha"
	FieldTicks    = "ticks"
	FieldNodeID   = "node_id"
	FieldFile     = "file"
	FieldError    = "error"
)

// ParseLevel maps a config level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w (stderr when nil) in the configured format.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Err is a shorthand for the error attribute.
func Err(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
