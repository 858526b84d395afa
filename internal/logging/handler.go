package logging

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewHandler returns a colorized text handler when f is a terminal and a
// JSON handler otherwise.
func NewHandler(f *os.File, level slog.Leveler) slog.Handler {
	if isTerminal(f) {
		return tint.NewHandler(colorable.NewColorable(f), &tint.Options{Level: level})
	}
	return slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(BlackholeHandler{})
}
