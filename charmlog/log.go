// Package charmlog provides an implementation of todo.Logger using charmbracelet/log
package charmlog

import (
	"io"
	"os"

	"github.com/benjamonnguyen/todo"
	"github.com/charmbracelet/log"
)

type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
	// ReportTimestamp is forced on for non-terminal writers such as log files.
	ReportTimestamp bool
}

func NewLogger(opts Options) todo.Logger {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}

	_, isFile := w.(*os.File)
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.ReportTimestamp || (isFile && w != os.Stdout && w != os.Stderr),
	})
}

// Discard returns a logger that drops everything.
func Discard() todo.Logger {
	return NewLogger(Options{Writer: io.Discard, Level: "fatal"})
}
