// Package logging builds the leveled logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "plexus",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	logger.SetStyles(styles())
	return logger, nil
}

// Open is New writing to a file, appending. The terminal view sends its
// logs here so they do not tear the screen.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Prefix = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f8cff")).Bold(true)
	s.Levels[log.WarnLevel] = s.Levels[log.WarnLevel].Foreground(lipgloss.Color("#ffaa00"))
	s.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	return s
}
