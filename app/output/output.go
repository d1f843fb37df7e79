package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/lysyi3m/bgg-plays/app/cfg"
)

// Writer delivers the formatted forum code to its destination.
type Writer interface {
	Write(text string) error
}

func New(c *cfg.Cfg) Writer {
	if c.Output == cfg.OutputStdout {
		return &StreamWriter{w: os.Stdout}
	}
	return &ClipboardWriter{fallback: &StreamWriter{w: os.Stdout}}
}

type StreamWriter struct {
	w io.Writer
}

func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

func (s *StreamWriter) Write(text string) error {
	if _, err := fmt.Fprintln(s.w, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// ClipboardWriter copies the text to the system clipboard, printing it instead
// when no clipboard is available.
type ClipboardWriter struct {
	fallback Writer
}

func (c *ClipboardWriter) Write(text string) error {
	if clipboard.Unsupported {
		slog.Warn("Clipboard not available, writing to stdout")
		return c.fallback.Write(text)
	}

	if err := clipboard.WriteAll(text); err != nil {
		slog.Warn("Failed to copy to clipboard, writing to stdout", "error", err)
		return c.fallback.Write(text)
	}

	slog.Info("Forum code copied to clipboard", "bytes", len(text))
	return nil
}
