package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console serializes output from concurrent builds. Each call writes whole
// lines and flushes before returning, so lines from different goroutines
// never interleave.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	flusher interface{ Flush() error }
}

// NewConsole wraps w. If w already supports flushing it is used directly,
// otherwise it is wrapped in a bufio.Writer.
func NewConsole(w io.Writer) *Console {
	c := &Console{w: w}

	if f, ok := w.(interface{ Flush() error }); ok {
		c.flusher = f
	} else {
		bw := bufio.NewWriter(w)
		c.w = bw
		c.flusher = bw
	}

	return c
}

// Write writes p and flushes. Safe for concurrent use.
func (c *Console) Write(p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err = c.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, c.flusher.Flush()
}

// Println writes a single line
func (c *Console) Println(args ...any) error {
	_, err := fmt.Fprintln(c, args...)
	return err
}

// Block writes text prefixed line by line, as one unit. Empty text writes nothing.
func (c *Console) Block(prefix, text string) error {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}

	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := c.Write([]byte(b.String()))
	return err
}
