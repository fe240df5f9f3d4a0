package io

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFlusher is a mock writer that tracks flush calls
type mockFlusher struct {
	bytes.Buffer
	flushCount int
	flushError error
}

func (m *mockFlusher) Flush() error {
	m.flushCount++
	return m.flushError
}

func TestNewConsole(t *testing.T) {
	t.Run("wraps non-flushing writer", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf)

		assert.NotNil(t, c.flusher)
		assert.NotEqual(t, &buf, c.w)
	})

	t.Run("uses existing flusher", func(t *testing.T) {
		mf := &mockFlusher{}
		c := NewConsole(mf)

		assert.Equal(t, mf, c.flusher)
		assert.Equal(t, mf, c.w)
	})
}

func TestConsole_Write(t *testing.T) {
	t.Run("writes and flushes immediately", func(t *testing.T) {
		mf := &mockFlusher{}
		c := NewConsole(mf)

		n, err := c.Write([]byte("test data"))

		require.NoError(t, err)
		assert.Equal(t, 9, n)
		assert.Equal(t, "test data", mf.String())
		assert.Equal(t, 1, mf.flushCount)
	})

	t.Run("reaches a plain writer without explicit flush", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf)

		require.NoError(t, c.Println("android", "built"))
		assert.Equal(t, "android built\n", buf.String())
	})

	t.Run("returns write error", func(t *testing.T) {
		c := NewConsole(&errorWriter{err: errors.New("write failed")})

		_, err := c.Write([]byte("test"))
		assert.ErrorContains(t, err, "write failed")
	})

	t.Run("returns flush error", func(t *testing.T) {
		c := NewConsole(&mockFlusher{flushError: errors.New("flush failed")})

		_, err := c.Write([]byte("test"))
		assert.ErrorContains(t, err, "flush failed")
	})
}

func TestConsole_Block(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	require.NoError(t, c.Block("[ios] ", "line one\nline two\n"))
	require.NoError(t, c.Block("[ios] ", ""))

	assert.Equal(t, "[ios] line one\n[ios] line two\n", buf.String())
}

func TestConsole_ConcurrentBlocksStayWhole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prefix := fmt.Sprintf("[p%d] ", i)
			_ = c.Block(prefix, "a\nb\nc")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 24)
	for i := 0; i < len(lines); i += 3 {
		prefix := lines[i][:strings.Index(lines[i], " ")+1]
		assert.Equal(t, prefix+"a", lines[i])
		assert.Equal(t, prefix+"b", lines[i+1])
		assert.Equal(t, prefix+"c", lines[i+2])
	}
}

// errorWriter is a writer that always returns an error
type errorWriter struct {
	err error
}

func (e *errorWriter) Write(_ []byte) (n int, err error) {
	return 0, e.err
}
