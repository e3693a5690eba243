package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/covenant-lang/covenant/internal/source"
)

// cursor is a byte-offset reader over a single file's content.
type cursor struct {
	file  *source.File
	off   uint32
	limit uint32
}

func newCursor(f *source.File) cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: file content length overflow: %w", err))
	}
	return cursor{file: f, limit: limit}
}

func (c *cursor) eof() bool { return c.off >= c.limit }

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.file.Content[c.off]
}

func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.file.Content[c.off+n]
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	return b
}

func (c *cursor) eat(b byte) bool {
	if !c.eof() && c.file.Content[c.off] == b {
		c.off++
		return true
	}
	return false
}

type mark uint32

func (c *cursor) mark() mark { return mark(c.off) }

func (c *cursor) textFrom(m mark) string {
	return string(c.file.Content[uint32(m):c.off])
}

func (c *cursor) lenFrom(m mark) uint32 {
	return c.off - uint32(m)
}
