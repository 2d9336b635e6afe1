// Package tokencount estimates token usage for delegate prompts.
//
// It uses tiktoken-go so prompt-size logs reflect what the remote model
// actually bills, rather than a byte count.
package tokencount

import (
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// Counter provides thread-safe token counting.
type Counter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

// NewCounter creates a token counter. The encoding is loaded lazily on first
// use.
func NewCounter() *Counter { return &Counter{} }

// Count returns the token count for text, or a rune-length/4 estimate when
// the encoding cannot be loaded.
func (c *Counter) Count(text string) int {
	c.once.Do(func() {
		c.enc, c.err = tiktoken.GetEncoding(defaultEncoding)
	})
	if c.err != nil || c.enc == nil {
		return len([]rune(text)) / 4
	}
	return len(c.enc.Encode(text, nil, nil))
}
