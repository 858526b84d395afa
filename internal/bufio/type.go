package bufio

import (
	_bufio "bufio"
)

var ErrBufferFull = _bufio.ErrBufferFull

// Scanner reads up to and including delim. The returned flag tells whether
// the caller owns the returned slice; when it does not, the slice is only
// valid until the next read.
type Scanner interface {
	ReadUpTo(delim byte) ([]byte, bool, error)
}
