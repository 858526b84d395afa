package bufio

import (
	"bytes"
	"errors"
	"io"
)

// ReadRecords reads delim-terminated records until EOF. The delimiter is
// stripped, and so is a trailing CR when delim is a newline. Empty records
// are skipped. Records longer than the underlying buffer are accumulated
// across reads.
func ReadRecords(r Scanner, delim byte) ([]string, error) {
	var records []string
	var pending []byte
	for {
		b, owned, err := r.ReadUpTo(delim)
		if errors.Is(err, ErrBufferFull) {
			pending = append(pending, b...)
			continue
		}
		var rec []byte
		if pending == nil && owned {
			rec = b
		} else {
			rec = append(pending, b...)
		}
		pending = nil
		rec = bytes.TrimSuffix(rec, []byte{delim})
		if delim == '\n' {
			rec = bytes.TrimSuffix(rec, []byte{'\r'})
		}
		if len(rec) > 0 {
			records = append(records, string(rec))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return records, err
		}
	}
}
