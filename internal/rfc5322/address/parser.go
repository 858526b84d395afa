/*
Package address implements the RFC 5322 addr-spec grammar, extended by
RFC 6532 to admit non-ASCII characters.

The parser validates an address by consumption: each rule either matches a
prefix of the remaining input and reports the position after it, or does not
match and leaves nothing behind. A successful parse hands back the local-part
and the domain as substrings of the input; nothing is trimmed, unescaped or
normalized, so localPart + "@" + domain always equals the input.

Two modes are supported:
  - Strict accepts the RFC 5322 addr-spec only.
  - Lax additionally accepts the obsolete productions (obs-local-part and
    obs-domain), such as folding white space and comments between words.

Strict is always tried first. Lax is only consulted when strict fails.
*/
package address

import (
	"fmt"
	"strings"
)

// Mode selects the grammar used to parse an address.
type Mode int

const (
	Strict Mode = iota
	Lax
)

// MaxRecursionDepth bounds the nesting of obs-domain and comments.
// Exceeding it is an ordinary mismatch.
const MaxRecursionDepth = 128

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lax:
		return "lax"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case Strict, Lax:
		return []byte(m.String()), nil
	}
	return nil, fmt.Errorf("unknown parse mode %d", int(m))
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "strict":
		*m = Strict
	case "lax":
		*m = Lax
	default:
		return fmt.Errorf("unknown parse mode %q", b)
	}
	return nil
}

// Parse splits s into its local-part and domain. ok is false when s is not
// an address under the given mode.
func Parse(s string, mode Mode) (localPart, domain string, ok bool) {
	p := addrParser{s: s}
	l, d, ok := p.parseAddrSpec(Strict)
	if !ok && mode == Lax {
		l, d, ok = p.parseAddrSpec(Lax)
	}
	if !ok {
		return "", "", false
	}
	return s[l.start:l.end], s[d.start:d.end], true
}

// IsValid reports whether s is an address under the given mode.
func IsValid(s string, mode Mode) bool {
	_, _, ok := Parse(s, mode)
	return ok
}

// IsLocalPart reports whether s, taken as a whole, is a local-part.
func IsLocalPart(s string, mode Mode) bool {
	p := addrParser{s: s}
	if i, ok := p.consumeLocalPart(0, Strict); ok && i == len(s) {
		return true
	}
	if mode != Lax {
		return false
	}
	i, ok := p.consumeLocalPart(0, Lax)
	return ok && i == len(s)
}

// IsDomain reports whether s, taken as a whole, is a domain.
func IsDomain(s string, mode Mode) bool {
	p := addrParser{s: s}
	if i, ok := p.consumeDomain(0, Strict); ok && i == len(s) {
		return true
	}
	if mode != Lax {
		return false
	}
	i, ok := p.consumeDomain(0, Lax)
	return ok && i == len(s)
}
