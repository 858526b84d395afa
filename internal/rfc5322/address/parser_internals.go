package address

import (
	"unicode/utf8"
)

// span is a half-open byte range of the input.
type span struct {
	start, end int
}

// addrParser carries nothing but the input. Every rule takes the position
// to start from and returns the position right after its match; on mismatch
// it returns the position it was given, so the caller can try the next
// alternative from the same place.
type addrParser struct {
	s string
}

// parseAddrSpec parses local-part "@" domain over the whole input.
func (p addrParser) parseAddrSpec(mode Mode) (span, span, bool) {
	at, ok := p.consumeLocalPart(0, mode)
	if !ok || !p.at(at, '@') {
		return span{}, span{}, false
	}
	end, ok := p.consumeDomain(at+1, mode)
	if !ok || end != len(p.s) {
		return span{}, span{}, false
	}
	return span{0, at}, span{at + 1, end}, true
}

// consumeLocalPart parses
//
//	local-part     = dot-atom / quoted-string
//	obs-local-part = obs-local-part / dot-atom / quoted-string  (lax)
func (p addrParser) consumeLocalPart(i int, mode Mode) (int, bool) {
	if mode == Lax {
		if j, ok := p.consumeObsLocalPart(i); ok {
			return j, true
		}
	}
	if j, ok := p.consumeDotAtom(i); ok {
		return j, true
	}
	return p.consumeQuotedString(i)
}

// consumeDomain parses
//
//	domain     = dot-atom / domain-literal
//	domain-obs = obs-domain / dot-atom / domain-literal  (lax)
func (p addrParser) consumeDomain(i int, mode Mode) (int, bool) {
	if mode == Lax {
		if j, ok := p.consumeObsDomain(i, 0); ok {
			return j, true
		}
	}
	if j, ok := p.consumeDotAtom(i); ok {
		return j, true
	}
	return p.consumeDomainLiteral(i)
}

// consumeDotAtom parses WSP? dot-atom-text WSP?.
func (p addrParser) consumeDotAtom(i int) (int, bool) {
	j, ok := p.consumeDotAtomText(p.skipWSP(i))
	if !ok {
		return i, false
	}
	return p.skipWSP(j), true
}

// consumeDotAtomText parses label *("." *CFWS label).
func (p addrParser) consumeDotAtomText(i int) (int, bool) {
	j, ok := p.consumeLabel(i)
	if !ok {
		return i, false
	}
	for p.at(j, '.') {
		k, ok := p.consumeLabel(p.skipCFWS(j + 1))
		if !ok {
			return i, false
		}
		j = k
	}
	return j, true
}

// consumeLabel parses a run of atext that neither starts nor ends with "-".
func (p addrParser) consumeLabel(i int) (int, bool) {
	r, j := p.next(i)
	if r < 0 || !isAtextNoDash(r) {
		return i, false
	}
	last := r
	for {
		r, k := p.next(j)
		if r < 0 || !isAtext(r) {
			break
		}
		last = r
		j = k
	}
	if last == '-' {
		return i, false
	}
	return j, true
}

// consumeAtom parses [CFWS] 1*atext [CFWS].
func (p addrParser) consumeAtom(i int) (int, bool) {
	j := i
	if k, ok := p.tryConsumingCFWS(j); ok {
		j = k
	}
	j, ok := p.consumeRun(j, isAtext)
	if !ok {
		return i, false
	}
	if k, ok := p.tryConsumingCFWS(j); ok {
		j = k
	}
	return j, true
}

// consumeWord parses word = atom / quoted-string.
func (p addrParser) consumeWord(i int) (int, bool) {
	if j, ok := p.consumeAtom(i); ok {
		return j, true
	}
	return p.consumeQuotedString(i)
}

// consumeQuotedString parses
// [CFWS] DQUOTE *([FWS] qcontent) [FWS] DQUOTE [CFWS].
func (p addrParser) consumeQuotedString(i int) (int, bool) {
	j := i
	if k, ok := p.tryConsumingCFWS(j); ok {
		j = k
	}
	if !p.at(j, '"') {
		return i, false
	}
	j++
	for {
		k := j
		if l, ok := p.tryConsumingFWS(k); ok {
			k = l
		}
		l, ok := p.consumeQcontent(k)
		if !ok {
			break
		}
		j = l
	}
	if k, ok := p.tryConsumingFWS(j); ok {
		j = k
	}
	if !p.at(j, '"') {
		return i, false
	}
	j++
	if k, ok := p.tryConsumingCFWS(j); ok {
		j = k
	}
	return j, true
}

func (p addrParser) consumeQcontent(i int) (int, bool) {
	if j, ok := p.consumeIf(i, isQtext); ok {
		return j, true
	}
	return p.tryConsumingQuotedPair(i)
}

// consumeDomainLiteral parses
// [CFWS] "[" *([FWS] dtext) [FWS] "]" [CFWS].
func (p addrParser) consumeDomainLiteral(i int) (int, bool) {
	j := i
	if k, ok := p.tryConsumingCFWS(j); ok {
		j = k
	}
	if !p.at(j, '[') {
		return i, false
	}
	j++
	for {
		k := j
		if l, ok := p.tryConsumingFWS(k); ok {
			k = l
		}
		l, ok := p.consumeIf(k, isDtext)
		if !ok {
			break
		}
		j = l
	}
	if k, ok := p.tryConsumingFWS(j); ok {
		j = k
	}
	if !p.at(j, ']') {
		return i, false
	}
	j++
	if k, ok := p.tryConsumingCFWS(j); ok {
		j = k
	}
	return j, true
}

// consumeObsLocalPart parses *FWS word *(*CFWS "." *CFWS word).
// Once a dot has been seen, a word must follow it.
func (p addrParser) consumeObsLocalPart(i int) (int, bool) {
	j, ok := p.consumeWord(p.skipFWS(i))
	if !ok {
		return i, false
	}
	for {
		k := p.skipCFWS(j)
		if !p.at(k, '.') {
			break
		}
		l, ok := p.consumeWord(p.skipCFWS(k + 1))
		if !ok {
			return i, false
		}
		j = l
	}
	return j, true
}

// consumeObsDomain parses
//
//	*CFWS 1*atext-no-dash *(*CFWS ("." 1*obs-domain / 1*"-" 1*obs-domain)) *FWS
//
// depth counts the nesting of obs-domain and the rule stops matching once it
// reaches MaxRecursionDepth.
func (p addrParser) consumeObsDomain(i, depth int) (int, bool) {
	if depth >= MaxRecursionDepth {
		return i, false
	}
	j, ok := p.consumeRun(p.skipCFWS(i), isAtextNoDash)
	if !ok {
		return i, false
	}
	for {
		k := p.skipCFWS(j)
		if p.at(k, '.') {
			l, ok := p.consumeObsDomains(k+1, depth+1)
			if !ok {
				return i, false
			}
			j = l
			continue
		}
		l := k
		for p.at(l, '-') {
			l++
		}
		if l == k {
			// CFWS not followed by a separator is left unconsumed.
			break
		}
		l, ok := p.consumeObsDomains(l, depth+1)
		if !ok {
			return i, false
		}
		j = l
	}
	return p.skipFWS(j), true
}

// consumeObsDomains parses 1*obs-domain.
func (p addrParser) consumeObsDomains(i, depth int) (int, bool) {
	j, ok := p.consumeObsDomain(i, depth)
	if !ok {
		return i, false
	}
	for {
		k, ok := p.consumeObsDomain(j, depth)
		if !ok || k <= j {
			break
		}
		j = k
	}
	return j, true
}

// tryConsumingCFWS parses CFWS = (1*([FWS] comment) [FWS]) / FWS.
func (p addrParser) tryConsumingCFWS(i int) (int, bool) {
	if j, ok := p.tryConsumingComments(i); ok {
		return j, true
	}
	return p.tryConsumingFWS(i)
}

// tryConsumingComments parses 1*([FWS] comment) [FWS].
func (p addrParser) tryConsumingComments(i int) (int, bool) {
	j := i
	found := false
	for {
		k := j
		if l, ok := p.tryConsumingFWS(k); ok {
			k = l
		}
		l, ok := p.tryConsumingComment(k, 0)
		if !ok {
			break
		}
		j = l
		found = true
	}
	if !found {
		return i, false
	}
	if k, ok := p.tryConsumingFWS(j); ok {
		j = k
	}
	return j, true
}

// tryConsumingComment parses "(" *([FWS] ccontent) [FWS] ")".
func (p addrParser) tryConsumingComment(i, depth int) (int, bool) {
	if depth >= MaxRecursionDepth || !p.at(i, '(') {
		return i, false
	}
	j := i + 1
	for {
		k := j
		if l, ok := p.tryConsumingFWS(k); ok {
			k = l
		}
		l, ok := p.consumeCcontent(k, depth)
		if !ok {
			break
		}
		j = l
	}
	if k, ok := p.tryConsumingFWS(j); ok {
		j = k
	}
	if !p.at(j, ')') {
		return i, false
	}
	return j + 1, true
}

// consumeCcontent parses ccontent = ctext / quoted-pair / comment.
func (p addrParser) consumeCcontent(i, depth int) (int, bool) {
	if j, ok := p.consumeIf(i, isCtext); ok {
		return j, true
	}
	if j, ok := p.tryConsumingQuotedPair(i); ok {
		return j, true
	}
	return p.tryConsumingComment(i, depth+1)
}

func (p addrParser) tryConsumingQuotedPair(i int) (int, bool) {
	if !p.at(i, '\\') {
		return i, false
	}
	if j, ok := p.consumeIf(i+1, isQuotedPairChar); ok {
		return j, true
	}
	return i, false
}

// tryConsumingFWS parses folding white space: a run of WSP, then either a
// CRLF followed by at least one WSP or, lacking the CRLF, a non-empty run of
// WSP, then any number of further CRLF 1*WSP groups.
func (p addrParser) tryConsumingFWS(i int) (int, bool) {
	j, n := p.consumeWSPs(i)
	if k, ok := p.consumeCRLF(j); ok {
		l, m := p.consumeWSPs(k)
		if m == 0 {
			return i, false
		}
		j = l
	} else if n == 0 {
		return i, false
	}
	for {
		k, ok := p.consumeCRLF(j)
		if !ok {
			break
		}
		l, m := p.consumeWSPs(k)
		if m == 0 {
			break
		}
		j = l
	}
	return j, true
}

// skipFWS parses *FWS.
func (p addrParser) skipFWS(i int) int {
	for {
		j, ok := p.tryConsumingFWS(i)
		if !ok || j <= i {
			return i
		}
		i = j
	}
}

// skipCFWS parses *CFWS.
func (p addrParser) skipCFWS(i int) int {
	for i < len(p.s) {
		switch p.s[i] {
		case ' ', '\t', '\r', '(':
		default:
			return i
		}
		j, ok := p.tryConsumingCFWS(i)
		if !ok || j <= i {
			return i
		}
		i = j
	}
	return i
}

// skipWSP parses [WSP].
func (p addrParser) skipWSP(i int) int {
	if p.at(i, ' ') || p.at(i, '\t') {
		return i + 1
	}
	return i
}

func (p addrParser) consumeWSPs(i int) (int, int) {
	n := 0
	for p.at(i, ' ') || p.at(i, '\t') {
		i++
		n++
	}
	return i, n
}

func (p addrParser) consumeCRLF(i int) (int, bool) {
	if p.at(i, '\r') && p.at(i+1, '\n') {
		return i + 2, true
	}
	return i, false
}

// consumeRun parses one or more code points satisfying pred.
func (p addrParser) consumeRun(i int, pred func(rune) bool) (int, bool) {
	j, ok := p.consumeIf(i, pred)
	if !ok {
		return i, false
	}
	for {
		k, ok := p.consumeIf(j, pred)
		if !ok {
			break
		}
		j = k
	}
	return j, true
}

func (p addrParser) consumeIf(i int, pred func(rune) bool) (int, bool) {
	r, j := p.next(i)
	if r < 0 || !pred(r) {
		return i, false
	}
	return j, true
}

func (p addrParser) at(i int, c byte) bool {
	return i < len(p.s) && p.s[i] == c
}

// next decodes the code point at i and returns it with the position after
// it. It returns -1 at the end of input and on an invalid UTF-8 sequence.
func (p addrParser) next(i int) (rune, int) {
	if i >= len(p.s) {
		return -1, i
	}
	if c := p.s[i]; c < utf8.RuneSelf {
		return rune(c), i + 1
	}
	r, n := utf8.DecodeRuneInString(p.s[i:])
	if r == utf8.RuneError && n == 1 {
		return -1, i
	}
	return r, i + n
}

// isWSP reports whether r is a WSP (white space).
// WSP is a space or horizontal tab (RFC 5234 Appendix B).
func isWSP(r rune) bool {
	return r == ' ' || r == '\t'
}

// isPrintableASCII reports whether r is a VCHAR in the US-ASCII range.
func isPrintableASCII(r rune) bool {
	return 0x21 <= r && r <= 0x7e
}

// isUnicodeExtension reports whether r is one of the non-ASCII characters
// RFC 6532 adds to atext, qtext, ctext and dtext.
func isUnicodeExtension(r rune) bool {
	return r >= 0x80
}

// isObsNoWSCtl reports whether r is in the RFC 5322 obs-NO-WS-CTL set.
func isObsNoWSCtl(r rune) bool {
	return 0x01 <= r && r <= 0x08 ||
		r == 0x0b || r == 0x0c ||
		0x0e <= r && r <= 0x1f ||
		r == 0x7f
}

// isAtext reports whether r is an RFC 5322 atext character.
func isAtext(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return true
	}
	switch r {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~':
		return true
	}
	return isUnicodeExtension(r)
}

func isAtextNoDash(r rune) bool {
	return r != '-' && isAtext(r)
}

// isText is the set qtext, ctext and dtext are carved out of.
func isText(r rune) bool {
	return isPrintableASCII(r) || isUnicodeExtension(r) || isObsNoWSCtl(r)
}

// isQtext reports whether r is an RFC 5322 qtext character.
func isQtext(r rune) bool {
	return r != '"' && r != '\\' && isText(r)
}

// isCtext reports whether r is an RFC 5322 ctext character.
func isCtext(r rune) bool {
	return r != '(' && r != ')' && r != '\\' && isText(r)
}

// isDtext reports whether r is an RFC 5322 dtext character.
func isDtext(r rune) bool {
	return r != '[' && r != ']' && r != '\\' && isText(r)
}

// isQuotedPairChar reports whether r may follow a backslash.
func isQuotedPairChar(r rune) bool {
	return isPrintableASCII(r) || isWSP(r) || r == 0 || r == '\r' || r == '\n' || isObsNoWSCtl(r)
}
