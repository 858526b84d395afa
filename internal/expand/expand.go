package expand

import (
	"regexp"
)

var re = regexp.MustCompile(`\$\{([a-zA-Z0-9_.-]+)\}`)

// Expand replaces every ${name} in v with mapping(name). Placeholders the
// mapping does not know about are left as they are.
func Expand(v string, mapping func(string) (string, bool)) string {
	return re.ReplaceAllStringFunc(v, func(s string) string {
		if r, ok := mapping(s[2 : len(s)-1]); ok {
			return r
		}
		return s
	})
}

var controls = map[string]string{
	"NUL":  "\x00",
	"BEL":  "\x07",
	"HT":   "\t",
	"LF":   "\n",
	"CR":   "\r",
	"CRLF": "\r\n",
	"SP":   " ",
	"DEL":  "\x7f",
}

// Controls maps the names of the control characters that are awkward to
// write in test data to the characters themselves.
func Controls(name string) (string, bool) {
	c, ok := controls[name]
	return c, ok
}
