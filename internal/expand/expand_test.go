package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	identity := func(s string) (string, bool) { return s, true }
	assert.Equal(t, "foo", Expand("${foo}", identity))
	assert.Equal(t, "a.b-c", Expand("${a.b-c}", identity))
	assert.Equal(t, "$foo ${}", Expand("$foo ${}", identity))

	none := func(string) (string, bool) { return "", false }
	assert.Equal(t, "x${foo}y", Expand("x${foo}y", none))
}

func TestControls(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		0: {"${CR}${LF} test", "\r\n test"},
		1: {"${CRLF}", "\r\n"},
		2: {`"\${NUL}"`, "\"\\\x00\""},
		3: {"[${BEL}]", "[\x07]"},
		4: {"${HT}${SP}${DEL}", "\t \x7f"},
		5: {"${cr}", "${cr}"},
		6: {"!#$%&'*+-/=?^_`{|}~", "!#$%&'*+-/=?^_`{|}~"},
	}
	for i, c := range cases {
		assert.Equal(t, c.out, Expand(c.in, Controls), "#%d", i)
	}
}
