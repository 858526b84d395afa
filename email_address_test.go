package emailaddress

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestSplit(t *testing.T) {
	localPart, domain, ok := Split("foo@bar.com", Strict)
	require.True(t, ok)
	assert.Equal(t, "foo", localPart)
	assert.Equal(t, "bar.com", domain)

	_, _, ok = Split("\r\n test@iana.org", Strict)
	assert.False(t, ok)
	localPart, _, ok = Split("\r\n test@iana.org", Lax)
	require.True(t, ok)
	assert.Equal(t, "\r\n test", localPart)

	assert.True(t, IsValid("foö@bär.com", Strict))
	assert.False(t, IsValid("foo@-bar.com", Lax))
}

func TestParse(t *testing.T) {
	cases := []struct {
		input     string
		mode      ParseMode
		localPart string
		domain    string
	}{
		0: {"foo@bar.com", Strict, "foo", "bar.com"},
		1: {`"foo bar"@[127.0.0.1]`, Strict, `"foo bar"`, "[127.0.0.1]"},
		2: {"foö@bär.com", Strict, "foö", "bär.com"},
		3: {`"test"."test"@iana.org`, Lax, `"test"."test"`, "iana.org"},
		4: {"test@ iana .com", Lax, "test", " iana .com"},
	}
	for i, c := range cases {
		a, err := Parse(c.input, c.mode)
		require.NoError(t, err, "#%d", i)
		assert.Equal(t, c.localPart, a.LocalPart(), "#%d", i)
		assert.Equal(t, c.domain, a.Domain(), "#%d", i)
		assert.Equal(t, c.input, a.String(), "#%d", i)
	}

	for i, input := range []string{"", "foo", "foo@", "@bar.com", "foo@-bar.com", `"test"."test"@iana.org`} {
		a, err := Parse(input, Strict)
		assert.Nil(t, a, "#%d", i)
		assert.ErrorIs(t, err, ErrInvalidAddress, "#%d", i)
	}
}

func TestNew(t *testing.T) {
	a, err := New("foo", "bar.com", Strict)
	require.NoError(t, err)
	assert.Equal(t, "foo@bar.com", a.String())

	a, err = New("\r\n \r\n test", "iana.org", Lax)
	require.NoError(t, err)
	assert.Equal(t, "\r\n \r\n test@iana.org", a.String())

	_, err = New("\r\n \r\n test", "iana.org", Strict)
	assert.ErrorIs(t, err, ErrInvalidLocalPart)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.False(t, errors.Is(err, ErrInvalidDomain))

	_, err = New("foo", "-bar.com", Lax)
	assert.ErrorIs(t, err, ErrInvalidDomain)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = New("foo@bar", "bar.com", Lax)
	assert.ErrorIs(t, err, ErrInvalidLocalPart)

	_, err = New("foo", "bar@com", Lax)
	assert.ErrorIs(t, err, ErrInvalidDomain)
}

func TestEqual(t *testing.T) {
	a, err := Parse("foo@bar.com", Strict)
	require.NoError(t, err)
	b, err := New("foo", "bar.com", Strict)
	require.NoError(t, err)
	c, err := New("foo", "baz.com", Strict)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	var n *EmailAddress
	assert.True(t, n.Equal(nil))
}

func TestJSON(t *testing.T) {
	a, err := Parse("\r\n test@iana.org", Lax)
	require.NoError(t, err)

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"local_part":"\r\n test","domain":"iana.org"}`, string(b))

	var decoded EmailAddress
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, a.Equal(&decoded))

	cases := []string{
		0: `{"domain":"iana.org"}`,
		1: `{"local_part":"test"}`,
		2: `{"local_part":"test","domain":"-iana.org"}`,
		3: `{"local_part":"foo..bar","domain":"iana.org"}`,
		4: `["test","iana.org"]`,
	}
	for i, c := range cases {
		var a EmailAddress
		assert.Error(t, json.Unmarshal([]byte(c), &a), "#%d", i)
	}
}

func TestYAML(t *testing.T) {
	a, err := New("foo", "bar.com", Strict)
	require.NoError(t, err)

	b, err := yaml.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, "local_part: foo\ndomain: bar.com\n", string(b))

	var decoded EmailAddress
	require.NoError(t, yaml.Unmarshal(b, &decoded))
	assert.True(t, a.Equal(&decoded))

	var addrs []*EmailAddress
	require.NoError(t, yaml.Unmarshal([]byte("- {local_part: '\"test\".\"test\"', domain: iana.org}\n"), &addrs))
	require.Len(t, addrs, 1)
	assert.Equal(t, `"test"."test"@iana.org`, addrs[0].String())

	var bad EmailAddress
	err = yaml.Unmarshal([]byte("local_part: foo\ndomain: -bar.com\n"), &bad)
	assert.ErrorIs(t, err, ErrInvalidDomain)
	assert.Error(t, yaml.Unmarshal([]byte("local_part: foo\n"), &bad))
}
