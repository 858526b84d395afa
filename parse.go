/*
Package emailaddress parses email addresses as specified by RFC 5322 and
extended by RFC 6532.

An address is split into its local-part and domain exactly as written:
folding white space, comments and quoting are kept, nothing is decoded or
normalized, and the domain is not looked up.

	localPart, domain, ok := emailaddress.Split("foo@bar.com", emailaddress.Strict)

Lax mode additionally accepts the obsolete syntax of RFC 5322 section 4.4,
for instance "\r\n test@iana.org" or `"test"."test"@iana.org`.
*/
package emailaddress

import (
	"github.com/Sayan751/email-address-parser/internal/rfc5322/address"
)

// ParseMode selects the grammar an address is parsed with.
type ParseMode = address.Mode

const (
	// Strict accepts RFC 5322 addr-spec only.
	Strict = address.Strict
	// Lax also accepts the obsolete local-part and domain productions.
	Lax = address.Lax
)

// Split splits input into its local-part and domain. ok is false if input is
// not a valid address under mode. On success, localPart + "@" + domain == input.
func Split(input string, mode ParseMode) (localPart, domain string, ok bool) {
	return address.Parse(input, mode)
}

// IsValid reports whether input is a valid address under mode.
func IsValid(input string, mode ParseMode) bool {
	return address.IsValid(input, mode)
}
