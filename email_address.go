package emailaddress

import (
	"encoding/json"
	"errors"
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"github.com/Sayan751/email-address-parser/internal/rfc5322/address"
)

var (
	ErrInvalidAddress   = errors.New("invalid email address")
	ErrInvalidLocalPart = fmt.Errorf("%w: invalid local-part", ErrInvalidAddress)
	ErrInvalidDomain    = fmt.Errorf("%w: invalid domain", ErrInvalidAddress)
)

// EmailAddress is a parsed address. Its local-part and domain are kept
// verbatim, including any comments, folding white space and quoting.
type EmailAddress struct {
	localPart string
	domain    string
}

// Parse parses input as a single address.
// An address such as "foo@bar.com" is represented as
// EmailAddress{localPart: "foo", domain: "bar.com"}.
func Parse(input string, mode ParseMode) (*EmailAddress, error) {
	localPart, domain, ok := address.Parse(input, mode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, input)
	}
	return &EmailAddress{localPart: localPart, domain: domain}, nil
}

// New builds an address out of an already split local-part and domain.
// Each of them must be valid on its own under mode.
func New(localPart, domain string, mode ParseMode) (*EmailAddress, error) {
	if !address.IsLocalPart(localPart, mode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocalPart, localPart)
	}
	if !address.IsDomain(domain, mode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	return &EmailAddress{localPart: localPart, domain: domain}, nil
}

func (a *EmailAddress) LocalPart() string {
	return a.localPart
}

func (a *EmailAddress) Domain() string {
	return a.domain
}

// String returns the address as local-part "@" domain.
func (a *EmailAddress) String() string {
	return a.localPart + "@" + a.domain
}

func (a *EmailAddress) Equal(b *EmailAddress) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.localPart == b.localPart && a.domain == b.domain
}

type emailAddressFields struct {
	LocalPart *string `json:"local_part" yaml:"local_part"`
	Domain    *string `json:"domain" yaml:"domain"`
}

func (a EmailAddress) fields() emailAddressFields {
	return emailAddressFields{LocalPart: &a.localPart, Domain: &a.domain}
}

// assign validates f in lax mode and stores it in a.
func (a *EmailAddress) assign(f emailAddressFields) error {
	if f.LocalPart == nil {
		return fmt.Errorf("missing field %q", "local_part")
	}
	if f.Domain == nil {
		return fmt.Errorf("missing field %q", "domain")
	}
	parsed, err := New(*f.LocalPart, *f.Domain, Lax)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

func (a EmailAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.fields())
}

func (a *EmailAddress) UnmarshalJSON(b []byte) error {
	var f emailAddressFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	return a.assign(f)
}

func (a EmailAddress) MarshalYAML() (interface{}, error) {
	return a.fields(), nil
}

func (a *EmailAddress) UnmarshalYAML(n *yaml.Node) error {
	var f emailAddressFields
	if err := n.Decode(&f); err != nil {
		return err
	}
	return a.assign(f)
}
