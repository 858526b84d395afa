// Package corpus loads validity corpora: lists of valid and invalid
// local-parts and domains whose combinations must be accepted or rejected,
// plus individually listed addresses.
package corpus

import (
	"bytes"
	"context"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/Sayan751/email-address-parser/internal/batch"
	"github.com/Sayan751/email-address-parser/internal/expand"
	"github.com/Sayan751/email-address-parser/internal/rfc5322/address"
)

// Case is a single expectation. LocalPart and Domain are only compared when
// set.
type Case struct {
	Address   string       `json:"address" yaml:"address"`
	Mode      address.Mode `json:"mode" yaml:"mode"`
	Valid     bool         `json:"valid" yaml:"valid"`
	LocalPart *string      `json:"local_part,omitempty" yaml:"local_part,omitempty"`
	Domain    *string      `json:"domain,omitempty" yaml:"domain,omitempty"`
}

func (c Case) matches(r batch.Result) bool {
	if c.Valid != r.Valid {
		return false
	}
	if !c.Valid {
		return true
	}
	if r.LocalPart+"@"+r.Domain != c.Address {
		return false
	}
	if c.LocalPart != nil && *c.LocalPart != r.LocalPart {
		return false
	}
	if c.Domain != nil && *c.Domain != r.Domain {
		return false
	}
	return true
}

type Corpus struct {
	ValidLocalParts   []string `yaml:"valid_local_parts"`
	ValidDomains      []string `yaml:"valid_domains"`
	InvalidLocalParts []string `yaml:"invalid_local_parts"`
	InvalidDomains    []string `yaml:"invalid_domains"`
	Explicit          []Case   `yaml:"cases"`
}

func expandAll(ss []string) {
	for i := range ss {
		ss[i] = expand.Expand(ss[i], expand.Controls)
	}
}

func expandPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := expand.Expand(*s, expand.Controls)
	return &v
}

func (c *Corpus) expand() {
	expandAll(c.ValidLocalParts)
	expandAll(c.ValidDomains)
	expandAll(c.InvalidLocalParts)
	expandAll(c.InvalidDomains)
	for i := range c.Explicit {
		c.Explicit[i].Address = expand.Expand(c.Explicit[i].Address, expand.Controls)
		c.Explicit[i].LocalPart = expandPtr(c.Explicit[i].LocalPart)
		c.Explicit[i].Domain = expandPtr(c.Explicit[i].Domain)
	}
}

// Load decodes a corpus document and expands the control character
// placeholders in it. Unknown keys are an error.
func Load(b []byte) (*Corpus, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var c Corpus
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode corpus: %w", err)
	}
	c.expand()
	return &c, nil
}

func LoadFile(path string) (*Corpus, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Load(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Cases returns the explicit cases followed by the combinations of the
// local-part and domain lists. Valid pairs are expected to parse in both
// modes and split back into the same halves; every pair with an invalid
// half is expected to fail in strict mode.
func (c *Corpus) Cases() []Case {
	cases := append([]Case(nil), c.Explicit...)
	for _, l := range c.ValidLocalParts {
		for _, d := range c.ValidDomains {
			for _, mode := range []address.Mode{address.Strict, address.Lax} {
				cases = append(cases, Case{
					Address:   l + "@" + d,
					Mode:      mode,
					Valid:     true,
					LocalPart: &l,
					Domain:    &d,
				})
			}
		}
	}
	invalid := func(ls, ds []string) {
		for _, l := range ls {
			for _, d := range ds {
				cases = append(cases, Case{Address: l + "@" + d, Mode: address.Strict})
			}
		}
	}
	invalid(c.InvalidLocalParts, c.ValidDomains)
	invalid(c.ValidLocalParts, c.InvalidDomains)
	invalid(c.InvalidLocalParts, c.InvalidDomains)
	return cases
}

type Mismatch struct {
	Case   Case         `json:"expected" yaml:"expected"`
	Result batch.Result `json:"got" yaml:"got"`
}

func (m Mismatch) String() string {
	if m.Case.Valid != m.Result.Valid {
		verdict := "invalid"
		if m.Case.Valid {
			verdict = "valid"
		}
		return fmt.Sprintf("%q (%s): expected to be %s", m.Case.Address, m.Case.Mode, verdict)
	}
	return fmt.Sprintf(
		"%q (%s): split into %q and %q",
		m.Case.Address, m.Case.Mode, m.Result.LocalPart, m.Result.Domain,
	)
}

// Run checks every case and returns the ones whose outcome differs from the
// expectation, in the order of cases.
func Run(ctx context.Context, cases []Case, options ...batch.OptionFunc) ([]Mismatch, error) {
	checker, err := batch.NewChecker(options...)
	if err != nil {
		return nil, err
	}
	reqs := make([]batch.Request, len(cases))
	for i, c := range cases {
		reqs[i] = batch.Request{Input: c.Address, Mode: c.Mode}
	}
	results, err := checker.CheckRequests(ctx, reqs)
	if err != nil {
		return nil, err
	}
	var mismatches []Mismatch
	for i, r := range results {
		if !cases[i].matches(r) {
			mismatches = append(mismatches, Mismatch{Case: cases[i], Result: r})
		}
	}
	return mismatches, nil
}
