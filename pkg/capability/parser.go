/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package capability

import (
	"strings"

	"github.com/rancher-sandbox/respool/internal/strutil"
	"github.com/rancher-sandbox/respool/pkg/edition"
)

// Parser reads capabilities written as "name", "name op edition" or
// "name <semver range>". A name ending in a known architecture, as in
// "foo.x86_64", restricts the capability to that architecture.
type Parser struct {
	versioned strutil.Matcher
	ranged    strutil.Matcher
}

func NewParser() *Parser {
	return &Parser{
		versioned: strutil.MustCompile(`^\s*([^\s<>=!]+)\s*(?:([<>=!]+)\s*(\S+))?\s*$`),
		ranged:    strutil.MustCompile(`^\s*([^\s<>=!]+)\s+(\S.*?)\s*$`),
	}
}

// Parse parses a single capability.
func (p *Parser) Parse(s string) (Capability, error) {
	if m, ok := p.versioned.Match(s); ok {
		name, arch := splitArch(m.Get(1))
		opStr, edStr := m.Get(2), m.Get(3)
		if opStr == "" {
			return restrict(arch)(New(name))
		}
		op, err := ParseOp(opStr)
		if err != nil {
			return Capability{}, malformed(s, "unknown operator "+opStr, nil)
		}
		ed, err := edition.Parse(edStr)
		if err != nil {
			return Capability{}, malformed(s, "bad edition", err)
		}
		return restrict(arch)(NewVersioned(name, op, ed))
	}

	if m, ok := p.ranged.Match(s); ok {
		name, arch := splitArch(m.Get(1))
		return restrict(arch)(NewRange(name, m.Get(2)))
	}

	return Capability{}, malformed(s, "unrecognized syntax", nil)
}

// restrict returns a function applying arch to a successfully built
// capability.
func restrict(arch Arch) func(Capability, error) (Capability, error) {
	return func(c Capability, err error) (Capability, error) {
		if err != nil {
			return Capability{}, err
		}
		return c.WithArch(arch), nil
	}
}

// ParseList parses a comma separated list of capabilities, keeping their
// order.
func (p *Parser) ParseList(s string) (Set, error) {
	var set Set
	if strings.TrimSpace(s) == "" {
		return set, nil
	}
	for _, part := range strings.Split(s, ",") {
		c, err := p.Parse(part)
		if err != nil {
			return nil, err
		}
		set = append(set, c)
	}
	return set, nil
}
