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
	"github.com/Masterminds/semver/v3"

	"github.com/rancher-sandbox/respool/pkg/capmatch"
	"github.com/rancher-sandbox/respool/pkg/edition"
)

// Matcher matches requirements against provided capabilities. A Matcher is
// safe for concurrent use once built.
type Matcher struct {
	archCompat map[Arch]map[Arch]bool
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithArchCompat declares that resolvables built for any of compatible can
// satisfy a requirement restricted to arch.
func WithArchCompat(arch Arch, compatible ...Arch) MatcherOption {
	return func(m *Matcher) {
		m.addCompat(arch, compatible...)
	}
}

func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{archCompat: make(map[Arch]map[Arch]bool)}
	for arch, compatible := range defaultArchCompat {
		m.addCompat(arch, compatible...)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Matcher) addCompat(arch Arch, compatible ...Arch) {
	if m.archCompat[arch] == nil {
		m.archCompat[arch] = make(map[Arch]bool)
	}
	for _, c := range compatible {
		m.archCompat[arch][c] = true
	}
}

// Match matches requirement req against the provided capability prov.
//
// Different names never match. When either side carries no operator the
// names decide alone. Otherwise the edition ranges described by both sides
// must overlap, and the architecture must be compatible when the
// requirement names one.
func (m *Matcher) Match(req, prov Capability) capmatch.CapMatch {
	if req.name != prov.name {
		return capmatch.No
	}
	return capmatch.All(m.MatchEdition(req, prov), m.MatchArch(req, prov))
}

// MatchEdition compares the edition ranges of req and prov, ignoring names.
func (m *Matcher) MatchEdition(req, prov Capability) capmatch.CapMatch {
	if req.op == OpNone || prov.op == OpNone {
		return capmatch.Yes
	}
	if req.op == OpRange {
		return satisfiesRange(req, prov)
	}
	if prov.op == OpRange {
		return satisfiesRange(prov, req)
	}

	a, b := req.edition, prov.edition
	if a.Release == "" || b.Release == "" {
		a, b = a.WithoutRelease(), b.WithoutRelease()
	}
	af, bf := req.op.flags(), prov.op.flags()

	switch sense := edition.Compare(a, b); {
	case sense < 0:
		return capmatch.FromBool(af&flagGreater != 0 || bf&flagLess != 0)
	case sense > 0:
		return capmatch.FromBool(af&flagLess != 0 || bf&flagGreater != 0)
	}
	return capmatch.FromBool(af&bf != 0)
}

// satisfiesRange checks the point edition of point against the semver
// constraint of rng. Only "=" editions are points.
func satisfiesRange(rng, point Capability) capmatch.CapMatch {
	if point.op != OpEQ {
		return capmatch.No
	}
	v, err := semver.NewVersion(point.edition.Version)
	if err != nil {
		return capmatch.No
	}
	return capmatch.FromBool(rng.constraint.Check(v))
}

// MatchArch is Irrelevant unless both sides name an architecture. A noarch
// provider satisfies every architecture.
func (m *Matcher) MatchArch(req, prov Capability) capmatch.CapMatch {
	if req.arch == "" || prov.arch == "" {
		return capmatch.Irrelevant
	}
	if req.arch == prov.arch || prov.arch == Noarch || req.arch == Noarch {
		return capmatch.Yes
	}
	return capmatch.FromBool(m.archCompat[req.arch][prov.arch])
}

// FirstMatch returns the first capability of provides, in insertion order,
// that matches req.
func (m *Matcher) FirstMatch(req Capability, provides Set) (Capability, int, bool) {
	for i, prov := range provides {
		if m.Match(req, prov) == capmatch.Yes {
			return prov, i, true
		}
	}
	return Capability{}, -1, false
}

// MatchSet ors the matches of req against every capability in provides. An
// empty set yields Irrelevant.
func (m *Matcher) MatchSet(req Capability, provides Set) capmatch.CapMatch {
	ms := make([]capmatch.CapMatch, len(provides))
	for i, prov := range provides {
		ms[i] = m.Match(req, prov)
	}
	return capmatch.Any(ms...)
}
