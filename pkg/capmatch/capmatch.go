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

/*
Package capmatch provides the tri-state result of matching a requirement
against a provided capability.

Irrelevant denotes a result that should be ignored, so it behaves neutral
in Not, And and Or:

	Irrelevant.And(x) == x
	Irrelevant.Or(x)  == x
	Irrelevant.Not()  == Irrelevant
*/
package capmatch

type result uint8

const (
	irrelevant result = iota // zero value
	match
	nomatch
)

// CapMatch is a tri-state capability match result. The zero value is
// Irrelevant.
type CapMatch struct {
	result result
}

var (
	Yes        = CapMatch{match}
	No         = CapMatch{nomatch}
	Irrelevant = CapMatch{}
)

// FromBool returns Yes for true and No for false.
func FromBool(b bool) CapMatch {
	if b {
		return Yes
	}
	return No
}

// IsIrrelevant reports whether m carries no information.
func (m CapMatch) IsIrrelevant() bool {
	return m.result == irrelevant
}

func (m CapMatch) Not() CapMatch {
	if m.result == irrelevant {
		return m
	}
	return FromBool(m.result != match)
}

func (m CapMatch) And(o CapMatch) CapMatch {
	if m.result == irrelevant {
		return o
	}
	if o.result == irrelevant {
		return m
	}
	return FromBool(m.result == match && o.result == match)
}

func (m CapMatch) Or(o CapMatch) CapMatch {
	if m.result == irrelevant {
		return o
	}
	if o.result == irrelevant {
		return m
	}
	return FromBool(m.result == match || o.result == match)
}

// All folds ms with And, starting from Irrelevant.
func All(ms ...CapMatch) CapMatch {
	r := Irrelevant
	for _, m := range ms {
		r = r.And(m)
	}
	return r
}

// Any folds ms with Or, starting from Irrelevant.
func Any(ms ...CapMatch) CapMatch {
	r := Irrelevant
	for _, m := range ms {
		r = r.Or(m)
	}
	return r
}

func (m CapMatch) String() string {
	switch m.result {
	case match:
		return "yes"
	case nomatch:
		return "no"
	}
	return "irrelevant"
}

// MarshalText renders m as yes, no or irrelevant.
func (m CapMatch) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
