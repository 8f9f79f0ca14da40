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
Package capability models the named, optionally versioned assertions that
resolvables require and provide, and matches them against each other.
*/
package capability

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/respool/pkg/edition"
)

// ErrMalformedCapability is matched by every error returned when a
// capability, operator or edition cannot be parsed.
var ErrMalformedCapability = errors.New("malformed capability")

// MalformedError describes why a capability was rejected.
type MalformedError struct {
	Input  string
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	msg := fmt.Sprintf("malformed capability %q: %s", e.Input, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedCapability
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func malformed(input, reason string, err error) error {
	return &MalformedError{Input: input, Reason: reason, Err: err}
}

// Op is the relational operator of a versioned capability.
type Op int

const (
	OpNone Op = iota
	OpEQ
	OpLT
	OpLE
	OpGT
	OpGE
	OpNE
	// OpRange compares the version against a semver constraint such as
	// ~1.2 or ^2.0.0.
	OpRange
)

const (
	flagLess = 1 << iota
	flagEqual
	flagGreater
)

var opNames = [...]string{
	OpNone:  "",
	OpEQ:    "=",
	OpLT:    "<",
	OpLE:    "<=",
	OpGT:    ">",
	OpGE:    ">=",
	OpNE:    "!=",
	OpRange: "~=",
}

// ParseOp parses one of =, ==, <, <=, >, >= and !=.
func ParseOp(s string) (Op, error) {
	switch s {
	case "=", "==":
		return OpEQ, nil
	case "<":
		return OpLT, nil
	case "<=":
		return OpLE, nil
	case ">":
		return OpGT, nil
	case ">=":
		return OpGE, nil
	case "!=":
		return OpNE, nil
	}
	return OpNone, malformed(s, "unknown operator", nil)
}

func (o Op) String() string {
	if o < OpNone || o > OpRange {
		return "?"
	}
	return opNames[o]
}

func (o Op) flags() int {
	switch o {
	case OpEQ:
		return flagEqual
	case OpLT:
		return flagLess
	case OpLE:
		return flagLess | flagEqual
	case OpGT:
		return flagGreater
	case OpGE:
		return flagGreater | flagEqual
	case OpNE:
		return flagLess | flagGreater
	}
	return 0
}

// Capability is an immutable assertion: a name, optionally qualified by an
// operator and an edition (or a semver range) and an architecture.
type Capability struct {
	name       string
	op         Op
	edition    edition.Edition
	arch       Arch
	rng        string
	constraint *semver.Constraints
}

// New returns an unversioned capability.
func New(name string) (Capability, error) {
	if err := validName(name); err != nil {
		return Capability{}, err
	}
	return Capability{name: name}, nil
}

// NewVersioned returns the capability "name op edition".
func NewVersioned(name string, op Op, ed edition.Edition) (Capability, error) {
	if err := validName(name); err != nil {
		return Capability{}, err
	}
	switch {
	case op == OpNone && !ed.IsZero():
		return Capability{}, malformed(name, "edition without operator", nil)
	case op == OpRange:
		return Capability{}, malformed(name, "use NewRange for semver ranges", nil)
	case op < OpNone || op > OpRange:
		return Capability{}, malformed(name, "unknown operator", nil)
	case op != OpNone && ed.IsZero():
		return Capability{}, malformed(name, fmt.Sprintf("operator %s without edition", op), nil)
	}
	return Capability{name: name, op: op, edition: ed}, nil
}

// NewRange returns a capability whose version must satisfy the semver
// constraint rng.
func NewRange(name, rng string) (Capability, error) {
	if err := validName(name); err != nil {
		return Capability{}, err
	}
	c, err := semver.NewConstraint(rng)
	if err != nil {
		return Capability{}, malformed(name+" "+rng, "invalid semver range", err)
	}
	return Capability{name: name, op: OpRange, rng: rng, constraint: c}, nil
}

// Must panics if err is not nil, and returns c otherwise.
func Must(c Capability, err error) Capability {
	if err != nil {
		panic(err)
	}
	return c
}

func validName(name string) error {
	if name == "" {
		return malformed(name, "empty name", nil)
	}
	if strings.ContainsAny(name, " \t\n") {
		return malformed(name, "whitespace in name", nil)
	}
	return nil
}

// WithArch returns a copy of c restricted to architecture a.
func (c Capability) WithArch(a Arch) Capability {
	c.arch = a
	return c
}

func (c Capability) Name() string { return c.name }
func (c Capability) Op() Op { return c.op }
func (c Capability) Edition() edition.Edition { return c.edition }
func (c Capability) Arch() Arch { return c.arch }

// Range returns the semver constraint of an OpRange capability.
func (c Capability) Range() string { return c.rng }

// IsVersioned reports whether c carries an operator.
func (c Capability) IsVersioned() bool {
	return c.op != OpNone
}

// Equal reports whether c and o are the same assertion.
func (c Capability) Equal(o Capability) bool {
	return c.name == o.name && c.op == o.op && c.edition == o.edition &&
		c.arch == o.arch && c.rng == o.rng
}

func (c Capability) String() string {
	name := c.name
	if c.arch != "" {
		name += "." + string(c.arch)
	}
	switch c.op {
	case OpNone:
		return name
	case OpRange:
		return fmt.Sprintf("%s %s", name, c.rng)
	}
	return fmt.Sprintf("%s %s %s", name, c.op, c.edition)
}

func (c Capability) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
