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
Package edition implements package editions ([epoch:]version[-release])
and their ordering.

Editions are ordered the way rpm orders them: by epoch, then version, then
release. Version and release strings are split into alternating numeric
and alphabetic segments; numeric segments compare numerically, alphabetic
ones lexically, and a numeric segment is always newer than an alphabetic
one. A '~' sorts before anything, including the end of the string, so
1.0~rc1 is older than 1.0.
*/
package edition

import (
	"fmt"
	"strconv"
	"strings"

	rpmversion "github.com/knqyf263/go-rpm-version"
	"github.com/pkg/errors"
)

// ErrMalformed is returned when an edition string cannot be parsed.
var ErrMalformed = errors.New("malformed edition")

// Edition identifies a version of a resolvable. The zero value is the empty
// edition, used by unversioned capabilities.
type Edition struct {
	Epoch   uint32
	Version string
	Release string
}

// Parse parses [epoch:]version[-release].
func Parse(s string) (Edition, error) {
	var e Edition

	rest := s
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		epoch, err := strconv.ParseUint(rest[:i], 10, 32)
		if err != nil {
			return Edition{}, errors.Wrapf(ErrMalformed, "%q: bad epoch", s)
		}
		e.Epoch = uint32(epoch)
		rest = rest[i+1:]
	}

	if i := strings.LastIndexByte(rest, '-'); i >= 0 {
		e.Release = rest[i+1:]
		rest = rest[:i]
		if e.Release == "" {
			return Edition{}, errors.Wrapf(ErrMalformed, "%q: empty release", s)
		}
		if !validPart(e.Release) {
			return Edition{}, errors.Wrapf(ErrMalformed, "%q: invalid character in release", s)
		}
	}

	e.Version = rest
	if e.Version == "" {
		return Edition{}, errors.Wrapf(ErrMalformed, "%q: empty version", s)
	}
	if !validPart(e.Version) {
		return Edition{}, errors.Wrapf(ErrMalformed, "%q: invalid character in version", s)
	}

	return e, nil
}

// MustParse is like Parse but panics on error. Useful for tests and
// constant editions.
func MustParse(s string) Edition {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func validPart(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && !isAlpha(c) && !strings.ContainsRune("._+~", rune(c)) {
			return false
		}
	}
	return true
}

// IsZero reports whether e is the empty edition.
func (e Edition) IsZero() bool {
	return e == Edition{}
}

// WithoutRelease returns e with an empty release.
func (e Edition) WithoutRelease() Edition {
	e.Release = ""
	return e
}

func (e Edition) String() string {
	if e.IsZero() {
		return ""
	}
	var sb strings.Builder
	if e.Epoch > 0 {
		sb.WriteString(fmt.Sprintf("%d:", e.Epoch))
	}
	sb.WriteString(e.Version)
	if e.Release != "" {
		sb.WriteString("-" + e.Release)
	}
	return sb.String()
}

// MarshalText renders e as [epoch:]version[-release].
func (e Edition) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText parses an edition; the empty string is the empty edition.
func (e *Edition) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*e = Edition{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Compare returns -1, 0 or 1 when e is older than, equal to or newer than o.
func (e Edition) Compare(o Edition) int {
	return Compare(e, o)
}

// Compare returns -1, 0 or 1 when a is older than, equal to or newer than b.
func Compare(a, b Edition) int {
	return rpmVersion(a).Compare(rpmVersion(b))
}

// rpmVersion converts e for the rpm comparison. Parse keeps '-' out of
// versions and releases, so the string round trips.
func rpmVersion(e Edition) rpmversion.Version {
	return rpmversion.NewVersion(e.String())
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
