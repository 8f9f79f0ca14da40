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

// Package strutil holds string helpers used while reading metadata.
package strutil

import (
	"regexp"

	"github.com/pkg/errors"
)

// Matcher matches text against a compiled pattern.
type Matcher interface {
	Match(text string) (Captures, bool)
}

// Captures holds the submatches of a successful match; index 0 is the whole
// match.
type Captures []string

// Get returns submatch i, or "" when i is out of range.
func (c Captures) Get(i int) string {
	if i < 0 || i >= len(c) {
		return ""
	}
	return c[i]
}

// Regex is a Matcher backed by a regular expression.
type Regex struct {
	re *regexp.Regexp
}

// Compile compiles pattern into a Regex.
func Compile(pattern string) (*Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling %q", pattern)
	}
	return &Regex{re: re}, nil
}

// MustCompile is like Compile but panics if the pattern does not compile.
func MustCompile(pattern string) *Regex {
	r, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Match reports whether text matches, and its submatches.
func (r *Regex) Match(text string) (Captures, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return Captures(m), true
}
