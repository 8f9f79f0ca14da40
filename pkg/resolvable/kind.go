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

package resolvable

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/respool/pkg/capability"
	"github.com/rancher-sandbox/respool/pkg/edition"
)

// Kind is the kind of a resolvable.
type Kind int

const (
	Package Kind = iota
	SrcPackage
	PackageAtom
	Patch
	Pattern
	Product
	Atom
	Script
	Message
)

var kindNames = [...]string{
	Package:     "package",
	SrcPackage:  "srcpackage",
	PackageAtom: "atom-package",
	Patch:       "patch",
	Pattern:     "pattern",
	Product:     "product",
	Atom:        "atom",
	Script:      "script",
	Message:     "message",
}

// ParseKind parses the name of a resolvable kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown resolvable kind %q", s)
}

func (k Kind) Valid() bool {
	return k >= Package && k <= Message
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Ident is the identity of a resolvable. It never changes once the record
// is built.
type Ident struct {
	Kind    Kind            `json:"kind" yaml:"kind"`
	Name    string          `json:"name" yaml:"name"`
	Edition edition.Edition `json:"edition" yaml:"edition"`
	Arch    capability.Arch `json:"arch" yaml:"arch"`
}

// String renders name-edition.arch.
func (i Ident) String() string {
	return fmt.Sprintf("%s-%s.%s", i.Name, i.Edition, i.Arch)
}

// Key returns a string unique to the identity, kind included. Shared data
// tags refer to other records by their key.
func (i Ident) Key() string {
	return i.Kind.String() + ":" + i.String()
}
