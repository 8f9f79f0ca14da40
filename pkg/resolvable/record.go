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
Package resolvable models the installable units the resolver reasons
about: packages, source packages, package atoms, patches, patterns,
products, atoms, scripts and messages.

A Record is built by a metadata reader in three steps: construction with
its identity, incremental population of dependencies and common data, and
Seal. Only sealed records are admitted into a pool; from then on the record
is read only.
*/
package resolvable

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/respool/pkg/capability"
	"github.com/rancher-sandbox/respool/pkg/edition"
)

var (
	// ErrSealViolation is returned when a sealed record is modified.
	ErrSealViolation = errors.New("record is sealed")
	// ErrInvalidRecord is returned when a record misses mandatory data.
	ErrInvalidRecord = errors.New("invalid record")
)

// Record is a resolvable: an identity, its dependencies keyed by kind,
// common attributes and kind specific details.
type Record struct {
	ident         Ident
	common        Common
	deps          map[capability.Dep]capability.Set
	sharedDataTag string
	details       Details
	sealed        bool
}

// New builds an unsealed record. details must match kind; it may be nil for
// kinds without mandatory attributes. Patches need an ID and products a
// type.
func New(kind Kind, name string, ed edition.Edition, arch capability.Arch, details Details) (*Record, error) {
	if !kind.Valid() {
		return nil, errors.Wrapf(ErrInvalidRecord, "unknown kind %d", kind)
	}
	if name == "" {
		return nil, errors.Wrapf(ErrInvalidRecord, "%s without name", kind)
	}
	if ed.IsZero() {
		return nil, errors.Wrapf(ErrInvalidRecord, "%s %s without edition", kind, name)
	}
	if arch == "" {
		return nil, errors.Wrapf(ErrInvalidRecord, "%s %s without arch", kind, name)
	}

	if details == nil {
		details = defaultDetails(kind)
		if details == nil {
			return nil, errors.Wrapf(ErrInvalidRecord, "%s %s needs details", kind, name)
		}
	} else {
		// the caller keeps its pointer, the record keeps its own copy
		details = details.clone()
	}
	if details.kind() != kind {
		return nil, errors.Wrapf(ErrInvalidRecord, "%s %s: details are for %s", kind, name, details.kind())
	}
	if err := details.validate(); err != nil {
		return nil, err
	}

	return &Record{
		ident:   Ident{Kind: kind, Name: name, Edition: ed, Arch: arch},
		deps:    make(map[capability.Dep]capability.Set),
		details: details,
	}, nil
}

// NewFromStrings is New with the edition given as [epoch:]version[-release].
func NewFromStrings(kind Kind, name, ed, arch string, details Details) (*Record, error) {
	e, err := edition.Parse(ed)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", kind, name)
	}
	return New(kind, name, e, capability.Arch(arch), details)
}

func (r *Record) Ident() Ident { return r.ident }
func (r *Record) Kind() Kind { return r.ident.Kind }
func (r *Record) Name() string { return r.ident.Name }
func (r *Record) Edition() edition.Edition { return r.ident.Edition }
func (r *Record) Arch() capability.Arch { return r.ident.Arch }
func (r *Record) String() string { return r.ident.String() }

// Common returns a copy of the common attributes of r.
func (r *Record) Common() Common {
	return r.common
}

// SetCommon replaces the common attributes.
func (r *Record) SetCommon(c Common) error {
	if r.sealed {
		return errors.Wrapf(ErrSealViolation, "setting common data of %s", r)
	}
	r.common = c
	return nil
}

// AddDependency appends caps to the dependencies of kind dep.
func (r *Record) AddDependency(dep capability.Dep, caps ...capability.Capability) error {
	if r.sealed {
		return errors.Wrapf(ErrSealViolation, "adding %s to %s", dep, r)
	}
	if !dep.Valid() {
		return errors.Errorf("unknown dependency kind %d", dep)
	}
	if len(caps) == 0 {
		return nil
	}
	r.deps[dep] = append(r.deps[dep], caps...)
	return nil
}

// Dependencies returns a copy of the dependencies of kind dep, in the order
// they were added.
func (r *Record) Dependencies(dep capability.Dep) capability.Set {
	return r.deps[dep].Clone()
}

// DependencyKinds returns the kinds r has dependencies for.
func (r *Record) DependencyKinds() []capability.Dep {
	var kinds []capability.Dep
	for _, d := range capability.Deps() {
		if len(r.deps[d]) > 0 {
			kinds = append(kinds, d)
		}
	}
	return kinds
}

// Provides returns the implicit "name = edition" capability of r followed
// by its declared provides.
func (r *Record) Provides() capability.Set {
	self := capability.Must(capability.NewVersioned(r.ident.Name, capability.OpEQ, r.ident.Edition)).
		WithArch(r.ident.Arch)
	return append(capability.Set{self}, r.deps[capability.Provides]...)
}

// SharedDataTag is the key of the record r inherits common data from, if
// any.
func (r *Record) SharedDataTag() string {
	return r.sharedDataTag
}

func (r *Record) SetSharedDataTag(tag string) error {
	if r.sealed {
		return errors.Wrapf(ErrSealViolation, "setting shared data tag of %s", r)
	}
	r.sharedDataTag = tag
	return nil
}

// Seal freezes r. Sealing twice is harmless.
func (r *Record) Seal() {
	r.sealed = true
}

func (r *Record) Sealed() bool {
	return r.sealed
}

// Details returns a copy of the kind specific attributes.
func (r *Record) Details() Details {
	return r.details.clone()
}

type recordView struct {
	Ident         Ident                     `json:"ident"`
	Common        Common                    `json:"common"`
	Dependencies  map[string]capability.Set `json:"dependencies,omitempty"`
	SharedDataTag string                    `json:"sharedDataTag,omitempty"`
	Details       interface{}               `json:"details,omitempty"`
}

// JSON serializes record r into JSON.
func (r *Record) JSON() ([]byte, error) {
	view := recordView{
		Ident:         r.ident,
		Common:        r.common,
		SharedDataTag: r.sharedDataTag,
		Details:       r.details,
	}
	if len(r.deps) > 0 {
		view.Dependencies = make(map[string]capability.Set)
		for d, caps := range r.deps {
			view.Dependencies[d.String()] = caps
		}
	}

	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(view)
	return buffer.Bytes(), err
}
