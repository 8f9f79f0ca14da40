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
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/respool/pkg/capability"
	"github.com/rancher-sandbox/respool/pkg/edition"
)

// Details holds the kind specific attributes of a record. It is implemented
// only by the types of this package, one per kind.
type Details interface {
	kind() Kind
	validate() error
	// clone returns a copy sharing no mutable memory with the receiver.
	clone() Details
}

// PackageBase is shared by packages, source packages and package atoms.
type PackageBase struct {
	Group           string
	Keywords        []string
	Changelog       []ChangelogEntry
	Authors         []string
	BuildHost       string
	Distribution    string
	License         string
	Packager        string
	URL             string
	OperatingSystem string
	PreIn           string
	PostIn          string
	PreUn           string
	PostUn          string
	Location        OnMediaLocation
	DiskUsage       DiskUsage
}

func (b PackageBase) copy() PackageBase {
	b.Keywords = copyStrings(b.Keywords)
	if b.Changelog != nil {
		b.Changelog = append([]ChangelogEntry(nil), b.Changelog...)
	}
	b.Authors = copyStrings(b.Authors)
	if b.DiskUsage != nil {
		b.DiskUsage = append(DiskUsage(nil), b.DiskUsage...)
	}
	return b
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

type PackageDetails struct {
	PackageBase
	// SrcPackageIdent is name-version-release of the source package.
	SrcPackageIdent string
}

func (*PackageDetails) kind() Kind { return Package }
func (*PackageDetails) validate() error { return nil }

func (d *PackageDetails) copy() PackageDetails {
	c := *d
	c.PackageBase = d.PackageBase.copy()
	return c
}

func (d *PackageDetails) clone() Details {
	c := d.copy()
	return &c
}

type SrcPackageDetails struct {
	PackageBase
}

func (*SrcPackageDetails) kind() Kind { return SrcPackage }
func (*SrcPackageDetails) validate() error { return nil }

func (d *SrcPackageDetails) clone() Details {
	return &SrcPackageDetails{PackageBase: d.PackageBase.copy()}
}

// RpmBase describes a patch or delta rpm that rebuilds a target rpm.
type RpmBase struct {
	Name        string
	Edition     edition.Edition
	Arch        capability.Arch
	Location    OnMediaLocation
	BuildTime   time.Time
	FileTime    time.Time
	ArchiveSize ByteCount
}

type PatchRpm struct {
	RpmBase
	BaseVersions []edition.Edition
}

type DeltaBaseVersion struct {
	Edition      edition.Edition
	BuildTime    time.Time
	Checksum     string
	SequenceInfo string
}

type DeltaRpm struct {
	RpmBase
	BaseVersion DeltaBaseVersion
}

// PackageAtomDetails is a package shipped as part of a patch.
type PackageAtomDetails struct {
	PackageDetails
	PatchRpms []PatchRpm
	DeltaRpms []DeltaRpm
}

func (*PackageAtomDetails) kind() Kind { return PackageAtom }
func (*PackageAtomDetails) validate() error { return nil }

func (d *PackageAtomDetails) clone() Details {
	c := &PackageAtomDetails{PackageDetails: d.PackageDetails.copy()}
	for _, rpm := range d.PatchRpms {
		rpm.BaseVersions = append([]edition.Edition(nil), rpm.BaseVersions...)
		c.PatchRpms = append(c.PatchRpms, rpm)
	}
	if d.DeltaRpms != nil {
		c.DeltaRpms = append([]DeltaRpm(nil), d.DeltaRpms...)
	}
	return c
}

type PatchDetails struct {
	ID        string
	Timestamp time.Time
	// Category such as recommended or security.
	Category          string
	RebootNeeded      bool
	AffectsPkgManager bool
	UpdateScript      string
	// Atoms are the package atoms, messages and scripts building the patch.
	Atoms []Ident
}

func (*PatchDetails) kind() Kind { return Patch }

func (d *PatchDetails) clone() Details {
	c := *d
	if d.Atoms != nil {
		c.Atoms = append([]Ident(nil), d.Atoms...)
	}
	return &c
}

func (d *PatchDetails) validate() error {
	if d.ID == "" {
		return errors.Wrap(ErrInvalidRecord, "patch without id")
	}
	for _, a := range d.Atoms {
		switch a.Kind {
		case PackageAtom, Message, Script:
		default:
			return errors.Wrapf(ErrInvalidRecord, "patch %s: %s cannot be an atom", d.ID, a.Kind)
		}
	}
	return nil
}

type PatternDetails struct {
	IsDefault   bool
	UserVisible bool
	Category    string
	Icon        string
	Order       string
	Script      string
	Includes    capability.Set
	Extends     capability.Set
}

func (*PatternDetails) kind() Kind { return Pattern }
func (*PatternDetails) validate() error { return nil }

func (d *PatternDetails) clone() Details {
	c := *d
	c.Includes = d.Includes.Clone()
	c.Extends = d.Extends.Clone()
	return &c
}

type ProductDetails struct {
	// Type is base or add-on.
	Type            string
	ShortName       string
	LongName        string
	Flags           []string
	ReleaseNotesURL string
	UpdateURLs      []string
	ExtraURLs       []string
	OptionalURLs    []string
	// DistributionName and DistributionEdition are vendor specific.
	DistributionName    string
	DistributionEdition edition.Edition
}

func (*ProductDetails) kind() Kind { return Product }

func (d *ProductDetails) clone() Details {
	c := *d
	c.Flags = copyStrings(d.Flags)
	c.UpdateURLs = copyStrings(d.UpdateURLs)
	c.ExtraURLs = copyStrings(d.ExtraURLs)
	c.OptionalURLs = copyStrings(d.OptionalURLs)
	return &c
}

func (d *ProductDetails) validate() error {
	if d.Type == "" {
		return errors.Wrap(ErrInvalidRecord, "product without type")
	}
	urls := append([]string{}, d.UpdateURLs...)
	urls = append(urls, d.ExtraURLs...)
	urls = append(urls, d.OptionalURLs...)
	if d.ReleaseNotesURL != "" {
		urls = append(urls, d.ReleaseNotesURL)
	}
	for _, u := range urls {
		if _, err := url.ParseRequestURI(u); err != nil {
			return errors.Wrapf(ErrInvalidRecord, "product url %q: %v", u, err)
		}
	}
	return nil
}

type ScriptDetails struct {
	DoScript           string
	DoScriptLocation   OnMediaLocation
	UndoScript         string
	UndoScriptLocation OnMediaLocation
}

func (*ScriptDetails) kind() Kind { return Script }
func (*ScriptDetails) validate() error { return nil }

func (d *ScriptDetails) clone() Details {
	c := *d
	return &c
}

type MessageDetails struct {
	Text string
}

func (*MessageDetails) kind() Kind { return Message }
func (*MessageDetails) validate() error { return nil }

func (d *MessageDetails) clone() Details {
	c := *d
	return &c
}

type AtomDetails struct{}

func (*AtomDetails) kind() Kind { return Atom }
func (*AtomDetails) validate() error { return nil }
func (*AtomDetails) clone() Details { return &AtomDetails{} }

// defaultDetails returns the empty details of kind k, or nil when the kind
// has mandatory attributes.
func defaultDetails(k Kind) Details {
	switch k {
	case Package:
		return &PackageDetails{}
	case SrcPackage:
		return &SrcPackageDetails{}
	case PackageAtom:
		return &PackageAtomDetails{}
	case Pattern:
		return &PatternDetails{}
	case Script:
		return &ScriptDetails{}
	case Message:
		return &MessageDetails{}
	case Atom:
		return &AtomDetails{}
	}
	return nil
}
