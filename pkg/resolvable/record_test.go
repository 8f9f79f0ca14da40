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
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rancher-sandbox/respool/pkg/capability"
	"github.com/rancher-sandbox/respool/pkg/edition"
)

func mustCap(t *testing.T, s string) capability.Capability {
	t.Helper()
	c, err := capability.NewParser().Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNew(t *testing.T) {
	ed := edition.MustParse("1.0-1")

	for _, tcase := range []struct {
		name    string
		kind    Kind
		recName string
		edition edition.Edition
		arch    string
		details Details
		wantErr bool
	}{
		{name: "package", kind: Package, recName: "foo", edition: ed, arch: "x86_64"},
		{name: "package with details", kind: Package, recName: "foo", edition: ed, arch: "x86_64",
			details: &PackageDetails{PackageBase: PackageBase{License: "MIT"}}},
		{name: "atom", kind: Atom, recName: "a", edition: ed, arch: "noarch"},
		{name: "patch", kind: Patch, recName: "p", edition: ed, arch: "noarch",
			details: &PatchDetails{ID: "SUSE-2024-1", Atoms: []Ident{{Kind: PackageAtom, Name: "foo"}}}},
		{name: "patch without id", kind: Patch, recName: "p", edition: ed, arch: "noarch",
			details: &PatchDetails{}, wantErr: true},
		{name: "patch without details", kind: Patch, recName: "p", edition: ed, arch: "noarch", wantErr: true},
		{name: "patch with package as atom", kind: Patch, recName: "p", edition: ed, arch: "noarch",
			details: &PatchDetails{ID: "x", Atoms: []Ident{{Kind: Package, Name: "foo"}}}, wantErr: true},
		{name: "product", kind: Product, recName: "SLES", edition: ed, arch: "x86_64",
			details: &ProductDetails{Type: "base", UpdateURLs: []string{"https://updates.example.com/sles"}}},
		{name: "product without type", kind: Product, recName: "SLES", edition: ed, arch: "x86_64",
			details: &ProductDetails{}, wantErr: true},
		{name: "product with bad url", kind: Product, recName: "SLES", edition: ed, arch: "x86_64",
			details: &ProductDetails{Type: "base", ReleaseNotesURL: "not a url"}, wantErr: true},
		{name: "details of another kind", kind: Package, recName: "foo", edition: ed, arch: "x86_64",
			details: &MessageDetails{}, wantErr: true},
		{name: "no name", kind: Package, edition: ed, arch: "x86_64", wantErr: true},
		{name: "no edition", kind: Package, recName: "foo", arch: "x86_64", wantErr: true},
		{name: "no arch", kind: Package, recName: "foo", edition: ed, wantErr: true},
		{name: "unknown kind", kind: Kind(99), recName: "foo", edition: ed, arch: "x86_64", wantErr: true},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			is := assert.New(t)
			r, err := New(tcase.kind, tcase.recName, tcase.edition, capability.Arch(tcase.arch), tcase.details)
			if tcase.wantErr {
				is.True(errors.Is(err, ErrInvalidRecord), "expected ErrInvalidRecord, got %v", err)
				is.Nil(r)
				return
			}
			is.NoError(err)
			is.Equal(tcase.kind, r.Kind())
			is.Equal(tcase.recName, r.Name())
			is.False(r.Sealed())
		})
	}
}

func TestNewFromStringsRejectsMalformedEdition(t *testing.T) {
	is := assert.New(t)

	_, err := NewFromStrings(Package, "foo", "1.0-", "x86_64", nil)
	is.True(errors.Is(err, edition.ErrMalformed))

	r, err := NewFromStrings(Package, "foo", "2:1.0-3", "x86_64", nil)
	is.NoError(err)
	is.Equal("foo-2:1.0-3.x86_64", r.String())
	is.Equal("package:foo-2:1.0-3.x86_64", r.Ident().Key())
}

func TestSeal(t *testing.T) {
	is := assert.New(t)

	r, err := NewFromStrings(Package, "foo", "1.0", "x86_64", nil)
	is.NoError(err)
	is.NoError(r.AddDependency(capability.Requires, mustCap(t, "libX >= 2.0"), mustCap(t, "libY")))
	is.NoError(r.AddDependency(capability.Requires, mustCap(t, "libX >= 2.0")))
	is.NoError(r.AddDependency(capability.Conflicts))
	is.NoError(r.SetCommon(Common{Summary: "foo"}))
	is.NoError(r.SetSharedDataTag("package:bar-1.0.x86_64"))

	r.Seal()
	r.Seal()
	is.True(r.Sealed())

	err = r.AddDependency(capability.Requires, mustCap(t, "libZ"))
	is.True(errors.Is(err, ErrSealViolation))
	is.True(errors.Is(r.SetCommon(Common{}), ErrSealViolation))
	is.True(errors.Is(r.SetSharedDataTag(""), ErrSealViolation))

	// nothing changed by the failed attempts
	is.Equal("libX >= 2.0, libY, libX >= 2.0", r.Dependencies(capability.Requires).String())
	is.Equal("foo", r.Common().Summary)
	is.Equal("package:bar-1.0.x86_64", r.SharedDataTag())
	is.Equal([]capability.Dep{capability.Requires}, r.DependencyKinds())
}

func TestDependenciesAreCopies(t *testing.T) {
	is := assert.New(t)

	r := NewPackageMock("foo", "1.0", []string{"libX"}, nil)
	deps := r.Dependencies(capability.Requires)
	deps[0] = mustCap(t, "other")
	is.Equal("libX", r.Dependencies(capability.Requires)[0].String())
	is.Empty(r.Dependencies(capability.Obsoletes))
	is.Error(NewPackageMock("bar", "1.0", nil, nil).AddDependency(capability.Dep(42)))
}

func TestDetailsAreCopies(t *testing.T) {
	is := assert.New(t)
	ed := edition.MustParse("1.0")

	d := &PatchDetails{ID: "p1", Atoms: []Ident{{Kind: PackageAtom, Name: "foo"}}}
	patch, err := New(Patch, "p", ed, "noarch", d)
	is.NoError(err)
	patch.Seal()

	// the pointer handed to New stays with the caller
	d.ID = ""
	d.Atoms[0].Name = "bar"
	got, ok := AsPatch(patch)
	is.True(ok)
	is.Equal("p1", got.ID)
	is.Equal("foo", got.Atoms[0].Name)

	// so do the details handed out
	got.ID = "changed"
	got.Atoms[0].Name = "changed"
	again, _ := AsPatch(patch)
	is.Equal("p1", again.ID)
	is.Equal("foo", again.Atoms[0].Name)

	pattern, err := New(Pattern, "base", ed, "noarch",
		&PatternDetails{Includes: capability.NewSet(mustCap(t, "foo"))})
	is.NoError(err)
	pattern.Seal()
	pd, ok := AsPattern(pattern)
	is.True(ok)
	pd.Includes = append(pd.Includes, mustCap(t, "bar"))
	pd.Includes[0] = mustCap(t, "baz")
	pd, _ = AsPattern(pattern)
	is.Equal("foo", pd.Includes.String())

	pkg, err := New(Package, "foo", ed, "x86_64",
		&PackageDetails{PackageBase: PackageBase{Authors: []string{"tux"}}})
	is.NoError(err)
	base, ok := AsPackageBase(pkg)
	is.True(ok)
	base.Authors[0] = "someone else"
	pd2 := pkg.Details().(*PackageDetails)
	is.Equal([]string{"tux"}, pd2.Authors)

	product, err := New(Product, "sles", ed, "x86_64",
		&ProductDetails{Type: "base", UpdateURLs: []string{"https://updates.example.com"}})
	is.NoError(err)
	prod, _ := AsProduct(product)
	prod.UpdateURLs[0] = "not a url"
	prod, _ = AsProduct(product)
	is.Equal("https://updates.example.com", prod.UpdateURLs[0])
}

func TestProvides(t *testing.T) {
	is := assert.New(t)

	r := NewPackageMock("foo", "1.0-1", nil, []string{"libfoo.so", "foo-api = 3"})
	provides := r.Provides()
	is.Len(provides, 3)
	is.Equal("foo.x86_64 = 1.0-1", provides[0].String())
	is.Equal("libfoo.so", provides[1].String())
}

func TestAs(t *testing.T) {
	is := assert.New(t)
	ed := edition.MustParse("1.0")

	pkg, err := New(Package, "foo", ed, "x86_64", &PackageDetails{SrcPackageIdent: "foo-1.0-1"})
	is.NoError(err)
	atom, err := New(PackageAtom, "foo", ed, "x86_64", nil)
	is.NoError(err)
	src, err := New(SrcPackage, "foo", ed, "noarch", nil)
	is.NoError(err)
	patch, err := New(Patch, "p", ed, "noarch", &PatchDetails{ID: "p-1", RebootNeeded: true})
	is.NoError(err)
	msg, err := New(Message, "m", ed, "noarch", &MessageDetails{Text: "hello"})
	is.NoError(err)

	d, ok := AsPackage(pkg)
	is.True(ok)
	is.Equal("foo-1.0-1", d.SrcPackageIdent)
	_, ok = AsPackage(atom)
	is.True(ok)
	_, ok = AsPackage(src)
	is.False(ok)

	for _, r := range []*Record{pkg, atom, src} {
		_, ok = AsPackageBase(r)
		is.True(ok, r.Kind().String())
	}
	_, ok = AsPackageBase(patch)
	is.False(ok)

	p, ok := AsPatch(patch)
	is.True(ok)
	is.True(p.RebootNeeded)
	_, ok = AsPatch(pkg)
	is.False(ok)

	m, ok := AsMessage(msg)
	is.True(ok)
	is.Equal("hello", m.Text)

	_, ok = AsProduct(pkg)
	is.False(ok)
	_, ok = AsPattern(pkg)
	is.False(ok)
	_, ok = AsScript(pkg)
	is.False(ok)
	_, ok = AsAtom(pkg)
	is.False(ok)
	_, ok = AsSrcPackage(src)
	is.True(ok)
	_, ok = AsPackageAtom(atom)
	is.True(ok)
	_, ok = AsPatch(nil)
	is.False(ok)
}

func TestKind(t *testing.T) {
	is := assert.New(t)

	for k := Package; k <= Message; k++ {
		parsed, err := ParseKind(k.String())
		is.NoError(err)
		is.Equal(k, parsed)
	}
	_, err := ParseKind("selection")
	is.Error(err)
	is.Equal("unknown", Kind(-1).String())
}

func TestJSON(t *testing.T) {
	is := assert.New(t)

	r := NewPackageMock("foo", "1.0", []string{"libX >= 2.0"}, nil)
	out, err := r.JSON()
	is.NoError(err)

	var decoded map[string]interface{}
	is.NoError(json.Unmarshal(out, &decoded))
	ident := decoded["ident"].(map[string]interface{})
	is.Equal("package", ident["kind"])
	is.Equal("1.0", ident["edition"])
	deps := decoded["dependencies"].(map[string]interface{})
	is.Equal([]interface{}{"libX >= 2.0"}, deps["requires"])
}

func TestByteCount(t *testing.T) {
	is := assert.New(t)

	is.Equal("1.5KiB", ByteCount(1536).String())
	du := DiskUsage{{Dir: "/usr", Size: 1024}, {Dir: "/etc", Size: 512}}
	is.Equal(ByteCount(1536), du.Total())
}
