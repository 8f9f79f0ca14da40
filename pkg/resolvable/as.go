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

// The As functions narrow a record to the details of one kind. They return
// false when r is nil or of another kind. The details are a copy; writing to
// them leaves the record alone.

// AsPackageBase narrows packages, source packages and package atoms.
func AsPackageBase(r *Record) (*PackageBase, bool) {
	if r == nil {
		return nil, false
	}
	switch d := r.details.clone().(type) {
	case *PackageDetails:
		return &d.PackageBase, true
	case *SrcPackageDetails:
		return &d.PackageBase, true
	case *PackageAtomDetails:
		return &d.PackageBase, true
	}
	return nil, false
}

// AsPackage narrows packages and package atoms, as an atom is a package.
func AsPackage(r *Record) (*PackageDetails, bool) {
	if r == nil {
		return nil, false
	}
	switch d := r.details.clone().(type) {
	case *PackageDetails:
		return d, true
	case *PackageAtomDetails:
		return &d.PackageDetails, true
	}
	return nil, false
}

func AsSrcPackage(r *Record) (*SrcPackageDetails, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.details.clone().(*SrcPackageDetails)
	return d, ok
}

func AsPackageAtom(r *Record) (*PackageAtomDetails, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.details.clone().(*PackageAtomDetails)
	return d, ok
}

func AsPatch(r *Record) (*PatchDetails, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.details.clone().(*PatchDetails)
	return d, ok
}

func AsPattern(r *Record) (*PatternDetails, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.details.clone().(*PatternDetails)
	return d, ok
}

func AsProduct(r *Record) (*ProductDetails, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.details.clone().(*ProductDetails)
	return d, ok
}

func AsScript(r *Record) (*ScriptDetails, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.details.clone().(*ScriptDetails)
	return d, ok
}

func AsMessage(r *Record) (*MessageDetails, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.details.clone().(*MessageDetails)
	return d, ok
}

func AsAtom(r *Record) (*AtomDetails, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.details.clone().(*AtomDetails)
	return d, ok
}
