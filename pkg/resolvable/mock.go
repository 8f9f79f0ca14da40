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
	"github.com/rancher-sandbox/respool/pkg/capability"
)

// NewPackageMock creates a sealed x86_64 package with the given requires
// and provides, written as capability strings. It panics on malformed
// input.
// Useful for testing.
func NewPackageMock(name, ed string, requires, provides []string) *Record {
	r, err := NewFromStrings(Package, name, ed, "x86_64", nil)
	if err != nil {
		panic(err)
	}
	parser := capability.NewParser()
	for dep, caps := range map[capability.Dep][]string{
		capability.Requires: requires,
		capability.Provides: provides,
	} {
		for _, s := range caps {
			if err := r.AddDependency(dep, capability.Must(parser.Parse(s))); err != nil {
				panic(err)
			}
		}
	}
	r.Seal()
	return r
}
