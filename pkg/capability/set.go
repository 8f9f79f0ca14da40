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

package capability

import "strings"

// Set is an ordered list of capabilities. Insertion order is kept and
// duplicates are allowed, as repository metadata may repeat entries.
type Set []Capability

func NewSet(caps ...Capability) Set {
	return append(Set(nil), caps...)
}

// Clone returns a copy of s that shares no backing array with it.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	return append(make(Set, 0, len(s)), s...)
}

// Contains reports whether s holds a capability equal to c.
func (s Set) Contains(c Capability) bool {
	for _, x := range s {
		if x.Equal(c) {
			return true
		}
	}
	return false
}

func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, c := range s {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}
