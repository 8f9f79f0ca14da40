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

// Arch is a machine architecture such as x86_64 or noarch.
type Arch string

const Noarch Arch = "noarch"

// defaultArchCompat lists, per architecture, the other architectures whose
// resolvables it can use.
var defaultArchCompat = map[Arch][]Arch{
	"x86_64":  {"i686", "i586", "i486", "i386"},
	"i686":    {"i586", "i486", "i386"},
	"i586":    {"i486", "i386"},
	"i486":    {"i386"},
	"ppc64":   {"ppc"},
	"ppc64le": {},
	"s390x":   {"s390"},
	"aarch64": {},
	"armv7hl": {"armv6hl"},
}

// KnownArch reports whether a is noarch or appears in the default
// compatibility table.
func KnownArch(a Arch) bool {
	if a == Noarch {
		return true
	}
	if _, ok := defaultArchCompat[a]; ok {
		return true
	}
	for _, compatible := range defaultArchCompat {
		for _, c := range compatible {
			if c == a {
				return true
			}
		}
	}
	return false
}

// splitArch splits "name.arch" when the suffix is a known architecture.
func splitArch(name string) (string, Arch) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	if a := Arch(name[i+1:]); KnownArch(a) {
		return name[:i], a
	}
	return name, ""
}
