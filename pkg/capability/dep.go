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

import (
	"strings"

	"github.com/pkg/errors"
)

// Dep is the kind of a dependency relation between resolvables.
type Dep int

const (
	Requires Dep = iota
	Provides
	Conflicts
	Obsoletes
	Recommends
	Supplements
	Enhances
	Suggests
)

var depNames = [...]string{
	Requires:    "requires",
	Provides:    "provides",
	Conflicts:   "conflicts",
	Obsoletes:   "obsoletes",
	Recommends:  "recommends",
	Supplements: "supplements",
	Enhances:    "enhances",
	Suggests:    "suggests",
}

// Deps returns all dependency kinds in declaration order.
func Deps() []Dep {
	return []Dep{Requires, Provides, Conflicts, Obsoletes, Recommends, Supplements, Enhances, Suggests}
}

// ParseDep parses the lower-case name of a dependency kind.
func ParseDep(s string) (Dep, error) {
	for d, name := range depNames {
		if strings.EqualFold(s, name) {
			return Dep(d), nil
		}
	}
	return 0, errors.Errorf("unknown dependency kind %q", s)
}

// Valid reports whether d is one of the known dependency kinds.
func (d Dep) Valid() bool {
	return d >= Requires && d <= Suggests
}

func (d Dep) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return depNames[d]
}

func (d Dep) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
