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

package pool

import (
	"strings"

	"github.com/pkg/errors"
)

// SelectionState is what the resolver currently intends for an item.
type SelectionState int

const (
	Unspecified SelectionState = iota
	CandidateInstall
	CandidateRemove
	Installed
	// Locked items keep their state until explicitly unlocked.
	Locked
)

var stateNames = [...]string{
	Unspecified:      "unspecified",
	CandidateInstall: "install",
	CandidateRemove:  "remove",
	Installed:        "installed",
	Locked:           "locked",
}

func ParseSelectionState(s string) (SelectionState, error) {
	for st, name := range stateNames {
		if strings.EqualFold(s, name) {
			return SelectionState(st), nil
		}
	}
	return Unspecified, errors.Errorf("unknown selection state %q", s)
}

func (s SelectionState) Valid() bool {
	return s >= Unspecified && s <= Locked
}

func (s SelectionState) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return stateNames[s]
}

func (s SelectionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SelectionState) UnmarshalText(text []byte) error {
	st, err := ParseSelectionState(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}
