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

package solver

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/respool/pkg/pool"
)

type ActionKind int

const (
	Install ActionKind = iota
	Remove
	Lock
	// Keep leaves the item as it was found on the system.
	Keep
	// Unlock releases a lock. It is the only action, besides Lock, a locked
	// item accepts.
	Unlock
)

// actionVerbs are used to render actions to the user.
var actionVerbs = [...]string{
	Install: "install",
	Remove:  "delete",
	Lock:    "lock",
	Keep:    "keep",
	Unlock:  "unlock",
}

// ParseActionKind accepts the action verbs, and "remove" for Remove.
func ParseActionKind(s string) (ActionKind, error) {
	if strings.EqualFold(s, "remove") {
		return Remove, nil
	}
	for k, verb := range actionVerbs {
		if strings.EqualFold(s, verb) {
			return ActionKind(k), nil
		}
	}
	return 0, errors.Errorf("unknown action %q", s)
}

func (k ActionKind) Valid() bool {
	return k >= Install && k <= Unlock
}

func (k ActionKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return actionVerbs[k]
}

// SolutionAction is one step of a solution: an intent for one item.
type SolutionAction struct {
	Kind ActionKind
	Item *pool.Item
}

func InstallAction(it *pool.Item) SolutionAction { return SolutionAction{Kind: Install, Item: it} }
func RemoveAction(it *pool.Item) SolutionAction { return SolutionAction{Kind: Remove, Item: it} }
func LockAction(it *pool.Item) SolutionAction { return SolutionAction{Kind: Lock, Item: it} }
func KeepAction(it *pool.Item) SolutionAction { return SolutionAction{Kind: Keep, Item: it} }
func UnlockAction(it *pool.Item) SolutionAction { return SolutionAction{Kind: Unlock, Item: it} }

// TargetState is the state the item ends in once the action is applied.
// Keep resolves against the state the item was seeded with.
func (a SolutionAction) TargetState() pool.SelectionState {
	switch a.Kind {
	case Install:
		return pool.CandidateInstall
	case Remove:
		return pool.CandidateRemove
	case Lock:
		return pool.Locked
	case Keep:
		if a.Item != nil && a.Item.Seed() == pool.Installed {
			return pool.Installed
		}
	}
	return pool.Unspecified
}

// String renders the action as "<verb> <item>", e.g. "delete foo-1.0-1.x86_64".
func (a SolutionAction) String() string {
	if a.Item == nil {
		return a.Kind.String()
	}
	return fmt.Sprintf("%s %s", a.Kind, a.Item)
}
