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

// ErrContradictoryActions is returned when actions meant to be applied
// together ask for different states of the same item.
var ErrContradictoryActions = errors.New("contradictory actions")

// ProblemSolution is one remedy for a problem: a description for the user
// and the ordered actions that implement it. Solutions are immutable.
type ProblemSolution struct {
	description string
	details     string
	actions     []SolutionAction
	problem     *ResolverProblem
}

// NewSolution builds a solution. It fails when an action has no item, or
// when two actions want different states for the same item.
func NewSolution(description, details string, actions ...SolutionAction) (*ProblemSolution, error) {
	target := make(map[pool.ID]SolutionAction, len(actions))
	for _, a := range actions {
		if a.Item == nil {
			return nil, errors.Errorf("solution %q: %s without item", description, a.Kind)
		}
		if !a.Kind.Valid() {
			return nil, errors.Errorf("solution %q: unknown action %d", description, a.Kind)
		}
		if prev, ok := target[a.Item.ID()]; ok && prev.TargetState() != a.TargetState() {
			return nil, errors.Wrapf(ErrContradictoryActions, "solution %q: %q and %q", description, prev, a)
		}
		target[a.Item.ID()] = a
	}
	return &ProblemSolution{
		description: description,
		details:     details,
		actions:     append([]SolutionAction(nil), actions...),
	}, nil
}

// NewUninstallSolution proposes to delete one item.
func NewUninstallSolution(it *pool.Item) (*ProblemSolution, error) {
	if it == nil {
		return nil, errors.New("uninstall solution without item")
	}
	return NewSolution(
		fmt.Sprintf("delete %s", it.Name()),
		fmt.Sprintf("delete %s", it),
		RemoveAction(it))
}

// NewUninstallBatchSolution proposes to delete all items, in order. The
// details list every action, one per line.
func NewUninstallBatchSolution(items []*pool.Item) (*ProblemSolution, error) {
	actions := make([]SolutionAction, 0, len(items))
	var details strings.Builder
	for _, it := range items {
		a := RemoveAction(it)
		actions = append(actions, a)
		details.WriteString(a.String())
		details.WriteString("\n")
	}
	return NewSolution("Delete conflicting resolvables.", details.String(), actions...)
}

// NewInstallSolution proposes to install one item.
func NewInstallSolution(it *pool.Item) (*ProblemSolution, error) {
	if it == nil {
		return nil, errors.New("install solution without item")
	}
	return NewSolution(
		fmt.Sprintf("install %s", it.Name()),
		fmt.Sprintf("install %s", it),
		InstallAction(it))
}

// NewKeepSolution proposes to leave one item as it is on the system.
func NewKeepSolution(it *pool.Item) (*ProblemSolution, error) {
	if it == nil {
		return nil, errors.New("keep solution without item")
	}
	verb := "do not install"
	if it.Seed() == pool.Installed {
		verb = "keep"
	}
	return NewSolution(
		fmt.Sprintf("%s %s", verb, it.Name()),
		fmt.Sprintf("%s %s", verb, it),
		KeepAction(it))
}

// NewLockSolution proposes to lock one item, so no later solution moves it.
func NewLockSolution(it *pool.Item) (*ProblemSolution, error) {
	if it == nil {
		return nil, errors.New("lock solution without item")
	}
	return NewSolution(
		fmt.Sprintf("lock %s", it.Name()),
		fmt.Sprintf("lock %s", it),
		LockAction(it))
}

func (s *ProblemSolution) Description() string { return s.description }
func (s *ProblemSolution) Details() string { return s.details }

// Actions returns a copy of the actions of s.
func (s *ProblemSolution) Actions() []SolutionAction {
	return append([]SolutionAction(nil), s.actions...)
}

// Problem returns the problem s was added to, or nil.
func (s *ProblemSolution) Problem() *ResolverProblem {
	return s.problem
}

func (s *ProblemSolution) String() string {
	return s.description
}
