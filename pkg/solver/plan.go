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

	"github.com/Masterminds/log-go"
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/respool/pkg/pool"
	"github.com/rancher-sandbox/respool/pkg/resolvable"
)

// ErrStateConflict is matched by every *StateConflictError.
var ErrStateConflict = errors.New("state conflict")

// StateConflictError is returned when an item is asked for a state other
// than the one already recorded for it. The solutions are nil when the
// state was recorded directly.
type StateConflictError struct {
	Item        *pool.Item
	Recorded    pool.SelectionState
	Requested   pool.SelectionState
	RecordedBy  *ProblemSolution
	RequestedBy *ProblemSolution
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s: %s: %s by %s, %s by %s", ErrStateConflict, e.Item,
		e.Recorded, solutionName(e.RecordedBy), e.Requested, solutionName(e.RequestedBy))
}

func (e *StateConflictError) Is(target error) bool {
	return target == ErrStateConflict
}

func solutionName(s *ProblemSolution) string {
	if s == nil {
		return "direct record"
	}
	return fmt.Sprintf("%q", s.description)
}

// Step is one entry of a finalized plan.
type Step struct {
	Ident resolvable.Ident    `json:"ident" yaml:"ident"`
	State pool.SelectionState `json:"state" yaml:"state"`
	Item  *pool.Item          `json:"-" yaml:"-"`
}

type planEntry struct {
	state    pool.SelectionState
	solution *ProblemSolution
}

// TransactionPlan accumulates the final state intended for each item of a
// pool, and the accepted solutions that asked for it.
type TransactionPlan struct {
	pool     *pool.Pool
	entries  map[pool.ID]planEntry
	order    []pool.ID
	accepted []*ProblemSolution
	logger   log.Logger
}

// NewPlan creates an empty plan over the items of p.
func NewPlan(p *pool.Pool, logger log.Logger) *TransactionPlan {
	return &TransactionPlan{
		pool:    p,
		entries: make(map[pool.ID]planEntry),
		logger:  logger,
	}
}

// Record sets the intended state of item. Recording the state already
// recorded is a no-op; recording another one fails with a
// *StateConflictError and leaves the plan unchanged.
func (tp *TransactionPlan) Record(item *pool.Item, state pool.SelectionState) error {
	it, err := tp.pool.Resolve(item)
	if err != nil {
		return err
	}
	if err := tp.check(it, state, nil); err != nil {
		return err
	}
	tp.put(it, state, nil)
	return nil
}

func (tp *TransactionPlan) check(it *pool.Item, state pool.SelectionState, by *ProblemSolution) error {
	prev, ok := tp.entries[it.ID()]
	if !ok || prev.state == state {
		return nil
	}
	return &StateConflictError{
		Item:        it,
		Recorded:    prev.state,
		Requested:   state,
		RecordedBy:  prev.solution,
		RequestedBy: by,
	}
}

func (tp *TransactionPlan) put(it *pool.Item, state pool.SelectionState, by *ProblemSolution) {
	if _, ok := tp.entries[it.ID()]; ok {
		return
	}
	tp.entries[it.ID()] = planEntry{state: state, solution: by}
	tp.order = append(tp.order, it.ID())
}

type stagedChange struct {
	item   *pool.Item
	action SolutionAction
	state  pool.SelectionState
	by     *ProblemSolution
}

// Apply accepts solutions together. Nothing changes unless every action of
// every solution can be recorded: locked items only take Lock and Unlock,
// actions of this call must agree with each other and with the solutions
// accepted before. On success the pool items move to their new state.
func (tp *TransactionPlan) Apply(solutions ...*ProblemSolution) error {
	var staged []stagedChange
	byItem := make(map[pool.ID]stagedChange)

	for _, s := range solutions {
		if s == nil {
			return errors.New("cannot apply nil solution")
		}
		for _, a := range s.actions {
			it, err := tp.pool.Resolve(a.Item)
			if err != nil {
				return errors.Wrapf(err, "applying %q", s)
			}
			if it.Locked() && a.Kind != Lock && a.Kind != Unlock {
				return errors.Wrapf(pool.ErrLockViolation, "applying %q: cannot %s %s", s, a.Kind, it)
			}
			// Keep looks at the seed of the item of this pool
			state := SolutionAction{Kind: a.Kind, Item: it}.TargetState()

			if prev, ok := byItem[it.ID()]; ok {
				if prev.state != state {
					return errors.Wrapf(ErrContradictoryActions, "%q in %q and %q in %q",
						prev.action, prev.by, a, s)
				}
				continue
			}
			if err := tp.check(it, state, s); err != nil {
				return err
			}
			c := stagedChange{item: it, action: a, state: state, by: s}
			byItem[it.ID()] = c
			staged = append(staged, c)
		}
	}

	for _, c := range staged {
		var err error
		if c.action.Kind == Unlock {
			err = tp.pool.Unlock(c.item.ID())
		} else {
			err = tp.pool.Transition(c.item.ID(), c.state)
		}
		if err != nil {
			// checked above, the pool agrees with the staging
			return errors.Wrapf(err, "applying %q", c.by)
		}
		tp.put(c.item, c.state, c.by)
	}
	for _, s := range solutions {
		tp.logger.Debugf("accepted solution %q", s)
		tp.accepted = append(tp.accepted, s)
	}
	return nil
}

// State returns the state recorded for item.
func (tp *TransactionPlan) State(item *pool.Item) (pool.SelectionState, bool) {
	it, err := tp.pool.Resolve(item)
	if err != nil {
		return pool.Unspecified, false
	}
	e, ok := tp.entries[it.ID()]
	return e.state, ok
}

// Accepted returns the applied solutions, in order.
func (tp *TransactionPlan) Accepted() []*ProblemSolution {
	return append([]*ProblemSolution(nil), tp.accepted...)
}

func (tp *TransactionPlan) Len() int {
	return len(tp.order)
}

// Finalize returns the recorded steps in recording order. The order says
// nothing about the order the installer has to follow.
func (tp *TransactionPlan) Finalize() []Step {
	steps := make([]Step, 0, len(tp.order))
	for _, id := range tp.order {
		it, err := tp.pool.Get(id)
		if err != nil {
			// purged after being recorded
			continue
		}
		steps = append(steps, Step{Ident: it.Ident(), State: tp.entries[id].state, Item: it})
	}
	return steps
}

// Digest is a hash of the finalized plan. Plans with the same steps in the
// same order have the same digest.
func (tp *TransactionPlan) Digest() uint64 {
	d := xxhash.New()
	for _, s := range tp.Finalize() {
		// xxhash.Digest never fails to write
		_, _ = d.WriteString(s.Ident.Key())
		_, _ = d.WriteString("=")
		_, _ = d.WriteString(s.State.String())
		_, _ = d.WriteString("\n")
	}
	return d.Sum64()
}

// Clone returns a copy of tp working on p, which must be a clone of the
// pool of tp.
func (tp *TransactionPlan) Clone(p *pool.Pool) *TransactionPlan {
	c := &TransactionPlan{
		pool:     p,
		entries:  make(map[pool.ID]planEntry, len(tp.entries)),
		order:    append([]pool.ID(nil), tp.order...),
		accepted: append([]*ProblemSolution(nil), tp.accepted...),
		logger:   tp.logger,
	}
	for id, e := range tp.entries {
		c.entries[id] = e
	}
	return c
}
