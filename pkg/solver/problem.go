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
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/respool/pkg/capability"
	"github.com/rancher-sandbox/respool/pkg/pool"
)

var (
	ErrUnknownProblem = errors.New("unknown problem")
	// ErrForeignSolution is returned when a solution is used through a
	// problem it does not belong to.
	ErrForeignSolution = errors.New("solution belongs to another problem")
)

// ResolverProblem is a set of constraints the resolver could not satisfy,
// with the solutions it found, best first.
type ResolverProblem struct {
	id          uuid.UUID
	description string
	details     string
	capability  *capability.Capability
	item        *pool.Item
	solutions   []*ProblemSolution
}

type ProblemOption func(*ResolverProblem)

// WithCapability names the capability that could not be satisfied.
func WithCapability(c capability.Capability) ProblemOption {
	return func(p *ResolverProblem) {
		p.capability = &c
	}
}

// WithItem names the item the problem is about.
func WithItem(it *pool.Item) ProblemOption {
	return func(p *ResolverProblem) {
		p.item = it
	}
}

// NewProblem creates a problem with a fresh random ID.
func NewProblem(description, details string, opts ...ProblemOption) *ResolverProblem {
	p := &ResolverProblem{
		id:          uuid.New(),
		description: description,
		details:     details,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ResolverProblem) ID() uuid.UUID { return p.id }
func (p *ResolverProblem) Description() string { return p.description }
func (p *ResolverProblem) Details() string { return p.details }
func (p *ResolverProblem) Item() *pool.Item { return p.item }

func (p *ResolverProblem) Capability() (capability.Capability, bool) {
	if p.capability == nil {
		return capability.Capability{}, false
	}
	return *p.capability, true
}

// AddSolution appends s to the solutions of p. A solution belongs to one
// problem only.
func (p *ResolverProblem) AddSolution(s *ProblemSolution) error {
	if s == nil {
		return errors.New("nil solution")
	}
	if s.problem != nil && s.problem != p {
		return errors.Wrapf(ErrForeignSolution, "%q", s)
	}
	if s.problem == p {
		return nil
	}
	s.problem = p
	p.solutions = append(p.solutions, s)
	return nil
}

// Solutions returns the solutions of p, best first.
func (p *ResolverProblem) Solutions() []*ProblemSolution {
	return append([]*ProblemSolution(nil), p.solutions...)
}

// Solution returns the solution at index i.
func (p *ResolverProblem) Solution(i int) (*ProblemSolution, error) {
	if i < 0 || i >= len(p.solutions) {
		return nil, errors.Errorf("problem %s has no solution %d", p.id, i)
	}
	return p.solutions[i], nil
}

func (p *ResolverProblem) String() string {
	return p.description
}
