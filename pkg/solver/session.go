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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/log-go"
	"github.com/google/uuid"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/rancher-sandbox/respool/pkg/pool"
)

// Session is one resolution run: a pool, the plan being built and the
// problems reported for it. It is meant to be driven by a single control
// loop; use Fork for concurrent what-if runs.
type Session struct {
	pool     *pool.Pool
	plan     *TransactionPlan
	problems []*ResolverProblem
	// closed maps the problems solved or ignored to the first solution
	// taken, nil when ignored.
	closed map[uuid.UUID]*ProblemSolution
	logger log.Logger
}

// ResultSet is the outcome of a session.
// It will be marshalled into Yaml and Json.
type ResultSet struct {
	Status     string        `json:"status" yaml:"status"`
	ToInstall  []Step        `json:"toInstall" yaml:"toInstall"`
	ToRemove   []Step        `json:"toRemove" yaml:"toRemove"`
	Locked     []Step        `json:"locked" yaml:"locked"`
	Unchanged  []Step        `json:"unchanged" yaml:"unchanged"`
	Accepted   []string      `json:"accepted" yaml:"accepted"`
	Unresolved []ProblemView `json:"unresolved" yaml:"unresolved"`
	Digest     string        `json:"digest" yaml:"digest"`
}

// ProblemView is the printable form of an open problem.
type ProblemView struct {
	ID          string   `json:"id" yaml:"id"`
	Description string   `json:"description" yaml:"description"`
	Details     string   `json:"details,omitempty" yaml:"details,omitempty"`
	Solutions   []string `json:"solutions" yaml:"solutions"`
}

const (
	StatusResolved   = "resolved"
	StatusUnresolved = "unresolved"
)

type OutputMode int

const (
	JSON OutputMode = iota
	YAML
	Table
)

var outputModeNames = [...]string{
	JSON:  "json",
	YAML:  "yaml",
	Table: "table",
}

// OutputModes returns the names of all output modes.
func OutputModes() []string {
	return append([]string(nil), outputModeNames[:]...)
}

func (o OutputMode) String() string {
	if o < JSON || o > Table {
		return "unknown"
	}
	return outputModeNames[o]
}

// ParseOutputMode parses json, yaml or table.
func ParseOutputMode(s string) (OutputMode, error) {
	for o, name := range outputModeNames {
		if strings.EqualFold(s, name) {
			return OutputMode(o), nil
		}
	}
	return Table, errors.Errorf("unknown output format %q", s)
}

// NewSession starts a session over p with an empty plan.
func NewSession(p *pool.Pool, logger log.Logger) *Session {
	return &Session{
		pool:   p,
		plan:   NewPlan(p, logger),
		closed: make(map[uuid.UUID]*ProblemSolution),
		logger: logger,
	}
}

func (s *Session) Pool() *pool.Pool { return s.pool }
func (s *Session) Plan() *TransactionPlan { return s.plan }

// AddProblem reports a problem to the session.
func (s *Session) AddProblem(p *ResolverProblem) {
	s.logger.Debugf("problem %s: %s", p.ID(), p.Description())
	s.problems = append(s.problems, p)
}

// Problems returns the problems neither solved nor ignored, in the order
// they were reported.
func (s *Session) Problems() []*ResolverProblem {
	var open []*ResolverProblem
	for _, p := range s.problems {
		if _, ok := s.closed[p.ID()]; !ok {
			open = append(open, p)
		}
	}
	return open
}

// Problem finds a reported problem by ID, open or not.
func (s *Session) Problem(id uuid.UUID) (*ResolverProblem, error) {
	for _, p := range s.problems {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, errors.Wrap(ErrUnknownProblem, id.String())
}

// Accept applies the solution at index of problem id, and closes the
// problem. Another solution of a closed problem may still be accepted when
// the plan agrees with it.
func (s *Session) Accept(id uuid.UUID, index int) error {
	p, err := s.Problem(id)
	if err != nil {
		return err
	}
	sol, err := p.Solution(index)
	if err != nil {
		return err
	}
	return s.accept(p, sol)
}

// AcceptSolution applies sol, which must be a solution of problem id.
func (s *Session) AcceptSolution(id uuid.UUID, sol *ProblemSolution) error {
	p, err := s.Problem(id)
	if err != nil {
		return err
	}
	if sol == nil || sol.Problem() != p {
		return errors.Wrapf(ErrForeignSolution, "problem %s", id)
	}
	return s.accept(p, sol)
}

// accept applies sol to the plan. Siblings of a solution already taken for
// p are applied too: the plan decides whether they agree with it.
func (s *Session) accept(p *ResolverProblem, sol *ProblemSolution) error {
	taken := s.closed[p.ID()]
	if taken == sol {
		return nil
	}
	if err := s.plan.Apply(sol); err != nil {
		return err
	}
	if taken == nil {
		s.closed[p.ID()] = sol
	}
	s.logger.Infof("%s: %s", p.Description(), sol.Description())
	return nil
}

// Ignore closes problem id without applying any solution.
func (s *Session) Ignore(id uuid.UUID) error {
	p, err := s.Problem(id)
	if err != nil {
		return err
	}
	if _, ok := s.closed[p.ID()]; !ok {
		s.logger.Debugf("ignoring problem %s", id)
		s.closed[p.ID()] = nil
	}
	return nil
}

// Fork returns an independent copy of s: its own pool clone and plan. The
// problems and their solutions are shared, as they are immutable.
func (s *Session) Fork() *Session {
	p := s.pool.Clone()
	f := &Session{
		pool:     p,
		plan:     s.plan.Clone(p),
		problems: append([]*ResolverProblem(nil), s.problems...),
		closed:   make(map[uuid.UUID]*ProblemSolution, len(s.closed)),
		logger:   s.logger,
	}
	for id, sol := range s.closed {
		f.closed[id] = sol
	}
	return f
}

// Result summarizes the session.
func (s *Session) Result() ResultSet {
	rs := ResultSet{
		Status:     StatusResolved,
		ToInstall:  []Step{},
		ToRemove:   []Step{},
		Locked:     []Step{},
		Unchanged:  []Step{},
		Accepted:   []string{},
		Unresolved: []ProblemView{},
		Digest:     fmt.Sprintf("%016x", s.plan.Digest()),
	}
	for _, step := range s.plan.Finalize() {
		switch step.State {
		case pool.CandidateInstall:
			rs.ToInstall = append(rs.ToInstall, step)
		case pool.CandidateRemove:
			rs.ToRemove = append(rs.ToRemove, step)
		case pool.Locked:
			rs.Locked = append(rs.Locked, step)
		default:
			rs.Unchanged = append(rs.Unchanged, step)
		}
	}
	for _, sol := range s.plan.Accepted() {
		rs.Accepted = append(rs.Accepted, sol.Description())
	}
	for _, p := range s.Problems() {
		view := ProblemView{
			ID:          p.ID().String(),
			Description: p.Description(),
			Details:     p.Details(),
			Solutions:   []string{},
		}
		for _, sol := range p.Solutions() {
			view.Solutions = append(view.Solutions, sol.Description())
		}
		rs.Unresolved = append(rs.Unresolved, view)
	}
	if len(rs.Unresolved) > 0 {
		rs.Status = StatusUnresolved
	}
	return rs
}

// FormatOutput renders the result of the session.
func (s *Session) FormatOutput(t OutputMode) (string, error) {
	rs := s.Result()
	var sb strings.Builder
	switch t {
	case Table:
		sb.WriteString(fmt.Sprintf("Status: %s\n", rs.Status))
		if steps := s.plan.Finalize(); len(steps) > 0 {
			table := uitable.New()
			table.AddRow("ACTION", "KIND", "NAME", "EDITION", "ARCH")
			for _, step := range steps {
				table.AddRow(stepVerb(step.State), step.Ident.Kind, step.Ident.Name, step.Ident.Edition, step.Ident.Arch)
			}
			sb.WriteString(table.String())
			sb.WriteString("\n")
		}
		if len(rs.Unresolved) > 0 {
			sb.WriteString("Problems:\n")
			for _, p := range rs.Unresolved {
				sb.WriteString(fmt.Sprintf("\t%s %s\n", p.ID, p.Description))
				for i, sol := range p.Solutions {
					sb.WriteString(fmt.Sprintf("\t\t%d: %s\n", i, sol))
				}
			}
		}
	case YAML:
		o, err := yaml.Marshal(rs)
		if err != nil {
			return "", errors.Wrap(err, "marshalling result")
		}
		sb.Write(o)
	case JSON:
		buffer := &bytes.Buffer{}
		encoder := json.NewEncoder(buffer)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rs); err != nil {
			return "", errors.Wrap(err, "marshalling result")
		}
		sb.Write(buffer.Bytes())
	default:
		return "", errors.Errorf("unknown output mode %d", t)
	}
	return sb.String(), nil
}

func stepVerb(st pool.SelectionState) string {
	switch st {
	case pool.CandidateInstall:
		return "install"
	case pool.CandidateRemove:
		return "delete"
	case pool.Locked:
		return "lock"
	case pool.Installed:
		return "keep"
	}
	return "reset"
}
