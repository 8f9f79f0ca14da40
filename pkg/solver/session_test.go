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
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"

	"github.com/rancher-sandbox/respool/pkg/pool"
	"github.com/rancher-sandbox/respool/pkg/resolvable"
)

// newConflictSession has foo and bar installed and conflicting, and baz to
// be installed, with one problem offering to delete either of them.
func newConflictSession(t *testing.T) (*Session, *ResolverProblem, []*pool.Item) {
	t.Helper()
	p, items := newWorld(t, pool.Installed, [2]string{"foo", "1.0"}, [2]string{"bar", "2.0"})
	baz, err := p.Add(resolvable.NewPackageMock("baz", "3.0", nil, nil), pool.CandidateInstall)
	if err != nil {
		t.Fatal(err)
	}
	items = append(items, baz)

	s := NewSession(p, newTestLogger(new(bytes.Buffer)))
	problem := NewProblem("foo-1.0.x86_64 conflicts with bar-2.0.x86_64", "both are installed")
	for _, it := range items[:2] {
		if err := problem.AddSolution(mustSolution(t)(NewUninstallSolution(it))); err != nil {
			t.Fatal(err)
		}
	}
	s.AddProblem(problem)
	return s, problem, items
}

func TestSessionAccept(t *testing.T) {
	is := assert.New(t)
	s, problem, items := newConflictSession(t)

	is.Len(s.Problems(), 1)
	found, err := s.Problem(problem.ID())
	is.NoError(err)
	is.Same(problem, found)
	_, err = s.Problem(uuid.New())
	is.True(errors.Is(err, ErrUnknownProblem))

	is.Error(s.Accept(problem.ID(), 5))
	is.NoError(s.Accept(problem.ID(), 1))
	is.Equal(pool.CandidateRemove, items[1].State())
	is.Empty(s.Problems())

	// the same choice again is a no-op
	is.NoError(s.Accept(problem.ID(), 1))
	is.Len(s.Plan().Accepted(), 1)

	// a sibling that agrees with the plan is applied as well
	is.NoError(s.Accept(problem.ID(), 0))
	is.Equal(pool.CandidateRemove, items[0].State())
	is.Len(s.Plan().Accepted(), 2)
}

func TestSessionAcceptSiblings(t *testing.T) {
	is := assert.New(t)
	p, items := newWorld(t, pool.Installed, [2]string{"bar", "1.0"})
	bar := items[0]
	s := NewSession(p, newTestLogger(new(bytes.Buffer)))

	problem := NewProblem("bar conflicts with baz", "")
	for _, sol := range []*ProblemSolution{
		mustSolution(t)(NewUninstallSolution(bar)),
		mustSolution(t)(NewUninstallBatchSolution([]*pool.Item{bar})),
		mustSolution(t)(NewInstallSolution(bar)),
	} {
		is.NoError(problem.AddSolution(sol))
	}
	s.AddProblem(problem)

	is.NoError(s.Accept(problem.ID(), 0))
	is.NoError(s.Accept(problem.ID(), 1))
	is.Equal(pool.CandidateRemove, bar.State())

	err := s.Accept(problem.ID(), 2)
	var conflict *StateConflictError
	is.True(errors.As(err, &conflict))
	is.Same(problem.Solutions()[0], conflict.RecordedBy)
	is.Same(problem.Solutions()[2], conflict.RequestedBy)
	is.Equal(pool.CandidateRemove, bar.State())
	is.Equal(problem.Solutions()[:2], s.Plan().Accepted())
	is.Empty(s.Problems())

	// an ignored problem can still be solved later
	other := NewProblem("other", "")
	is.NoError(other.AddSolution(mustSolution(t)(NewKeepSolution(bar))))
	s.AddProblem(other)
	is.NoError(s.Ignore(other.ID()))
	is.True(errors.Is(s.Accept(other.ID(), 0), ErrStateConflict))
}

func TestSessionAcceptSolution(t *testing.T) {
	is := assert.New(t)
	s, problem, items := newConflictSession(t)

	other := NewProblem("other", "")
	foreign := mustSolution(t)(NewLockSolution(items[0]))
	is.NoError(other.AddSolution(foreign))
	s.AddProblem(other)

	is.True(errors.Is(s.AcceptSolution(problem.ID(), foreign), ErrForeignSolution))
	is.True(errors.Is(s.AcceptSolution(problem.ID(), nil), ErrForeignSolution))
	is.Equal(pool.Installed, items[0].State())

	is.NoError(s.AcceptSolution(problem.ID(), problem.Solutions()[0]))
	is.Equal(pool.CandidateRemove, items[0].State())

	// foo is now planned for removal, locking it conflicts
	err := s.AcceptSolution(other.ID(), foreign)
	is.True(errors.Is(err, ErrStateConflict))
	is.Len(s.Problems(), 1)
}

func TestSessionIgnore(t *testing.T) {
	is := assert.New(t)
	s, problem, _ := newConflictSession(t)

	is.NoError(s.Ignore(problem.ID()))
	is.NoError(s.Ignore(problem.ID()))
	is.Empty(s.Problems())
	is.True(errors.Is(s.Ignore(uuid.New()), ErrUnknownProblem))
	is.Equal(StatusResolved, s.Result().Status)
}

func TestSessionFork(t *testing.T) {
	is := assert.New(t)
	s, problem, items := newConflictSession(t)

	f := s.Fork()
	is.NoError(f.Accept(problem.ID(), 0))
	is.Empty(f.Problems())
	fooInFork, err := f.Pool().Resolve(items[0])
	is.NoError(err)
	is.Equal(pool.CandidateRemove, fooInFork.State())

	// the original session is untouched
	is.Equal(pool.Installed, items[0].State())
	is.Len(s.Problems(), 1)
	is.Equal(0, s.Plan().Len())

	// and can take another way
	is.NoError(s.Accept(problem.ID(), 1))
	is.Equal(pool.Installed, fooInFork.Seed())
	is.NotEqual(s.Plan().Digest(), f.Plan().Digest())
}

func TestSessionResult(t *testing.T) {
	is := assert.New(t)
	s, problem, items := newConflictSession(t)

	rs := s.Result()
	is.Equal(StatusUnresolved, rs.Status)
	is.Len(rs.Unresolved, 1)
	is.Equal(problem.ID().String(), rs.Unresolved[0].ID)
	is.Equal([]string{"delete foo", "delete bar"}, rs.Unresolved[0].Solutions)

	is.NoError(s.Accept(problem.ID(), 0))
	is.NoError(s.Plan().Apply(mustSolution(t)(NewInstallSolution(items[2]))))
	is.NoError(s.Plan().Apply(mustSolution(t)(NewKeepSolution(items[1]))))

	rs = s.Result()
	is.Equal(StatusResolved, rs.Status)
	is.Empty(rs.Unresolved)
	is.Len(rs.ToRemove, 1)
	is.Equal("foo", rs.ToRemove[0].Ident.Name)
	is.Len(rs.ToInstall, 1)
	is.Equal("baz", rs.ToInstall[0].Ident.Name)
	is.Len(rs.Unchanged, 1)
	is.Empty(rs.Locked)
	is.Equal([]string{"delete foo", "install baz", "keep bar"}, rs.Accepted)
	is.Len(rs.Digest, 16)
}

func TestFormatOutput(t *testing.T) {
	is := assert.New(t)
	s, problem, _ := newConflictSession(t)
	is.NoError(s.Accept(problem.ID(), 0))

	out, err := s.FormatOutput(YAML)
	is.NoError(err)
	var fromYAML map[string]interface{}
	is.NoError(yaml.Unmarshal([]byte(out), &fromYAML))
	is.Equal("resolved", fromYAML["status"])
	is.Contains(out, "name: foo")
	is.Contains(out, "state: remove")

	out, err = s.FormatOutput(JSON)
	is.NoError(err)
	var fromJSON ResultSet
	is.NoError(json.Unmarshal([]byte(out), &fromJSON))
	is.Equal([]string{"delete foo"}, fromJSON.Accepted)

	out, err = s.FormatOutput(Table)
	is.NoError(err)
	is.Contains(out, "Status: resolved")
	is.Contains(out, "ACTION")
	is.Contains(out, "delete")
	is.Contains(out, "foo")

	_, err = s.FormatOutput(OutputMode(7))
	is.Error(err)

	mode, err := ParseOutputMode("YAML")
	is.NoError(err)
	is.Equal(YAML, mode)
	_, err = ParseOutputMode("xml")
	is.Error(err)
}

func TestFormatOutputWithProblems(t *testing.T) {
	is := assert.New(t)
	s, problem, _ := newConflictSession(t)

	out, err := s.FormatOutput(Table)
	is.NoError(err)
	is.Contains(out, "Status: unresolved")
	is.Contains(out, problem.ID().String())
	is.Contains(out, "0: delete foo")
	is.Contains(out, "1: delete bar")
}
