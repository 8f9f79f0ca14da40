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

package main

import (
	"os"
	"strconv"

	"github.com/Masterminds/log-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/rancher-sandbox/respool/pkg/capability"
	"github.com/rancher-sandbox/respool/pkg/pool"
	"github.com/rancher-sandbox/respool/pkg/resolvable"
	"github.com/rancher-sandbox/respool/pkg/solver"
)

// scenario is the file format read by the plan command: the resolvables of
// a pool with their seed state, and the problems a resolver reported on it.
//
//	records:
//	- kind: package
//	  name: foo
//	  edition: 1.0-1
//	  arch: x86_64
//	  state: installed
//	  summary: the foo package
//	  dependencies:
//	    requires: [libX >= 2.0]
//	problems:
//	- name: foo-vs-bar
//	  description: foo conflicts with bar
//	  item: package:foo-1.0-1.x86_64
//	  solutions:
//	  - uninstall: [package:foo-1.0-1.x86_64]
type scenario struct {
	Records  []scenarioRecord  `yaml:"records"`
	Problems []scenarioProblem `yaml:"problems"`
}

type scenarioRecord struct {
	Kind         resolvable.Kind     `yaml:"kind"`
	Name         string              `yaml:"name"`
	Edition      string              `yaml:"edition"`
	Arch         string              `yaml:"arch"`
	State        pool.SelectionState `yaml:"state"`
	Summary      string              `yaml:"summary"`
	Description  string              `yaml:"description"`
	Vendor       string              `yaml:"vendor"`
	SharedData   string              `yaml:"sharedData"`
	Dependencies map[string][]string `yaml:"dependencies"`
	// PatchID and ProductType feed the mandatory details of those kinds.
	PatchID     string `yaml:"patchId"`
	ProductType string `yaml:"productType"`
}

type scenarioProblem struct {
	// Name refers to the problem on the command line.
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Details     string             `yaml:"details"`
	Capability  string             `yaml:"capability"`
	Item        string             `yaml:"item"`
	Solutions   []scenarioSolution `yaml:"solutions"`
}

// scenarioSolution is either one of the shorthand forms, naming item keys,
// or a custom solution with its own actions.
type scenarioSolution struct {
	Uninstall   []string         `yaml:"uninstall"`
	Install     string           `yaml:"install"`
	Keep        string           `yaml:"keep"`
	Lock        string           `yaml:"lock"`
	Description string           `yaml:"description"`
	Details     string           `yaml:"details"`
	Actions     []scenarioAction `yaml:"actions"`
}

type scenarioAction struct {
	Action string `yaml:"action"`
	Item   string `yaml:"item"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scenario")
	}
	sc := &scenario{}
	if err := yaml.UnmarshalStrict(data, sc); err != nil {
		return nil, errors.Wrapf(err, "parsing scenario %s", path)
	}
	return sc, nil
}

// build fills a new session with the records and problems of sc. The
// returned map resolves problem names, and problem positions, to IDs.
func (sc *scenario) build(logger log.Logger) (*solver.Session, map[string]uuid.UUID, error) {
	parser := capability.NewParser()

	entries := make([]pool.Entry, 0, len(sc.Records))
	for _, rec := range sc.Records {
		r, err := rec.record(parser)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, pool.Entry{Record: r, Seed: rec.State})
	}

	p := pool.New(logger)
	if _, err := p.AddAll(entries); err != nil {
		return nil, nil, errors.Wrap(err, "loading pool")
	}
	p.DebugPrint(logger)

	s := solver.NewSession(p, logger)
	names := make(map[string]uuid.UUID)
	for i, sp := range sc.Problems {
		problem, err := sp.problem(p, parser)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "problem %d", i)
		}
		s.AddProblem(problem)
		names[strconv.Itoa(i)] = problem.ID()
		if sp.Name != "" {
			if _, dup := names[sp.Name]; dup {
				return nil, nil, errors.Errorf("problem name %q used twice", sp.Name)
			}
			names[sp.Name] = problem.ID()
		}
	}
	return s, names, nil
}

func (rec scenarioRecord) record(parser *capability.Parser) (*resolvable.Record, error) {
	var details resolvable.Details
	switch rec.Kind {
	case resolvable.Patch:
		details = &resolvable.PatchDetails{ID: rec.PatchID}
	case resolvable.Product:
		details = &resolvable.ProductDetails{Type: rec.ProductType}
	}

	arch := rec.Arch
	if arch == "" {
		arch = string(capability.Noarch)
	}
	r, err := resolvable.NewFromStrings(rec.Kind, rec.Name, rec.Edition, arch, details)
	if err != nil {
		return nil, err
	}
	if err := r.SetCommon(resolvable.Common{
		Summary:     rec.Summary,
		Description: rec.Description,
		Vendor:      rec.Vendor,
	}); err != nil {
		return nil, err
	}
	if err := r.SetSharedDataTag(rec.SharedData); err != nil {
		return nil, err
	}
	for depName, caps := range rec.Dependencies {
		dep, err := capability.ParseDep(depName)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", r)
		}
		for _, c := range caps {
			parsed, err := parser.Parse(c)
			if err != nil {
				return nil, errors.Wrapf(err, "%s %s", r, dep)
			}
			if err := r.AddDependency(dep, parsed); err != nil {
				return nil, err
			}
		}
	}
	r.Seal()
	return r, nil
}

func (sp scenarioProblem) problem(p *pool.Pool, parser *capability.Parser) (*solver.ResolverProblem, error) {
	var opts []solver.ProblemOption
	if sp.Capability != "" {
		c, err := parser.Parse(sp.Capability)
		if err != nil {
			return nil, err
		}
		opts = append(opts, solver.WithCapability(c))
	}
	if sp.Item != "" {
		it, err := lookup(p, sp.Item)
		if err != nil {
			return nil, err
		}
		opts = append(opts, solver.WithItem(it))
	}

	problem := solver.NewProblem(sp.Description, sp.Details, opts...)
	for i, ss := range sp.Solutions {
		sol, err := ss.solution(p)
		if err != nil {
			return nil, errors.Wrapf(err, "solution %d", i)
		}
		if err := problem.AddSolution(sol); err != nil {
			return nil, err
		}
	}
	return problem, nil
}

func (ss scenarioSolution) solution(p *pool.Pool) (*solver.ProblemSolution, error) {
	switch {
	case len(ss.Uninstall) == 1:
		it, err := lookup(p, ss.Uninstall[0])
		if err != nil {
			return nil, err
		}
		return solver.NewUninstallSolution(it)
	case len(ss.Uninstall) > 1:
		items := make([]*pool.Item, 0, len(ss.Uninstall))
		for _, key := range ss.Uninstall {
			it, err := lookup(p, key)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		return solver.NewUninstallBatchSolution(items)
	case ss.Install != "":
		return withItem(p, ss.Install, solver.NewInstallSolution)
	case ss.Keep != "":
		return withItem(p, ss.Keep, solver.NewKeepSolution)
	case ss.Lock != "":
		return withItem(p, ss.Lock, solver.NewLockSolution)
	}

	actions := make([]solver.SolutionAction, 0, len(ss.Actions))
	for _, a := range ss.Actions {
		kind, err := solver.ParseActionKind(a.Action)
		if err != nil {
			return nil, err
		}
		it, err := lookup(p, a.Item)
		if err != nil {
			return nil, err
		}
		actions = append(actions, solver.SolutionAction{Kind: kind, Item: it})
	}
	if len(actions) == 0 {
		return nil, errors.New("solution without actions")
	}
	return solver.NewSolution(ss.Description, ss.Details, actions...)
}

func withItem(p *pool.Pool, key string, build func(*pool.Item) (*solver.ProblemSolution, error)) (*solver.ProblemSolution, error) {
	it, err := lookup(p, key)
	if err != nil {
		return nil, err
	}
	return build(it)
}

func lookup(p *pool.Pool, key string) (*pool.Item, error) {
	it, ok := p.Lookup(key)
	if !ok {
		return nil, errors.Wrap(pool.ErrUnknownItem, key)
	}
	return it, nil
}
