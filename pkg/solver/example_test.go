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
	"errors"
	"fmt"

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"

	"github.com/rancher-sandbox/respool/pkg/pool"
	"github.com/rancher-sandbox/respool/pkg/resolvable"
)

func ExampleSession() {

	// create our own Logger that satisfies impl/cli.Logger, but with a buffer for tests
	buf := new(bytes.Buffer)
	logger := logcli.NewStandard()
	logger.InfoOut = buf
	logger.WarnOut = buf
	logger.ErrorOut = buf
	logger.DebugOut = buf
	log.Current = logger

	p := pool.New(logger)
	// installed on the system:
	installedfoo, _ := p.Add(resolvable.NewPackageMock("installedfoo", "1.0-1", nil, []string{"libfoo = 1"}), pool.Installed)
	lockedbar, _ := p.Add(resolvable.NewPackageMock("lockedbar", "2.0-3", nil, nil), pool.Locked)
	// wanted by the user, conflicting with both:
	wantedbaz, _ := p.Add(resolvable.NewPackageMock("wantedbaz", "1.0-1", []string{"libfoo >= 2"}, nil), pool.CandidateInstall)

	s := NewSession(p, logger)
	problem := NewProblem("wantedbaz-1.0-1.x86_64 conflicts with installed packages", "")
	uninstall, _ := NewUninstallBatchSolution([]*pool.Item{installedfoo, lockedbar})
	dontInstall, _ := NewKeepSolution(wantedbaz)
	_ = problem.AddSolution(uninstall)
	_ = problem.AddSolution(dontInstall)
	s.AddProblem(problem)

	fmt.Print(uninstall.Details())

	// lockedbar is locked, the first solution cannot be taken
	err := s.Accept(problem.ID(), 0)
	fmt.Println(errors.Is(err, pool.ErrLockViolation))

	if err := s.Accept(problem.ID(), 1); err != nil {
		fmt.Println(err)
	}
	for _, step := range s.Plan().Finalize() {
		fmt.Printf("%s %s\n", step.Ident, step.State)
	}
	fmt.Println(s.Result().Status)

	// Output:
	// delete installedfoo-1.0-1.x86_64
	// delete lockedbar-2.0-3.x86_64
	// true
	// wantedbaz-1.0-1.x86_64 unspecified
	// resolved
}
