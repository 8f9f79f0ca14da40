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
	"fmt"
	"io"

	"github.com/Masterminds/log-go"
	logio "github.com/Masterminds/log-go/io"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/respool/pkg/solver"
)

const planDesc = `
This command loads a scenario, a pool of resolvables and the problems a
resolver reported on it, accepts the given solutions and prints the
resulting transaction plan.

Problems are referred to by their name in the scenario, or by their
position starting at 0. Solutions are referred to by their position:

    $ respool plan scenario.yaml --accept foo-vs-bar:1 --ignore 2

Accepting a solution that contradicts an earlier one fails, and names both
solutions. Problems neither accepted nor ignored are listed with their
solutions.
`

type planOptions struct {
	scenario   string
	accept     []choice
	ignore     []string
	outputMode solver.OutputMode
}

func newPlanCmd(logger log.Logger) *cobra.Command {
	o := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan SCENARIO",
		Short: "accept solutions for a scenario and print the transaction plan",
		Long:  planDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.scenario = args[0]
			wInfo := logio.NewWriter(logger, log.InfoLevel)
			return o.run(wInfo, logger)
		},
	}

	f := cmd.Flags()
	f.Var(acceptValue{&o.accept}, "accept", "accept a solution, as problem:index (can specify multiple)")
	f.StringArrayVar(&o.ignore, "ignore", nil, "ignore a problem (can specify multiple)")
	bindOutputFlag(cmd, &o.outputMode)

	return cmd
}

func (o *planOptions) run(out io.Writer, logger log.Logger) error {
	sc, err := loadScenario(o.scenario)
	if err != nil {
		return err
	}
	s, names, err := sc.build(logger)
	if err != nil {
		return err
	}

	for _, c := range o.accept {
		id, ok := names[c.problem]
		if !ok {
			return errors.Wrap(solver.ErrUnknownProblem, c.problem)
		}
		if err := s.Accept(id, c.solution); err != nil {
			return errors.Wrapf(err, "accepting solution %d of %s", c.solution, c.problem)
		}
	}
	for _, name := range o.ignore {
		id, ok := names[name]
		if !ok {
			return errors.Wrap(solver.ErrUnknownProblem, name)
		}
		if err := s.Ignore(id); err != nil {
			return err
		}
	}

	res, err := s.FormatOutput(o.outputMode)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(out, res)

	if o.outputMode == solver.Table {
		for _, p := range s.Problems() {
			logger.Warn(printer().Problem(p.Description()))
		}
	}
	return nil
}
