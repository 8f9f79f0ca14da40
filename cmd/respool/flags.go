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
	"strconv"
	"strings"

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/respool/pkg/solver"
)

const outputFlag = "output"

// bindOutputFlag will add the output flag to the given command and bind the
// value to the given mode pointer
func bindOutputFlag(cmd *cobra.Command, varRef *solver.OutputMode) {
	cmd.Flags().VarP(newOutputValue(solver.Table, varRef), outputFlag, "o",
		fmt.Sprintf("prints the output in the specified format. Allowed values: %s", strings.Join(solver.OutputModes(), ", ")))

	err := cmd.RegisterFlagCompletionFunc(outputFlag, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var modeNames []string
		for _, mode := range solver.OutputModes() {
			if strings.HasPrefix(mode, toComplete) {
				modeNames = append(modeNames, mode)
			}
		}
		return modeNames, cobra.ShellCompDirectiveNoFileComp
	})

	if err != nil {
		log.Fatal(err)
	}
}

type outputValue solver.OutputMode

func newOutputValue(defaultValue solver.OutputMode, p *solver.OutputMode) *outputValue {
	*p = defaultValue
	return (*outputValue)(p)
}

func (o *outputValue) String() string {
	return solver.OutputMode(*o).String()
}

func (o *outputValue) Type() string {
	return "format"
}

func (o *outputValue) Set(s string) error {
	mode, err := solver.ParseOutputMode(s)
	if err != nil {
		return err
	}
	*o = outputValue(mode)
	return nil
}

// choice is a problem, by name or position in the scenario, and the index
// of the solution to accept for it.
type choice struct {
	problem  string
	solution int
}

// acceptValue collects repeated --accept problem:n flags.
type acceptValue struct {
	choices *[]choice
}

func (a acceptValue) String() string {
	if a.choices == nil {
		return ""
	}
	parts := make([]string, 0, len(*a.choices))
	for _, c := range *a.choices {
		parts = append(parts, fmt.Sprintf("%s:%d", c.problem, c.solution))
	}
	return strings.Join(parts, ",")
}

func (a acceptValue) Type() string {
	return "problem:solution"
}

func (a acceptValue) Set(s string) error {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return errors.Errorf("%q must be formatted as problem:solution", s)
	}
	n, err := strconv.Atoi(s[i+1:])
	if err != nil || n < 0 {
		return errors.Errorf("%q: solution must be a non-negative index", s)
	}
	*a.choices = append(*a.choices, choice{problem: s[:i], solution: n})
	return nil
}
