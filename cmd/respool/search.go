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
	"github.com/Masterminds/log-go"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/respool/pkg/search"
)

const searchDesc = `
Search the pool of a scenario for resolvables, by keyword or regular
expression over their names and summaries. Without keyword every resolvable
is listed.

Use --provides to keep only the resolvables providing a capability that
matches a requirement:

    $ respool search scenario.yaml --provides 'libfoo >= 2'
`

func newSearchCmd(logger log.Logger) *cobra.Command {
	o := &search.Options{}

	cmd := &cobra.Command{
		Use:   "search SCENARIO [KEYWORD]",
		Short: "search the pool of a scenario for resolvables",
		Long:  searchDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			s, _, err := sc.build(logger)
			if err != nil {
				return err
			}
			return o.Run(logger, s.Pool(), args[1:])
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&o.Regexp, "regexp", "r", false, "use regular expressions for searching")
	f.BoolVarP(&o.Versions, "versions", "l", false, "show every edition of a resolvable, not only the newest")
	f.StringVar(&o.Provides, "provides", "", "only show resolvables providing a capability matching this requirement")
	f.UintVar(&o.MaxColWidth, "max-col-width", 50, "maximum column width for output table")
	bindOutputFlag(cmd, &o.OutputMode)

	return cmd
}
