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
	"errors"

	"github.com/Masterminds/log-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var globalUsage = `Inspect and settle resolver problems over a pool of resolvables.

Common actions for respool:

- respool match:    match a required capability against a provided one
- respool compare:  compare two editions
- respool plan:     load a scenario, accept solutions and print the plan
- respool search:   search the pool of a scenario

Environment variables:

| Name                | Description                          |
|---------------------|--------------------------------------|
| $RESPOOL_DEBUG      | indicate whether or not to print debug output |
| $RESPOOL_NO_COLORS  | disable colorized output             |
| $RESPOOL_NO_EMOJIS  | disable emojis in output             |
`

func newRootCmd(logger log.Logger, args []string) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:          "respool",
		Short:        "A resolver problem and transaction plan toolkit",
		Long:         globalUsage,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	settings.AddFlags(flags)

	cmd.AddCommand(
		newMatchCmd(logger),
		newCompareCmd(logger),
		newPlanCmd(logger),
		newSearchCmd(logger),
		newVersionCmd(logger),
	)

	flags.ParseErrorsWhitelist.UnknownFlags = true
	err := flags.Parse(args)
	if err != nil && !errors.Is(err, pflag.ErrHelp) {
		return nil, err
	}

	return cmd, nil
}
