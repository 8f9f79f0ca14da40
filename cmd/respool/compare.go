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

	"github.com/rancher-sandbox/respool/pkg/edition"
)

const compareDesc = `
This command compares two editions, [epoch:]version[-release], and prints
<, = or >, as the first is older, equal or newer than the second.

    $ respool compare 1:1.0-1 2.0
    >
`

func newCompareCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare EDITION EDITION",
		Short: "compare two editions",
		Long:  compareDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wInfo := logio.NewWriter(logger, log.InfoLevel)
			return runCompare(wInfo, args[0], args[1])
		},
	}
	return cmd
}

func runCompare(out io.Writer, a, b string) error {
	ea, err := edition.Parse(a)
	if err != nil {
		return errors.Wrap(err, "first edition")
	}
	eb, err := edition.Parse(b)
	if err != nil {
		return errors.Wrap(err, "second edition")
	}

	sign := "="
	switch c := edition.Compare(ea, eb); {
	case c < 0:
		sign = "<"
	case c > 0:
		sign = ">"
	}
	_, _ = fmt.Fprintln(out, sign)
	return nil
}
