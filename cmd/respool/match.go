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
	"strings"

	"github.com/Masterminds/log-go"
	logio "github.com/Masterminds/log-go/io"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/respool/pkg/capability"
)

const matchDesc = `
This command matches a required capability against a provided one, and
prints yes, no or irrelevant.

Capabilities are written as "name[.arch] [op edition]", where op is one of
=, <, <=, >, >=, != and the edition is [epoch:]version[-release]. A
requirement may instead carry a semver range, "name ^1.2".

    $ respool match 'libX >= 2.0' 'libX = 2.1-3'

The architecture check only applies when both sides name an architecture.
Use --arch-compat to declare which architectures can run on which:

    $ respool match 'foo.x86_64' 'foo.i686' --arch-compat x86_64=i686,i586
`

type matchOptions struct {
	archCompat []string
}

func newMatchCmd(logger log.Logger) *cobra.Command {
	o := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match REQUIREMENT PROVIDED",
		Short: "match a required capability against a provided one",
		Long:  matchDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wInfo := logio.NewWriter(logger, log.InfoLevel)
			return o.run(wInfo, args[0], args[1])
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&o.archCompat, "arch-compat", nil,
		"architectures compatible with an architecture, e.g. x86_64=i686,i586 (can specify multiple)")

	return cmd
}

func (o *matchOptions) run(out io.Writer, requirement, provided string) error {
	parser := capability.NewParser()
	req, err := parser.Parse(requirement)
	if err != nil {
		return errors.Wrap(err, "requirement")
	}
	prov, err := parser.Parse(provided)
	if err != nil {
		return errors.Wrap(err, "provided capability")
	}

	var opts []capability.MatcherOption
	for _, entry := range o.archCompat {
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return errors.Errorf("arch compatibility %q must be formatted as arch=compat[,compat]", entry)
		}
		var archs []capability.Arch
		for _, a := range strings.Split(kv[1], ",") {
			if a = strings.TrimSpace(a); a != "" {
				archs = append(archs, capability.Arch(a))
			}
		}
		opts = append(opts, capability.WithArchCompat(capability.Arch(kv[0]), archs...))
	}

	m := capability.NewMatcher(opts...)
	_, _ = fmt.Fprintln(out, printer().Verdict(m.Match(req, prov)))
	return nil
}
