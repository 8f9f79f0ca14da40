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

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/respool/pkg/cli"
	"github.com/rancher-sandbox/respool/pkg/eyecandy"
)

var settings = cli.New()

func printer() eyecandy.Printer {
	return eyecandy.Printer{NoEmojis: settings.NoEmojis, NoColors: settings.NoColors}
}

func main() {
	logger := logcli.NewStandard()
	log.Current = logger

	cmd, err := newRootCmd(logger, os.Args[1:])
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	cobra.OnInitialize(func() {
		if settings.Debug {
			logger.Level = log.DebugLevel
		}
		if settings.NoColors {
			color.NoColor = true // disable colorized output
		}
	})

	if err := cmd.Execute(); err != nil {
		logger.Debugf("%+v", err)
		os.Exit(1)
	}
}
