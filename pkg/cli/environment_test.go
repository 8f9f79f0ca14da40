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

package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestEnvSettings(t *testing.T) {
	tests := []struct {
		name string

		// input
		args    string
		envvars map[string]string

		// expected values
		debug    bool
		noColors bool
		noEmojis bool
	}{
		{
			name: "defaults",
		},
		{
			name:     "with flags set",
			args:     "--debug --no-colors --no-emojis",
			debug:    true,
			noColors: true,
			noEmojis: true,
		},
		{
			name:     "with envvars set",
			envvars:  map[string]string{"RESPOOL_DEBUG": "true", "RESPOOL_NO_COLORS": "true"},
			debug:    true,
			noColors: true,
		},
		{
			name:     "with args and envvars set",
			args:     "--debug --no-colors",
			envvars:  map[string]string{"RESPOOL_DEBUG": "false", "RESPOOL_NO_COLORS": "false", "RESPOOL_NO_EMOJIS": "1"},
			debug:    true,
			noColors: true,
			noEmojis: true,
		},
		{
			name:    "unparseable envvars are false",
			envvars: map[string]string{"RESPOOL_DEBUG": "sure"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer resetEnv()()
			is := assert.New(t)

			for k, v := range tt.envvars {
				os.Setenv(k, v)
			}

			flags := pflag.NewFlagSet("testing", pflag.ContinueOnError)

			settings := New()
			settings.AddFlags(flags)
			is.NoError(flags.Parse(strings.Fields(tt.args)))

			is.Equal(tt.debug, settings.Debug, "debug")
			is.Equal(tt.noColors, settings.NoColors, "no colors")
			is.Equal(tt.noEmojis, settings.NoEmojis, "no emojis")
		})
	}
}

func TestEnvVars(t *testing.T) {
	settings := &EnvSettings{Debug: true}
	assert.Equal(t, map[string]string{
		"RESPOOL_DEBUG":     "true",
		"RESPOOL_NO_COLORS": "false",
		"RESPOOL_NO_EMOJIS": "false",
	}, settings.EnvVars())
}

func resetEnv() func() {
	origEnv := os.Environ()

	// ensure any local envvars do not hose us
	for e := range New().EnvVars() {
		os.Unsetenv(e)
	}

	return func() {
		for e := range New().EnvVars() {
			os.Unsetenv(e)
		}
		for _, pair := range origEnv {
			kv := strings.SplitN(pair, "=", 2)
			os.Setenv(kv[0], kv[1])
		}
	}
}
