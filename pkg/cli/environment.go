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

/*
Package cli describes the operating environment of the respool command.

Settings come from environment variables and are overridden by the
matching global flags.
*/
package cli

import (
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

const (
	envDebug    = "RESPOOL_DEBUG"
	envNoColors = "RESPOOL_NO_COLORS"
	envNoEmojis = "RESPOOL_NO_EMOJIS"
)

// EnvSettings describes all of the environment settings.
type EnvSettings struct {
	// Debug indicates whether or not respool is running in debug mode.
	Debug    bool
	NoColors bool
	NoEmojis bool
}

func New() *EnvSettings {
	env := &EnvSettings{}
	env.Debug = envBool(envDebug)
	env.NoColors = envBool(envNoColors)
	env.NoEmojis = envBool(envNoEmojis)
	return env
}

func envBool(name string) bool {
	b, _ := strconv.ParseBool(os.Getenv(name))
	return b
}

// AddFlags binds flags to the given flagset.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
	fs.BoolVar(&s.NoColors, "no-colors", s.NoColors, "disable colors")
	fs.BoolVar(&s.NoEmojis, "no-emojis", s.NoEmojis, "disable emojis")
}

// EnvVars returns the settings as environment variables.
func (s *EnvSettings) EnvVars() map[string]string {
	return map[string]string{
		envDebug:    strconv.FormatBool(s.Debug),
		envNoColors: strconv.FormatBool(s.NoColors),
		envNoEmojis: strconv.FormatBool(s.NoEmojis),
	}
}
