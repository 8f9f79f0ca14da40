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
	"testing"
)

func TestMatchCmd(t *testing.T) {
	tests := []cmdTestCase{{
		name:     "versioned requirement satisfied",
		cmd:      "match 'libX >= 2.0' 'libX = 2.1-3' --no-emojis --no-colors",
		contains: []string{"yes"},
	}, {
		name:     "versioned requirement not satisfied",
		cmd:      "match 'libX >= 2.0' 'libX = 1.9' --no-emojis --no-colors",
		contains: []string{"no"},
		excludes: []string{"yes"},
	}, {
		name:     "different names",
		cmd:      "match libX libY --no-emojis --no-colors",
		contains: []string{"no"},
	}, {
		name:     "semver range",
		cmd:      "match 'libX ^1.2' 'libX = 1.4.0' --no-emojis --no-colors",
		contains: []string{"yes"},
	}, {
		name:     "compatible architecture",
		cmd:      "match foo.x86_64 foo.i686 --no-emojis --no-colors",
		contains: []string{"yes"},
	}, {
		name:     "incompatible architecture",
		cmd:      "match foo.i686 foo.x86_64 --no-emojis --no-colors",
		contains: []string{"no"},
	}, {
		name:     "declared architecture compatibility",
		cmd:      "match foo.i686 foo.x86_64 --arch-compat i686=x86_64 --no-emojis --no-colors",
		contains: []string{"yes"},
	}, {
		name:      "malformed arch compatibility",
		cmd:       "match foo.i686 foo.x86_64 --arch-compat i686",
		wantError: true,
	}, {
		name:      "malformed capability",
		cmd:       "match 'libX >= ' libX",
		wantError: true,
	}, {
		name:      "missing argument",
		cmd:       "match libX",
		wantError: true,
	}}
	runTestCmd(t, tests)
}

func TestCompareCmd(t *testing.T) {
	tests := []cmdTestCase{{
		name:     "epoch wins",
		cmd:      "compare 1:1.0-1 2.0",
		contains: []string{">"},
	}, {
		name:     "older release",
		cmd:      "compare 1.0-1 1.0-2",
		contains: []string{"<"},
	}, {
		name:     "equal",
		cmd:      "compare 1.0 1.0",
		contains: []string{"="},
	}, {
		name:      "malformed edition",
		cmd:       "compare 1.0- 1.0",
		wantError: true,
	}}
	runTestCmd(t, tests)
}
