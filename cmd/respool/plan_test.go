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

func TestPlanCmd(t *testing.T) {
	tests := []cmdTestCase{{
		name: "nothing accepted",
		cmd:  "plan testdata/scenario.yaml --no-emojis --no-colors",
		contains: []string{
			"Status: unresolved",
			"nothing provides libfoo >= 2 needed by baz-1.0-1.x86_64",
			"0: do not install baz",
			"1: Delete conflicting resolvables.",
			"2: keep foo",
			"1: unlock bar",
		},
	}, {
		name:     "accept by name and ignore by position",
		cmd:      "plan testdata/scenario.yaml --accept baz-needs-libfoo:1 --ignore 1 -o yaml",
		contains: []string{"status: resolved", "name: foo-lang", "state: remove", "Delete conflicting resolvables."},
	}, {
		name:     "unlock as a custom solution",
		cmd:      "plan testdata/scenario.yaml --accept bar-locked:1 -o json",
		contains: []string{`"status": "unresolved"`, `"unlock bar"`, `"state": "unspecified"`},
	}, {
		name:     "table of steps",
		cmd:      "plan testdata/scenario.yaml --accept 0:0 --accept 1:1 --no-emojis --no-colors",
		contains: []string{"Status: resolved", "ACTION", "reset", "baz"},
		excludes: []string{"Problems:"},
	}, {
		name:      "locked item cannot be deleted",
		cmd:       "plan testdata/scenario.yaml --accept bar-locked:0",
		wantError: true,
	}, {
		name:     "sibling solutions that agree",
		cmd:      "plan testdata/scenario.yaml --accept 0:1 --accept baz-needs-libfoo:0 --ignore 1 -o yaml",
		contains: []string{"status: resolved", "do not install baz", "Delete conflicting resolvables."},
	}, {
		name:      "sibling solution contradicting the plan",
		cmd:       "plan testdata/scenario.yaml --accept 0:1 --accept baz-needs-libfoo:2",
		wantError: true,
	}, {
		name:      "unknown problem",
		cmd:       "plan testdata/scenario.yaml --accept nope:0",
		wantError: true,
	}, {
		name:      "unknown solution",
		cmd:       "plan testdata/scenario.yaml --accept 0:7",
		wantError: true,
	}, {
		name:      "malformed choice",
		cmd:       "plan testdata/scenario.yaml --accept 0",
		wantError: true,
	}, {
		name:      "unknown output format",
		cmd:       "plan testdata/scenario.yaml -o xml",
		wantError: true,
	}, {
		name:      "missing scenario",
		cmd:       "plan testdata/nope.yaml",
		wantError: true,
	}, {
		name:      "unresolved shared data",
		cmd:       "plan testdata/broken.yaml",
		wantError: true,
	}}
	runTestCmd(t, tests)
}

func TestAcceptValue(t *testing.T) {
	var choices []choice
	v := acceptValue{&choices}
	for _, s := range []string{"foo:1", "a:b:0"} {
		if err := v.Set(s); err != nil {
			t.Fatalf("unexpected error for %q: %s", s, err)
		}
	}
	for _, s := range []string{":1", "foo", "foo:-1", "foo:x"} {
		if err := v.Set(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
	if got, want := v.String(), "foo:1,a:b:0"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
