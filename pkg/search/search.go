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
Package search implements the search for resolvables in a pool, by keyword
or by a capability they provide, so it can be reused and composed over.
*/
package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/log-go"
	logio "github.com/Masterminds/log-go/io"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/rancher-sandbox/respool/pkg/capability"
	"github.com/rancher-sandbox/respool/pkg/edition"
	"github.com/rancher-sandbox/respool/pkg/pool"
	"github.com/rancher-sandbox/respool/pkg/solver"
)

// Scores rank how a result matched the query, lower is better.
const (
	scoreExactName = iota
	scoreName
	scoreSummary
)

// Result is an item found by a search.
type Result struct {
	Item  *pool.Item
	Score int
}

// Options is the struct used to search, and stores the different options
// to filter and configure the output
type Options struct {
	// Versions lists every edition of a name instead of the newest only.
	Versions bool
	Regexp   bool
	// Provides keeps only the items providing a capability that matches
	// this requirement.
	Provides    string
	MaxColWidth uint
	OutputMode  solver.OutputMode
}

// Run searches p and prints the found items based of the filters
func (o *Options) Run(logger log.Logger, p *pool.Pool, args []string) error {
	wInfo := logio.NewWriter(logger, log.InfoLevel)

	res, err := o.Search(p, strings.Join(args, " "))
	if err != nil {
		return err
	}
	logger.Debugf("search found %d items", len(res))

	return (&poolSearchWriter{res, o.MaxColWidth}).Write(wInfo, o.OutputMode)
}

// Search returns the items of p matching query, best match first. An empty
// query matches every item.
func (o *Options) Search(p *pool.Pool, query string) ([]*Result, error) {
	match, err := o.matcher(query)
	if err != nil {
		return nil, err
	}

	var res []*Result
	for _, it := range p.Items() {
		if score, ok := match(it); ok {
			res = append(res, &Result{Item: it, Score: score})
		}
	}

	res, err = o.applyRequirement(p, res)
	if err != nil {
		return nil, err
	}
	SortScore(res)
	if !o.Versions {
		res = newestOnly(res)
	}
	return res, nil
}

func (o *Options) matcher(query string) (func(*pool.Item) (int, bool), error) {
	if query == "" {
		return func(*pool.Item) (int, bool) { return scoreName, true }, nil
	}
	if o.Regexp {
		re, err := regexp.Compile(query)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid regular expression %q", query)
		}
		return func(it *pool.Item) (int, bool) {
			switch {
			case re.MatchString(it.Name()):
				return scoreName, true
			case re.MatchString(it.Summary()):
				return scoreSummary, true
			}
			return 0, false
		}, nil
	}

	q := strings.ToLower(query)
	return func(it *pool.Item) (int, bool) {
		name := strings.ToLower(it.Name())
		switch {
		case name == q:
			return scoreExactName, true
		case strings.Contains(name, q):
			return scoreName, true
		case strings.Contains(strings.ToLower(it.Summary()), q):
			return scoreSummary, true
		}
		return 0, false
	}, nil
}

// applyRequirement filters res down to the items providing o.Provides.
func (o *Options) applyRequirement(p *pool.Pool, res []*Result) ([]*Result, error) {
	if o.Provides == "" {
		return res, nil
	}

	req, err := capability.NewParser().Parse(o.Provides)
	if err != nil {
		return res, errors.Wrap(err, "an invalid requirement")
	}

	providers := map[pool.ID]bool{}
	for _, it := range p.WhatProvides(capability.NewMatcher(), req) {
		providers[it.ID()] = true
	}

	data := res[:0]
	for _, r := range res {
		if providers[r.Item.ID()] {
			data = append(data, r)
		}
	}
	return data, nil
}

// SortScore sorts by score, then by name and newest edition first.
func SortScore(res []*Result) {
	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i], res[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		if a.Item.Name() != b.Item.Name() {
			return a.Item.Name() < b.Item.Name()
		}
		return edition.Compare(a.Item.Ident().Edition, b.Item.Ident().Edition) > 0
	})
}

// newestOnly keeps the first result of each name, which SortScore made the
// newest.
func newestOnly(res []*Result) []*Result {
	seen := map[string]bool{}
	data := res[:0]
	for _, r := range res {
		if seen[r.Item.Name()] {
			continue
		}
		seen[r.Item.Name()] = true
		data = append(data, r)
	}
	return data
}

// poolItemElement is used to store the final item values that will get
// printed
type poolItemElement struct {
	Kind    string `json:"kind" yaml:"kind"`
	Name    string `json:"name" yaml:"name"`
	Edition string `json:"edition" yaml:"edition"`
	Arch    string `json:"arch" yaml:"arch"`
	State   string `json:"state" yaml:"state"`
	Summary string `json:"summary" yaml:"summary"`
}

// poolSearchWriter is used to store and print the search results
type poolSearchWriter struct {
	results     []*Result
	columnWidth uint
}

func (w *poolSearchWriter) Write(out io.Writer, mode solver.OutputMode) error {
	switch mode {
	case solver.Table:
		return w.WriteTable(out)
	case solver.JSON, solver.YAML:
		return w.encodeByFormat(out, mode)
	}
	return errors.Errorf("unknown output mode %d", mode)
}

// WriteTable writes the results as a table
func (w *poolSearchWriter) WriteTable(out io.Writer) error {
	if len(w.results) == 0 {
		_, err := out.Write([]byte("No results found\n"))
		if err != nil {
			return fmt.Errorf("unable to write results: %s", err)
		}
		return nil
	}
	table := uitable.New()
	table.MaxColWidth = w.columnWidth
	table.AddRow("NAME", "EDITION", "ARCH", "STATE", "SUMMARY")
	for _, r := range w.results {
		id := r.Item.Ident()
		table.AddRow(id.Name, id.Edition, id.Arch, r.Item.State(), r.Item.Summary())
	}
	_, err := fmt.Fprintln(out, table.String())
	return err
}

// encodeByFormat creates the final item list that will get formatted into
// the final results
func (w *poolSearchWriter) encodeByFormat(out io.Writer, mode solver.OutputMode) error {
	// Initialize the array so no results returns an empty array instead of null
	itemList := make([]poolItemElement, 0, len(w.results))

	for _, r := range w.results {
		id := r.Item.Ident()
		itemList = append(itemList, poolItemElement{
			Kind:    id.Kind.String(),
			Name:    id.Name,
			Edition: id.Edition.String(),
			Arch:    string(id.Arch),
			State:   r.Item.State().String(),
			Summary: r.Item.Summary(),
		})
	}

	if mode == solver.YAML {
		o, err := yaml.Marshal(itemList)
		if err != nil {
			return errors.Wrap(err, "marshalling search results")
		}
		_, err = out.Write(o)
		return err
	}

	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(itemList); err != nil {
		return errors.Wrap(err, "marshalling search results")
	}
	_, err := out.Write(buffer.Bytes())
	return err
}
