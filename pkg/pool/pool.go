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
Package pool holds the resolvables known to a resolver session, each one
wrapped in an Item carrying its selection state.

Records enter the pool sealed. Adding the same identity twice merges into
the existing item in a way that only fills unknown info: an item whose state
is still Unspecified adopts the new seed, anything else is kept.

A record may name another record of the pool, by its key, as the source of
its common data (summary, description, vendor, license). The reference is
resolved once, at admission, so the referenced record has to be in the pool
first. AddAll admits a batch in passes to lift that ordering requirement
inside the batch.
*/
package pool

import (
	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/rancher-sandbox/respool/pkg/capability"
	"github.com/rancher-sandbox/respool/pkg/capmatch"
	"github.com/rancher-sandbox/respool/pkg/resolvable"
)

var (
	// ErrNotSealed is returned when admitting a record that is still being
	// built.
	ErrNotSealed = errors.New("record not sealed")
	// ErrUnresolvedSharedData is returned when the shared data tag of a
	// record names nothing in the pool.
	ErrUnresolvedSharedData = errors.New("unresolved shared data")
	// ErrLockViolation is returned when a locked item is asked to change.
	ErrLockViolation = errors.New("item is locked")
	ErrUnknownItem   = errors.New("unknown item")
	// ErrInUse is returned when purging an item other items share data
	// with.
	ErrInUse = errors.New("item in use")
)

// Entry is a record to admit with its seed state.
type Entry struct {
	Record *resolvable.Record
	Seed   SelectionState
}

// Pool is the set of items of one resolver session. It is not safe for
// concurrent use; Clone gives each session its own copy.
type Pool struct {
	// items is indexed by ID. Purged slots are nil.
	items  []*Item
	byKey  map[string]ID
	byName map[string][]ID
	logger log.Logger
}

// New creates an empty pool logging to logger.
func New(logger log.Logger) *Pool {
	return &Pool{
		byKey:  make(map[string]ID),
		byName: make(map[string][]ID),
		logger: logger,
	}
}

// Add admits r with the given seed state and returns its item. If r's
// identity is already present, the existing item is returned, merged with
// the seed.
func (p *Pool) Add(r *resolvable.Record, seed SelectionState) (*Item, error) {
	if r == nil {
		return nil, errors.New("cannot add nil record")
	}
	if !r.Sealed() {
		return nil, errors.Wrapf(ErrNotSealed, "adding %s", r)
	}
	if !seed.Valid() {
		return nil, errors.Errorf("adding %s: invalid seed state %d", r, seed)
	}

	key := r.Ident().Key()
	if id, ok := p.byKey[key]; ok {
		it := p.items[id]
		if it.state == Unspecified {
			it.state = seed
			it.seed = seed
		}
		p.logger.Debugf("merged %s into #%d, state %s", key, id, it.state)
		return it, nil
	}

	shared := ID(-1)
	if tag := r.SharedDataTag(); tag != "" {
		id, ok := p.byKey[tag]
		if !ok {
			return nil, errors.Wrapf(ErrUnresolvedSharedData, "%s refers to %s", key, tag)
		}
		shared = id
	}

	it := &Item{
		id:     ID(len(p.items)),
		record: r,
		state:  seed,
		seed:   seed,
		shared: shared,
		pool:   p,
	}
	p.items = append(p.items, it)
	p.byKey[key] = it.id
	p.byName[r.Name()] = append(p.byName[r.Name()], it.id)
	p.logger.Debugf("added %s as #%d, state %s", key, it.id, seed)
	return it, nil
}

// AddAll admits entries in passes, so that shared data tags may refer to
// records coming later in the batch. Entries that cannot be admitted are
// reported together; the others stay admitted. The returned items are in
// entry order, nil for failed entries.
func (p *Pool) AddAll(entries []Entry) ([]*Item, error) {
	items := make([]*Item, len(entries))
	var errs error

	pending := make([]int, 0, len(entries))
	for i := range entries {
		pending = append(pending, i)
	}
	for len(pending) > 0 {
		var deferred []int
		for _, i := range pending {
			e := entries[i]
			it, err := p.Add(e.Record, e.Seed)
			switch {
			case err == nil:
				items[i] = it
			case errors.Is(err, ErrUnresolvedSharedData):
				deferred = append(deferred, i)
			default:
				errs = multierr.Append(errs, err)
			}
		}
		if len(deferred) == len(pending) {
			// no progress, the remaining tags cannot be resolved
			for _, i := range deferred {
				r := entries[i].Record
				errs = multierr.Append(errs, errors.Wrapf(ErrUnresolvedSharedData,
					"%s refers to %s", r.Ident().Key(), r.SharedDataTag()))
			}
			break
		}
		pending = deferred
	}
	return items, errs
}

// Get returns the item with the given ID.
func (p *Pool) Get(id ID) (*Item, error) {
	if id < 0 || int(id) >= len(p.items) || p.items[id] == nil {
		return nil, errors.Wrapf(ErrUnknownItem, "#%d", id)
	}
	return p.items[id], nil
}

// Lookup finds an item by the key of its identity.
func (p *Pool) Lookup(key string) (*Item, bool) {
	id, ok := p.byKey[key]
	if !ok {
		return nil, false
	}
	return p.items[id], true
}

// Resolve returns the item of p matching it, which may come from a clone of
// p.
func (p *Pool) Resolve(it *Item) (*Item, error) {
	if it == nil {
		return nil, errors.Wrap(ErrUnknownItem, "nil item")
	}
	if it.pool == p {
		return it, nil
	}
	own, err := p.Get(it.id)
	if err != nil || own.Key() != it.Key() {
		return nil, errors.Wrapf(ErrUnknownItem, "%s", it)
	}
	return own, nil
}

// ByName returns the items named name, in admission order.
func (p *Pool) ByName(name string) []*Item {
	ids := p.byName[name]
	items := make([]*Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, p.items[id])
	}
	return items
}

// Items returns all items in admission order.
func (p *Pool) Items() []*Item {
	items := make([]*Item, 0, len(p.byKey))
	for _, it := range p.items {
		if it != nil {
			items = append(items, it)
		}
	}
	return items
}

func (p *Pool) Len() int {
	return len(p.byKey)
}

// WhatProvides returns the items with a provided capability matching req,
// in admission order.
func (p *Pool) WhatProvides(m *capability.Matcher, req capability.Capability) []*Item {
	var items []*Item
	for _, it := range p.items {
		if it == nil {
			continue
		}
		if m.MatchSet(req, it.record.Provides()) == capmatch.Yes {
			items = append(items, it)
		}
	}
	return items
}

// Seed sets the initial state of an item, as established by the search
// that runs before any problem is solved.
func (p *Pool) Seed(id ID, state SelectionState) error {
	it, err := p.change(id, state)
	if err != nil {
		return err
	}
	it.state = state
	it.seed = state
	return nil
}

// Transition moves an item to state. A locked item refuses every state but
// Locked; see Unlock.
func (p *Pool) Transition(id ID, state SelectionState) error {
	it, err := p.change(id, state)
	if err != nil {
		return err
	}
	if it.state != state {
		p.logger.Debugf("%s: %s -> %s", it, it.state, state)
	}
	it.state = state
	return nil
}

// Unlock releases a lock, leaving the item Unspecified. Unlocking an item
// that is not locked does nothing.
func (p *Pool) Unlock(id ID) error {
	it, err := p.Get(id)
	if err != nil {
		return err
	}
	if it.state == Locked {
		p.logger.Debugf("%s: unlocked", it)
		it.state = Unspecified
	}
	return nil
}

func (p *Pool) change(id ID, state SelectionState) (*Item, error) {
	it, err := p.Get(id)
	if err != nil {
		return nil, err
	}
	if !state.Valid() {
		return nil, errors.Errorf("%s: invalid state %d", it, state)
	}
	if it.state == Locked && state != Locked {
		return nil, errors.Wrapf(ErrLockViolation, "%s cannot become %s", it, state)
	}
	return it, nil
}

// Purge removes the item with the given key. Items other items share data
// with cannot be purged.
func (p *Pool) Purge(key string) error {
	id, ok := p.byKey[key]
	if !ok {
		return errors.Wrap(ErrUnknownItem, key)
	}
	for _, it := range p.items {
		if it != nil && it.shared == id {
			return errors.Wrapf(ErrInUse, "%s shares data with %s", it, key)
		}
	}

	name := p.items[id].Name()
	ids := p.byName[name]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(p.byName, name)
	} else {
		p.byName[name] = ids
	}
	delete(p.byKey, key)
	p.items[id] = nil
	p.logger.Debugf("purged %s", key)
	return nil
}

// Clone returns an independent copy of p. Records are shared, as they are
// read only; selection states are not.
func (p *Pool) Clone() *Pool {
	c := &Pool{
		items:  make([]*Item, len(p.items)),
		byKey:  make(map[string]ID, len(p.byKey)),
		byName: make(map[string][]ID, len(p.byName)),
		logger: p.logger,
	}
	for i, it := range p.items {
		if it == nil {
			continue
		}
		cp := *it
		cp.pool = c
		c.items[i] = &cp
	}
	for k, id := range p.byKey {
		c.byKey[k] = id
	}
	for n, ids := range p.byName {
		c.byName[n] = append([]ID(nil), ids...)
	}
	return c
}

// DebugPrint logs every item at debug level.
func (p *Pool) DebugPrint(logger log.Logger) {
	logger.Debugf("Printing pool (%d items)", p.Len())
	for _, it := range p.Items() {
		logger.Debug(it.debugString())
	}
}
