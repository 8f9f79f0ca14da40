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

package pool

import (
	"fmt"
	"time"

	"github.com/rancher-sandbox/respool/pkg/resolvable"
)

// ID identifies an item inside its pool. IDs are never reused, not even
// after a purge, and are kept by Clone.
type ID int

// Item is a record admitted into a pool together with its selection state.
// Items are handed out by the pool; their state only changes through the
// pool.
type Item struct {
	id     ID
	record *resolvable.Record
	state  SelectionState
	// seed is the state the item was admitted or seeded with.
	seed SelectionState
	// shared is the ID of the item common data is inherited from, or -1.
	shared ID
	pool   *Pool
}

func (it *Item) ID() ID { return it.id }
func (it *Item) Record() *resolvable.Record { return it.record }
func (it *Item) Ident() resolvable.Ident { return it.record.Ident() }
func (it *Item) Kind() resolvable.Kind { return it.record.Kind() }
func (it *Item) Name() string { return it.record.Name() }
func (it *Item) State() SelectionState { return it.state }
func (it *Item) Seed() SelectionState { return it.seed }
func (it *Item) String() string { return it.record.String() }
func (it *Item) Key() string { return it.record.Ident().Key() }
func (it *Item) Locked() bool { return it.state == Locked }

// SharedItem returns the item common data is inherited from.
func (it *Item) SharedItem() (*Item, bool) {
	if it.shared < 0 {
		return nil, false
	}
	s, err := it.pool.Get(it.shared)
	if err != nil {
		return nil, false
	}
	return s, true
}

// commonField returns the field selected by get from the record, falling
// back to the shared item when the record leaves it empty.
func (it *Item) commonField(get func(resolvable.Common) string) string {
	if v := get(it.record.Common()); v != "" {
		return v
	}
	if s, ok := it.SharedItem(); ok {
		return s.commonField(get)
	}
	return ""
}

func (it *Item) Summary() string {
	return it.commonField(func(c resolvable.Common) string { return c.Summary })
}

func (it *Item) Description() string {
	return it.commonField(func(c resolvable.Common) string { return c.Description })
}

func (it *Item) Vendor() string {
	return it.commonField(func(c resolvable.Common) string { return c.Vendor })
}

func (it *Item) LicenseToConfirm() string {
	return it.commonField(func(c resolvable.Common) string { return c.LicenseToConfirm })
}

func (it *Item) InsNotify() string {
	return it.commonField(func(c resolvable.Common) string { return c.InsNotify })
}

func (it *Item) DelNotify() string {
	return it.commonField(func(c resolvable.Common) string { return c.DelNotify })
}

// InstallTime belongs to the item itself and is never taken from the shared
// item.
func (it *Item) InstallTime() time.Time {
	return it.record.Common().InstallTime
}

// debugString is used by Pool.DebugPrint.
func (it *Item) debugString() string {
	s := fmt.Sprintf("#%d %s %s (seed %s)", it.id, it.Key(), it.state, it.seed)
	if it.shared >= 0 {
		s += fmt.Sprintf(" shares #%d", it.shared)
	}
	return s
}
