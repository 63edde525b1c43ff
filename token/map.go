// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import (
	"fmt"

	"github.com/tidwall/btree"

	"github.com/dirbaio/syntaxbridge/internal/arena"
)

// delimSlot is one reserved delimiter-pair entry. It lives in an arena so
// that [Allocator.OpenDelim] can hand back a stable [Slot] before the
// closing delimiter (or end-of-stream repair) is known, and
// [Allocator.CloseDelim] can finalize or discard it in place in O(1),
// matching the "reserve a pair slot... for later finalization" contract
// from spec.md §4.1.
type delimSlot struct {
	id   ID
	pair DelimPair
	// live is false once the slot has been discarded by CloseDelim(slot,
	// nil) — an unbalanced delimiter (spec.md §7). A discarded slot is
	// never surfaced by [Map.Delim] or [Map.AllDelims].
	live bool
}

// Slot is a handle to a reserved-but-not-yet-finalized delimiter pair,
// returned by [Allocator.OpenDelim].
type Slot = arena.Pointer[delimSlot]

// Map is the bijective store described in spec.md §3: a mapping from [ID]
// to the byte range (or delimiter pair, or synthetic origin) that minted it.
//
// Each relation is kept in its own ordered map, rather than a single
// `map[ID]any`, so that iterating a Map always visits ids in allocation
// order without an extra sort — the same reason the teacher reaches for an
// ordered btree.Map instead of a plain Go map wherever iteration order has
// to track insertion order of monotonically increasing keys.
//
// A zero Map is empty and ready to use; [Allocator] is the only way to
// populate one, which keeps the uniqueness and monotonicity invariants
// (spec.md §3 (a), (b)) in one place.
type Map struct {
	// GlobalOffset is the absolute byte offset that every Range in this map
	// is relative to. It lets a caller merge maps produced by separate
	// conversions by re-shifting their ranges (spec.md §3).
	GlobalOffset uint32

	ranges btree.Map[ID, Range]
	origin btree.Map[ID, Origin]

	delims    arena.Arena[delimSlot]
	delimByID btree.Map[ID, Slot]

	frozen bool
}

// NewMap constructs an empty Map rooted at the given global offset.
func NewMap(globalOffset uint32) *Map {
	return &Map{GlobalOffset: globalOffset}
}

// Range returns the byte range recorded for id, if any.
func (m *Map) Range(id ID) (Range, bool) {
	return m.ranges.Get(id)
}

// Delim returns the delimiter pair recorded for id, if any. Returns
// false for a delimiter that was opened but never closed and was
// subsequently discarded by end-of-stream repair.
func (m *Map) Delim(id ID) (DelimPair, bool) {
	slot, ok := m.delimByID.Get(id)
	if !ok {
		return DelimPair{}, false
	}
	entry := slot.In(&m.delims)
	if !entry.live {
		return DelimPair{}, false
	}
	return entry.pair, true
}

// SyntheticOrigin returns the origin tag recorded for id, if id was
// introduced as a synthetic token.
func (m *Map) SyntheticOrigin(id ID) (Origin, bool) {
	return m.origin.Get(id)
}

// Len returns the number of ordinary (non-delimiter) ids recorded.
func (m *Map) Len() int { return m.ranges.Len() }

// All iterates every (id, Range) pair for ordinary tokens, in id order.
func (m *Map) All(yield func(ID, Range) bool) {
	iter := m.ranges.Iter()
	for ok := iter.First(); ok; ok = iter.Next() {
		if !yield(iter.Key(), iter.Value()) {
			return
		}
	}
}

// AllDelims iterates every (id, DelimPair) pair for delimiters that are
// still live, in id order.
func (m *Map) AllDelims(yield func(ID, DelimPair) bool) {
	iter := m.delimByID.Iter()
	for ok := iter.First(); ok; ok = iter.Next() {
		entry := iter.Value().In(&m.delims)
		if !entry.live {
			continue
		}
		if !yield(iter.Key(), entry.pair) {
			return
		}
	}
}

// Freeze marks the map read-only. Further mutation attempts routed through
// its [Allocator] will panic, matching spec.md §3's "after conversion the
// map is frozen".
func (m *Map) Freeze() { m.frozen = true }

func (m *Map) checkWritable() {
	if m.frozen {
		panic("token: attempted to mutate a frozen Map")
	}
}

func (m *Map) insertRange(id ID, r Range) {
	m.checkWritable()
	if _, dup := m.ranges.Get(id); dup {
		panic(fmt.Sprintf("token: %s already has a recorded range", id))
	}
	m.ranges.Set(id, r)
}

func (m *Map) insertOrigin(id ID, o Origin) {
	m.checkWritable()
	m.origin.Set(id, o)
}

func (m *Map) openDelim(id ID, openRange Range) Slot {
	m.checkWritable()
	slot := m.delims.New(delimSlot{
		id:   id,
		pair: DelimPair{Open: openRange, Close: openRange},
		live: true,
	})
	m.delimByID.Set(id, slot)
	return slot
}

func (m *Map) closeDelim(slot Slot, closeRange *Range) {
	m.checkWritable()
	entry := slot.In(&m.delims)
	if closeRange == nil {
		entry.live = false
		return
	}
	entry.pair.Close = *closeRange
	entry.pair.Closed = true
}
