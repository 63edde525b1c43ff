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

import "github.com/dirbaio/syntaxbridge/internal/intern"

// Allocator is the single writer of a [Map]: it mints monotonically
// increasing [ID]s and records what each one means, per spec.md §4.1.
//
// A conversion owns exactly one Allocator for its lifetime; the Allocator's
// Map is frozen and handed off once the conversion finishes.
type Allocator struct {
	next ID
	m    *Map

	// idents canonicalizes identifier and keyword spellings seen during
	// this conversion, so that repeated occurrences of the same name (a
	// macro parameter used a hundred times, a common keyword) share one
	// backing string instead of each getting its own lexer-sliced copy.
	idents intern.Table
}

// NewAllocator creates an Allocator that mints ids starting at 1, recording
// them into a fresh [Map] rooted at globalOffset.
func NewAllocator(globalOffset uint32) *Allocator {
	return &Allocator{
		next: Nil + 1,
		m:    NewMap(globalOffset),
	}
}

// InternIdent canonicalizes an identifier or keyword spelling against this
// allocator's interning table, returning a string that compares equal (and
// is often the same backing array) to every other occurrence of the same
// text seen by this allocator.
func (a *Allocator) InternIdent(text string) string {
	return a.idents.Value(a.idents.Intern(text))
}

// Map returns the allocator's (still-writable) underlying Map.
func (a *Allocator) Map() *Map { return a.m }

// NextID returns the id that will be minted by the next call to Alloc,
// AllocID, or OpenDelim, without consuming it. This is the `next_id`
// returned by the `cst_to_tt_mod` operation (spec.md §6), letting a caller
// continue allocating into the same window across multiple conversions.
func (a *Allocator) NextID() ID { return a.next }

// Alloc mints a fresh id for an ordinary token spanning absRange (an
// absolute byte range), and records it in the Map relative to the Map's
// GlobalOffset. If origin is non-nil, the id is also tagged as synthetic
// with that origin (spec.md §3's "synthetic_origin_id" relation).
func (a *Allocator) Alloc(absRange Range, origin *Origin) ID {
	id := a.next
	a.next++
	a.m.insertRange(id, absRange.Shift(-int64(a.m.GlobalOffset)))
	if origin != nil {
		a.m.insertOrigin(id, *origin)
	}
	return id
}

// AllocID mints a fresh id without recording a range for it; a range can be
// recorded for it afterwards with [Allocator.Reuse].
func (a *Allocator) AllocID() ID {
	id := a.next
	a.next++
	return id
}

// Reuse records id (previously minted by another Allocator, or carried over
// unchanged from a source token) against absRange (an absolute byte range)
// in this Map, relative to the Map's GlobalOffset, without consuming a new
// id. This is how the TT→CST sink records where each replayed leaf's id
// landed in the reconstructed text.
func (a *Allocator) Reuse(id ID, absRange Range) {
	a.m.insertRange(id, absRange.Shift(-int64(a.m.GlobalOffset)))
}

// OpenDelim mints an id for an opening delimiter spanning absOpenRange (an
// absolute byte range) and reserves a [Slot] for its eventual pairing, per
// spec.md §4.1's "open_delim returns an id and a slot; close_delim later
// finalizes or discards that slot". The range is recorded relative to the
// Map's GlobalOffset, like [Allocator.Alloc].
//
// The slot's Close range starts out equal to Open range and Closed == false;
// [Allocator.CloseDelim] must be called exactly once to finalize it.
func (a *Allocator) OpenDelim(absOpenRange Range) (ID, Slot) {
	id := a.next
	a.next++
	slot := a.m.openDelim(id, absOpenRange.Shift(-int64(a.m.GlobalOffset)))
	return id, slot
}

// CloseDelim finalizes a slot previously returned by OpenDelim.
//
// If absCloseRange is nil, the opening delimiter was never matched (the
// input ended, or end-of-stream repair demoted it); the slot is discarded
// and will not appear in the final Map, per spec.md §7's unbalanced-
// delimiter repair. Otherwise absCloseRange is an absolute byte range,
// recorded relative to the Map's GlobalOffset like [Allocator.Alloc].
func (a *Allocator) CloseDelim(slot Slot, absCloseRange *Range) {
	if absCloseRange == nil {
		a.m.closeDelim(slot, nil)
		return
	}
	relative := absCloseRange.Shift(-int64(a.m.GlobalOffset))
	a.m.closeDelim(slot, &relative)
}

// ReuseDelim records a pre-existing delimiter id's open range (an absolute
// byte range, relative to the Map's GlobalOffset like [Allocator.Alloc]),
// reserving a [Slot] for it to be finalized by [Allocator.CloseDelim] —
// just like OpenDelim, but for an id the caller already has (e.g. one being
// replayed by the TT→CST sink) rather than a freshly minted one.
func (a *Allocator) ReuseDelim(id ID, absOpenRange Range) Slot {
	return a.m.openDelim(id, absOpenRange.Shift(-int64(a.m.GlobalOffset)))
}

// Finish freezes and returns the underlying Map. The Allocator must not be
// used afterward.
func (a *Allocator) Finish() *Map {
	a.m.Freeze()
	return a.m
}
