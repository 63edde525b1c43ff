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

// Package token implements the bridge's id bookkeeping: the bijective
// mapping between a leaf's stable numeric [ID] and the byte range it came
// from (spec.md §3, §4.1).
package token

import "fmt"

// ID is an opaque, stable identifier minted for every leaf produced by the
// CST→TT converter.
//
// The zero value, [Nil], is reserved for leaves that were synthesized out of
// thin air and do not correspond to any buffer offset (e.g. the `#`, `[`,
// `]`, `=` punctuation manufactured by doc-comment desugaring).
type ID uint32

// Nil is the sentinel ID meaning "no id was assigned".
const Nil ID = 0

// String implements [fmt.Stringer].
func (id ID) String() string {
	if id == Nil {
		return "token.Nil"
	}
	return fmt.Sprintf("token.ID(%d)", uint32(id))
}

// Range is a byte range, relative to whatever [Map.GlobalOffset] is in
// force for the [Map] it was recorded in.
type Range struct {
	Start, End uint32
}

// Len returns the width of the range in bytes.
func (r Range) Len() uint32 { return r.End - r.Start }

// Shift translates r by delta, as when merging maps recorded under
// different global offsets (spec.md §3: "ranges... relative to a global
// offset... so maps can be merged by shifting").
func (r Range) Shift(delta int64) Range {
	return Range{
		Start: uint32(int64(r.Start) + delta),
		End:   uint32(int64(r.End) + delta),
	}
}

// DelimPair is the pair of ranges recorded for a delimiter token: the
// opening bracket's range, and (if the input was balanced) the closing
// bracket's range.
type DelimPair struct {
	Open  Range
	Close Range
	// Closed reports whether Close is meaningful. It is false only while
	// the pair still awaits its closer, and Close then equals Open. An
	// unbalanced delimiter's pair is discarded rather than kept with
	// Closed == false, so [Map.Delim] does not report it.
	Closed bool
}

// Origin is a caller-supplied tag recorded against a synthetic token
// (spec.md §3's "synthetic_origin_id"). The bridge never interprets Origin
// values itself; it only threads them through for the caller (e.g. a macro
// expander wanting to know which `$crate` rewrite produced a given leaf).
type Origin uint32
