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

// Package diag provides structured diagnostics for the bridge.
//
// The bridge never fails outright (spec.md §7: "the bridge is total"), but
// the TT→CST direction replays an external parser that can itself report
// errors against malformed token trees. Those errors are recorded here
// rather than returned as Go errors, so that a single conversion can surface
// many of them at once.
package diag

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the column width used when rendering a tab for the
// purposes of computing a [Location].
const TabstopWidth = 4

// File is the source text a [Span] refers to.
type File struct {
	// Path is a caller-chosen name for the source, used only to group spans
	// by file; it need not be a real filesystem path.
	Path string
	Text string
}

// IndexedFile memoizes the line-start offsets of a [File], so that byte
// offsets can be converted into [Location]s in O(log n).
type IndexedFile struct {
	file File

	once  sync.Once
	lines []int // prefix sum of line lengths
}

// NewIndexedFile builds a line index over file. The index itself is
// computed lazily, on the first call to Search.
func NewIndexedFile(file File) *IndexedFile {
	return &IndexedFile{file: file}
}

func (f *IndexedFile) Path() string { return f.file.Path }
func (f *IndexedFile) Text() string { return f.file.Text }

// Search converts a byte offset into a 1-indexed line/column [Location].
func (f *IndexedFile) Search(offset int) Location {
	f.once.Do(func() {
		var next int
		text := f.file.Text
		for {
			nl := strings.IndexByte(text, '\n') + 1
			if nl == 0 {
				break
			}
			text = text[nl:]
			f.lines = append(f.lines, next)
			next += nl
		}
		f.lines = append(f.lines, next)
	})

	line, exact := slices.BinarySearch(f.lines, offset)
	if !exact {
		line--
	}

	prefix := f.file.Text[f.lines[line]:offset]
	column := uniseg.StringWidth(prefix) + strings.Count(prefix, "\t")*TabstopWidth
	return Location{Offset: offset, Line: line + 1, Column: column + 1}
}

// Location is a user-displayable position within a [File].
type Location struct {
	Offset       int
	Line, Column int
}

// Spanner is anything with a [Span].
type Spanner interface {
	Span() Span
}

// Span is a half-open byte range within an [IndexedFile].
type Span struct {
	*IndexedFile
	Start, End int
}

// Span implements [Spanner].
func (s Span) Span() Span { return s }

// Nil reports whether s refers to no file.
func (s Span) Nil() bool { return s.IndexedFile == nil }

// Path returns the path of the file s refers to, or "" for the nil span.
func (s Span) Path() string {
	if s.Nil() {
		return ""
	}
	return s.IndexedFile.Path()
}

// Text returns the source text covered by this span.
func (s Span) Text() string {
	return s.IndexedFile.Text()[s.Start:s.End]
}

// StartLoc returns the location of the first byte of this span.
func (s Span) StartLoc() Location { return s.Search(s.Start) }

// EndLoc returns the location just past the last byte of this span.
func (s Span) EndLoc() Location { return s.Search(s.End) }

// String implements [fmt.Stringer].
func (s Span) String() string {
	if s.Nil() {
		return "<no span>"
	}
	return fmt.Sprintf("%s[%d:%d]", s.Path(), s.Start, s.End)
}

// Join returns the smallest span containing every non-nil span in spans.
//
// Panics if two non-nil spans come from different files.
func Join(spans ...Spanner) Span {
	joined := Span{Start: math.MaxInt}
	for _, spanner := range spans {
		if spanner == nil {
			continue
		}
		span := spanner.Span()
		if span.Nil() {
			continue
		}
		if joined.IndexedFile == nil {
			joined.IndexedFile = span.IndexedFile
		} else if joined.IndexedFile != span.IndexedFile {
			panic("diag: Join() called with spans from different files")
		}
		joined.Start = min(joined.Start, span.Start)
		joined.End = max(joined.End, span.End)
	}
	if joined.IndexedFile == nil {
		return Span{}
	}
	return joined
}
