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

package diag

import (
	"fmt"
	"slices"
	"strings"
)

// Level is the severity of a [Diagnostic].
type Level int8

const (
	// Error indicates the TT→CST replay could not make sense of the input
	// at this point; parsing continues regardless (spec.md §7).
	Error Level = 1 + iota
	// Warning indicates something that is probably not what the caller meant.
	Warning
	// Remark is the diagnostics version of "info".
	Remark
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("diag.Level(%d)", int(l))
	}
}

// Annotation is an annotated source span attached to a [Diagnostic].
type Annotation struct {
	Span
	Message string
	// Primary marks the annotation used to sort and file this diagnostic;
	// the first annotation added to a Diagnostic is always primary.
	Primary bool
}

// Diagnostic is a single reported problem, optionally anchored to one or
// more source spans.
type Diagnostic struct {
	Message string
	Level   Level

	// InFile names the source when this diagnostic has no Annotations, e.g.
	// "input too large to parse".
	InFile string

	Annotations []Annotation
	Notes       []string
}

// Primary returns the diagnostic's primary span, or the nil span if it has
// none.
func (d *Diagnostic) Primary() Span {
	for _, a := range d.Annotations {
		if a.Primary {
			return a.Span
		}
	}
	return Span{}
}

// Snippet attaches an annotated span to the diagnostic. The first call to
// Snippet on a given Diagnostic marks that span as primary.
//
// If at is the nil span, Snippet is a no-op; this lets callers pass through
// spans that may or may not exist without branching.
func (d *Diagnostic) Snippet(at Spanner, format string, args ...any) *Diagnostic {
	if at == nil {
		return d
	}
	span := at.Span()
	if span.Nil() {
		return d
	}
	d.Annotations = append(d.Annotations, Annotation{
		Span:    span,
		Message: fmt.Sprintf(format, args...),
		Primary: len(d.Annotations) == 0,
	})
	return d
}

// Note appends a trailing note to the diagnostic.
func (d *Diagnostic) Note(format string, args ...any) *Diagnostic {
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	return d
}

// Report is an accumulated collection of diagnostics produced by a single
// TT→CST replay.
//
// A Report is not safe for concurrent writes; each conversion should own one.
type Report struct {
	Diagnostics []Diagnostic
}

// Errorf pushes a new error-level diagnostic with the given message.
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(Error, format, args...)
}

// Warnf pushes a new warning-level diagnostic with the given message.
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(Warning, format, args...)
}

func (r *Report) push(level Level, format string, args ...any) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Level:   level,
	})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}

// Sort canonicalizes diagnostic order: by file of the primary span, then by
// the primary span's start and end offsets, then by message text.
//
// Diagnostics with no primary span sort as if their file were "" and their
// offsets were zero.
func (r *Report) Sort() {
	slices.SortFunc(r.Diagnostics, func(a, b Diagnostic) int {
		ap, bp := a.Primary(), b.Primary()
		if d := strings.Compare(ap.Path(), bp.Path()); d != 0 {
			return d
		}
		if d := ap.Start - bp.Start; d != 0 {
			return d
		}
		if d := ap.End - bp.End; d != 0 {
			return d
		}
		return strings.Compare(a.Message, b.Message)
	})
}

// String implements [fmt.Stringer] with a compact, single-line-per-diagnostic
// rendering suitable for test failure output; it is not meant for end users.
func (r *Report) String() string {
	var b strings.Builder
	for i, d := range r.Diagnostics {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", d.Level, d.Message)
		if p := d.Primary(); !p.Nil() {
			fmt.Fprintf(&b, " (%s)", p)
		} else if d.InFile != "" {
			fmt.Fprintf(&b, " (in %s)", d.InFile)
		}
	}
	return b.String()
}
