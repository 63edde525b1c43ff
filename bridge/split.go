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

package bridge

import (
	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/tt"
)

// SplitBySep is the public `split_by_sep` operation (spec.md §4.4, §6): it
// repeatedly parses an expression prefix of group's children using parser,
// requiring a sep punct between each pair of expressions. Parsing stops at
// the first prefix that fails to parse cleanly (a parse error, or a
// consumed span that doesn't land on an item boundary) or isn't followed by
// sep; everything from there to the end of group is returned as residue,
// wrapped in an Invisible subtree.
//
// This is how a macro's comma-separated argument list (e.g. `(1, 2, 3 +)`)
// is split into individual expressions plus whatever trailing garbage
// didn't parse.
func SplitBySep(parser external.EventParser, entry external.EntryPoint, group *tt.Subtree, sep rune) (items []*tt.Subtree, residue *tt.Subtree) {
	children := group.Tokens
	units, boundaries := linearizeItemsWithBoundaries(children)

	itemIdx := 0
	for itemIdx < len(children) {
		startUnit := boundaries[itemIdx]
		events := parser.Parse(entry, unitInput{units: units[startUnit:]})

		consumed, hadError := countConsumed(events)
		if hadError || consumed == 0 {
			break
		}

		endUnit := startUnit + consumed
		endItem := itemIdx
		for endItem < len(children) && boundaries[endItem+1] <= endUnit {
			endItem++
		}
		if boundaries[endItem] != endUnit {
			// The parser consumed a partial item — not something a
			// well-formed token tree should produce. Treat the rest as
			// residue rather than split a leaf in half.
			break
		}

		items = append(items, &tt.Subtree{
			Delimiter: tt.Delimiter{Kind: tt.Invisible},
			Tokens:    append([]tt.TokenTree(nil), children[itemIdx:endItem]...),
		})
		itemIdx = endItem

		if itemIdx >= len(children) {
			break
		}
		sepPunct, ok := children[itemIdx].(tt.Punct)
		if !ok || sepPunct.Char != sep {
			break
		}
		itemIdx++
	}

	residue = &tt.Subtree{
		Delimiter: tt.Delimiter{Kind: tt.Invisible},
		Tokens:    append([]tt.TokenTree(nil), children[itemIdx:]...),
	}
	return items, residue
}

// countConsumed sums the input-unit count of every TokenEvent in events
// (spec.md §4.5's unit bookkeeping), and reports whether any ErrorEvent
// occurred.
func countConsumed(events []external.Event) (consumed int, hadError bool) {
	for _, ev := range events {
		switch e := ev.(type) {
		case external.TokenEvent:
			consumed += e.N
		case external.ErrorEvent:
			hadError = true
		}
	}
	return consumed, hadError
}
