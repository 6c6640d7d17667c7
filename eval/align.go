// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eval

import (
	"golang.org/x/text/cases"

	"treval/conllu"
)

// notAligned is a parent key which never equals any gold word index
// (a system word whose parent has no gold counterpart).
const notAligned = -1000

// AlignedPair couples a gold word with the system word it was
// matched to. Both values are indices into the respective corpus'
// Words slice.
type AlignedPair struct {
	Gold   int
	System int
}

// Alignment is a partial 1:1 matching between gold and system words.
// Matched pairs follow increasing gold span order.
type Alignment struct {
	GoldWords   []conllu.Word
	SystemWords []conllu.Word
	Matched     []AlignedPair

	systemToGold map[int]int
}

func (a *Alignment) append(gi, si int) {
	a.Matched = append(a.Matched, AlignedPair{Gold: gi, System: si})
	a.systemToGold[si] = gi
}

// goldIdxOf translates a system word index to the index of its
// aligned gold word, or notAligned.
func (a *Alignment) goldIdxOf(si int) int {
	if gi, ok := a.systemToGold[si]; ok {
		return gi
	}
	return notAligned
}

// mapParent translates a system word's parent (or an enhanced edge
// head) to the gold side: word indices go through the alignment,
// the no-parent and virtual root values map to themselves.
func (a *Alignment) mapParent(head int) int {
	switch head {
	case conllu.NoParent:
		return conllu.NoParent
	case conllu.VirtualRoot:
		return conllu.VirtualRoot
	}
	return a.goldIdxOf(head)
}

// beyondEnd tests whether words[i] lies completely after the
// multiword span ending at spanEnd.
func beyondEnd(words []conllu.Word, i, spanEnd int) bool {
	if i >= len(words) {
		return true
	}
	if words[i].IsMultiword {
		return words[i].Span.Start >= spanEnd
	}
	return words[i].Span.End > spanEnd
}

func extendEnd(word conllu.Word, spanEnd int) int {
	if word.IsMultiword && word.Span.End > spanEnd {
		return word.Span.End
	}
	return spanEnd
}

// findMultiwordSpan locates the minimal character range containing
// every multiword token (from either side) overlapping the current
// position. At least one of gold[gi], system[si] is multiword.
// It returns the first and one-past-last word indices of the span
// on both sides.
func findMultiwordSpan(gold, system []conllu.Word, gi, si int) (gs, ss, ge, se int) {
	var spanEnd int
	if gold[gi].IsMultiword {
		spanEnd = gold[gi].Span.End
		if !system[si].IsMultiword && system[si].Span.Start < gold[gi].Span.Start {
			si++
		}

	} else {
		spanEnd = system[si].Span.End
		if !gold[gi].IsMultiword && gold[gi].Span.Start < system[si].Span.Start {
			gi++
		}
	}
	gs, ss = gi, si

	for !beyondEnd(gold, gi, spanEnd) || !beyondEnd(system, si, spanEnd) {
		if gi < len(gold) && (si >= len(system) || gold[gi].Span.Start <= system[si].Span.Start) {
			spanEnd = extendEnd(gold[gi], spanEnd)
			gi++

		} else {
			spanEnd = extendEnd(system[si], spanEnd)
			si++
		}
	}
	return gs, ss, gi, si
}

// computeLCS fills the standard longest-common-subsequence table
// over case-folded forms of gold[gs:ge] and system[ss:se].
func computeLCS(goldForms, systemForms []string) [][]int {
	g := len(goldForms)
	s := len(systemForms)
	lcs := make([][]int, g)
	for i := range lcs {
		lcs[i] = make([]int, s)
	}
	for gi := g - 1; gi >= 0; gi-- {
		for si := s - 1; si >= 0; si-- {
			if goldForms[gi] == systemForms[si] {
				if gi+1 < g && si+1 < s {
					lcs[gi][si] = 1 + lcs[gi+1][si+1]
				} else {
					lcs[gi][si] = 1
				}
			}
			if gi+1 < g && lcs[gi+1][si] > lcs[gi][si] {
				lcs[gi][si] = lcs[gi+1][si]
			}
			if si+1 < s && lcs[gi][si+1] > lcs[gi][si] {
				lcs[gi][si] = lcs[gi][si+1]
			}
		}
	}
	return lcs
}

// AlignWords produces a 1:1 partial matching between gold and system
// words. Words outside multiword tokens match by their exact character
// span; words within a multiword span are aligned by the longest
// common subsequence of their case-folded forms. The matching is
// injective in both directions.
func AlignWords(gold, system []conllu.Word) *Alignment {
	alignment := &Alignment{
		GoldWords:    gold,
		SystemWords:  system,
		systemToGold: make(map[int]int),
	}
	folder := cases.Fold()
	gi, si := 0, 0
	for gi < len(gold) && si < len(system) {
		if gold[gi].IsMultiword || system[si].IsMultiword {
			var gs, ss int
			gs, ss, gi, si = findMultiwordSpan(gold, system, gi, si)
			if gi <= gs || si <= ss {
				continue
			}
			goldForms := make([]string, gi-gs)
			for i := range goldForms {
				goldForms[i] = folder.String(gold[gs+i].Form)
			}
			systemForms := make([]string, si-ss)
			for i := range systemForms {
				systemForms[i] = folder.String(system[ss+i].Form)
			}
			lcs := computeLCS(goldForms, systemForms)

			// walk the table from the start; on a tie the gold
			// pointer advances first (kept as observed behavior of
			// the original shared-task implementation)
			g, s := 0, 0
			for g < len(goldForms) && s < len(systemForms) {
				switch {
				case goldForms[g] == systemForms[s]:
					alignment.append(gs+g, ss+s)
					g++
					s++
				case lcs[g][s] == lcsAt(lcs, g+1, s):
					g++
				default:
					s++
				}
			}

		} else if gold[gi].Span == system[si].Span {
			alignment.append(gi, si)
			gi++
			si++

		} else if gold[gi].Span.Start <= system[si].Span.Start {
			gi++

		} else {
			si++
		}
	}
	return alignment
}

func lcsAt(lcs [][]int, g, s int) int {
	if g >= len(lcs) {
		return 0
	}
	return lcs[g][s]
}
