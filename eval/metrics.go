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
	"slices"
	"strings"

	"treval/conllu"
)

// Metrics maps a metric name (see MetricNames) to its score.
type Metrics map[string]Score

// MetricNames lists all the produced metrics in their canonical
// report order.
var MetricNames = []string{
	"Tokens", "Sentences", "Words",
	"UPOS", "XPOS", "UFeats", "AllTags", "Lemmas",
	"UAS", "LAS", "ELAS", "EULAS", "CLAS", "MLAS", "BLEX",
}

type wordFilter func(w *conllu.Word) bool

// pairEq decides whether a matched pair counts as correct for
// a concrete metric.
type pairEq func(a *Alignment, g, s *conllu.Word) bool

func isContentDeprel(w *conllu.Word) bool {
	return w.IsContentDeprel
}

// spansScore counts spans with identical boundaries on both sides
// via a two-pointer merge over the (sorted) span sequences.
func spansScore(gold, system []conllu.Span) Score {
	correct, gi, si := 0, 0, 0
	for gi < len(gold) && si < len(system) {
		switch {
		case system[si].Start < gold[gi].Start:
			si++
		case gold[gi].Start < system[si].Start:
			gi++
		default:
			if gold[gi].End == system[si].End {
				correct++
			}
			si++
			gi++
		}
	}
	return newScore(len(gold), len(system), correct)
}

// alignmentScore scores matched pairs using the provided equality
// predicate. With a nil predicate the number of matched words itself
// is the score (the "Words" metric). A non-nil filter restricts the
// totals to gold/system words matching it and the correct count to
// pairs whose gold word matches it.
func alignmentScore(a *Alignment, filter wordFilter, eq pairEq) Score {
	goldTotal := len(a.GoldWords)
	systemTotal := len(a.SystemWords)
	alignedTotal := len(a.Matched)
	if filter != nil {
		goldTotal, systemTotal, alignedTotal = 0, 0, 0
		for i := range a.GoldWords {
			if filter(&a.GoldWords[i]) {
				goldTotal++
			}
		}
		for i := range a.SystemWords {
			if filter(&a.SystemWords[i]) {
				systemTotal++
			}
		}
		for _, pair := range a.Matched {
			if filter(&a.GoldWords[pair.Gold]) {
				alignedTotal++
			}
		}
	}
	if eq == nil {
		return newScore(goldTotal, systemTotal, alignedTotal)
	}
	correct := 0
	for _, pair := range a.Matched {
		gold := &a.GoldWords[pair.Gold]
		if filter != nil && !filter(gold) {
			continue
		}
		if eq(a, gold, &a.SystemWords[pair.System]) {
			correct++
		}
	}
	return newAlignedScore(goldTotal, systemTotal, correct, alignedTotal)
}

func uposEq(a *Alignment, g, s *conllu.Word) bool {
	return g.UPos == s.UPos
}

func xposEq(a *Alignment, g, s *conllu.Word) bool {
	return g.XPos == s.XPos
}

func featsEq(a *Alignment, g, s *conllu.Word) bool {
	return g.Feats == s.Feats
}

func allTagsEq(a *Alignment, g, s *conllu.Word) bool {
	return g.UPos == s.UPos && g.XPos == s.XPos && g.Feats == s.Feats
}

// lemmaEq treats the gold lemma "_" as a wildcard matching any
// system lemma.
func lemmaEq(a *Alignment, g, s *conllu.Word) bool {
	return g.Lemma == "_" || g.Lemma == s.Lemma
}

// uasEq compares basic parents with the system side's parent mapped
// to the gold corpus through the alignment.
func uasEq(a *Alignment, g, s *conllu.Word) bool {
	return g.Parent == a.mapParent(s.Parent)
}

func lasEq(a *Alignment, g, s *conllu.Word) bool {
	return uasEq(a, g, s) && g.Deprel == s.Deprel
}

func blexEq(a *Alignment, g, s *conllu.Word) bool {
	return lasEq(a, g, s) && lemmaEq(a, g, s)
}

// mlasEq extends lasEq with the word's own morphology and with
// the morphology of all its functional children (each system child
// mapped to the gold corpus through the alignment).
func mlasEq(a *Alignment, g, s *conllu.Word) bool {
	if !lasEq(a, g, s) || g.UPos != s.UPos || g.Feats != s.Feats {
		return false
	}
	if len(g.FunctionalChildren) != len(s.FunctionalChildren) {
		return false
	}
	for i, gci := range g.FunctionalChildren {
		sci := s.FunctionalChildren[i]
		if a.goldIdxOf(sci) != gci {
			return false
		}
		gc := &a.GoldWords[gci]
		sc := &a.SystemWords[sci]
		if gc.Deprel != sc.Deprel || gc.UPos != sc.UPos || gc.Feats != sc.Feats {
			return false
		}
	}
	return true
}

func basePath(path []string) []string {
	base := make([]string, len(path))
	for i, rel := range path {
		base[i], _, _ = strings.Cut(rel, ":")
	}
	return base
}

// enhancedAlignmentScore scores the enhanced dependency graphs.
// Totals are the edge counts over all words of each corpus, not just
// the aligned ones; a gold edge is correct when some system edge on
// the matched word carries the same path (subtypes stripped for
// EULAS) and its head, mapped through the alignment, agrees.
func enhancedAlignmentScore(a *Alignment, eulas bool) Score {
	goldTotal := 0
	for i := range a.GoldWords {
		goldTotal += len(a.GoldWords[i].Edges)
	}
	systemTotal := 0
	for i := range a.SystemWords {
		systemTotal += len(a.SystemWords[i].Edges)
	}
	correct := 0
	for _, pair := range a.Matched {
		goldEdges := a.GoldWords[pair.Gold].Edges
		systemEdges := a.SystemWords[pair.System].Edges
		for _, ge := range goldEdges {
			for _, se := range systemEdges {
				pathOK := slices.Equal(ge.Path, se.Path) ||
					(eulas && slices.Equal(basePath(ge.Path), basePath(se.Path)))
				if !pathOK {
					continue
				}
				headOK := (se.Head >= 0 && ge.Head == a.goldIdxOf(se.Head)) ||
					(ge.Head == conllu.VirtualRoot && se.Head == conllu.VirtualRoot)
				if headOK {
					correct++
				}
			}
		}
	}
	return newAlignedScore(goldTotal, systemTotal, correct, len(a.Matched))
}

// Evaluate compares a system corpus against a gold one. Both must
// have been loaded with the same treebank type and the same evalDeps
// value. The concatenated token characters of the two corpora must
// be identical, otherwise an AlignmentError is returned.
func Evaluate(gold, system *conllu.Corpus, evalDeps bool) (Metrics, error) {
	if err := compareCharacters(gold.Characters, system.Characters); err != nil {
		return nil, err
	}
	alignment := AlignWords(gold.Words, system.Words)
	metrics := Metrics{
		"Tokens":    spansScore(gold.Tokens, system.Tokens),
		"Sentences": spansScore(gold.Sentences, system.Sentences),
		"Words":     alignmentScore(alignment, nil, nil),
		"UPOS":      alignmentScore(alignment, nil, uposEq),
		"XPOS":      alignmentScore(alignment, nil, xposEq),
		"UFeats":    alignmentScore(alignment, nil, featsEq),
		"AllTags":   alignmentScore(alignment, nil, allTagsEq),
		"Lemmas":    alignmentScore(alignment, nil, lemmaEq),
	}
	if evalDeps {
		metrics["UAS"] = alignmentScore(alignment, nil, uasEq)
		metrics["LAS"] = alignmentScore(alignment, nil, lasEq)
		metrics["ELAS"] = enhancedAlignmentScore(alignment, false)
		metrics["EULAS"] = enhancedAlignmentScore(alignment, true)
		metrics["CLAS"] = alignmentScore(alignment, isContentDeprel, lasEq)
		metrics["MLAS"] = alignmentScore(alignment, isContentDeprel, mlasEq)
		metrics["BLEX"] = alignmentScore(alignment, isContentDeprel, blexEq)

	} else {
		for _, name := range []string{"UAS", "LAS", "ELAS", "EULAS", "CLAS", "MLAS", "BLEX"} {
			metrics[name] = Score{}
		}
	}
	return metrics, nil
}
