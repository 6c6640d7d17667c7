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

package conllu

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// RawEdge is an enhanced dependency edge as written in the DEPS
// column, i.e. with its head being a sentence-relative word ID
// (0 denotes the virtual root).
type RawEdge struct {
	Head int
	Path []string
}

// ParseEnhancedDeps parses the DEPS column into a list of enhanced
// edges, order preserved. The value "_" (or an empty one) produces no
// edges. Segments without a colon are skipped. A chained relation
// like `3:conj:en>obj:voor` produces a single edge with a two-label
// path.
func ParseEnhancedDeps(deps string) ([]RawEdge, error) {
	if deps == "_" || deps == "" {
		return nil, nil
	}
	var edges []RawEdge
	for _, item := range strings.Split(deps, "|") {
		head, path, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		headID, err := strconv.ParseUint(head, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid enhanced dependency head in %s: %w", item, err)
		}
		edges = append(edges, RawEdge{
			Head: int(headID),
			Path: strings.Split(path, ">"),
		})
	}
	return edges, nil
}

// TreebankType enables individual enhanced-dependency canonicalization
// rules. Treebanks differ in which of the enhancements they annotate;
// switching a rule on rewrites the respective enhancement back to its
// basic-dependency form so that such treebanks are not penalized.
type TreebankType struct {
	NoGapping                            bool
	NoSharedParentsInCoordination        bool
	NoSharedDependentsInCoordination     bool
	NoControl                            bool
	NoExternalArgumentsOfRelativeClauses bool
	NoCaseInfo                           bool
}

// TreebankTypeFromString creates a TreebankType out of a compact
// specification where each of the characters '1'...'6' (any subset,
// any order) enables the respective rule.
func TreebankTypeFromString(spec string) TreebankType {
	return TreebankType{
		NoGapping:                            strings.ContainsRune(spec, '1'),
		NoSharedParentsInCoordination:        strings.ContainsRune(spec, '2'),
		NoSharedDependentsInCoordination:     strings.ContainsRune(spec, '3'),
		NoControl:                            strings.ContainsRune(spec, '4'),
		NoExternalArgumentsOfRelativeClauses: strings.ContainsRune(spec, '5'),
		NoCaseInfo:                           strings.ContainsRune(spec, '6'),
	}
}

// ValidateTreebankTypeString is a strict variant of
// TreebankTypeFromString rejecting unknown rule characters.
func ValidateTreebankTypeString(spec string) (TreebankType, error) {
	for _, ch := range spec {
		if ch < '0' || ch > '6' {
			return TreebankType{}, fmt.Errorf("invalid treebank type specification %q", spec)
		}
	}
	return TreebankTypeFromString(spec), nil
}

func edgeListContains(edges []EnhancedEdge, srch EnhancedEdge) bool {
	for _, e := range edges {
		if e.Head == srch.Head && slices.Equal(e.Path, srch.Path) {
			return true
		}
	}
	return false
}

// apply rewrites the enhanced edges of the word words[widx] in place.
// The rules run in a fixed order; each reads and replaces the whole
// edge list atomically. sentStart is the corpus index of the first
// word of the sentence the word belongs to.
func (tbt TreebankType) apply(words []Word, sentStart, widx int) {
	word := &words[widx]
	edges := word.Edges

	// rule 1: multi-label paths come from gapping; fall back to the
	// basic relation. The fallback may duplicate an edge which is
	// already present - such plain edges are not re-added.
	if tbt.NoGapping {
		rewritten := make([]EnhancedEdge, 0, len(edges))
		for _, e := range edges {
			if len(e.Path) > 1 {
				rewritten = append(rewritten, EnhancedEdge{Head: word.Parent, Path: []string{word.Deprel}})

			} else if !edgeListContains(rewritten, e) {
				rewritten = append(rewritten, e)
			}
		}
		edges = rewritten
	}

	// rule 2: for a conjunct, any relation other than conj is a shared
	// parent annotation; collapse the edge set to the conj edge alone
	if tbt.NoSharedParentsInCoordination {
		for _, e := range edges {
			if len(e.Path) == 1 && strings.HasPrefix(e.Path[0], "conj") {
				edges = []EnhancedEdge{e}
			}
		}
	}

	// rule 3: an edge duplicated via coordination (same path, different
	// head) is spurious unless it agrees with the basic head
	if tbt.NoSharedDependentsInCoordination {
		rewritten := make([]EnhancedEdge, 0, len(edges))
		for _, e := range edges {
			duplicate := false
			for _, e2 := range edges {
				if slices.Equal(e.Path, e2.Path) && e2.Head == word.Parent && e.Head != e2.Head {
					duplicate = true
				}
			}
			if !duplicate {
				rewritten = append(rewritten, e)
			}
		}
		edges = rewritten
	}

	// rule 4: subjects attached to an xcomp head are control relations
	if tbt.NoControl {
		rewritten := make([]EnhancedEdge, 0, len(edges))
		for _, e := range edges {
			include := true
			if e.Head >= 0 && words[e.Head].Deprel == "xcomp" {
				for _, rel := range e.Path {
					if strings.HasPrefix(rel, "nsubj") {
						include = false
					}
				}
			}
			if include {
				rewritten = append(rewritten, e)
			}
		}
		edges = rewritten
	}

	// rule 5: a `ref` edge falls back to the basic relation; an edge
	// whose head is a relative clause attached back to this word
	// (i.e. the external argument closing a cycle) is dropped
	if tbt.NoExternalArgumentsOfRelativeClauses {
		wordPos := widx - sentStart
		rewritten := make([]EnhancedEdge, 0, len(edges))
		for _, e := range edges {
			switch {
			case e.Path[0] == "ref":
				rewritten = append(rewritten, EnhancedEdge{Head: word.Parent, Path: []string{word.Deprel}})
			case e.Head >= 0 && strings.HasPrefix(words[e.Head].Deprel, "acl") && words[e.Head].Head == wordPos:
				// external argument link, skip
			default:
				rewritten = append(rewritten, e)
			}
		}
		edges = rewritten
	}

	// rule 6: lemma-derived subtypes of case-marking relations are
	// stripped down to the universal base label
	if tbt.NoCaseInfo {
		rewritten := make([]EnhancedEdge, 0, len(edges))
		for _, e := range edges {
			path := make([]string, len(e.Path))
			for i, rel := range e.Path {
				parts := strings.Split(rel, ":")
				if caseDeprels[parts[0]] && len(parts) == 2 && !universalDeprelExtensions[parts[1]] {
					rel = parts[0]
				}
				path[i] = rel
			}
			rewritten = append(rewritten, EnhancedEdge{Head: e.Head, Path: path})
		}
		edges = rewritten
	}

	word.Edges = edges
}
