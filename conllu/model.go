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

const (
	// NoParent marks a word without a basic parent (the sentence root).
	NoParent = -1

	// VirtualRoot is an enhanced-edge head denoting the artificial
	// root node (the value 0 in the DEPS column).
	VirtualRoot = -2
)

// Span addresses a half-open range [Start, End) within the
// character stream of a corpus (see Corpus.Characters).
type Span struct {
	Start int
	End   int
}

// EnhancedEdge is a single edge of the enhanced dependency graph.
// Head is an index into the owning corpus' Words slice, or VirtualRoot,
// or NoParent in case the edge was rewritten to point to a missing
// basic parent. Path contains one or more relation labels - a chained
// edge like `x:conj:en>obj:voor` produces ["conj:en", "obj:voor"].
type EnhancedEdge struct {
	Head int
	Path []string
}

// Word is the unit the evaluation aligns and scores. Values of
// the FEATS, DEPREL and DEPS columns are stored already canonicalized
// (universal features only, deprel subtype stripped, enhanced edges
// rewritten according to the treebank type) in case the corpus was
// loaded with dependency evaluation enabled.
// Parent and FunctionalChildren are indices into the owning corpus'
// Words slice. They never refer to a different corpus.
type Word struct {
	// Span covers the word's surface form within the corpus characters.
	// For a word which is part of a multiword token, this is the span
	// of the whole token, shared by all its constituent words.
	Span Span

	Form   string
	Lemma  string
	UPos   string
	XPos   string
	Feats  string
	Head   int
	Deprel string
	Misc   string

	Edges []EnhancedEdge

	IsMultiword bool

	Parent             int
	FunctionalChildren []int

	IsContentDeprel    bool
	IsFunctionalDeprel bool
}

// Corpus is an immutable in-memory representation of a single
// CoNLL-U file as needed by the evaluation. Characters contains
// the concatenated surface forms of all the tokens with no
// separators (and with Unicode space characters removed), Tokens
// and Sentences address ranges within Characters.
type Corpus struct {
	Characters []rune
	Tokens     []Span
	Words      []Word
	Sentences  []Span
}
