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
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const numColumns = 10

const (
	stateUnresolved uint8 = iota
	stateVisiting
	stateResolved
)

type loader struct {
	tbt      TreebankType
	evalDeps bool
	corpus   *Corpus

	charIdx int
	// sentStart is the corpus index of the first word of the currently
	// open sentence; -1 means no sentence is open
	sentStart int
	// rawEdges keeps the not yet resolved enhanced edges of each word,
	// parallel to corpus.Words
	rawEdges [][]RawEdge
}

// Load parses a whole CoNLL-U text into a Corpus. It is a pure
// function of its arguments. Empty nodes must have been collapsed
// into enhanced dependencies upstream; a record with a decimal ID
// is rejected. With evalDeps enabled, FEATS are reduced to universal
// features, DEPREL subtypes are stripped, basic dependencies are
// resolved (incl. cycle and root checks) and enhanced dependencies
// are canonicalized according to the provided treebank type.
func Load(text string, tbt TreebankType, evalDeps bool) (*Corpus, error) {
	ldr := &loader{
		tbt:       tbt,
		evalDeps:  evalDeps,
		corpus:    &Corpus{},
		sentStart: -1,
	}
	lines := strings.Split(text, "\n")
	// a trailing newline is a line terminator, not an empty final line
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimSuffix(lines[i], "\r")
		if ldr.sentStart < 0 {
			if strings.HasPrefix(line, "#") {
				continue
			}
			ldr.corpus.Sentences = append(ldr.corpus.Sentences, Span{Start: ldr.charIdx})
			ldr.sentStart = len(ldr.corpus.Words)
		}
		if line == "" {
			if err := ldr.endSentence(lineNo); err != nil {
				return nil, err
			}
			continue
		}
		consumed, err := ldr.parseRecord(lines, i, line)
		if err != nil {
			return nil, err
		}
		i += consumed
	}
	if ldr.sentStart >= 0 {
		return nil, &FormatError{Line: len(lines), Reason: ErrorMissingTrailingBlank}
	}
	return ldr.corpus, nil
}

func stripSpaces(form string) string {
	return strings.Map(
		func(c rune) rune {
			if unicode.Is(unicode.Zs, c) {
				return -1
			}
			return c
		},
		form,
	)
}

func (ldr *loader) newWord(lineNo int, cols []string, span Span, isMultiword bool) error {
	word := Word{
		Span:        span,
		Form:        cols[1],
		Lemma:       cols[2],
		UPos:        cols[3],
		XPos:        cols[4],
		Feats:       cols[5],
		Deprel:      cols[7],
		Misc:        cols[9],
		IsMultiword: isMultiword,
		Parent:      NoParent,
	}
	var edges []RawEdge
	if ldr.evalDeps {
		head, err := strconv.Atoi(cols[6])
		if err != nil {
			return &FormatError{Line: lineNo, Reason: ErrorUnparsableHead, Detail: cols[6]}
		}
		if head < 0 {
			return &FormatError{Line: lineNo, Reason: ErrorHeadOutOfRange, Detail: "HEAD cannot be negative"}
		}
		word.Head = head
		word.Feats = filterUniversalFeats(cols[5])
		word.Deprel, _, _ = strings.Cut(cols[7], ":")
		word.IsContentDeprel = contentDeprels[word.Deprel]
		word.IsFunctionalDeprel = functionalDeprels[word.Deprel]
		edges, err = ParseEnhancedDeps(cols[8])
		if err != nil {
			return &FormatError{Line: lineNo, Reason: ErrorUnparsableHead, Detail: err.Error()}
		}
	}
	ldr.corpus.Words = append(ldr.corpus.Words, word)
	ldr.rawEdges = append(ldr.rawEdges, edges)
	return nil
}

func filterUniversalFeats(feats string) string {
	var kept []string
	for _, feat := range strings.Split(feats, "|") {
		name, _, _ := strings.Cut(feat, "=")
		if universalFeatures[name] {
			kept = append(kept, feat)
		}
	}
	sort.Strings(kept)
	return strings.Join(kept, "|")
}

// parseRecord consumes the record at lines[idx] and, in case of
// a multiword token, also the records of its constituent words.
// It returns the number of extra lines consumed.
func (ldr *loader) parseRecord(lines []string, idx int, line string) (int, error) {
	lineNo := idx + 1
	cols := strings.Split(line, "\t")
	if len(cols) != numColumns {
		return 0, &FormatError{Line: lineNo, Reason: ErrorColumnCount, Detail: line}
	}
	if strings.Contains(cols[0], ".") {
		return 0, &FormatError{Line: lineNo, Reason: ErrorUnexpectedEmptyNode, Detail: line}
	}
	form := stripSpaces(cols[1])
	if form == "" {
		return 0, &FormatError{Line: lineNo, Reason: ErrorEmptyForm}
	}
	runes := []rune(form)
	span := Span{Start: ldr.charIdx, End: ldr.charIdx + len(runes)}
	ldr.corpus.Characters = append(ldr.corpus.Characters, runes...)
	ldr.corpus.Tokens = append(ldr.corpus.Tokens, span)
	ldr.charIdx = span.End

	if first, second, isRange := strings.Cut(cols[0], "-"); isRange {
		start, err1 := strconv.Atoi(first)
		end, err2 := strconv.Atoi(second)
		if err1 != nil || err2 != nil {
			return 0, &FormatError{Line: lineNo, Reason: ErrorUnparsableID, Detail: cols[0]}
		}
		consumed := 0
		for id := start; id <= end; id++ {
			consumed++
			wlNo := lineNo + consumed
			if idx+consumed >= len(lines) {
				return 0, &FormatError{Line: wlNo, Reason: ErrorColumnCount, Detail: "unexpected end of file"}
			}
			wcols := strings.Split(strings.TrimSuffix(lines[idx+consumed], "\r"), "\t")
			if len(wcols) != numColumns {
				return 0, &FormatError{Line: wlNo, Reason: ErrorColumnCount, Detail: lines[idx+consumed]}
			}
			if err := ldr.newWord(wlNo, wcols, span, true); err != nil {
				return 0, err
			}
		}
		return consumed, nil
	}

	wordID, err := strconv.Atoi(cols[0])
	if err != nil {
		return 0, &FormatError{Line: lineNo, Reason: ErrorUnparsableID, Detail: cols[0]}
	}
	if expected := len(ldr.corpus.Words) - ldr.sentStart + 1; wordID != expected {
		return 0, &FormatError{
			Line:   lineNo,
			Reason: ErrorNonSequentialID,
			Detail: fmt.Sprintf("found %d, expected %d", wordID, expected),
		}
	}
	return 0, ldr.newWord(lineNo, cols, span, false)
}

func (ldr *loader) endSentence(lineNo int) error {
	if ldr.evalDeps {
		if err := ldr.finalizeSentence(lineNo); err != nil {
			return err
		}
	}
	ldr.corpus.Sentences[len(ldr.corpus.Sentences)-1].End = ldr.charIdx
	ldr.sentStart = -1
	return nil
}

// finalizeSentence resolves basic parents, rewrites enhanced edge
// heads to corpus word indices, canonicalizes the edges and collects
// functional children. Runs only with dependency evaluation enabled.
func (ldr *loader) finalizeSentence(lineNo int) error {
	words := ldr.corpus.Words
	ss := ldr.sentStart
	numWords := len(words) - ss
	sentOrd := len(ldr.corpus.Sentences)
	if numWords == 0 {
		return &FormatError{Line: lineNo, Reason: ErrorEmptySentence}
	}

	// resolve parent links; words along the currently followed head
	// chain are marked as visiting so that a cycle shows up as a chain
	// leading back into itself
	states := make([]uint8, numWords)
	for i := 0; i < numWords; i++ {
		chainStart := i
		for j := i; states[j] == stateUnresolved; {
			states[j] = stateVisiting
			head := words[ss+j].Head
			if head < 0 || head > numWords {
				return &StructuralError{
					Sentence: sentOrd,
					Reason:   ErrorHeadOutOfRange,
					Detail:   fmt.Sprintf("HEAD '%d' with %d words", head, numWords),
				}
			}
			if head == 0 {
				words[ss+j].Parent = NoParent
				break
			}
			words[ss+j].Parent = ss + head - 1
			if states[head-1] == stateVisiting {
				return &StructuralError{Sentence: sentOrd, Reason: ErrorCycle}
			}
			j = head - 1
		}
		for j := chainStart; states[j] == stateVisiting; {
			states[j] = stateResolved
			if words[ss+j].Head == 0 {
				break
			}
			j = words[ss+j].Head - 1
		}
	}

	numRoots := 0
	for i := ss; i < len(words); i++ {
		if words[i].Parent == NoParent {
			numRoots++
		}
	}
	if numRoots != 1 {
		return &StructuralError{
			Sentence: sentOrd,
			Reason:   ErrorRootCount,
			Detail:   fmt.Sprintf("%d roots", numRoots),
		}
	}

	for wi := ss; wi < len(words); wi++ {
		raw := ldr.rawEdges[wi]
		edges := make([]EnhancedEdge, 0, len(raw))
		for _, re := range raw {
			head := VirtualRoot
			if re.Head > 0 {
				if re.Head > numWords {
					return &StructuralError{
						Sentence: sentOrd,
						Reason:   ErrorHeadOutOfRange,
						Detail:   fmt.Sprintf("enhanced dependency head '%d'", re.Head),
					}
				}
				head = ss + re.Head - 1
			}
			edges = append(edges, EnhancedEdge{Head: head, Path: re.Path})
		}
		words[wi].Edges = edges
		ldr.tbt.apply(words, ss, wi)
	}

	for wi := ss; wi < len(words); wi++ {
		if parent := words[wi].Parent; parent != NoParent && words[wi].IsFunctionalDeprel {
			words[parent].FunctionalChildren = append(words[parent].FunctionalChildren, wi)
		}
	}
	return nil
}
