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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLine(cols ...string) string {
	return strings.Join(cols, "\t")
}

func testCorpus(lines ...string) string {
	return strings.Join(lines, "\n") + "\n\n"
}

var theCat = testCorpus(
	testLine("1", "The", "the", "DET", "DT", "Definite=Def|PronType=Art", "2", "det", "_", "_"),
	testLine("2", "cat", "cat", "NOUN", "NN", "Number=Sing", "0", "root", "_", "_"),
)

func TestLoadSimpleSentence(t *testing.T) {
	corpus, err := Load(theCat, TreebankType{}, true)
	assert.NoError(t, err)
	assert.Equal(t, []rune("Thecat"), corpus.Characters)
	assert.Equal(t, []Span{{0, 3}, {3, 6}}, corpus.Tokens)
	assert.Equal(t, []Span{{0, 6}}, corpus.Sentences)
	assert.Len(t, corpus.Words, 2)

	the := corpus.Words[0]
	assert.Equal(t, "The", the.Form)
	assert.Equal(t, "DET", the.UPos)
	assert.Equal(t, "det", the.Deprel)
	assert.Equal(t, 1, the.Parent)
	assert.False(t, the.IsContentDeprel)
	assert.True(t, the.IsFunctionalDeprel)

	cat := corpus.Words[1]
	assert.Equal(t, NoParent, cat.Parent)
	assert.True(t, cat.IsContentDeprel)
	assert.Equal(t, []int{0}, cat.FunctionalChildren)
}

func TestLoadSkipsComments(t *testing.T) {
	corpus, err := Load("# sent_id = 1\n# text = The cat\n"+theCat, TreebankType{}, true)
	assert.NoError(t, err)
	assert.Len(t, corpus.Words, 2)
	assert.Len(t, corpus.Sentences, 1)
}

func TestLoadFiltersFeatsToUniversalOnes(t *testing.T) {
	corpus, err := Load(testCorpus(
		testLine("1", "koček", "kočka", "NOUN", "NNFP2", "Number=Plur|SubPOS=N|Gender=Fem|Variant=8", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.NoError(t, err)
	assert.Equal(t, "Gender=Fem|Number=Plur", corpus.Words[0].Feats)
}

func TestLoadKeepsFeatsWithoutDepEval(t *testing.T) {
	corpus, err := Load(testCorpus(
		testLine("1", "koček", "kočka", "NOUN", "NNFP2", "Number=Plur|SubPOS=N", "0", "root", "_", "_"),
	), TreebankType{}, false)
	assert.NoError(t, err)
	assert.Equal(t, "Number=Plur|SubPOS=N", corpus.Words[0].Feats)
}

func TestLoadStripsDeprelSubtype(t *testing.T) {
	corpus, err := Load(testCorpus(
		testLine("1", "roste", "růst", "VERB", "VB", "_", "0", "root:custom", "_", "_"),
	), TreebankType{}, true)
	assert.NoError(t, err)
	assert.Equal(t, "root", corpus.Words[0].Deprel)
}

func TestLoadStripsSpacesFromForm(t *testing.T) {
	corpus, err := Load(testCorpus(
		testLine("1", "New York", "New York", "PROPN", "NNP", "_", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.NoError(t, err)
	assert.Equal(t, []rune("NewYork"), corpus.Characters)
	assert.Equal(t, Span{0, 7}, corpus.Words[0].Span)
}

func TestLoadEmptyFormAfterStripping(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", " ", "_", "X", "X", "_", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorEmptyForm)
}

func TestLoadMultiwordToken(t *testing.T) {
	corpus, err := Load(testCorpus(
		testLine("1-2", "cannot", "_", "_", "_", "_", "_", "_", "_", "_"),
		testLine("1", "can", "can", "AUX", "MD", "_", "3", "aux", "_", "_"),
		testLine("2", "not", "not", "PART", "RB", "_", "3", "advmod", "_", "_"),
		testLine("3", "fly", "fly", "VERB", "VB", "_", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.NoError(t, err)
	assert.Equal(t, []rune("cannotfly"), corpus.Characters)
	// one token span for the MWT, one for the plain word
	assert.Equal(t, []Span{{0, 6}, {6, 9}}, corpus.Tokens)
	assert.Len(t, corpus.Words, 3)
	assert.True(t, corpus.Words[0].IsMultiword)
	assert.True(t, corpus.Words[1].IsMultiword)
	assert.False(t, corpus.Words[2].IsMultiword)
	// constituent words share the span of the whole MWT
	assert.Equal(t, Span{0, 6}, corpus.Words[0].Span)
	assert.Equal(t, Span{0, 6}, corpus.Words[1].Span)
	assert.Equal(t, 2, corpus.Words[0].Parent)
	assert.Equal(t, 2, corpus.Words[1].Parent)
}

func TestLoadColumnCountError(t *testing.T) {
	_, err := Load("1\tcat\tcat\n\n", TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorColumnCount)
	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 1, formatErr.Line)
}

func TestLoadRejectsEmptyNode(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "cat", "cat", "NOUN", "NN", "_", "0", "root", "_", "_"),
		testLine("1.1", "is", "be", "VERB", "VB", "_", "_", "_", "2:cop", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorUnexpectedEmptyNode)
}

func TestLoadNonSequentialID(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "The", "the", "DET", "DT", "_", "2", "det", "_", "_"),
		testLine("3", "cat", "cat", "NOUN", "NN", "_", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorNonSequentialID)
}

func TestLoadUnparsableID(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("x", "cat", "cat", "NOUN", "NN", "_", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorUnparsableID)
}

func TestLoadUnparsableHead(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "cat", "cat", "NOUN", "NN", "_", "x", "root", "_", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorUnparsableHead)
}

func TestLoadHeadIgnoredWithoutDepEval(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "cat", "cat", "NOUN", "NN", "_", "x", "root", "_", "_"),
	), TreebankType{}, false)
	assert.NoError(t, err)
}

func TestLoadNegativeHead(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "cat", "cat", "NOUN", "NN", "_", "-1", "root", "_", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorHeadOutOfRange)
}

func TestLoadHeadOutOfRange(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "The", "the", "DET", "DT", "_", "5", "det", "_", "_"),
		testLine("2", "cat", "cat", "NOUN", "NN", "_", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorHeadOutOfRange)
	var structErr *StructuralError
	assert.ErrorAs(t, err, &structErr)
	assert.Equal(t, 1, structErr.Sentence)
}

func TestLoadCycleDetection(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "a", "a", "X", "X", "_", "2", "dep", "_", "_"),
		testLine("2", "b", "b", "X", "X", "_", "1", "dep", "_", "_"),
		testLine("3", "c", "c", "X", "X", "_", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorCycle)
}

func TestLoadSelfCycle(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "a", "a", "X", "X", "_", "1", "dep", "_", "_"),
		testLine("2", "b", "b", "X", "X", "_", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorCycle)
}

func TestLoadMultipleRoots(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "a", "a", "X", "X", "_", "0", "root", "_", "_"),
		testLine("2", "b", "b", "X", "X", "_", "0", "root", "_", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorRootCount)
}

func TestLoadMissingTrailingBlankLine(t *testing.T) {
	_, err := Load(
		testLine("1", "cat", "cat", "NOUN", "NN", "_", "0", "root", "_", "_")+"\n",
		TreebankType{}, true,
	)
	assert.ErrorIs(t, err, ErrorMissingTrailingBlank)
}

func TestLoadEmptySentence(t *testing.T) {
	_, err := Load(theCat+"\n", TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorEmptySentence)
}

func TestLoadEnhancedDeps(t *testing.T) {
	corpus, err := Load(testCorpus(
		testLine("1", "He", "he", "PRON", "PRP", "_", "2", "nsubj", "2:nsubj", "_"),
		testLine("2", "runs", "run", "VERB", "VBZ", "_", "0", "root", "0:root", "_"),
	), TreebankType{}, true)
	assert.NoError(t, err)
	assert.Equal(t, []EnhancedEdge{{Head: 1, Path: []string{"nsubj"}}}, corpus.Words[0].Edges)
	assert.Equal(t, []EnhancedEdge{{Head: VirtualRoot, Path: []string{"root"}}}, corpus.Words[1].Edges)
}

func TestLoadEnhancedHeadOutOfRange(t *testing.T) {
	_, err := Load(testCorpus(
		testLine("1", "cat", "cat", "NOUN", "NN", "_", "0", "root", "7:nsubj", "_"),
	), TreebankType{}, true)
	assert.ErrorIs(t, err, ErrorHeadOutOfRange)
}

func TestLoadTwoSentences(t *testing.T) {
	corpus, err := Load(theCat+theCat, TreebankType{}, true)
	assert.NoError(t, err)
	assert.Len(t, corpus.Words, 4)
	assert.Equal(t, []Span{{0, 6}, {6, 12}}, corpus.Sentences)
	// parent links never cross sentence boundaries
	assert.Equal(t, 3, corpus.Words[2].Parent)
}
