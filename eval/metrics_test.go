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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func theCatGold() []string {
	return []string{
		testLine("1", "The", "the", "DET", "DT", "Definite=Def|PronType=Art", "2", "det", "2:det", "_"),
		testLine("2", "cat", "cat", "NOUN", "NN", "Number=Sing", "0", "root", "0:root", "_"),
	}
}

func evaluateTestTexts(t *testing.T, gold, system []string, evalDeps bool) Metrics {
	t.Helper()
	metrics, err := EvaluateTexts(
		strings.Join(gold, "\n")+"\n\n",
		strings.Join(system, "\n")+"\n\n",
		"", evalDeps,
	)
	require.NoError(t, err)
	return metrics
}

func TestEvaluateExactMatch(t *testing.T) {
	metrics := evaluateTestTexts(t, theCatGold(), theCatGold(), true)
	assert.Equal(t, 1.0, metrics["UAS"].F1())
	assert.Equal(t, 1.0, metrics["LAS"].F1())
	assert.Equal(t, 2, metrics["Tokens"].Correct)
}

func TestEvaluateIdentity(t *testing.T) {
	corpus := []string{
		testLine("1", "He", "he", "PRON", "PRP", "Case=Nom|Person=3", "2", "nsubj", "2:nsubj", "_"),
		testLine("2", "runs", "run", "VERB", "VBZ", "Number=Sing", "0", "root", "0:root", "_"),
		"",
		testLine("1-2", "isn't", "_", "_", "_", "_", "_", "_", "_", "_"),
		testLine("1", "is", "be", "AUX", "VBZ", "_", "3", "cop", "3:cop", "_"),
		testLine("2", "n't", "not", "PART", "RB", "_", "3", "advmod", "3:advmod", "_"),
		testLine("3", "bad", "bad", "ADJ", "JJ", "Degree=Pos", "0", "root", "0:root", "_"),
	}
	metrics := evaluateTestTexts(t, corpus, corpus, true)
	for _, name := range MetricNames {
		score := metrics[name]
		require.True(t, score.Defined, name)
		assert.Equal(t, 1.0, score.Precision(), name)
		assert.Equal(t, 1.0, score.Recall(), name)
		assert.Equal(t, 1.0, score.F1(), name)
		assert.Equal(t, score.GoldTotal, score.SystemTotal, name)
		assert.Equal(t, score.GoldTotal, score.Correct, name)
	}
}

func TestEvaluateUPosMismatch(t *testing.T) {
	system := theCatGold()
	system[1] = testLine("2", "cat", "cat", "VERB", "NN", "Number=Sing", "0", "root", "0:root", "_")
	metrics := evaluateTestTexts(t, theCatGold(), system, true)
	assert.Equal(t, 1, metrics["UPOS"].Correct)
	assert.Equal(t, 0.5, metrics["UPOS"].F1())
	// LAS ignores UPOS
	assert.Equal(t, 2, metrics["LAS"].Correct)
	// AllTags is at most as good as UPOS
	assert.LessOrEqual(t, metrics["AllTags"].Correct, metrics["UPOS"].Correct)
	assert.LessOrEqual(t, metrics["AllTags"].Correct, metrics["UFeats"].Correct)
}

func TestEvaluateTokenizationMismatch(t *testing.T) {
	gold := []string{
		testLine("1-2", "cannot", "_", "_", "_", "_", "_", "_", "_", "_"),
		testLine("1", "can", "can", "AUX", "MD", "_", "3", "aux", "_", "_"),
		testLine("2", "not", "not", "PART", "RB", "_", "3", "advmod", "_", "_"),
		testLine("3", "fly", "fly", "VERB", "VB", "_", "0", "root", "_", "_"),
	}
	system := []string{
		testLine("1", "cannot", "cannot", "AUX", "MD", "_", "2", "aux", "_", "_"),
		testLine("2", "fly", "fly", "VERB", "VB", "_", "0", "root", "_", "_"),
	}
	metrics := evaluateTestTexts(t, gold, system, true)
	assert.Equal(t, 2, metrics["Tokens"].Correct)
	assert.Equal(t, 3, metrics["Words"].GoldTotal)
	assert.Equal(t, 2, metrics["Words"].SystemTotal)
	assert.Equal(t, 1, metrics["Words"].Correct)
}

func TestEvaluateCharacterMismatch(t *testing.T) {
	system := theCatGold()
	system[1] = testLine("2", "dog", "dog", "NOUN", "NN", "Number=Sing", "0", "root", "0:root", "_")
	_, err := EvaluateTexts(
		strings.Join(theCatGold(), "\n")+"\n\n",
		strings.Join(system, "\n")+"\n\n",
		"", true,
	)
	var alignErr *AlignmentError
	require.ErrorAs(t, err, &alignErr)
	assert.Equal(t, 3, alignErr.Offset)
	assert.Equal(t, "cat", alignErr.GoldContext)
	assert.Equal(t, "dog", alignErr.SystemContext)
}

func TestEvaluateDisabledDeprels(t *testing.T) {
	metrics := evaluateTestTexts(t, theCatGold(), theCatGold(), false)
	for _, name := range []string{"UAS", "LAS", "ELAS", "EULAS", "CLAS", "MLAS", "BLEX"} {
		assert.False(t, metrics[name].Defined, name)
	}
	assert.True(t, metrics["UPOS"].Defined)
	assert.Equal(t, 2, metrics["Words"].Correct)
}

func TestEvaluateLemmaWildcard(t *testing.T) {
	gold := []string{
		testLine("1", "cat", "_", "NOUN", "NN", "_", "0", "root", "_", "_"),
	}
	system := []string{
		testLine("1", "cat", "whatever", "NOUN", "NN", "_", "0", "root", "_", "_"),
	}
	metrics := evaluateTestTexts(t, gold, system, true)
	assert.Equal(t, 1, metrics["Lemmas"].Correct)
}

func TestEvaluateAttachmentMismatch(t *testing.T) {
	gold := []string{
		testLine("1", "big", "big", "ADJ", "JJ", "Degree=Pos", "2", "amod", "2:amod", "_"),
		testLine("2", "cats", "cat", "NOUN", "NN", "Number=Plur", "3", "nsubj", "3:nsubj", "_"),
		testLine("3", "sleep", "sleep", "VERB", "VB", "_", "0", "root", "0:root", "_"),
	}
	system := []string{
		testLine("1", "big", "big", "ADJ", "JJ", "Degree=Pos", "3", "amod", "3:amod", "_"),
		testLine("2", "cats", "cat", "NOUN", "NN", "Number=Plur", "3", "obj", "3:nsubj", "_"),
		testLine("3", "sleep", "sleep", "VERB", "VB", "_", "0", "root", "0:root", "_"),
	}
	metrics := evaluateTestTexts(t, gold, system, true)
	// word 1 misattached, word 2 mislabeled
	assert.Equal(t, 2, metrics["UAS"].Correct)
	assert.Equal(t, 1, metrics["LAS"].Correct)
	assert.LessOrEqual(t, metrics["LAS"].Correct, metrics["UAS"].Correct)
	assert.LessOrEqual(t, metrics["CLAS"].GoldTotal, metrics["LAS"].GoldTotal)
	assert.LessOrEqual(t, metrics["MLAS"].Correct, metrics["CLAS"].Correct)
	assert.GreaterOrEqual(t, metrics["EULAS"].F1(), metrics["ELAS"].F1())
}

func TestEvaluateEnhancedDeps(t *testing.T) {
	gold := []string{
		testLine("1", "He", "he", "PRON", "PRP", "_", "2", "nsubj", "2:nsubj", "_"),
		testLine("2", "runs", "run", "VERB", "VBZ", "_", "0", "root", "0:root", "_"),
	}
	system := []string{
		testLine("1", "He", "he", "PRON", "PRP", "_", "2", "nsubj", "2:nsubj:xsubj", "_"),
		testLine("2", "runs", "run", "VERB", "VBZ", "_", "0", "root", "0:root", "_"),
	}
	metrics := evaluateTestTexts(t, gold, system, true)
	assert.Equal(t, 2, metrics["ELAS"].GoldTotal)
	assert.Equal(t, 2, metrics["ELAS"].SystemTotal)
	// the subtyped system edge fails ELAS but passes EULAS
	assert.Equal(t, 1, metrics["ELAS"].Correct)
	assert.Equal(t, 2, metrics["EULAS"].Correct)
	assert.GreaterOrEqual(t, metrics["EULAS"].F1(), metrics["ELAS"].F1())
}

func TestEvaluateMLASChecksFunctionalChildren(t *testing.T) {
	gold := []string{
		testLine("1", "The", "the", "DET", "DT", "Definite=Def", "2", "det", "_", "_"),
		testLine("2", "cat", "cat", "NOUN", "NN", "Number=Sing", "0", "root", "_", "_"),
	}
	system := []string{
		testLine("1", "The", "the", "DET", "DT", "Definite=Ind", "2", "det", "_", "_"),
		testLine("2", "cat", "cat", "NOUN", "NN", "Number=Sing", "0", "root", "_", "_"),
	}
	metrics := evaluateTestTexts(t, gold, system, true)
	// "cat" itself matches but its functional child differs in FEATS
	assert.Equal(t, 1, metrics["CLAS"].Correct)
	assert.Equal(t, 0, metrics["MLAS"].Correct)
}

func TestEvaluateFilesMissingFile(t *testing.T) {
	_, err := EvaluateFiles("/nonexistent/gold.conllu", "/nonexistent/system.conllu", "", true)
	assert.Error(t, err)
}
