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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreArithmetic(t *testing.T) {
	s := newAlignedScore(10, 8, 4, 8)
	assert.InDelta(t, 0.5, s.Precision(), 1e-9)
	assert.InDelta(t, 0.4, s.Recall(), 1e-9)
	assert.InDelta(t, 2*4.0/18.0, s.F1(), 1e-9)
	acc, ok := s.AlignedAccuracy()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, acc, 1e-9)
}

func TestScoreF1MatchesHarmonicMean(t *testing.T) {
	s := newScore(7, 5, 3)
	p := s.Precision()
	r := s.Recall()
	assert.InDelta(t, 2*p*r/(p+r), s.F1(), 1e-9)
}

func TestScoreZeroTotals(t *testing.T) {
	s := newScore(0, 0, 0)
	assert.Equal(t, 0.0, s.Precision())
	assert.Equal(t, 0.0, s.Recall())
	assert.Equal(t, 0.0, s.F1())

	s = newScore(5, 0, 0)
	assert.Equal(t, 0.0, s.Precision())
	assert.Equal(t, 0.0, s.F1())

	s = newScore(0, 5, 0)
	assert.Equal(t, 0.0, s.Recall())
	assert.Equal(t, 0.0, s.F1())
}

func TestScoreUndefinedAlignedAccuracy(t *testing.T) {
	_, ok := newScore(2, 2, 2).AlignedAccuracy()
	assert.False(t, ok)
	_, ok = newAlignedScore(2, 2, 0, 0).AlignedAccuracy()
	assert.False(t, ok)
}

func TestDisabledScoreSerializesWithNulls(t *testing.T) {
	raw, err := json.Marshal(Score{})
	assert.NoError(t, err)
	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded["goldTotal"])
	assert.Nil(t, decoded["systemTotal"])
	assert.Nil(t, decoded["correct"])
	assert.Equal(t, 0.0, decoded["f1"])
}

func TestScoreSerializationRoundTrip(t *testing.T) {
	orig := newAlignedScore(4, 3, 2, 4)
	raw, err := json.Marshal(orig)
	assert.NoError(t, err)
	var decoded Score
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, orig, decoded)

	raw, err = json.Marshal(Score{})
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.False(t, decoded.Defined)
}

func TestScoreSerialization(t *testing.T) {
	raw, err := json.Marshal(newAlignedScore(4, 4, 2, 4))
	assert.NoError(t, err)
	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 4.0, decoded["goldTotal"])
	assert.Equal(t, 2.0, decoded["correct"])
	assert.Equal(t, 0.5, decoded["f1"])
	assert.Equal(t, 0.5, decoded["alignedAccuracy"])
}
