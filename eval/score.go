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

import "encoding/json"

// Score is a single metric result. The zero value represents
// a disabled metric (dependency evaluation switched off); such
// a score serializes with null counts and is reported as Undefined.
type Score struct {
	Defined     bool
	GoldTotal   int
	SystemTotal int
	Correct     int
	// HasAligned distinguishes metrics which track the number of
	// aligned (gold) words from the span-based ones which do not
	HasAligned   bool
	AlignedTotal int
}

func newScore(goldTotal, systemTotal, correct int) Score {
	return Score{
		Defined:     true,
		GoldTotal:   goldTotal,
		SystemTotal: systemTotal,
		Correct:     correct,
	}
}

func newAlignedScore(goldTotal, systemTotal, correct, alignedTotal int) Score {
	return Score{
		Defined:      true,
		GoldTotal:    goldTotal,
		SystemTotal:  systemTotal,
		Correct:      correct,
		HasAligned:   true,
		AlignedTotal: alignedTotal,
	}
}

func (s Score) Precision() float64 {
	if !s.Defined || s.SystemTotal == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.SystemTotal)
}

func (s Score) Recall() float64 {
	if !s.Defined || s.GoldTotal == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.GoldTotal)
}

func (s Score) F1() float64 {
	if !s.Defined || s.SystemTotal == 0 || s.GoldTotal == 0 {
		return 0
	}
	return 2 * float64(s.Correct) / float64(s.SystemTotal+s.GoldTotal)
}

// AlignedAccuracy returns correct/alignedTotal. The second return
// value is false in case the metric is disabled, does not track
// aligned words or no word was aligned.
func (s Score) AlignedAccuracy() (float64, bool) {
	if !s.Defined || !s.HasAligned || s.AlignedTotal == 0 {
		return 0, false
	}
	return float64(s.Correct) / float64(s.AlignedTotal), true
}

type scoreJSON struct {
	GoldTotal       *int     `json:"goldTotal"`
	SystemTotal     *int     `json:"systemTotal"`
	Correct         *int     `json:"correct"`
	AlignedTotal    *int     `json:"alignedTotal,omitempty"`
	Precision       float64  `json:"precision"`
	Recall          float64  `json:"recall"`
	F1              float64  `json:"f1"`
	AlignedAccuracy *float64 `json:"alignedAccuracy,omitempty"`
}

func (s Score) MarshalJSON() ([]byte, error) {
	ans := scoreJSON{
		Precision: s.Precision(),
		Recall:    s.Recall(),
		F1:        s.F1(),
	}
	if s.Defined {
		ans.GoldTotal = &s.GoldTotal
		ans.SystemTotal = &s.SystemTotal
		ans.Correct = &s.Correct
		if s.HasAligned {
			ans.AlignedTotal = &s.AlignedTotal
		}
		if acc, ok := s.AlignedAccuracy(); ok {
			ans.AlignedAccuracy = &acc
		}
	}
	return json.Marshal(ans)
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var raw scoreJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Score{}
	if raw.GoldTotal == nil {
		return nil
	}
	s.Defined = true
	s.GoldTotal = *raw.GoldTotal
	if raw.SystemTotal != nil {
		s.SystemTotal = *raw.SystemTotal
	}
	if raw.Correct != nil {
		s.Correct = *raw.Correct
	}
	if raw.AlignedTotal != nil {
		s.HasAligned = true
		s.AlignedTotal = *raw.AlignedTotal
	}
	return nil
}
