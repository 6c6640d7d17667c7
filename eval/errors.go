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

import "fmt"

const diffContextSize = 20

// AlignmentError means the concatenated token characters of the gold
// and the system corpus differ, which makes any evaluation impossible.
// It carries the offset of the first divergence and up to twenty
// following characters of each side.
type AlignmentError struct {
	Offset        int
	GoldContext   string
	SystemContext string
}

func (err *AlignmentError) Error() string {
	return fmt.Sprintf(
		"gold and system token characters differ at offset %d; gold: %q, system: %q",
		err.Offset, err.GoldContext, err.SystemContext,
	)
}

func compareCharacters(gold, system []rune) error {
	idx := 0
	for idx < len(gold) && idx < len(system) && gold[idx] == system[idx] {
		idx++
	}
	if idx == len(gold) && idx == len(system) {
		return nil
	}
	return &AlignmentError{
		Offset:        idx,
		GoldContext:   string(runesFrom(gold, idx)),
		SystemContext: string(runesFrom(system, idx)),
	}
}

func runesFrom(chars []rune, idx int) []rune {
	if idx >= len(chars) {
		return nil
	}
	end := idx + diffContextSize
	if end > len(chars) {
		end = len(chars)
	}
	return chars[idx:end]
}
