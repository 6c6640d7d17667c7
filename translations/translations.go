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

// Package translations registers localized variants of user-facing
// messages (currently e-mail notifications about finished jobs).
// It is imported for its side effect only.
package translations

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type translation struct {
	lang string
	key  string
	msg  string
}

func init() {
	for _, t := range []translation{
		{"cs", "CoNLL-U evaluation against a gold standard", "Vyhodnocení CoNLL-U dat oproti zlatému standardu"},
		{"cs", "Testing and debugging empty job", "Testovací prázdná úloha"},
		{"cs", "Unknown job", "Neznámá úloha"},
		{"cs", "Job finished without errors", "Úloha skončila bez chyb"},
		{"cs", "Job finished with error: %s", "Úloha skončila s chybou: %s"},
		{"cs", "job ID", "ID úlohy"},
		{"cs", "dataset", "datová sada"},
	} {
		if err := message.SetString(language.Make(t.lang), t.key, t.msg); err != nil {
			panic(err)
		}
	}
}
