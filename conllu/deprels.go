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

// Fixed relation and feature vocabularies as defined by the
// CoNLL 2018 / IWPT 2020 shared task evaluation.

var contentDeprels = map[string]bool{
	"nsubj":      true,
	"obj":        true,
	"iobj":       true,
	"csubj":      true,
	"ccomp":      true,
	"xcomp":      true,
	"obl":        true,
	"vocative":   true,
	"expl":       true,
	"dislocated": true,
	"advcl":      true,
	"advmod":     true,
	"discourse":  true,
	"nmod":       true,
	"appos":      true,
	"nummod":     true,
	"acl":        true,
	"amod":       true,
	"conj":       true,
	"fixed":      true,
	"flat":       true,
	"compound":   true,
	"list":       true,
	"parataxis":  true,
	"orphan":     true,
	"goeswith":   true,
	"reparandum": true,
	"root":       true,
	"dep":        true,
}

var functionalDeprels = map[string]bool{
	"aux":  true,
	"cop":  true,
	"mark": true,
	"det":  true,
	"clf":  true,
	"case": true,
	"cc":   true,
}

var universalFeatures = map[string]bool{
	"PronType": true,
	"NumType":  true,
	"Poss":     true,
	"Reflex":   true,
	"Foreign":  true,
	"Abbr":     true,
	"Gender":   true,
	"Animacy":  true,
	"Number":   true,
	"Case":     true,
	"Definite": true,
	"Degree":   true,
	"VerbForm": true,
	"Mood":     true,
	"Tense":    true,
	"Aspect":   true,
	"Voice":    true,
	"Evident":  true,
	"Polarity": true,
	"Person":   true,
	"Polite":   true,
}

var caseDeprels = map[string]bool{
	"obl":   true,
	"nmod":  true,
	"conj":  true,
	"advcl": true,
}

var universalDeprelExtensions = map[string]bool{
	"pass":  true,
	"relcl": true,
	"xsubj": true,
}
