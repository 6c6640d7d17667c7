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
	"errors"
	"fmt"
)

var (
	ErrorColumnCount          = errors.New("line does not contain 10 tab-separated columns")
	ErrorNonSequentialID      = errors.New("non-sequential word ID")
	ErrorUnparsableID         = errors.New("cannot parse token ID")
	ErrorUnparsableHead       = errors.New("cannot parse HEAD")
	ErrorUnexpectedEmptyNode  = errors.New("line contains a non-collapsed empty node")
	ErrorEmptyForm            = errors.New("empty FORM after whitespace stripping")
	ErrorEmptySentence        = errors.New("sentence with zero tokens (possibly a double blank line)")
	ErrorMissingTrailingBlank = errors.New("file does not end with a blank line")
	ErrorHeadOutOfRange       = errors.New("HEAD points outside of the sentence")
	ErrorCycle                = errors.New("cycle in basic dependencies")
	ErrorRootCount            = errors.New("sentence does not contain exactly one root")
)

// FormatError reports a malformed CoNLL-U record. It always aborts
// loading of the whole corpus.
type FormatError struct {
	Line   int
	Reason error
	Detail string
}

func (err *FormatError) Error() string {
	if err.Detail != "" {
		return fmt.Sprintf("line %d: %s: %s", err.Line, err.Reason, err.Detail)
	}
	return fmt.Sprintf("line %d: %s", err.Line, err.Reason)
}

func (err *FormatError) Unwrap() error {
	return err.Reason
}

// StructuralError reports an invalid dependency structure within
// a single sentence. Sentence is the 1-based ordinal position of
// the sentence within the corpus.
type StructuralError struct {
	Sentence int
	Reason   error
	Detail   string
}

func (err *StructuralError) Error() string {
	if err.Detail != "" {
		return fmt.Sprintf("sentence %d: %s: %s", err.Sentence, err.Reason, err.Detail)
	}
	return fmt.Sprintf("sentence %d: %s", err.Sentence, err.Reason)
}

func (err *StructuralError) Unwrap() error {
	return err.Reason
}
