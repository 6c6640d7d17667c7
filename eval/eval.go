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

// Package eval compares two CoNLL-U annotations of the same text -
// a gold standard and a system output - and produces the standard
// UD shared task metric battery (Tokens ... BLEX, incl. the enhanced
// dependency scores ELAS/EULAS).
package eval

import (
	"fmt"
	"os"
	"sync"

	"treval/conllu"
)

// EvaluateTexts loads both corpora from already read texts and scores
// them. The treebankType string toggles the enhanced-dependency
// canonicalization rules (characters '1'...'6', see
// conllu.TreebankTypeFromString); evalDeprels switches scoring of
// basic and enhanced dependency relations on/off.
// The two corpora are loaded concurrently - loading is a pure
// function of the text and the configuration.
func EvaluateTexts(goldText, systemText, treebankType string, evalDeprels bool) (Metrics, error) {
	tbt := conllu.TreebankTypeFromString(treebankType)
	var wg sync.WaitGroup
	var gold, system *conllu.Corpus
	var goldErr, systemErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		gold, goldErr = conllu.Load(goldText, tbt, evalDeprels)
	}()
	go func() {
		defer wg.Done()
		system, systemErr = conllu.Load(systemText, tbt, evalDeprels)
	}()
	wg.Wait()
	if goldErr != nil {
		return nil, fmt.Errorf("failed to load gold corpus: %w", goldErr)
	}
	if systemErr != nil {
		return nil, fmt.Errorf("failed to load system corpus: %w", systemErr)
	}
	return Evaluate(gold, system, evalDeprels)
}

// EvaluateFiles is the file-based entry point of the evaluation.
// Both files are read as UTF-8 encoded CoNLL-U.
func EvaluateFiles(goldPath, systemPath, treebankType string, evalDeprels bool) (Metrics, error) {
	goldText, err := os.ReadFile(goldPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gold corpus: %w", err)
	}
	systemText, err := os.ReadFile(systemPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read system corpus: %w", err)
	}
	return EvaluateTexts(string(goldText), string(systemText), treebankType, evalDeprels)
}
