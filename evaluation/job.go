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

package evaluation

import (
	"time"

	"treval/eval"
	"treval/jobs"
)

const JobType = "conllu-evaluation"

// EvalArgs are the stored arguments of an asynchronous evaluation.
// Only file paths are allowed there (as opposed to inline texts in
// the synchronous API) so a detached job can be restarted.
type EvalArgs struct {
	GoldPath     string `json:"goldPath"`
	SystemPath   string `json:"systemPath"`
	TreebankType string `json:"treebankType"`
	SkipDeprels  bool   `json:"skipDeprels"`
}

type EvalResult struct {
	Metrics eval.Metrics `json:"metrics"`
}

// EvalJobInfo collects status information about an asynchronous
// evaluation job
type EvalJobInfo struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Dataset     string        `json:"dataset"`
	Start       jobs.JSONTime `json:"start"`
	Update      jobs.JSONTime `json:"update"`
	Finished    bool          `json:"finished"`
	Error       error         `json:"error,omitempty"`
	Args        EvalArgs      `json:"args"`
	Result      *EvalResult   `json:"result"`
	NumRestarts int           `json:"numRestarts"`
}

func (j EvalJobInfo) GetID() string {
	return j.ID
}

func (j EvalJobInfo) GetType() string {
	return j.Type
}

func (j EvalJobInfo) GetStartDT() jobs.JSONTime {
	return j.Start
}

func (j EvalJobInfo) GetNumRestarts() int {
	return j.NumRestarts
}

func (j EvalJobInfo) GetCorpus() string {
	return j.Dataset
}

func (j EvalJobInfo) IsFinished() bool {
	return j.Finished
}

func (j EvalJobInfo) AsFinished() jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	return j
}

func (j EvalJobInfo) CompactVersion() jobs.JobInfoCompact {
	item := jobs.JobInfoCompact{
		ID:       j.ID,
		Type:     j.Type,
		CorpusID: j.Dataset,
		Start:    j.Start,
		Update:   j.Update,
		Finished: j.Finished,
		OK:       true,
	}
	if j.Error != nil || (j.Finished && j.Result == nil) {
		item.OK = false
	}
	return item
}

func (j EvalJobInfo) FullInfo() any {
	return struct {
		ID          string        `json:"id"`
		Type        string        `json:"type"`
		Dataset     string        `json:"dataset"`
		Start       jobs.JSONTime `json:"start"`
		Update      jobs.JSONTime `json:"update"`
		Finished    bool          `json:"finished"`
		Error       string        `json:"error,omitempty"`
		OK          bool          `json:"ok"`
		Args        EvalArgs      `json:"args"`
		Result      *EvalResult   `json:"result"`
		NumRestarts int           `json:"numRestarts"`
	}{
		ID:          j.ID,
		Type:        j.Type,
		Dataset:     j.Dataset,
		Start:       j.Start,
		Update:      j.Update,
		Finished:    j.Finished,
		Error:       jobs.ErrorToString(j.Error),
		OK:          j.Error == nil,
		Args:        j.Args,
		Result:      j.Result,
		NumRestarts: j.NumRestarts,
	}
}

func (j EvalJobInfo) GetError() error {
	return j.Error
}

func (j EvalJobInfo) WithError(err error) jobs.GeneralJobInfo {
	return EvalJobInfo{
		ID:          j.ID,
		Type:        j.Type,
		Dataset:     j.Dataset,
		Start:       j.Start,
		Update:      jobs.JSONTime(time.Now()),
		Finished:    true,
		Error:       err,
		Args:        j.Args,
		Result:      j.Result,
		NumRestarts: j.NumRestarts,
	}
}
