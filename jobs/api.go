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

// Package jobs provides a simple in-process job queue with a limited
// number of workers, job state tracking exposed via REST and e-mail
// notifications about finished jobs. Unfinished jobs survive service
// restarts in a gob-encoded status file ("detached" jobs) so their
// owners can restart them.
package jobs

// GeneralJobInfo is a minimal interface a job status record must
// implement to be manageable by the queue. Implementations are
// expected to be value types - each update produces a new value.
type GeneralJobInfo interface {
	GetID() string

	GetType() string

	GetStartDT() JSONTime

	GetNumRestarts() int

	// GetCorpus returns an identifier of the dataset the job
	// operates on.
	GetCorpus() string

	IsFinished() bool

	// AsFinished returns an updated copy with the finished flag set
	AsFinished() GeneralJobInfo

	CompactVersion() JobInfoCompact

	// FullInfo returns a JSON-friendly version of the status
	// (mainly because of the error field which does not serialize
	// out of the box)
	FullInfo() any

	GetError() error

	// WithError returns an updated copy with the provided error
	// attached and the finished flag set
	WithError(err error) GeneralJobInfo
}

// JobInfoCompact is a simplified job status for listings
type JobInfoCompact struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	CorpusID string   `json:"corpusId"`
	Start    JSONTime `json:"start"`
	Update   JSONTime `json:"update"`
	Finished bool     `json:"finished"`
	OK       bool     `json:"ok"`
}

type JobInfoListCompact []JobInfoCompact

func (jil JobInfoListCompact) Len() int {
	return len(jil)
}

func (jil JobInfoListCompact) Less(i, j int) bool {
	return jil[j].Start.Before(jil[i].Start)
}

func (jil JobInfoListCompact) Swap(i, j int) {
	jil[i], jil[j] = jil[j], jil[i]
}

type JobInfoList []GeneralJobInfo

func (jil JobInfoList) Len() int {
	return len(jil)
}

func (jil JobInfoList) Less(i, j int) bool {
	return jil[j].GetStartDT().Before(jil[i].GetStartDT())
}

func (jil JobInfoList) Swap(i, j int) {
	jil[i], jil[j] = jil[j], jil[i]
}

func ErrorToString(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
