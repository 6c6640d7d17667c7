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

package jobs

import (
	"fmt"
	"testing"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func testNotifActions(conf *Conf) *Actions {
	return &Actions{
		conf:            conf,
		language:        "en",
		msgPrinter:      message.NewPrinter(language.English),
		jobList:         collections.NewConcurrentMap[string, GeneralJobInfo](),
		detachedJobs:    collections.NewConcurrentMap[string, GeneralJobInfo](),
		notifRecipients: collections.NewConcurrentMap[string, []string](),
	}
}

func TestNotifyFinishedWithoutRecipients(t *testing.T) {
	a := testNotifActions(&Conf{})
	assert.NotPanics(t, func() {
		a.notifyFinished(DummyJobInfo{ID: "j1", Type: "dummy-job", Finished: true})
	})
}

func TestNotifyFinishedWithoutMailConfiguration(t *testing.T) {
	a := testNotifActions(&Conf{})
	a.notifRecipients.Set("j1", []string{"user@example.com"})
	// EmailNotification is nil, the subscription is only logged
	assert.NotPanics(t, func() {
		a.notifyFinished(DummyJobInfo{ID: "j1", Type: "dummy-job", Finished: true})
	})
}

func TestLocalizedStatus(t *testing.T) {
	printer := message.NewPrinter(language.English)
	job := DummyJobInfo{ID: "j1", Type: "dummy-job"}
	assert.Equal(t, "Job finished without errors", localizedStatus(printer, job))
	failed := job.WithError(fmt.Errorf("boom"))
	assert.Equal(t, "Job finished with error: boom", localizedStatus(printer, failed))
}

func TestExtractJobDescription(t *testing.T) {
	printer := message.NewPrinter(language.English)
	assert.Equal(
		t,
		"CoNLL-U evaluation against a gold standard",
		extractJobDescription(printer, DummyJobInfo{Type: "conllu-evaluation"}),
	)
	assert.Equal(
		t,
		"Unknown job",
		extractJobDescription(printer, DummyJobInfo{Type: "whatever"}),
	)
}
