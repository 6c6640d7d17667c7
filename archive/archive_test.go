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

package archive

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treval/eval"
)

func TestScanRun(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	metrics := eval.Metrics{"LAS": eval.Score{}}
	rawMetrics, err := json.Marshal(metrics)
	require.NoError(t, err)

	rec, err := scanRun(func(dest ...any) error {
		*dest[0].(*string) = "run-1"
		*dest[1].(*time.Time) = created
		*dest[2].(*string) = "/data/gold.conllu"
		*dest[3].(*string) = "/data/system.conllu"
		*dest[4].(*string) = "26"
		*dest[5].(*bool) = true
		*dest[6].(*[]byte) = rawMetrics
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "run-1", rec.ID)
	assert.Equal(t, created, rec.Created)
	assert.Equal(t, "/data/gold.conllu", rec.GoldPath)
	assert.Equal(t, "/data/system.conllu", rec.SystemPath)
	assert.Equal(t, "26", rec.TreebankType)
	assert.True(t, rec.EvalDeprels)
	assert.Contains(t, rec.Metrics, "LAS")
	assert.False(t, rec.Metrics["LAS"].Defined)
}

func TestScanRunInvalidMetrics(t *testing.T) {
	_, err := scanRun(func(dest ...any) error {
		*dest[6].(*[]byte) = []byte("{not json")
		return nil
	})
	assert.Error(t, err)
}
