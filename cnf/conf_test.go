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

package cnf

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treval/common"
	"treval/jobs"
)

func TestLoadConfig(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "conf.json")
	err := os.WriteFile(confPath, []byte(`{
		"listenAddress": "127.0.0.1",
		"listenPort": 8088,
		"defaultTreebankType": "26",
		"jobs": {"statusDataPath": "/tmp", "maxNumConcurrentJobs": 2}
	}`), 0644)
	require.NoError(t, err)
	conf := LoadConfig(confPath)
	assert.Equal(t, "127.0.0.1", conf.ListenAddress)
	assert.Equal(t, 8088, conf.ListenPort)
	assert.Equal(t, "26", conf.DefaultTreebankType)
	assert.Equal(t, 2, conf.Jobs.MaxNumConcurrentJobs)
	assert.Equal(t, confPath, conf.GetSourcePath())
}

func TestValidateAndDefaults(t *testing.T) {
	conf := &Conf{
		Jobs: &jobs.Conf{StatusDataPath: t.TempDir()},
	}
	ValidateAndDefaults(conf)
	assert.Equal(t, dfltServerWriteTimeoutSecs, conf.ServerWriteTimeoutSecs)
	assert.Equal(t, dfltLanguage, conf.Language)
	assert.Equal(
		t,
		common.Min(dfltMaxNumConcurrentJobs, runtime.NumCPU()),
		conf.Jobs.MaxNumConcurrentJobs,
	)
}

func TestJobsConfValidate(t *testing.T) {
	conf := &jobs.Conf{}
	assert.Error(t, conf.Validate())

	conf.StatusDataPath = t.TempDir()
	assert.NoError(t, conf.Validate())

	conf.StatusDataPath = filepath.Join(t.TempDir(), "does-not-exist")
	assert.Error(t, conf.Validate())
}
