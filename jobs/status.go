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
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

const statusDataFilename = "detached-jobs.gob"

func (a *Actions) statusDataPath() string {
	return filepath.Join(a.conf.StatusDataPath, statusDataFilename)
}

// storeDetachedJobs gob-encodes unfinished jobs so the next process
// can offer them for a restart. Concrete job status types must be
// gob-registered by the main package.
func (a *Actions) storeDetachedJobs() error {
	unfinished := make([]GeneralJobInfo, 0, a.jobList.Len())
	for _, job := range a.jobList.Values() {
		if !job.IsFinished() {
			unfinished = append(unfinished, job)
		}
	}
	for _, job := range a.detachedJobs.Values() {
		if !job.IsFinished() {
			unfinished = append(unfinished, job)
		}
	}
	if len(unfinished) == 0 {
		return nil
	}
	file, err := os.Create(a.statusDataPath())
	if err != nil {
		return fmt.Errorf("failed to store detached jobs: %w", err)
	}
	defer file.Close()
	if err := gob.NewEncoder(file).Encode(unfinished); err != nil {
		return fmt.Errorf("failed to store detached jobs: %w", err)
	}
	log.Info().
		Int("numJobs", len(unfinished)).
		Str("path", a.statusDataPath()).
		Msg("stored unfinished jobs")
	return nil
}

// loadDetachedJobs reads the status file of a previous process
// (if any) and removes it afterwards.
func (a *Actions) loadDetachedJobs() error {
	path := a.statusDataPath()
	isFile, err := fs.IsFile(path)
	if err != nil {
		return fmt.Errorf("failed to load detached jobs: %w", err)
	}
	if !isFile {
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load detached jobs: %w", err)
	}
	defer file.Close()
	var jobList []GeneralJobInfo
	if err := gob.NewDecoder(file).Decode(&jobList); err != nil {
		return fmt.Errorf("failed to load detached jobs: %w", err)
	}
	for _, job := range jobList {
		a.detachedJobs.Set(job.GetID(), job)
	}
	if err := os.Remove(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to remove the status file")
	}
	log.Info().
		Int("numJobs", len(jobList)).
		Str("path", path).
		Msg("loaded unfinished jobs of a previous process")
	return nil
}
