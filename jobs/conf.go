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

	"github.com/czcorpus/cnc-gokit/fs"

	"treval/mail"
)

// Conf configures the job queue subsystem
type Conf struct {
	// StatusDataPath is a directory where unfinished job states
	// are stored on shutdown
	StatusDataPath string `json:"statusDataPath"`

	MaxNumConcurrentJobs int `json:"maxNumConcurrentJobs"`

	// EmailNotification enables e-mail reports about finished
	// jobs. If nil, no e-mails are sent.
	EmailNotification *mail.EmailNotification `json:"emailNotification"`
}

func (conf *Conf) Validate() error {
	if conf.StatusDataPath == "" {
		return fmt.Errorf("jobs.statusDataPath not specified")
	}
	isDir, err := fs.IsDir(conf.StatusDataPath)
	if err != nil {
		return fmt.Errorf("failed to test jobs.statusDataPath: %w", err)
	}
	if !isDir {
		return fmt.Errorf("jobs.statusDataPath %s is not a directory", conf.StatusDataPath)
	}
	return nil
}
