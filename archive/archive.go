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

// Package archive stores finished evaluation runs to a MySQL
// database so the results can be fetched later.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"treval/db/mysql"
	"treval/eval"
)

/*

CREATE TABLE evaluation_run (
	id VARCHAR(36) NOT NULL,
	created DATETIME NOT NULL,
	gold_path TEXT NOT NULL,
	system_path TEXT NOT NULL,
	treebank_type VARCHAR(6) NOT NULL,
	eval_deprels TINYINT NOT NULL,
	metrics JSON NOT NULL,
	PRIMARY KEY (id)
);

*/

var ErrRunNotFound = errors.New("evaluation run not found")

const saveRetryMaxElapsedTime = 30 * time.Second

// RunRecord is a single archived evaluation run
type RunRecord struct {
	ID           string       `json:"id"`
	Created      time.Time    `json:"created"`
	GoldPath     string       `json:"goldPath"`
	SystemPath   string       `json:"systemPath"`
	TreebankType string       `json:"treebankType"`
	EvalDeprels  bool         `json:"evalDeprels"`
	Metrics      eval.Metrics `json:"metrics"`
}

type Storage struct {
	db *mysql.Adapter
}

// SaveRun inserts a finished run. Transient database errors are
// retried with an exponential backoff.
func (s *Storage) SaveRun(ctx context.Context, rec RunRecord) error {
	rawMetrics, err := json.Marshal(rec.Metrics)
	if err != nil {
		return fmt.Errorf("failed to save evaluation run: %w", err)
	}
	operation := func() error {
		_, err := s.db.DB().ExecContext(
			ctx,
			"INSERT INTO evaluation_run "+
				"(id, created, gold_path, system_path, treebank_type, eval_deprels, metrics) "+
				"VALUES (?, ?, ?, ?, ?, ?, ?)",
			rec.ID,
			rec.Created,
			rec.GoldPath,
			rec.SystemPath,
			rec.TreebankType,
			rec.EvalDeprels,
			rawMetrics,
		)
		return err
	}
	bkoff := backoff.NewExponentialBackOff()
	bkoff.MaxElapsedTime = saveRetryMaxElapsedTime
	if err := backoff.Retry(operation, backoff.WithContext(bkoff, ctx)); err != nil {
		return fmt.Errorf("failed to save evaluation run: %w", err)
	}
	return nil
}

// GetRun fetches a single archived run. If there is no run with
// the provided ID, ErrRunNotFound is returned.
func (s *Storage) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	row := s.db.DB().QueryRowContext(
		ctx,
		"SELECT id, created, gold_path, system_path, treebank_type, eval_deprels, metrics "+
			"FROM evaluation_run WHERE id = ?",
		runID,
	)
	rec, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return RunRecord{}, ErrRunNotFound
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to get evaluation run: %w", err)
	}
	return rec, nil
}

// LoadRecentRuns fetches up to limit most recently created runs
func (s *Storage) LoadRecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.DB().QueryContext(
		ctx,
		"SELECT id, created, gold_path, system_path, treebank_type, eval_deprels, metrics "+
			"FROM evaluation_run ORDER BY created DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation runs: %w", err)
	}
	defer rows.Close()
	ans := make([]RunRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRun(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to load evaluation runs: %w", err)
		}
		ans = append(ans, rec)
	}
	return ans, nil
}

func scanRun(scan func(dest ...any) error) (RunRecord, error) {
	var rec RunRecord
	var rawMetrics []byte
	err := scan(
		&rec.ID,
		&rec.Created,
		&rec.GoldPath,
		&rec.SystemPath,
		&rec.TreebankType,
		&rec.EvalDeprels,
		&rawMetrics,
	)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(rawMetrics, &rec.Metrics); err != nil {
		return rec, err
	}
	return rec, nil
}

func NewStorage(db *mysql.Adapter) *Storage {
	return &Storage{db: db}
}
