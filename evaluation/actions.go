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

// Package evaluation exposes the eval engine via REST - either
// synchronously or as an asynchronous job with an optional archive
// of finished runs.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"treval/archive"
	"treval/cnf"
	"treval/conllu"
	"treval/eval"
	"treval/jobs"
)

var errJobCancelled = errors.New("job cancelled")

// evalRequest is the body of the synchronous evaluation action.
// Corpora are provided either as file paths or as inline texts
// (for both, the same source must be used).
type evalRequest struct {
	GoldPath     string `json:"goldPath"`
	SystemPath   string `json:"systemPath"`
	GoldText     string `json:"goldText"`
	SystemText   string `json:"systemText"`
	TreebankType string `json:"treebankType"`
	SkipDeprels  bool   `json:"skipDeprels"`
}

func (req evalRequest) usesPaths() bool {
	return req.GoldPath != "" || req.SystemPath != ""
}

func (req evalRequest) validate() error {
	if req.usesPaths() {
		if req.GoldPath == "" || req.SystemPath == "" {
			return fmt.Errorf("goldPath and systemPath must be specified together")
		}
		if req.GoldText != "" || req.SystemText != "" {
			return fmt.Errorf("cannot mix inline texts and file paths")
		}
		return nil
	}
	if req.GoldText == "" || req.SystemText == "" {
		return fmt.Errorf("either file paths or inline texts must be specified")
	}
	return nil
}

// Actions contains the REST handlers of the evaluation engine
type Actions struct {
	conf       *cnf.Conf
	jobActions *jobs.Actions

	// archiveStorage is optional; without it finished runs
	// are not stored
	archiveStorage *archive.Storage

	jobCancel *collections.ConcurrentMap[string, context.CancelFunc]
}

// treebankType resolves the effective treebank type spec, falling
// back to the configured default for an empty request value.
func (a *Actions) treebankType(reqValue string) (string, error) {
	if reqValue == "" {
		reqValue = a.conf.DefaultTreebankType
	}
	if _, err := conllu.ValidateTreebankTypeString(reqValue); err != nil {
		return "", err
	}
	return reqValue, nil
}

// statusForEvalError maps engine errors to HTTP statuses - data
// problems produce 422, anything else is a server error.
func statusForEvalError(err error) int {
	var formatErr *conllu.FormatError
	var structErr *conllu.StructuralError
	var alignErr *eval.AlignmentError
	if errors.As(err, &formatErr) || errors.As(err, &structErr) || errors.As(err, &alignErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Evaluate is a REST handler running the evaluation synchronously
func (a *Actions) Evaluate(ctx *gin.Context) {
	var req evalRequest
	if err := ctx.BindJSON(&req); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}
	tbt, err := a.treebankType(req.TreebankType)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}
	var metrics eval.Metrics
	if req.usesPaths() {
		metrics, err = eval.EvaluateFiles(req.GoldPath, req.SystemPath, tbt, !req.SkipDeprels)

	} else {
		metrics, err = eval.EvaluateTexts(req.GoldText, req.SystemText, tbt, !req.SkipDeprels)
	}
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, statusForEvalError(err))
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, EvalResult{Metrics: metrics})
}

// EvaluateAsJob is a REST handler starting the evaluation as an
// asynchronous job. Only the file path variant is supported so the
// job can be restarted after a service restart.
func (a *Actions) EvaluateAsJob(ctx *gin.Context) {
	var req evalRequest
	if err := ctx.BindJSON(&req); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	if !req.usesPaths() {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("asynchronous evaluation requires goldPath and systemPath"),
			http.StatusUnprocessableEntity,
		)
		return
	}
	if err := req.validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}
	if _, err := a.treebankType(req.TreebankType); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}
	for _, p := range []string{req.GoldPath, req.SystemPath} {
		isFile, err := fs.IsFile(p)
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
			return
		}
		if !isFile {
			uniresp.RespondWithErrorJSON(
				ctx, fmt.Errorf("%s is not a file", p), http.StatusUnprocessableEntity)
			return
		}
	}
	jobID, err := uuid.NewUUID()
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	jinfo := EvalJobInfo{
		ID:      jobID.String(),
		Type:    JobType,
		Dataset: datasetOf(req.GoldPath),
		Start:   jobs.CurrentDatetime(),
		Update:  jobs.CurrentDatetime(),
		Args: EvalArgs{
			GoldPath:     req.GoldPath,
			SystemPath:   req.SystemPath,
			TreebankType: req.TreebankType,
			SkipDeprels:  req.SkipDeprels,
		},
	}
	a.startJob(jinfo)
	uniresp.WriteJSONResponse(ctx.Writer, jinfo.FullInfo())
}

// RestartJob re-enqueues an unfinished job recovered from
// a previous process.
func (a *Actions) RestartJob(jinfo EvalJobInfo) error {
	if err := a.jobActions.TestAllowsJobRestart(jinfo); err != nil {
		return err
	}
	jinfo.Start = jobs.CurrentDatetime()
	jinfo.Update = jobs.CurrentDatetime()
	jinfo.NumRestarts++
	jinfo.Finished = false
	jinfo.Error = nil
	jinfo.Result = nil
	a.startJob(jinfo)
	log.Info().
		Str("jobId", jinfo.ID).
		Int("numRestarts", jinfo.NumRestarts).
		Msg("restarted evaluation job")
	return nil
}

func (a *Actions) startJob(jinfo EvalJobInfo) {
	runCtx, cancel := context.WithCancel(context.Background())
	a.jobCancel.Set(jinfo.ID, cancel)
	fn := func(updateJobChan chan<- jobs.GeneralJobInfo) {
		defer close(updateJobChan)
		defer a.jobCancel.Delete(jinfo.ID)
		updateJobChan <- a.runEvaluation(runCtx, jinfo)
	}
	a.jobActions.EnqueueJob(&fn, jinfo)
}

func (a *Actions) runEvaluation(ctx context.Context, jinfo EvalJobInfo) jobs.GeneralJobInfo {
	tbt, err := a.treebankType(jinfo.Args.TreebankType)
	if err != nil {
		return jinfo.WithError(err)
	}
	type evalAns struct {
		metrics eval.Metrics
		err     error
	}
	resultChan := make(chan evalAns, 1)
	go func() {
		metrics, err := eval.EvaluateFiles(
			jinfo.Args.GoldPath, jinfo.Args.SystemPath, tbt, !jinfo.Args.SkipDeprels)
		resultChan <- evalAns{metrics, err}
	}()
	select {
	case <-ctx.Done():
		return jinfo.WithError(errJobCancelled)
	case ans := <-resultChan:
		if ans.err != nil {
			return jinfo.WithError(ans.err)
		}
		jinfo.Result = &EvalResult{Metrics: ans.metrics}
		finished := jinfo.AsFinished()
		a.archiveRun(jinfo, ans.metrics)
		return finished
	}
}

func (a *Actions) archiveRun(jinfo EvalJobInfo, metrics eval.Metrics) {
	if a.archiveStorage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	err := a.archiveStorage.SaveRun(ctx, archive.RunRecord{
		ID:           jinfo.ID,
		Created:      time.Now(),
		GoldPath:     jinfo.Args.GoldPath,
		SystemPath:   jinfo.Args.SystemPath,
		TreebankType: jinfo.Args.TreebankType,
		EvalDeprels:  !jinfo.Args.SkipDeprels,
		Metrics:      metrics,
	})
	if err != nil {
		log.Error().Err(err).Str("jobId", jinfo.ID).Msg("failed to archive evaluation run")
	}
}

func datasetOf(goldPath string) string {
	base := filepath.Base(goldPath)
	return base[:len(base)-len(filepath.Ext(base))]
}

// NewActions is the default factory. It also spawns a goroutine
// cancelling running jobs on request (see jobs.Actions.Delete).
func NewActions(
	conf *cnf.Conf,
	ctx context.Context,
	jobStopRequest <-chan string,
	jobActions *jobs.Actions,
	archiveStorage *archive.Storage,
) *Actions {
	ans := &Actions{
		conf:           conf,
		jobActions:     jobActions,
		archiveStorage: archiveStorage,
		jobCancel:      collections.NewConcurrentMap[string, context.CancelFunc](),
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case jobID := <-jobStopRequest:
				if cancel, ok := ans.jobCancel.GetWithTest(jobID); ok {
					cancel()
					log.Info().Str("jobId", jobID).Msg("cancelled evaluation job")
				}
			}
		}
	}()
	return ans
}
