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
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"treval/common"
)

// Actions runs the job queue and provides REST handlers for
// job management.
type Actions struct {
	conf       *Conf
	ctx        context.Context
	language   string
	msgPrinter *message.Printer

	// jobList maps job IDs to their latest reported status,
	// including the finished ones (until cleared)
	jobList *collections.ConcurrentMap[string, GeneralJobInfo]

	// detachedJobs contains unfinished jobs loaded from the status
	// file of a previous process. They are not run - their owners
	// are expected to restart them and clear them via
	// ClearDetachedJob.
	detachedJobs *collections.ConcurrentMap[string, GeneralJobInfo]

	// notifRecipients maps job IDs to e-mail addresses subscribed
	// for a notification about the finished job
	notifRecipients *collections.ConcurrentMap[string, []string]

	queueLock  sync.Mutex
	queue      JobQueue
	jobDeps    JobsDeps
	numRunning int

	// jobStopRequest is a channel shared with job owners. Writing
	// a job ID there asks the owner to cancel the job.
	jobStopRequest chan<- string
}

// EnqueueJob adds a job to the queue. Its initial state becomes
// visible in job listings immediately, even if all the workers
// are currently busy.
func (a *Actions) EnqueueJob(fn *QueuedFunc, initialStatus GeneralJobInfo) {
	if initialStatus.GetID() == "" {
		log.Error().Msg("refusing to enqueue job with an empty ID")
		return
	}
	a.jobList.Set(initialStatus.GetID(), initialStatus)
	a.queueLock.Lock()
	a.queue.Enqueue(fn, initialStatus)
	a.queueLock.Unlock()
	log.Info().
		Str("jobId", initialStatus.GetID()).
		Str("jobType", initialStatus.GetType()).
		Msg("job enqueued")
	a.dispatch()
}

// EnqueueJobAfter adds a job which must not start before its parent
// job finishes. A failed parent prevents the job from running at all.
func (a *Actions) EnqueueJobAfter(fn *QueuedFunc, initialStatus GeneralJobInfo, parentJobID string) error {
	a.queueLock.Lock()
	err := a.jobDeps.Add(initialStatus.GetID(), parentJobID)
	a.queueLock.Unlock()
	if err != nil {
		return fmt.Errorf("failed to enqueue dependent job: %w", err)
	}
	a.EnqueueJob(fn, initialStatus)
	return nil
}

// dispatch starts queued jobs as long as there is a free worker.
// Jobs waiting for an unfinished parent are moved back in the queue.
func (a *Actions) dispatch() {
	a.queueLock.Lock()
	defer a.queueLock.Unlock()
	delayed := 0
	for a.numRunning < a.conf.MaxNumConcurrentJobs {
		nextID, err := a.queue.PeekID()
		if err == ErrorEmptyQueue {
			return
		}
		mustWait, err := a.jobDeps.MustWait(nextID)
		if err == nil && mustWait {
			if delayed >= a.queue.Size() {
				return
			}
			a.queue.DelayNext()
			delayed++
			continue
		}
		fn, initialStatus, err := a.queue.Dequeue()
		if err != nil {
			return
		}
		if failed, err := a.jobDeps.HasFailedParent(initialStatus.GetID()); err == nil && failed {
			status := initialStatus.WithError(fmt.Errorf("parent job failed"))
			a.jobList.Set(status.GetID(), status)
			continue
		}
		a.numRunning++
		go a.runJob(fn, initialStatus)
	}
}

func (a *Actions) runJob(fn *QueuedFunc, initialStatus GeneralJobInfo) {
	updates := make(chan GeneralJobInfo, 10)
	go func() {
		(*fn)(updates)
	}()
	lastStatus := initialStatus
	for status := range updates {
		lastStatus = status
		a.jobList.Set(status.GetID(), status)
	}
	if !lastStatus.IsFinished() {
		lastStatus = lastStatus.AsFinished()
		a.jobList.Set(lastStatus.GetID(), lastStatus)
	}
	log.Info().
		Str("jobId", lastStatus.GetID()).
		Str("jobType", lastStatus.GetType()).
		Err(lastStatus.GetError()).
		Msg("job finished")
	a.queueLock.Lock()
	a.jobDeps.SetParentFinished(lastStatus.GetID(), lastStatus.GetError() != nil)
	a.numRunning--
	a.queueLock.Unlock()
	a.notifyFinished(lastStatus)
	a.dispatch()
}

// TestAllowsJobRestart returns nil if the provided job can be
// restarted (i.e. there is currently no unfinished instance of it).
func (a *Actions) TestAllowsJobRestart(jinfo GeneralJobInfo) error {
	curr, ok := a.jobList.GetWithTest(jinfo.GetID())
	if ok && !curr.IsFinished() {
		return fmt.Errorf("job %s is already running", jinfo.GetID())
	}
	return nil
}

// LastUnfinishedJobOfType searches for the most recently started
// unfinished job of the provided type operating on the provided
// dataset.
func (a *Actions) LastUnfinishedJobOfType(corpusID, jobType string) (GeneralJobInfo, bool) {
	var ans GeneralJobInfo
	for _, job := range a.jobList.Values() {
		if job.IsFinished() || job.GetCorpus() != corpusID || job.GetType() != jobType {
			continue
		}
		if ans == nil || ans.GetStartDT().Before(job.GetStartDT()) {
			ans = job
		}
	}
	return ans, ans != nil
}

// GetJob returns the current status of a job (running or finished)
func (a *Actions) GetJob(jobID string) (GeneralJobInfo, bool) {
	return a.jobList.GetWithTest(jobID)
}

// GetDetachedJobs lists jobs recovered from the status file
// of a previous process.
func (a *Actions) GetDetachedJobs() []GeneralJobInfo {
	return a.detachedJobs.Values()
}

// ClearDetachedJob removes a recovered job record, typically after
// its owner restarted (or gave up on) the job.
func (a *Actions) ClearDetachedJob(jobID string) {
	a.detachedJobs.Delete(jobID)
}

// JobList is a REST handler listing all the registered jobs.
// With URL arg compact=1 a reduced status format is used;
// unfinishedOnly=1 filters out finished jobs.
func (a *Actions) JobList(ctx *gin.Context) {
	unfinishedOnly := ctx.Request.URL.Query().Get("unfinishedOnly") == "1"
	if ctx.Request.URL.Query().Get("compact") == "1" {
		ans := make(JobInfoListCompact, 0, a.jobList.Len())
		for _, job := range a.jobList.Values() {
			if unfinishedOnly && job.IsFinished() {
				continue
			}
			ans = append(ans, job.CompactVersion())
		}
		sort.Sort(ans)
		uniresp.WriteJSONResponse(ctx.Writer, ans)
		return
	}
	ans := make(JobInfoList, 0, a.jobList.Len())
	for _, job := range a.jobList.Values() {
		if unfinishedOnly && job.IsFinished() {
			continue
		}
		ans = append(ans, job)
	}
	sort.Sort(ans)
	full := common.MapSlice(ans, func(job GeneralJobInfo, _ int) any {
		return job.FullInfo()
	})
	uniresp.WriteJSONResponse(ctx.Writer, full)
}

// Utilization is a REST handler reporting the current load
// of the job workers.
func (a *Actions) Utilization(ctx *gin.Context) {
	a.queueLock.Lock()
	numRunning := a.numRunning
	queueSize := a.queue.Size()
	a.queueLock.Unlock()
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
		"maxNumConcurrentJobs": a.conf.MaxNumConcurrentJobs,
		"numRunning":           numRunning,
		"queueSize":            queueSize,
	})
}

// JobInfo is a REST handler providing the full status of a single job
func (a *Actions) JobInfo(ctx *gin.Context) {
	job, ok := a.jobList.GetWithTest(ctx.Param("jobId"))
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, job.FullInfo())
}

// Delete is a REST handler asking the job owner to cancel
// an unfinished job and removing its status record.
func (a *Actions) Delete(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	job, ok := a.jobList.GetWithTest(jobID)
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	if !job.IsFinished() {
		select {
		case a.jobStopRequest <- jobID:
		default:
			log.Warn().
				Str("jobId", jobID).
				Msg("no job owner listening for a stop request")
		}
	}
	a.jobList.Delete(jobID)
	a.notifRecipients.Delete(jobID)
	uniresp.WriteJSONResponse(ctx.Writer, job.FullInfo())
}

// ClearIfFinished is a REST handler removing the status record
// of a finished job. Unfinished jobs are left untouched.
func (a *Actions) ClearIfFinished(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	job, ok := a.jobList.GetWithTest(jobID)
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	removed := job.IsFinished()
	if removed {
		a.jobList.Delete(jobID)
		a.notifRecipients.Delete(jobID)
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"removed": removed})
}

// OnExit stores unfinished jobs to the status file so they can be
// recovered by the next process.
func (a *Actions) OnExit() {
	if err := a.storeDetachedJobs(); err != nil {
		log.Error().Err(err).Msg("failed to store detached jobs")
	}
}

// NewActions creates the job queue runner. The jobStopRequest channel
// is shared with job-owning components which should listen on it and
// cancel the matching running job.
func NewActions(
	conf *Conf,
	lang string,
	ctx context.Context,
	jobStopRequest chan<- string,
) *Actions {
	ans := &Actions{
		conf:            conf,
		ctx:             ctx,
		language:        lang,
		msgPrinter:      message.NewPrinter(message.MatchLanguage(lang, language.English.String())),
		jobList:         collections.NewConcurrentMap[string, GeneralJobInfo](),
		detachedJobs:    collections.NewConcurrentMap[string, GeneralJobInfo](),
		notifRecipients: collections.NewConcurrentMap[string, []string](),
		jobDeps:         make(JobsDeps),
		jobStopRequest:  jobStopRequest,
	}
	if err := ans.loadDetachedJobs(); err != nil {
		log.Error().Err(err).Msg("failed to load detached jobs")
	}
	go func() {
		<-ctx.Done()
		ans.OnExit()
	}()
	return ans
}
