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
	netmail "net/mail"
	"net/http"
	"time"

	cncmail "github.com/czcorpus/cnc-gokit/mail"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// notifyFinished sends an e-mail to all the addresses subscribed
// for the job. Without the emailNotification config section, the
// subscriptions are only logged.
func (a *Actions) notifyFinished(job GeneralJobInfo) {
	recipients, ok := a.notifRecipients.GetWithTest(job.GetID())
	if !ok || len(recipients) == 0 {
		return
	}
	if a.conf.EmailNotification == nil {
		log.Warn().
			Str("jobId", job.GetID()).
			Msg("e-mail notifications requested but not configured")
		return
	}
	signature, err := a.conf.EmailNotification.LocalizedSignature(a.language)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to the default e-mail signature")
		signature = a.conf.EmailNotification.DefaultSignature(a.language)
	}
	notification := cncmail.Notification{
		Subject: a.msgPrinter.Sprintf(
			"TREVAL: %s", extractJobDescription(a.msgPrinter, job)),
		Paragraphs: []string{
			localizedStatus(a.msgPrinter, job),
			fmt.Sprintf(
				"%s: %s<br />%s: %s",
				a.msgPrinter.Sprintf("job ID"), job.GetID(),
				a.msgPrinter.Sprintf("dataset"), job.GetCorpus(),
			),
			signature,
		},
	}
	notifConf := a.conf.EmailNotification.NotificationConf.WithRecipients(recipients...)
	if err := cncmail.SendNotification(
		&notifConf,
		time.Local,
		notification,
	); err != nil {
		log.Error().Err(err).Str("jobId", job.GetID()).Msg("failed to send e-mail notification")
	}
}

func (a *Actions) findJobForNotification(ctx *gin.Context) (GeneralJobInfo, bool) {
	job, ok := a.jobList.GetWithTest(ctx.Param("jobId"))
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return nil, false
	}
	return job, true
}

// GetNotifications is a REST handler listing addresses subscribed
// for the job notification.
func (a *Actions) GetNotifications(ctx *gin.Context) {
	if _, ok := a.findJobForNotification(ctx); !ok {
		return
	}
	recipients, _ := a.notifRecipients.GetWithTest(ctx.Param("jobId"))
	if recipients == nil {
		recipients = []string{}
	}
	uniresp.WriteJSONResponse(ctx.Writer, recipients)
}

// CheckNotification is a REST handler testing whether the address
// is subscribed for the job notification.
func (a *Actions) CheckNotification(ctx *gin.Context) {
	if _, ok := a.findJobForNotification(ctx); !ok {
		return
	}
	recipients, _ := a.notifRecipients.GetWithTest(ctx.Param("jobId"))
	for _, addr := range recipients {
		if addr == ctx.Param("address") {
			uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"registered": true})
			return
		}
	}
	uniresp.WriteJSONErrorResponse(
		ctx.Writer, uniresp.NewActionError("notification not found"), http.StatusNotFound)
}

// AddNotification is a REST handler subscribing an e-mail address
// for a notification about the finished job.
func (a *Actions) AddNotification(ctx *gin.Context) {
	job, ok := a.findJobForNotification(ctx)
	if !ok {
		return
	}
	if job.IsFinished() {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job already finished"), http.StatusConflict)
		return
	}
	address := ctx.Param("address")
	if _, err := netmail.ParseAddress(address); err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("invalid e-mail address"), http.StatusUnprocessableEntity)
		return
	}
	recipients, _ := a.notifRecipients.GetWithTest(job.GetID())
	for _, addr := range recipients {
		if addr == address {
			uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"registered": true})
			return
		}
	}
	a.notifRecipients.Set(job.GetID(), append(recipients, address))
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"registered": true})
}

// RemoveNotification is a REST handler cancelling a notification
// subscription.
func (a *Actions) RemoveNotification(ctx *gin.Context) {
	job, ok := a.findJobForNotification(ctx)
	if !ok {
		return
	}
	address := ctx.Param("address")
	recipients, _ := a.notifRecipients.GetWithTest(job.GetID())
	updated := make([]string, 0, len(recipients))
	var found bool
	for _, addr := range recipients {
		if addr == address {
			found = true
			continue
		}
		updated = append(updated, addr)
	}
	if !found {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("notification not found"), http.StatusNotFound)
		return
	}
	a.notifRecipients.Set(job.GetID(), updated)
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"registered": false})
}
