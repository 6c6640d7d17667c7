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
	"errors"
	"net/http"

	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

const dfltListRunsLimit = 10

// Actions contains the REST handlers of the run archive
type Actions struct {
	storage *Storage
}

// GetRun provides a single archived evaluation run
func (a *Actions) GetRun(ctx *gin.Context) {
	rec, err := a.storage.GetRun(ctx, ctx.Param("runId"))
	if errors.Is(err, ErrRunNotFound) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return
	}
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, rec)
}

// ListRuns provides the most recently archived runs. The number
// of items is controlled by the `limit` URL argument.
func (a *Actions) ListRuns(ctx *gin.Context) {
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", dfltListRunsLimit)
	if !ok {
		return
	}
	runs, err := a.storage.LoadRecentRuns(ctx, limit)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, runs)
}

func NewActions(storage *Storage) *Actions {
	return &Actions{storage: storage}
}
