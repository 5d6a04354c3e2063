// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/usvtext/usvtext/internal/scanservice"
)

const (
	jobIDParam       = "jobID"
	prettyPrintParam = "prettyPrint"

	defaultAPIPrefix = "api/v1"
)

// HTTPHandler handles http requests.
type HTTPHandler interface {
	RegisterRoutes(router *mux.Router)
}

type structuredResponse struct {
	Data   any               `json:"data"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Errors []structuredError `json:"errors"`
}

type structuredError struct {
	Code int    `json:"code,omitempty"`
	Msg  string `json:"msg"`
}

// sequenceRequest is the body of the check and sanitize endpoints. Decoding
// into uint16 rejects values outside the code unit range.
type sequenceRequest struct {
	Units []uint16 `json:"units"`
}

type batchRequest struct {
	Sequences [][]uint16 `json:"sequences"`
}

type checkResponse struct {
	WellFormed bool  `json:"wellFormed"`
	Unpaired   []int `json:"unpaired"`
	Length     int   `json:"length"`
}

type sanitizeResponse struct {
	Units    []uint16 `json:"units"`
	Replaced int      `json:"replaced"`
}

type batchSubmitResponse struct {
	JobID string `json:"jobID"`
}

type batchJobResponse struct {
	JobID     string          `json:"jobID"`
	Status    string          `json:"status"`
	Submitted time.Time       `json:"submitted"`
	Completed *time.Time      `json:"completed,omitempty"`
	Results   []checkResponse `json:"results,omitempty"`
}

// NewRouter creates and configures a Gorilla Router.
func NewRouter() *mux.Router {
	return mux.NewRouter().UseEncodedPath()
}

// APIHandler implements the scanner service public API by registering routes at apiPrefix.
type APIHandler struct {
	scanner   *scanservice.Scanner
	batch     *scanservice.BatchProcessor
	apiPrefix string
	logger    *zap.Logger
}

// NewAPIHandler returns an APIHandler.
func NewAPIHandler(scanner *scanservice.Scanner, batch *scanservice.BatchProcessor, options ...HandlerOption) *APIHandler {
	aH := &APIHandler{
		scanner: scanner,
		batch:   batch,
	}

	for _, option := range options {
		option(aH)
	}
	if aH.apiPrefix == "" {
		aH.apiPrefix = defaultAPIPrefix
	}
	if aH.logger == nil {
		aH.logger = zap.NewNop()
	}
	return aH
}

// RegisterRoutes registers routes for this handler on the given router.
func (aH *APIHandler) RegisterRoutes(router *mux.Router) {
	aH.handleFunc(router, aH.checkSequence, "/check").Methods(http.MethodPost)
	aH.handleFunc(router, aH.sanitizeSequence, "/sanitize").Methods(http.MethodPost)
	aH.handleFunc(router, aH.submitBatch, "/batch").Methods(http.MethodPost)
	aH.handleFunc(router, aH.getBatchJob, "/batch/{%s}", jobIDParam).Methods(http.MethodGet)
}

func (aH *APIHandler) handleFunc(
	router *mux.Router,
	f func(http.ResponseWriter, *http.Request),
	route string,
	args ...any,
) *mux.Route {
	route = aH.route(route, args...)
	return router.HandleFunc(route, f)
}

func (aH *APIHandler) route(route string, args ...any) string {
	args = append([]any{aH.apiPrefix}, args...)
	return fmt.Sprintf("/%s"+route, args...)
}

func (aH *APIHandler) checkSequence(w http.ResponseWriter, r *http.Request) {
	var request sequenceRequest
	if !aH.parseBody(w, r, &request) {
		return
	}
	result := aH.scanner.Check(request.Units)
	structuredRes := structuredResponse{
		Data:  checkResultToResponse(result),
		Total: 1,
	}
	aH.writeJSON(w, r, &structuredRes)
}

func (aH *APIHandler) sanitizeSequence(w http.ResponseWriter, r *http.Request) {
	var request sequenceRequest
	if !aH.parseBody(w, r, &request) {
		return
	}
	result := aH.scanner.Sanitize(request.Units)
	units := result.Units
	if units == nil {
		units = []uint16{}
	}
	structuredRes := structuredResponse{
		Data: sanitizeResponse{
			Units:    units,
			Replaced: result.Replaced,
		},
		Total: 1,
	}
	aH.writeJSON(w, r, &structuredRes)
}

func (aH *APIHandler) submitBatch(w http.ResponseWriter, r *http.Request) {
	var request batchRequest
	if !aH.parseBody(w, r, &request) {
		return
	}
	jobID, err := aH.batch.Submit(request.Sequences)
	if errors.Is(err, scanservice.ErrQueueFull) {
		aH.handleError(w, err, http.StatusServiceUnavailable)
		return
	}
	if aH.handleError(w, err, http.StatusInternalServerError) {
		return
	}
	structuredRes := structuredResponse{
		Data:  batchSubmitResponse{JobID: jobID},
		Total: 1,
	}
	resp, _ := json.Marshal(&structuredRes)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write(resp)
}

func (aH *APIHandler) getBatchJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)[jobIDParam]
	job, err := aH.batch.Job(jobID)
	if errors.Is(err, scanservice.ErrJobNotFound) {
		aH.handleError(w, err, http.StatusNotFound)
		return
	}
	if aH.handleError(w, err, http.StatusInternalServerError) {
		return
	}
	structuredRes := structuredResponse{
		Data:  batchJobToResponse(job),
		Total: 1,
	}
	aH.writeJSON(w, r, &structuredRes)
}

func checkResultToResponse(result scanservice.CheckResult) checkResponse {
	unpaired := result.Unpaired
	if unpaired == nil {
		unpaired = []int{}
	}
	return checkResponse{
		WellFormed: result.WellFormed,
		Unpaired:   unpaired,
		Length:     result.Scanned,
	}
}

func batchJobToResponse(job scanservice.BatchJob) batchJobResponse {
	response := batchJobResponse{
		JobID:     job.ID,
		Status:    string(job.Status),
		Submitted: job.Submitted,
	}
	if !job.Completed.IsZero() {
		completed := job.Completed
		response.Completed = &completed
	}
	for _, result := range job.Results {
		response.Results = append(response.Results, checkResultToResponse(result))
	}
	return response
}

func (aH *APIHandler) parseBody(w http.ResponseWriter, r *http.Request, request any) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		aH.handleError(w, fmt.Errorf("unable to parse request body: %w", err), http.StatusBadRequest)
		return false
	}
	return true
}

func (aH *APIHandler) handleError(w http.ResponseWriter, err error, statusCode int) bool {
	if err == nil {
		return false
	}
	if statusCode == http.StatusInternalServerError {
		aH.logger.Error("HTTP handler, Internal Server Error", zap.Error(err))
	}
	structuredResp := structuredResponse{
		Errors: []structuredError{
			{
				Code: statusCode,
				Msg:  err.Error(),
			},
		},
	}
	resp, _ := json.Marshal(&structuredResp)
	http.Error(w, string(resp), statusCode)
	return true
}

func (aH *APIHandler) writeJSON(w http.ResponseWriter, r *http.Request, response any) {
	marshall := json.Marshal
	if prettyPrint := r.FormValue(prettyPrintParam); prettyPrint != "" && prettyPrint != "false" {
		marshall = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "    ")
		}
	}
	resp, _ := marshall(response)
	w.Header().Set("Content-Type", "application/json")
	w.Write(resp)
}
