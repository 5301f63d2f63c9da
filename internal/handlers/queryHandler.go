package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/akolanti/ResumeRAG/internal/adapter"
	"github.com/akolanti/ResumeRAG/internal/adapter/utils"
	"github.com/akolanti/ResumeRAG/internal/api"
	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
)

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logRH.Error("Couldn't close the request body reader :", err)
	}
}

// AskHandler godoc
// @Summary      Ask a question over ingested resumes
// @Description  Embeds the query, searches the vector index and returns ranked evidence snippets. Includes a synthesized answer when an LLM is configured.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "Query and optional result count"
// @Success      200      {object}  api.AskResponse
// @Failure      400      {object}  api.ErrorResponse  "Missing query"
// @Security     BearerAuth
// @Router       /ask [post]
func AskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.AskRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad Ask Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, api.CodeBadRequest, "", "Bad Request")
		return
	}
	if requestData.Query == "" {
		WriteErrorResponse(w, http.StatusBadRequest, api.CodeFieldRequired, "query", "query is required")
		return
	}

	k := requestData.K
	if k <= 0 {
		k = config.DefaultAskK
	}

	answers, summary, err := handlerInstance.rag.Ask(r.Context(), requestData.Query, k)
	if err != nil {
		logRH.Error("Ask failed", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Query failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(utils.GetNewUUID(), requestData.Query, answers, summary))
}

// CreateJobHandler godoc
// @Summary      Create a job posting
// @Description  Stores a job spec with its requirement list. Recruiter or admin only.
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Param        request  body      api.CreateJobRequest  true  "Job title, description and requirements"
// @Success      201      {object}  api.JobResponse
// @Failure      400      {object}  api.ErrorResponse  "Missing title"
// @Failure      403      {object}  api.ErrorResponse  "Candidate tokens cannot create jobs"
// @Security     BearerAuth
// @Router       /jobs [post]
func CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	role := requesterRole(r)
	if !canManageJobs(role) {
		WriteErrorResponse(w, http.StatusForbidden, api.CodePermissionDenied, "", "Only recruiters can create jobs")
		return
	}

	var requestData api.CreateJobRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad Job Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, api.CodeBadRequest, "", "Bad Request")
		return
	}
	if requestData.Title == "" {
		WriteErrorResponse(w, http.StatusBadRequest, api.CodeFieldRequired, "title", "title is required")
		return
	}

	spec := resumeModel.JobSpec{
		Id:           utils.GetNewUUID(),
		OwnerRole:    role,
		Title:        requestData.Title,
		Description:  requestData.Description,
		Requirements: requestData.Requirements,
		CreatedAt:    time.Now().UTC(),
	}
	if err := handlerInstance.jobs.SaveJobSpec(r.Context(), spec); err != nil {
		logRH.Error("Failed to save job spec", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusCreated, adapter.ToJobResponse(spec))
}

// ListJobsHandler godoc
// @Summary      List job postings
// @Tags         Jobs
// @Produce      json
// @Success      200  {object}  api.JobListResponse
// @Security     BearerAuth
// @Router       /jobs [get]
func ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	specs, err := handlerInstance.jobs.ListJobSpecs(r.Context())
	if err != nil {
		logRH.Error("Failed to list jobs", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToJobListResponse(specs))
}

// GetJobHandler godoc
// @Summary      Get a job posting
// @Tags         Jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse
// @Failure      404  {object}  api.ErrorResponse  "Job not found"
// @Security     BearerAuth
// @Router       /jobs/{id} [get]
func GetJobHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	spec, found := handlerInstance.jobs.GetJobSpec(r.Context(), idString)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, api.CodeNotFound, "id", "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToJobResponse(spec))
}

// MatchJobHandler godoc
// @Summary      Rank resumes against a job posting
// @Description  Retrieves the best matching resumes for the job with per-resume evidence and missing requirements. Recruiter or admin only.
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Param        id       path      string            true   "Job ID"
// @Param        request  body      api.MatchRequest  false  "Optional result count"
// @Success      200      {object}  api.MatchResponse
// @Failure      403      {object}  api.ErrorResponse  "Candidate tokens cannot run matches"
// @Failure      404      {object}  api.ErrorResponse  "Job not found"
// @Security     BearerAuth
// @Router       /jobs/{id}/match [post]
func MatchJobHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	if !canManageJobs(requesterRole(r)) {
		WriteErrorResponse(w, http.StatusForbidden, api.CodePermissionDenied, "", "Only recruiters can run matches")
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	spec, found := handlerInstance.jobs.GetJobSpec(r.Context(), idString)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, api.CodeNotFound, "id", "Job not found")
		return
	}

	var requestData api.MatchRequest
	defer closeBody(r.Body)
	// An empty body is fine, the default topN applies.
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil && err != io.EOF {
		WriteErrorResponse(w, http.StatusBadRequest, api.CodeBadRequest, "", "Bad Request")
		return
	}

	topN := requestData.TopN
	if topN <= 0 {
		topN = config.DefaultMatchTopN
	}

	matches, err := handlerInstance.rag.MatchJob(r.Context(), spec, topN)
	if err != nil {
		logRH.Error("Match failed", "jobId", spec.Id, "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Match failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToMatchResponse(spec.Id, matches))
}
