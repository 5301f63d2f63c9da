package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/ResumeRAG/internal/adapter"
	"github.com/akolanti/ResumeRAG/internal/adapter/utils"
	"github.com/akolanti/ResumeRAG/internal/api"
	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// UploadResumeHandler godoc
// @Summary      Upload a resume for ingestion
// @Description  Receives a resume file via multipart/form-data, stages it and queues an ingestion task. Returns the task id and a status URL.
// @Tags         Resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "The resume file (pdf, docx, txt)"
// @Param        owner_id  formData  string  false  "Owner label for the upload, defaults to the requester role"
// @Success      202  {object}  api.UploadResumeResponse  "Accepted - ingestion queued"
// @Failure      400  {object}  api.ErrorResponse  "Missing file or file too large"
// @Failure      500  {object}  api.ErrorResponse  "Storage error"
// @Security     BearerAuth
// @Router       /resumes [post]
func UploadResumeHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", errString)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, api.CodeBadRequest, "file", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, api.CodeFieldRequired, "file", "file is required")
		return
	}
	defer fileReader.Close()

	stagedName := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	stagedPath := filepath.Join(targetDir, stagedName)
	destinationFileWriter, err := os.Create(stagedPath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Write error")
		return
	}

	traceId, _ := r.Context().Value(config.TRACE_ID_KEY).(string)

	ownerId := r.FormValue("owner_id")
	if ownerId == "" {
		ownerId = requesterRole(r)
	}

	// The resume record exists from the moment of upload so that status and
	// detail endpoints can see it while the pipeline runs.
	resume := resumeModel.Resume{
		Id:         utils.GetNewUUID(),
		OwnerId:    ownerId,
		Filename:   fileMetadata.Filename,
		UploadedAt: time.Now().UTC(),
		Status:     resumeModel.StatusProcessing,
	}
	if err := handlerInstance.resumes.SaveResume(r.Context(), resume); err != nil {
		logRH.Error("Failed to create resume record", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Storage error")
		return
	}

	data := newTaskData{
		taskId:   utils.GetNewUUID(),
		resumeId: resume.Id,
		traceId:  traceId,
		filename: fileMetadata.Filename,
		filePath: stagedPath,
	}
	CreateNewTask(data)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToUploadResponse(data.taskId))
}

// ListResumesHandler godoc
// @Summary      List resumes
// @Description  Lists resumes visible to the requester. Candidates see only their own uploads. The optional q parameter filters on filename and summary.
// @Tags         Resumes
// @Produce      json
// @Param        q    query     string  false  "Case-insensitive substring filter"
// @Success      200  {object}  api.ResumeListResponse
// @Security     BearerAuth
// @Router       /resumes [get]
func ListResumesHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	resumes, err := handlerInstance.resumes.ListResumes(r.Context())
	if err != nil {
		logRH.Error("Failed to list resumes", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Storage error")
		return
	}

	role := requesterRole(r)
	query := strings.ToLower(r.URL.Query().Get("q"))
	visible := make([]resumeModel.Resume, 0, len(resumes))
	for _, resume := range resumes {
		if !canViewResume(role, resume) {
			continue
		}
		if query != "" && !matchesResumeQuery(resume, query) {
			continue
		}
		visible = append(visible, resume)
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToResumeListResponse(visible))
}

func matchesResumeQuery(resume resumeModel.Resume, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(resume.Filename), loweredQuery) ||
		strings.Contains(strings.ToLower(resume.Summary), loweredQuery)
}

// GetResumeHandler godoc
// @Summary      Get a resume
// @Description  Returns one resume with its redacted summary and chunks.
// @Tags         Resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  api.ResumeDetailResponse
// @Failure      403  {object}  api.ErrorResponse  "Not the owner"
// @Failure      404  {object}  api.ErrorResponse  "Resume not found"
// @Security     BearerAuth
// @Router       /resumes/{id} [get]
func GetResumeHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	resume, found := handlerInstance.resumes.GetResume(r.Context(), idString)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, api.CodeNotFound, "id", "Resume not found")
		return
	}
	if !canViewResume(requesterRole(r), resume) {
		WriteErrorResponse(w, http.StatusForbidden, api.CodePermissionDenied, "id", "Not allowed to view this resume")
		return
	}

	chunks, err := handlerInstance.chunks.GetChunksByResume(r.Context(), resume.Id)
	if err != nil {
		logRH.Error("Failed to load resume chunks", "resumeId", resume.Id, "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToResumeDetailResponse(resume, chunks))
}

// Tokens are per-role, so ownership is tracked at role granularity: a
// candidate sees candidate uploads, recruiters and admins see everything.
func canViewResume(role string, resume resumeModel.Resume) bool {
	if role == config.RoleRecruiter || role == config.RoleAdmin {
		return true
	}
	return resume.OwnerId == role
}

// GetStatusHandler godoc
// @Summary      Get ingestion task status
// @Description  Retrieves the current status of an ingestion task using its ID.
// @Tags         Task Status
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  api.TaskStatusResponse
// @Failure      404  {object}  api.ErrorResponse  "Task not found"
// @Security     BearerAuth
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	traceId, _ := r.Context().Value(config.TRACE_ID_KEY).(string)
	result, isFound := GetTaskStatus(idString, traceId)

	logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, api.CodeNotFound, "id", "Task not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToTaskStatusResponse(result))
}
