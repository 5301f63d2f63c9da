package adapter

import (
	"fmt"

	"github.com/akolanti/ResumeRAG/internal/api"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/internal/rag/matcher"
	"github.com/akolanti/ResumeRAG/internal/rag/retrieval"
)

func ToUploadResponse(taskId string) api.UploadResumeResponse {
	return api.UploadResumeResponse{
		Id:        taskId,
		StatusURL: fmt.Sprintf("/api/status/%s", taskId),
	}
}

func ToTaskStatusResponse(task taskModel.Task) api.TaskStatusResponse {
	var errorPtr *api.TaskOutgoingError
	if task.Error.Message != "" || task.Error.Code != 0 {
		errorPtr = &api.TaskOutgoingError{
			Code:    task.Error.Code,
			Message: task.Error.Message,
			Retry:   task.Error.Retry,
		}
	}

	return api.TaskStatusResponse{
		Id:          task.Id,
		ResumeId:    task.ResumeId,
		Status:      string(task.Status),
		CurrentStep: string(task.CurrentStep),
		Error:       errorPtr,
		StartTime:   task.CreatedTime,
		EndTime:     task.EndTime,
	}
}

func ToResumeResponse(resume resumeModel.Resume) api.ResumeResponse {
	return api.ResumeResponse{
		Id:         resume.Id,
		Filename:   resume.Filename,
		UploadedAt: resume.UploadedAt,
		Status:     string(resume.Status),
		Redacted:   resume.Redacted,
		Summary:    resume.Summary,
	}
}

func ToResumeListResponse(resumes []resumeModel.Resume) api.ResumeListResponse {
	out := make([]api.ResumeResponse, 0, len(resumes))
	for _, resume := range resumes {
		out = append(out, ToResumeResponse(resume))
	}
	return api.ResumeListResponse{Resumes: out}
}

func ToResumeDetailResponse(resume resumeModel.Resume, chunks []resumeModel.ResumeChunk) api.ResumeDetailResponse {
	out := make([]api.ChunkResponse, 0, len(chunks))
	for _, chunk := range chunks {
		out = append(out, api.ChunkResponse{Id: chunk.Id, Text: chunk.Text, Order: chunk.Order})
	}
	return api.ResumeDetailResponse{
		ResumeResponse: ToResumeResponse(resume),
		Chunks:         out,
	}
}

func toEvidenceResponses(evidence []resumeModel.Evidence) []api.EvidenceResponse {
	out := make([]api.EvidenceResponse, 0, len(evidence))
	for _, e := range evidence {
		out = append(out, api.EvidenceResponse{
			ChunkId: e.ChunkId,
			Text:    e.Text,
			Page:    e.Page,
			Start:   e.Start,
			End:     e.End,
		})
	}
	return out
}

func ToAskResponse(queryId string, query string, answers []retrieval.Answer, summary string) api.AskResponse {
	out := make([]api.AskAnswer, 0, len(answers))
	for _, answer := range answers {
		out = append(out, api.AskAnswer{
			ResumeId: answer.ResumeId,
			Score:    answer.Score,
			Evidence: toEvidenceResponses(answer.Evidence),
		})
	}
	return api.AskResponse{QueryId: queryId, Query: query, Answers: out, Summary: summary}
}

func ToJobResponse(spec resumeModel.JobSpec) api.JobResponse {
	return api.JobResponse{
		Id:           spec.Id,
		Title:        spec.Title,
		Description:  spec.Description,
		Requirements: spec.Requirements,
		CreatedAt:    spec.CreatedAt,
	}
}

func ToJobListResponse(specs []resumeModel.JobSpec) api.JobListResponse {
	out := make([]api.JobResponse, 0, len(specs))
	for _, spec := range specs {
		out = append(out, ToJobResponse(spec))
	}
	return api.JobListResponse{Jobs: out}
}

func ToMatchResponse(jobId string, matches []matcher.MatchHit) api.MatchResponse {
	out := make([]api.MatchResult, 0, len(matches))
	for _, match := range matches {
		out = append(out, api.MatchResult{
			ResumeId:            match.ResumeId,
			Score:               match.Score,
			Evidence:            toEvidenceResponses(match.Evidence),
			MissingRequirements: match.MissingRequirements,
		})
	}
	return api.MatchResponse{JobId: jobId, Matches: out}
}

func ErrorEnvelope(code string, field string, message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorBody{
		Code:    code,
		Field:   field,
		Message: message,
	}}
}
