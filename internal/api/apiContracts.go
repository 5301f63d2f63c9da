package api

import "time"

// Error codes returned in the error envelope.
const (
	CodeFieldRequired       = "FIELD_REQUIRED"
	CodeNotFound            = "NOT_FOUND"
	CodePermissionDenied    = "PERMISSION_DENIED"
	CodeIdempotencyConflict = "IDEMPOTENCY_CONFLICT"
	CodeIngestionFailure    = "INGESTION_FAILURE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeRateLimited         = "RATE_LIMIT"
	CodeBadRequest          = "BAD_REQUEST"
	CodeInternal            = "INTERNAL"
)

// ErrorResponse is the uniform envelope for every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code" example:"FIELD_REQUIRED"`
	Field   string `json:"field,omitempty" example:"file"`
	Message string `json:"message" example:"file is required"`
}

type UploadResumeResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type TaskStatusResponse struct {
	Id          string             `json:"id"`
	ResumeId    string             `json:"resume_id,omitempty"`
	Status      string             `json:"status"`
	CurrentStep string             `json:"current_step,omitempty"`
	Error       *TaskOutgoingError `json:"error,omitempty"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time,omitempty"`
}

type TaskOutgoingError struct {
	Code    int    `json:"code" example:"500"`
	Message string `json:"message" example:"embedding call failed"`
	Retry   bool   `json:"can_retry" example:"true"`
}

type ResumeResponse struct {
	Id         string    `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Status     string    `json:"status"`
	Redacted   bool      `json:"redacted"`
	Summary    string    `json:"summary,omitempty"`
}

type ResumeListResponse struct {
	Resumes []ResumeResponse `json:"resumes"`
}

type ChunkResponse struct {
	Id    string `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

type ResumeDetailResponse struct {
	ResumeResponse
	Chunks []ChunkResponse `json:"chunks"`
}

type AskRequest struct {
	Query string `json:"query" validate:"required"`
	K     int    `json:"k,omitempty"`
}

type EvidenceResponse struct {
	ChunkId string `json:"chunk_id"`
	Text    string `json:"text"`
	Page    int    `json:"page,omitempty"`
	Start   int    `json:"start,omitempty"`
	End     int    `json:"end,omitempty"`
}

type AskAnswer struct {
	ResumeId string             `json:"resume_id"`
	Score    float64            `json:"score"`
	Evidence []EvidenceResponse `json:"evidence"`
}

type AskResponse struct {
	QueryId string      `json:"query_id"`
	Query   string      `json:"query"`
	Answers []AskAnswer `json:"answers"`
	Summary string      `json:"summary,omitempty"`
}

type CreateJobRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

type JobResponse struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	CreatedAt    time.Time `json:"created_at"`
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type MatchRequest struct {
	TopN int `json:"top_n,omitempty"`
}

type MatchResult struct {
	ResumeId            string             `json:"resume_id"`
	Score               float64            `json:"score"`
	Evidence            []EvidenceResponse `json:"evidence"`
	MissingRequirements []string           `json:"missing_requirements"`
}

type MatchResponse struct {
	JobId   string        `json:"job_id"`
	Matches []MatchResult `json:"matches"`
}
