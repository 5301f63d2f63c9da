package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/akolanti/ResumeRAG/internal/api"
	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/handlers"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

const IdempotencyHeader = "Idempotency-Key"

var (
	idempotencyStore resumeModel.IdempotencyStore
	idemLogger       *logger_i.Logger
)

func InitIdempotencyGuard(store resumeModel.IdempotencyStore) {
	idempotencyStore = store
	idemLogger = logger_i.NewLogger("Idempotency")
}

// responseRecorder tees the handler's output so it can be persisted for
// replay while still streaming to the client.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotent guards mutating endpoints. A request carrying an
// Idempotency-Key executes at most once per (role, endpoint, key):
//   - first arrival claims the key and runs the handler
//   - a retry with the same body replays the stored response
//   - the same key with a different body is rejected
//   - a retry while the first request still runs is rejected, the caller
//     retries once the original completes
func Idempotent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(IdempotencyHeader)
		if key == "" || idempotencyStore == nil {
			next(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			handlers.WriteErrorResponse(w, http.StatusBadRequest, api.CodeBadRequest, "", "Could not read request body")
			return
		}
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		hash := sha256.Sum256(body)
		requestHash := hex.EncodeToString(hash[:])
		role, _ := r.Context().Value(config.ROLE_KEY).(string)
		storageKey := fmt.Sprintf("idem:%s:%s:%s", role, r.URL.Path, key)

		record := resumeModel.IdempotencyRecord{
			Key:         storageKey,
			Requester:   role,
			Endpoint:    r.URL.Path,
			RequestHash: requestHash,
			CreatedAt:   time.Now().UTC(),
		}

		claimed, err := idempotencyStore.PutPlaceholder(r.Context(), record)
		if err != nil {
			idemLogger.Error("Placeholder claim failed", "key", storageKey, "err", err)
			handlers.WriteErrorResponse(w, http.StatusInternalServerError, api.CodeInternal, "", "Idempotency storage error")
			return
		}

		if claimed {
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next(rec, r)
			if err := idempotencyStore.SetResponse(r.Context(), storageKey, rec.status, rec.body.Bytes()); err != nil {
				idemLogger.Error("Failed to store response for replay", "key", storageKey, "err", err)
			}
			return
		}

		existing, found := idempotencyStore.GetRecord(r.Context(), storageKey)
		if !found {
			// Claim lost but record unreadable, treat as still in flight.
			writeInProgress(w, key)
			return
		}
		if existing.RequestHash != requestHash {
			idemLogger.Warn("Key reused with different payload", "key", storageKey)
			handlers.WriteErrorResponse(w, http.StatusConflict, api.CodeIdempotencyConflict, IdempotencyHeader,
				"Idempotency key was already used with a different request body")
			return
		}
		if len(existing.ResponseBody) == 0 {
			writeInProgress(w, key)
			return
		}

		idemLogger.Info("Replaying stored response", "key", storageKey)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Idempotency-Replayed", "true")
		status := existing.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if _, err := w.Write(existing.ResponseBody); err != nil {
			idemLogger.Error("Failed to write replayed response", "key", storageKey, "err", err)
		}
	}
}

func writeInProgress(w http.ResponseWriter, key string) {
	handlers.WriteErrorResponse(w, http.StatusConflict, api.CodeIdempotencyConflict, IdempotencyHeader,
		fmt.Sprintf("Request with key %s is still in progress", key))
}
