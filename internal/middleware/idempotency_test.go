package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/data/store"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
)

func newGuardedHandler(t *testing.T) (*int32, http.HandlerFunc, resumeModel.IdempotencyStore) {
	t.Helper()
	idemStore := store.InitInMemoryIdempotencyStore()
	InitIdempotencyGuard(idemStore)

	var calls int32
	handler := Idempotent(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "task-1"})
	})
	return &calls, handler, idemStore
}

func doRequest(handler http.HandlerFunc, key string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/resumes", bytes.NewBufferString(body))
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	ctx := context.WithValue(req.Context(), config.ROLE_KEY, config.RoleCandidate)
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestIdempotent_NoKeyPassesThrough(t *testing.T) {
	calls, handler, _ := newGuardedHandler(t)

	doRequest(handler, "", `{"a":1}`)
	doRequest(handler, "", `{"a":1}`)

	if got := atomic.LoadInt32(calls); got != 2 {
		t.Errorf("Handler should run on every keyless request, ran %d times", got)
	}
}

func TestIdempotent_ReplaysStoredResponse(t *testing.T) {
	calls, handler, _ := newGuardedHandler(t)

	first := doRequest(handler, "key-1", `{"a":1}`)
	second := doRequest(handler, "key-1", `{"a":1}`)

	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("Handler must execute exactly once, ran %d times", got)
	}
	if first.Code != http.StatusAccepted || second.Code != http.StatusAccepted {
		t.Errorf("Status codes differ: first=%d second=%d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("Replay body mismatch: %q vs %q", first.Body.String(), second.Body.String())
	}
	if second.Header().Get("Idempotency-Replayed") != "true" {
		t.Error("Replayed response missing replay marker header")
	}
}

func TestIdempotent_DifferentBodyConflicts(t *testing.T) {
	calls, handler, _ := newGuardedHandler(t)

	doRequest(handler, "key-1", `{"a":1}`)
	conflict := doRequest(handler, "key-1", `{"a":2}`)

	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("Conflicting request must not execute, handler ran %d times", got)
	}
	if conflict.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", conflict.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(conflict.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Bad error envelope: %v", err)
	}
	if envelope.Error.Code != "IDEMPOTENCY_CONFLICT" {
		t.Errorf("Wrong error code: %s", envelope.Error.Code)
	}
}

func TestIdempotent_InFlightRequestRejected(t *testing.T) {
	calls, handler, idemStore := newGuardedHandler(t)

	// Simulate a first request that claimed the key but has not finished:
	// placeholder exists, response body empty.
	record := resumeModel.IdempotencyRecord{
		Key:         "idem:candidate:/api/resumes:key-1",
		Requester:   config.RoleCandidate,
		Endpoint:    "/api/resumes",
		RequestHash: "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := idemStore.PutPlaceholder(context.Background(), record); err != nil {
		t.Fatalf("Could not seed placeholder: %v", err)
	}

	w := doRequest(handler, "key-1", "foo")
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for in-flight key, got %d", w.Code)
	}
	if got := atomic.LoadInt32(calls); got != 0 {
		t.Errorf("Handler must not run while key is in flight, ran %d times", got)
	}
}
