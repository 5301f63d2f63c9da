package middleware

import (
	"testing"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

func TestResolveBearerRole(t *testing.T) {
	log := logger_i.NewLogger("test")

	cases := []struct {
		name     string
		header   string
		wantRole string
		wantOk   bool
	}{
		{"candidate token", "Bearer " + config.CandidateToken, config.RoleCandidate, true},
		{"recruiter token", "Bearer " + config.RecruiterToken, config.RoleRecruiter, true},
		{"admin token", "Bearer " + config.AdminToken, config.RoleAdmin, true},
		{"unknown token", "Bearer nope", "", false},
		{"missing bearer prefix", config.AdminToken, "", false},
		{"empty header", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			role, ok := ResolveBearerRole(tc.header, log)
			if ok != tc.wantOk || role != tc.wantRole {
				t.Errorf("ResolveBearerRole(%q) = (%q, %v), want (%q, %v)", tc.header, role, ok, tc.wantRole, tc.wantOk)
			}
		})
	}
}
