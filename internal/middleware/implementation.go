package middleware

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/akolanti/ResumeRAG/internal/adapter/utils"
	"github.com/akolanti/ResumeRAG/internal/api"
	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/handlers"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

func injectTrace(re requestResponseStruct) requestResponseStruct {
	re.logger.Debug("Injecting trace middleware")
	req := re.req
	if req == nil {
		//this is a bad request
		re.badRequest.httpCode = http.StatusBadRequest
		re.badRequest.errorCode = api.CodeBadRequest
		re.badRequest.errorMessage = "request is empty"
		re.badRequest.isBadRequest = true
		return re
	}
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set(`X-Trace-Id`, trace)
	re.req = req.WithContext(ctx)

	re.logger.Debug("trace middleware injected")
	return re
}

func authenticate(re requestResponseStruct) requestResponseStruct {
	re.logger.Debug("Authenticating request")

	role, ok := ResolveBearerRole(re.req.Header.Get("Authorization"), re.logger)
	if !ok {
		re.badRequest.isBadRequest = true
		re.badRequest.errorCode = api.CodeUnauthorized
		re.badRequest.errorMessage = "invalid token"
		re.badRequest.httpCode = http.StatusUnauthorized
		return re
	}
	ctx := context.WithValue(re.req.Context(), config.ROLE_KEY, role)
	re.req = re.req.WithContext(ctx)
	re.logger.Debug("Authorized", "role", role)
	return re
}

// ResolveBearerRole maps the token to its role. Each comparison runs in
// constant time.
func ResolveBearerRole(authHeader string, log *logger_i.Logger) (string, bool) {
	if config.NoAuthBypass {
		log.Error("--------------------------------------- auth bypass----------------------------------------------")
		return config.RoleAdmin, true
	}
	if authHeader == "" {
		log.Error("Empty authorization header")
		return "", false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Error("No Bearer header")
		return "", false
	}
	token := []byte(strings.TrimPrefix(authHeader, "Bearer "))

	if subtle.ConstantTimeCompare(token, []byte(config.CandidateToken)) == 1 {
		return config.RoleCandidate, true
	}
	if subtle.ConstantTimeCompare(token, []byte(config.RecruiterToken)) == 1 {
		return config.RoleRecruiter, true
	}
	if subtle.ConstantTimeCompare(token, []byte(config.AdminToken)) == 1 {
		return config.RoleAdmin, true
	}
	log.Error("Invalid authorization header")
	return "", false
}

func rateLimiter(re requestResponseStruct) requestResponseStruct {
	re.logger.Debug("Rate limiter middleware")
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !limiterInstance.GetLimiter(ip).Allow() {
		re.logger.Error("Too many requests", "Rate Limiter exceeded", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorCode:    api.CodeRateLimited,
			errorMessage: "Rate limit exceeded. Slow down",
		}
		return re
	}
	re.logger.Debug("Rate limiter middleware authorized")
	return re
}

func handleBadRequest(re requestResponseStruct) bool {
	if re.badRequest.isBadRequest {
		re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", re.req.RemoteAddr)
		handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, re.badRequest.errorCode, "", re.badRequest.errorMessage)
		return false
	}
	return true
}
