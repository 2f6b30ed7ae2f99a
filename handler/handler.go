// Package handler owns the endpoint contract: routing, the auth gate,
// payload validation, and the mapping from usecase errors to HTTP
// statuses. Exactly one response is produced per inbound event.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"honeypot-agent/internal/domain"
	"honeypot-agent/internal/usecase"
)

const (
	apiKeyHeader        = "x-api-key"
	correlationIDHeader = "x-correlation-id"

	serviceName    = "scam-honeypot"
	serviceVersion = "2.0.0"
)

// EngageUseCase is the orchestrator behind the POST routes.
type EngageUseCase interface {
	Engage(ctx context.Context, req *domain.HoneypotRequest) (usecase.EngageOutput, error)
}

// HealthInfo is the startup configuration state surfaced by GET /health.
type HealthInfo struct {
	ProviderKeyConfigured bool
	CallbackConfigured    bool
	ReportStoreConfigured bool
}

type successResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

type healthResponse struct {
	Status                string `json:"status"`
	Service               string `json:"service"`
	Version               string `json:"version"`
	LLMKeyConfigured      bool   `json:"llmKeyConfigured"`
	CallbackConfigured    bool   `json:"callbackConfigured"`
	ReportStoreConfigured bool   `json:"reportStoreConfigured"`
}

type Handler struct {
	uc     EngageUseCase
	apiKey string
	health HealthInfo
	logger *slog.Logger
}

func NewHandler(uc EngageUseCase, apiKey string, health HealthInfo, logger *slog.Logger) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: usecase must not be nil")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("handler: api key must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{uc: uc, apiKey: apiKey, health: health, logger: logger}, nil
}

// Handle routes one API Gateway proxy event. GET / and GET /health are
// unauthenticated liveness surfaces that never touch the LLM client;
// POST / and /chat share the full orchestrator.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(event.Headers)
	path := event.Path
	if path == "" {
		path = "/"
	}

	switch event.HTTPMethod {
	case http.MethodGet:
		switch path {
		case "/":
			return respond(http.StatusOK, map[string]string{
				"status":  "ok",
				"service": serviceName,
				"version": serviceVersion,
			}, corrID), nil
		case "/health":
			return respond(http.StatusOK, h.healthPayload(), corrID), nil
		}
	case http.MethodPost:
		switch path {
		case "/", "/chat":
			return h.chat(ctx, event, corrID), nil
		}
	default:
		return respondError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "", corrID), nil
	}
	return respondError(http.StatusNotFound, "NOT_FOUND", "", corrID), nil
}

func (h *Handler) healthPayload() healthResponse {
	status := "healthy"
	if !h.health.ProviderKeyConfigured {
		status = "degraded"
	}
	return healthResponse{
		Status:                status,
		Service:               serviceName,
		Version:               serviceVersion,
		LLMKeyConfigured:      h.health.ProviderKeyConfigured,
		CallbackConfigured:    h.health.CallbackConfigured,
		ReportStoreConfigured: h.health.ReportStoreConfigured,
	}
}

// chat runs the authenticated turn pipeline. The auth gate runs before
// any payload parsing.
func (h *Handler) chat(ctx context.Context, event events.APIGatewayProxyRequest, corrID string) events.APIGatewayProxyResponse {
	if headerValue(event.Headers, apiKeyHeader) != h.apiKey {
		return respondError(http.StatusUnauthorized, string(usecase.ErrorUnauthorized), "invalid or missing api key", corrID)
	}

	if ct := headerValue(event.Headers, "content-type"); !strings.Contains(strings.ToLower(ct), "application/json") {
		return respondError(http.StatusBadRequest, string(usecase.ErrorInvalidRequest), "content-type must be application/json", corrID)
	}

	var req domain.HoneypotRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return respondError(http.StatusBadRequest, string(usecase.ErrorInvalidRequest), "invalid JSON body", corrID)
	}
	if err := domain.ValidateRequest(&req); err != nil {
		return respondError(http.StatusBadRequest, string(usecase.ErrorInvalidRequest), err.Error(), corrID)
	}

	out, err := h.uc.Engage(ctx, &req)
	if err != nil {
		code, status := mapUseCaseError(err)
		// Log the cause internally; clients only see the generic envelope.
		h.logger.Error("engage failed",
			"correlationId", corrID,
			"sessionId", req.SessionID,
			"code", code,
			"err", err)
		return respondError(status, code, "", corrID)
	}

	h.logger.Info("turn completed",
		"correlationId", corrID,
		"sessionId", req.SessionID,
		"riskScore", out.RiskScore,
		"stage", out.Stage,
		"scamDetected", out.ScamDetected)

	return respond(http.StatusOK, successResponse{Status: "success", Reply: out.Reply}, corrID)
}

func mapUseCaseError(err error) (string, int) {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return string(usecase.ErrorInternal), http.StatusInternalServerError
	}
	// Auth and validation failures are resolved before Engage runs, so
	// only provider-side and internal codes reach this mapping.
	switch ucErr.Code {
	case usecase.ErrorUpstream:
		return string(ucErr.Code), http.StatusBadGateway
	case usecase.ErrorProvider:
		return string(ucErr.Code), http.StatusInternalServerError
	default:
		return string(usecase.ErrorInternal), http.StatusInternalServerError
	}
}

func respond(status int, body any, corrID string) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		payload = []byte(`{"status":"error","error":"INTERNAL_ERROR"}`)
		status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":     "application/json",
			"X-Correlation-Id": corrID,
		},
		Body: string(payload),
	}
}

func respondError(status int, code, reason, corrID string) events.APIGatewayProxyResponse {
	return respond(status, errorResponse{Status: "error", Error: code, Reason: reason}, corrID)
}

// correlationID echoes the caller's correlation header when present
// (case-insensitive) or mints a fresh one.
func correlationID(headers map[string]string) string {
	if v := headerValue(headers, correlationIDHeader); v != "" {
		return v
	}
	return uuid.NewString()
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
