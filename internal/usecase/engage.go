// Package usecase owns the per-request orchestration: score the
// conversation, extract intelligence, build the prompt, make exactly
// one provider call, normalize the reply, and emit a final report when
// a detected scam has produced enough evidence.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"honeypot-agent/internal/detect"
	"honeypot-agent/internal/domain"
)

// LLMClient is the injected provider capability: one completion per
// request, no retries at this layer.
type LLMClient interface {
	Chat(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

// Detector scores a conversation for scam likelihood.
type Detector interface {
	Assess(turns []domain.ConversationTurn) detect.Assessment
}

// IntelExtractor pulls actionable evidence out of scammer messages.
type IntelExtractor interface {
	Extract(turns []domain.ConversationTurn) domain.Intelligence
}

// Reporter delivers final reports to the configured sinks. Submit
// blocks until delivery completes or times out: the execution
// environment may be frozen as soon as the response is produced, so
// reports must land within the invocation. Delivery failures are the
// reporter's concern and never fail the conversational reply.
type Reporter interface {
	Submit(ctx context.Context, report domain.FinalReport)
}

// httpStatusCoder is satisfied by provider errors that carry the
// upstream HTTP status.
type httpStatusCoder interface {
	HTTPStatusCode() int
}

// misconfigured is satisfied by provider errors caused by missing or
// unusable local configuration rather than upstream behavior.
type misconfigured interface {
	Misconfigured() bool
}

// EngageService generates one victim-style reply per request. It holds
// no per-conversation state; everything is derived from the request.
type EngageService struct {
	llm       LLMClient
	detector  Detector
	extractor IntelExtractor
	reporter  Reporter
}

type EngageOutput struct {
	Reply        string
	RiskScore    int
	Stage        string
	ScamDetected bool
}

func NewEngageService(llm LLMClient, detector Detector, extractor IntelExtractor, reporter Reporter) (*EngageService, error) {
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	if detector == nil {
		return nil, errors.New("usecase: detector must not be nil")
	}
	if extractor == nil {
		return nil, errors.New("usecase: intel extractor must not be nil")
	}
	if reporter == nil {
		return nil, errors.New("usecase: reporter must not be nil")
	}
	return &EngageService{llm: llm, detector: detector, extractor: extractor, reporter: reporter}, nil
}

// Engage runs the turn pipeline for an already-validated request.
func (s *EngageService) Engage(ctx context.Context, req *domain.HoneypotRequest) (EngageOutput, error) {
	if req == nil {
		return EngageOutput{}, newError(ErrorInternal, "nil_request", nil)
	}

	// The inbound message is always the most recent turn, regardless
	// of its timestamp relative to the history.
	turns := make([]domain.ConversationTurn, 0, len(req.ConversationHistory)+1)
	turns = append(turns, req.ConversationHistory...)
	turns = append(turns, req.Message)

	assessment := s.detector.Assess(turns)
	intelligence := s.extractor.Extract(turns)

	raw, err := s.llm.Chat(ctx, buildPromptMessages(req))
	if err != nil {
		return EngageOutput{}, classifyProviderError(err)
	}

	reply := normalizeReply(raw)
	if reply == "" {
		return EngageOutput{}, newError(ErrorUpstream, "blank_completion", nil)
	}

	if assessment.ScamDetected && intelligence.HasHighValueItem() {
		s.reporter.Submit(ctx, domain.FinalReport{
			SessionID:              req.SessionID,
			ScamDetected:           true,
			TotalMessagesExchanged: len(req.ConversationHistory) + 2,
			ExtractedIntelligence:  intelligence,
			AgentNotes:             agentNotes(assessment),
		})
	}

	return EngageOutput{
		Reply:        reply,
		RiskScore:    assessment.RiskScore,
		Stage:        string(assessment.Stage),
		ScamDetected: assessment.ScamDetected,
	}, nil
}

// classifyProviderError maps a provider failure onto the error
// taxonomy: rate limits, 5xx, timeouts and network errors are
// transient; rejected requests and bad or missing credentials are
// fatal. Provider error text stays internal.
func classifyProviderError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newError(ErrorUpstream, "provider_timeout", err)
	}
	var cfg misconfigured
	if errors.As(err, &cfg) && cfg.Misconfigured() {
		return newError(ErrorProvider, "provider_not_configured", err)
	}
	var sc httpStatusCoder
	if errors.As(err, &sc) {
		status := sc.HTTPStatusCode()
		if status == 429 || status >= 500 {
			return newError(ErrorUpstream, fmt.Sprintf("provider_status_%d", status), err)
		}
		return newError(ErrorProvider, fmt.Sprintf("provider_status_%d", status), err)
	}
	return newError(ErrorUpstream, "provider_unreachable", err)
}

// agentNotes renders the assessment as a short audit line for the
// final report.
func agentNotes(a detect.Assessment) string {
	if len(a.Signals) == 0 {
		return fmt.Sprintf("risk score %d, stage %s", a.RiskScore, a.Stage)
	}
	names := make([]string, 0, len(a.Signals))
	for _, sig := range a.Signals {
		name := sig.Rule
		if sig.Hard {
			name += "!"
		}
		names = append(names, name)
	}
	return fmt.Sprintf("risk score %d, stage %s; signals: %s", a.RiskScore, a.Stage, strings.Join(names, ", "))
}
