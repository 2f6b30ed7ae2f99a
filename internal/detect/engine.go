// Package detect scores a conversation for scam likelihood. The engine
// re-evaluates the full caller-supplied history on every request, so
// the cumulative score needs no state between requests.
package detect

import (
	"strings"

	"honeypot-agent/internal/domain"
)

// Stage is the scam progression derived from the cumulative score.
type Stage string

const (
	StageNormal    Stage = "NORMAL"
	StageHook      Stage = "HOOK"
	StageThreat    Stage = "THREAT"
	StageAction    Stage = "ACTION"
	StageConfirmed Stage = "CONFIRMED"
)

// Score thresholds for stage transitions.
const (
	hookThreshold      = 25
	threatThreshold    = 50
	confirmedThreshold = 70
	maxScore           = 100
)

// Signal records one triggered rule for explainability.
type Signal struct {
	Rule     string
	Category string
	Score    int
	Hard     bool
}

// Assessment is the outcome of scoring one conversation.
type Assessment struct {
	RiskScore    int
	Stage        Stage
	ScamDetected bool
	Signals      []Signal
}

// Engine evaluates hard and soft rules over scammer messages. Safe for
// concurrent use; all fields are immutable after construction.
type Engine struct {
	hard []hardRule
	soft []softRule
}

func NewEngine() *Engine {
	return &Engine{hard: hardRules(), soft: softRules()}
}

// Assess scores the scammer-attributed turns in order. A hard rule
// match confirms the scam immediately; soft rules accumulate toward
// the stage thresholds. Bot turns are ignored.
func (e *Engine) Assess(turns []domain.ConversationTurn) Assessment {
	var out Assessment
	hardTriggered := false

	for _, turn := range turns {
		if turn.Sender != domain.SenderScammer {
			continue
		}
		text := turn.Text
		lower := strings.ToLower(text)

		for _, r := range e.hard {
			if r.pattern.MatchString(text) {
				out.RiskScore += r.score
				out.Signals = append(out.Signals, Signal{Rule: r.name, Category: r.category, Score: r.score, Hard: true})
				hardTriggered = true
			}
		}
		for _, r := range e.soft {
			if matchesAnyKeyword(lower, r.keywords) {
				out.RiskScore += r.score
				out.Signals = append(out.Signals, Signal{Rule: r.name, Category: r.category, Score: r.score})
			}
		}
	}

	if out.RiskScore > maxScore {
		out.RiskScore = maxScore
	}
	out.Stage = stageFor(out.RiskScore, hardTriggered)
	out.ScamDetected = hardTriggered || out.RiskScore >= confirmedThreshold
	return out
}

func stageFor(score int, hardTriggered bool) Stage {
	switch {
	case score >= confirmedThreshold:
		return StageConfirmed
	case hardTriggered:
		return StageAction
	case score >= threatThreshold:
		return StageThreat
	case score >= hookThreshold:
		return StageHook
	default:
		return StageNormal
	}
}

func matchesAnyKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
