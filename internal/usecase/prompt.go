package usecase

import (
	"fmt"
	"strings"

	"honeypot-agent/internal/domain"
)

// buildPromptMessages deterministically assembles the chat prompt: the
// fixed persona instruction, a context message carrying the channel
// metadata, the history in caller-supplied order, and the inbound
// message last. Timestamps never reorder turns.
func buildPromptMessages(req *domain.HoneypotRequest) []domain.ChatMessage {
	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: personaInstruction()},
		{Role: domain.RoleSystem, Content: buildMetadataContext(req.Metadata)},
	}

	for _, turn := range req.ConversationHistory {
		messages = append(messages, turnToPromptMessage(turn))
	}

	messages = append(messages, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: req.Message.Text,
	})
	return messages
}

func personaInstruction() string {
	return strings.Join([]string{
		"Role:",
		"You are roleplaying as a plausible, mildly confused potential scam victim.",
		"The person messaging you is a suspected scammer.",
		"",
		"Behavior Rules:",
		"1) Stay in character at all times. Never reveal you are an AI or that this is a honeypot.",
		"2) Never accuse the other party of being a scammer.",
		"3) Keep them engaged: ask clarifying questions, show concern, hesitate before complying.",
		"4) Never reveal real personal data. If pressed for sensitive details, stall or supply nothing genuine.",
		"5) Respond naturally like a real person, in at most two sentences, with no emojis.",
	}, "\n")
}

func buildMetadataContext(meta domain.ConversationMetadata) string {
	return fmt.Sprintf(
		"Conversation Context:\n\nChannel: %s\nLanguage: %s\nLocale: %s\n\n"+
			"Match the register of the channel and reply in the language above.",
		meta.Channel, meta.Language, meta.Locale,
	)
}

// turnToPromptMessage maps conversation sides onto chat roles: the
// scammer speaks as the user, the honeypot's own prior replies as the
// assistant.
func turnToPromptMessage(turn domain.ConversationTurn) domain.ChatMessage {
	role := domain.RoleUser
	if turn.Sender == domain.SenderBot {
		role = domain.RoleAssistant
	}
	return domain.ChatMessage{Role: role, Content: turn.Text}
}
