package intel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"honeypot-agent/internal/domain"
)

func scammerTurn(text string) domain.ConversationTurn {
	return domain.ConversationTurn{Sender: domain.SenderScammer, Text: text, Timestamp: 1770005528731}
}

func TestExtract_UPIAndPhone(t *testing.T) {
	e := NewExtractor()
	out := e.Extract([]domain.ConversationTurn{
		scammerTurn("Send the verification amount to refund.desk@ybl or call +91 9876543210."),
	})
	require.Equal(t, []string{"refund.desk@ybl"}, out.UPIIDs)
	require.Equal(t, []string{"+919876543210"}, out.PhoneNumbers)
	require.Empty(t, out.BankAccounts, "phone digits must not be counted as an account number")
}

func TestExtract_BankAccount(t *testing.T) {
	e := NewExtractor()
	out := e.Extract([]domain.ConversationTurn{
		scammerTurn("Deposit into account 123456789012 at IFSC SBIN0001234."),
	})
	require.Equal(t, []string{"123456789012"}, out.BankAccounts)
	require.Contains(t, out.SuspiciousKeywords, "ifsc:SBIN0001234")
}

func TestExtract_PhishingLinks(t *testing.T) {
	e := NewExtractor()
	out := e.Extract([]domain.ConversationTurn{
		scammerTurn("Click here to verify: https://secure-bank-update.example.com/kyc or bit.ly/kyc123"),
	})
	require.Contains(t, out.PhishingLinks, "https://secure-bank-update.example.com/kyc")
	require.Contains(t, out.PhishingLinks, "bit.ly/kyc123")
}

func TestExtract_KeywordsAndRemoteApps(t *testing.T) {
	e := NewExtractor()
	out := e.Extract([]domain.ConversationTurn{
		scammerTurn("This is urgent, install AnyDesk so our security team can fix your KYC."),
	})
	require.Contains(t, out.SuspiciousKeywords, "urgent")
	require.Contains(t, out.SuspiciousKeywords, "anydesk")
	require.Contains(t, out.SuspiciousKeywords, "kyc")
}

func TestExtract_BotTurnsIgnored(t *testing.T) {
	e := NewExtractor()
	out := e.Extract([]domain.ConversationTurn{
		{Sender: domain.SenderBot, Text: "Should I pay scammer@okicici right now?", Timestamp: 1770005528731},
	})
	require.Empty(t, out.UPIIDs)
	require.Empty(t, out.SuspiciousKeywords)
}

func TestExtract_DeduplicatesAcrossTurns(t *testing.T) {
	e := NewExtractor()
	out := e.Extract([]domain.ConversationTurn{
		scammerTurn("Pay to scammer@paytm now."),
		scammerTurn("I repeat, pay to SCAMMER@paytm immediately."),
	})
	require.Equal(t, []string{"scammer@paytm"}, out.UPIIDs)
}

func TestIntelligence_HasHighValueItem(t *testing.T) {
	require.False(t, domain.Intelligence{SuspiciousKeywords: []string{"urgent"}}.HasHighValueItem())
	require.True(t, domain.Intelligence{UPIIDs: []string{"a@ybl"}}.HasHighValueItem())
	require.True(t, domain.Intelligence{BankAccounts: []string{"123456789"}}.HasHighValueItem())
	require.True(t, domain.Intelligence{PhishingLinks: []string{"bit.ly/x"}}.HasHighValueItem())
}
