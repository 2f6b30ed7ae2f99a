package domain

// Intelligence is the evidence extracted from the scammer's side of a
// conversation. All slices are de-duplicated and ordered by first
// appearance.
type Intelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// HasHighValueItem reports whether the intelligence contains at least
// one item worth reporting on its own: a bank account, a UPI ID, or a
// phishing link.
func (i Intelligence) HasHighValueItem() bool {
	return len(i.BankAccounts) > 0 || len(i.UPIIDs) > 0 || len(i.PhishingLinks) > 0
}

// FinalReport is the payload emitted to the report sinks when a
// detected scam has yielded high-value intelligence.
type FinalReport struct {
	SessionID              string       `json:"sessionId"`
	ScamDetected           bool         `json:"scamDetected"`
	TotalMessagesExchanged int          `json:"totalMessagesExchanged"`
	ExtractedIntelligence  Intelligence `json:"extractedIntelligence"`
	AgentNotes             string       `json:"agentNotes"`
}
