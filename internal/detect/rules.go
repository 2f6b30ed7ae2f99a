package detect

import "regexp"

// hardRule confirms a scam on its own: one match anywhere in the
// scammer's messages sets the detected flag regardless of the
// cumulative score.
type hardRule struct {
	name     string
	pattern  *regexp.Regexp
	score    int
	category string
}

// softRule contributes to the cumulative score. It fires at most once
// per message when any of its keywords appears.
type softRule struct {
	name     string
	keywords []string
	score    int
	category string
}

func hardRules() []hardRule {
	return []hardRule{
		{
			name: "otp_share_request",
			pattern: regexp.MustCompile(`(?i)\b(?:share|send|tell|give|provide|forward|enter)[\s\w]{0,10}` +
				`(?:otp|o\.t\.p|one[\s-]?time[\s-]?password|verification[\s-]?code|` +
				`auth(?:entication)?[\s-]?code|security[\s-]?code|pin|cvv)\b`),
			score:    35,
			category: "otp_request",
		},
		{
			name:     "otp_on_phone",
			pattern:  regexp.MustCompile(`(?i)\b(?:otp|code)[\s\w]{0,15}(?:received|came|sent|got|on your phone|message)\b`),
			score:    30,
			category: "otp_request",
		},
		{
			name: "upi_pin_request",
			pattern: regexp.MustCompile(`(?i)\b(?:enter|share|tell|give|type|input)[\s\w]{0,10}` +
				`(?:upi[\s-]?pin|mpin|m\.pin)\b`),
			score:    40,
			category: "financial",
		},
		{
			name: "qr_receive_money",
			pattern: regexp.MustCompile(`(?i)\b(?:scan|accept)[\s\w]{0,15}(?:qr|code)[\s\w]{0,15}` +
				`(?:receive|get|claim|credit)\b|\b(?:receive|get)[\s\w]{0,15}` +
				`(?:money|amount|payment)[\s\w]{0,15}(?:scan|qr)\b`),
			score:    35,
			category: "qr_code",
		},
		{
			name:     "qr_approve",
			pattern:  regexp.MustCompile(`(?i)\b(?:approve|accept|confirm)[\s\w]{0,10}(?:payment|request|qr)\b`),
			score:    30,
			category: "qr_code",
		},
		{
			name: "remote_access_request",
			pattern: regexp.MustCompile(`(?i)\b(?:install|download|open)[\s\w]{0,15}` +
				`(?:anydesk|teamviewer|quick[\s-]?support|ammyy|ultraviewer|` +
				`screen[\s-]?share|remote[\s-]?access|airdroid)\b`),
			score:    40,
			category: "remote_access",
		},
		{
			name: "remote_access_code",
			pattern: regexp.MustCompile(`(?i)\b(?:anydesk|teamviewer)[\s\w]{0,10}(?:code|id|number)\b|` +
				`\b(?:9|10)[\s-]?digit[\s-]?code\b`),
			score:    35,
			category: "remote_access",
		},
		{
			name: "transfer_money_request",
			pattern: regexp.MustCompile(`(?i)\b(?:transfer|send|pay|deposit)[\s\w]{0,15}` +
				`(?:rs\.?|₹|rupees?|amount|money)[\s\w]{0,10}` +
				`(?:\d{2,}|to[\s\w]+account|immediately|now|urgent)\b`),
			score:    30,
			category: "payment_request",
		},
		{
			name: "fee_request",
			pattern: regexp.MustCompile(`(?i)\b(?:processing|registration|service|insurance|verification|` +
				`security|token|advance|handling)[\s-]?fee\b`),
			score:    28,
			category: "financial",
		},
		{
			name: "card_pin_request",
			pattern: regexp.MustCompile(`(?i)\b(?:atm|debit|credit|card)[\s\w]{0,10}(?:pin|cvv|number)\b|` +
				`\b(?:share|tell|give)[\s\w]{0,10}(?:pin|cvv)\b`),
			score:    40,
			category: "financial",
		},
		{
			name: "phishing_url",
			pattern: regexp.MustCompile(`(?i)https?://(?:[\w-]+\.)*(?:tk|ml|ga|cf|gq|herokuapp\.com|` +
				`[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3})` +
				`[/\w\-._~:?#\[\]@!$&'()*+,;=%]*`),
			score:    35,
			category: "phishing",
		},
	}
}

func softRules() []softRule {
	return []softRule{
		{
			name: "high_urgency",
			keywords: []string{"immediately", "right now", "urgent", "asap", "hurry",
				"within 24 hours", "within 2 hours", "last warning",
				"final notice", "deadline today", "expires today",
				"time sensitive", "don't delay", "act now"},
			score:    12,
			category: "urgency",
		},
		{
			name:     "medium_urgency",
			keywords: []string{"soon", "quickly", "fast", "deadline", "limited time"},
			score:    8,
			category: "urgency",
		},
		{
			name: "account_threat",
			keywords: []string{"account blocked", "account suspended", "account terminated",
				"account frozen", "account deactivated", "account compromised",
				"account hacked", "unauthorized access", "suspicious activity"},
			score:    18,
			category: "threat",
		},
		{
			name: "legal_threat",
			keywords: []string{"legal action", "court case", "police complaint", "fir",
				"arrest warrant", "jail", "imprisoned", "criminal case",
				"cyber crime", "prosecution", "investigation"},
			score:    22,
			category: "threat",
		},
		{
			name: "authority_claim",
			keywords: []string{"rbi", "reserve bank", "income tax", "cyber cell",
				"bank manager", "customer care", "fraud department",
				"security team", "government official"},
			score:    15,
			category: "authority",
		},
		{
			name: "reward_bait",
			keywords: []string{"lottery", "prize", "winner", "cashback", "reward",
				"bonus", "claim your", "congratulations you"},
			score:    15,
			category: "bait",
		},
		{
			name: "kyc_pressure",
			keywords: []string{"kyc", "re-kyc", "verify your account", "update details",
				"update your kyc", "account verification"},
			score:    14,
			category: "phishing",
		},
		{
			name: "sensitive_info_probe",
			keywords: []string{"aadhaar", "aadhar", "pan card", "date of birth",
				"mother's maiden name", "net banking password", "card number"},
			score:    16,
			category: "personal_info",
		},
	}
}
