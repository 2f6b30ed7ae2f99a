// Package intel performs deterministic, regex-based extraction of
// actionable evidence (payment identifiers, contact points, links)
// from the scammer's side of a conversation. Extraction is a pure
// function of the supplied turns; nothing is kept between calls.
package intel

import (
	"regexp"
	"strings"

	"honeypot-agent/internal/domain"
)

var (
	upiPattern = regexp.MustCompile(`(?i)[a-zA-Z0-9._-]{2,256}@(?:upi|paytm|okaxis|okicici|okhdfcbank|oksbi|ybl|apl|ibl|axl|` +
		`kotak|icici|sbi|hdfc|axis|idfcfirst|indus|federal|rbl|yes|pnb|boi|bob|canara|` +
		`union|idbi|citi|hsbc|sc|dbs|ubi|equitas|bandhan|au|fino|payzapp|airtel|jio|` +
		`waicici|wahdfcbank|wasbi|waaxis|freecharge|mobikwik|amazonpay|phonepe|gpay)\b`)

	bankAccountPattern = regexp.MustCompile(`\b\d{9,18}\b`)

	ifscPattern = regexp.MustCompile(`(?i)\b[A-Z]{4}0[A-Z0-9]{6}\b`)

	phonePattern = regexp.MustCompile(`(?:\+91[\s.-]?)?0?[6-9]\d{9}|\+91\s?\d{5}\s?\d{5}|[6-9]\d{2}[\s.-]?\d{3}[\s.-]?\d{4}`)

	urlPattern = regexp.MustCompile(`(?i)https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_+.~#?&/=]*`)

	shortURLPattern = regexp.MustCompile(`(?i)(?:bit\.ly|tinyurl\.com|t\.co|goo\.gl|ow\.ly|is\.gd|buff\.ly|` +
		`adf\.ly|j\.mp|tiny\.cc|cutt\.ly|rb\.gy|shorte\.st|shorturl\.at|` +
		`v\.gd|tr\.im|clck\.ru|bc\.vc|ouo\.io)/[\w-]+`)

	telegramPattern = regexp.MustCompile(`(?i)(?:t\.me/|telegram\.me/|@)([a-zA-Z][a-zA-Z0-9_]{4,31})`)

	whatsappPattern = regexp.MustCompile(`(?i)(?:wa\.me/|whatsapp\.com/send\?phone=)(\+?\d{10,15})`)

	remoteAppPattern = regexp.MustCompile(`(?i)\b(anydesk|teamviewer|quicksupport|ammyy|ultraviewer|` +
		`airdroid|screenconnect|supremo|rustdesk)\b`)
)

// keywordCategory pairs a suspicious-language category with the
// pattern that recognizes it.
type keywordCategory struct {
	name    string
	pattern *regexp.Regexp
}

var keywordCategories = []keywordCategory{
	{"urgency", regexp.MustCompile(`(?i)\b(urgent|immediately|right now|asap|hurry|` +
		`within \d+ (?:hours?|minutes?)|deadline|expires? today|` +
		`last (?:chance|warning)|final notice|time sensitive)\b`)},
	{"threat", regexp.MustCompile(`(?i)\b(blocked?|suspend(?:ed)?|freez(?:e|ing)|terminat(?:e|ed)|` +
		`seiz(?:e|ed)|compromised|hack(?:ed)?|unauthori[sz]ed|` +
		`fraud(?:ulent)?|illegal|criminal|arrest|jail|` +
		`penalty|fine|legal action|court|police|warrant)\b`)},
	{"authority", regexp.MustCompile(`(?i)\b(rbi|reserve bank|income tax|it department|customs|` +
		`cyber (?:cell|crime|police)|cbi|enforcement|sebi|` +
		`government|official|authorized|verified|certified|` +
		`bank manager|customer (?:care|support)|security team|` +
		`fraud department|investigation|ministry|trai)\b`)},
	{"financial", regexp.MustCompile(`(?i)\b(otp|one.?time.?password|verification code|pin|cvv|` +
		`card number|account (?:number|details)|bank details|` +
		`transfer|send money|pay(?:ment)?|refund|cashback|` +
		`prize|lottery|winner|claim|reward|bonus|` +
		`processing fee|advance|deposit|emi|loan)\b`)},
	{"personal_info", regexp.MustCompile(`(?i)\b(aadhaar|aadhar|pan (?:card|number)|passport|` +
		`date of birth|dob|mother'?s? (?:maiden )?name|` +
		`security question|password|login|credentials|kyc)\b`)},
	{"phishing", regexp.MustCompile(`(?i)\b(click (?:here|this|the link)|visit (?:this )?link|` +
		`download (?:this )?app|install|update (?:app|details)|` +
		`verify (?:account|identity)|fill (?:this )?form|` +
		`remote access|screen share)\b`)},
}

// Extractor extracts intelligence from scammer messages. It holds only
// compiled patterns and is safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scans the scammer-attributed turns, in order, and returns the
// accumulated intelligence. Turns sent by the bot are ignored.
func (e *Extractor) Extract(turns []domain.ConversationTurn) domain.Intelligence {
	var out domain.Intelligence
	for _, turn := range turns {
		if turn.Sender != domain.SenderScammer {
			continue
		}
		e.extractFromText(turn.Text, &out)
	}
	return out
}

func (e *Extractor) extractFromText(text string, out *domain.Intelligence) {
	for _, m := range upiPattern.FindAllString(text, -1) {
		out.UPIIDs = appendUnique(out.UPIIDs, strings.ToLower(m))
	}

	var phones []string
	for _, m := range phonePattern.FindAllString(text, -1) {
		phone := normalizePhone(m)
		phones = append(phones, phone)
		out.PhoneNumbers = appendUnique(out.PhoneNumbers, phone)
	}
	for _, m := range whatsappPattern.FindAllStringSubmatch(text, -1) {
		out.PhoneNumbers = appendUnique(out.PhoneNumbers, normalizePhone(m[1]))
	}

	// A 10-digit phone number also satisfies the account-number shape;
	// skip digit runs already claimed by a phone match.
	for _, m := range bankAccountPattern.FindAllString(text, -1) {
		if claimedByPhone(phones, m) {
			continue
		}
		out.BankAccounts = appendUnique(out.BankAccounts, m)
	}

	for _, m := range shortURLPattern.FindAllString(text, -1) {
		out.PhishingLinks = appendUnique(out.PhishingLinks, m)
	}
	for _, m := range urlPattern.FindAllString(text, -1) {
		out.PhishingLinks = appendUnique(out.PhishingLinks, m)
	}

	for _, c := range keywordCategories {
		for _, m := range c.pattern.FindAllString(text, -1) {
			out.SuspiciousKeywords = appendUnique(out.SuspiciousKeywords, strings.ToLower(strings.TrimSpace(m)))
		}
	}
	for _, m := range ifscPattern.FindAllString(text, -1) {
		out.SuspiciousKeywords = appendUnique(out.SuspiciousKeywords, "ifsc:"+strings.ToUpper(m))
	}
	for _, m := range remoteAppPattern.FindAllString(text, -1) {
		out.SuspiciousKeywords = appendUnique(out.SuspiciousKeywords, strings.ToLower(m))
	}
	for _, m := range telegramPattern.FindAllStringSubmatch(text, -1) {
		out.SuspiciousKeywords = appendUnique(out.SuspiciousKeywords, "telegram:@"+strings.ToLower(m[1]))
	}
}

func claimedByPhone(phones []string, digits string) bool {
	for _, p := range phones {
		if strings.Contains(p, digits) {
			return true
		}
	}
	return false
}

func normalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-':
			return -1
		}
		return r
	}, s)
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
