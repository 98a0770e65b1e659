package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Intents recognized in user messages.
const (
	IntentSizeRecommendation = "size_recommendation"
	IntentProductSearch      = "product_search"
	IntentHelp               = "help"
	IntentGeneral            = "general"
)

// ParsedQuery is the result of regex entity extraction over a user message.
type ParsedQuery struct {
	Intent      string
	ClientIDs   []string
	ProductIDs  []string
	SearchTerms string
}

var (
	productIDPattern = regexp.MustCompile(`(?i)\bP(\d{1,4})\b`)
	clientIDPattern  = regexp.MustCompile(`(?i)\bC(\d{1,4})\b`)
	userRefPattern   = regexp.MustCompile(`(?i)\buser\s*(\d{1,4})\b`)
)

var sizeKeywords = []string{
	"size", "fit me", "measurement", "recommend", "recommendation",
	"what size", "which size", "should i choose",
}

var searchKeywords = []string{
	"search", "find", "show", "list", "looking for", "browse",
	"products available", "available products",
}

var helpKeywords = []string{
	"help", "what can you do", "how does this work", "how do i",
}

// ParseQuery extracts the intent and any client/product identifiers from a
// free-text message. Identifiers are normalized to catalog format (C0001,
// P001) regardless of how many digits the user typed.
func ParseQuery(message string) ParsedQuery {
	lower := strings.ToLower(message)

	parsed := ParsedQuery{
		ClientIDs:  extractClientIDs(message),
		ProductIDs: extractProductIDs(message),
	}

	switch {
	case containsAny(lower, sizeKeywords):
		parsed.Intent = IntentSizeRecommendation
	case containsAny(lower, searchKeywords):
		parsed.Intent = IntentProductSearch
		parsed.SearchTerms = stripKeywords(lower, searchKeywords)
	case containsAny(lower, helpKeywords):
		parsed.Intent = IntentHelp
	default:
		parsed.Intent = IntentGeneral
	}

	// entity mentions without a verb still read as a recommendation ask
	if parsed.Intent == IntentGeneral && len(parsed.ClientIDs) > 0 && len(parsed.ProductIDs) > 0 {
		parsed.Intent = IntentSizeRecommendation
	}

	return parsed
}

func extractClientIDs(message string) []string {
	var ids []string
	seen := make(map[string]bool)

	add := func(num string) {
		n, err := strconv.Atoi(num)
		if err != nil {
			return
		}
		id := fmt.Sprintf("C%04d", n)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, m := range clientIDPattern.FindAllStringSubmatch(message, -1) {
		add(m[1])
	}
	for _, m := range userRefPattern.FindAllStringSubmatch(message, -1) {
		add(m[1])
	}

	return ids
}

func extractProductIDs(message string) []string {
	var ids []string
	seen := make(map[string]bool)

	for _, m := range productIDPattern.FindAllStringSubmatch(message, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		id := fmt.Sprintf("P%03d", n)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// stripKeywords removes the trigger keywords so the remainder can be fed to
// the catalog search as terms.
func stripKeywords(s string, keywords []string) string {
	for _, kw := range keywords {
		s = strings.ReplaceAll(s, kw, " ")
	}
	return strings.Join(strings.Fields(s), " ")
}
