package queryparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BrowseFilters are the structured filters extracted from a guide's
// free-text browse query. Nil numeric fields mean not mentioned.
type BrowseFilters struct {
	Destination       string   `json:"destination,omitempty"`
	Search            string   `json:"search,omitempty"`
	TourType          string   `json:"tourType,omitempty"`
	MinBudget         *float64 `json:"minBudget,omitempty"`
	MaxBudget         *float64 `json:"maxBudget,omitempty"`
	StartDateFrom     string   `json:"startDateFrom,omitempty"`
	StartDateTo       string   `json:"startDateTo,omitempty"`
	Languages         []string `json:"languages,omitempty"`
	NumberOfPeople    *int     `json:"numberOfPeople,omitempty"`
	Requirements      string   `json:"requirements,omitempty"`
	Urgent            bool     `json:"urgent,omitempty"`
	ApplicationStatus string   `json:"applicationStatus,omitempty"`
}

// Validation reports whether a browse query is specific enough to run.
type Validation struct {
	IsClear        bool     `json:"is_clear"`
	Confidence     float64  `json:"confidence"`
	MissingClarity []string `json:"missing_clarity"`
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:tours?|find|search|show|browse|looking for).*?(?:in|to|at|near|for)\s+([A-Z][a-zA-Z\s,]+?)(?:\.|,|$|\s+(?:for|with|starting|from|tour|tours|that|please))`),
	regexp.MustCompile(`(?i)(?:in|to|at|near|for)\s+([A-Z][a-zA-Z\s,]+?)(?:\.|,|$|\s+(?:for|with|starting|from|tour|tours))`),
	regexp.MustCompile(`(?i)\b(japan|sri lanka|india|thailand|france|paris|london|tokyo|bangkok|singapore|malaysia|indonesia|vietnam|china|korea|australia|new zealand|usa|united states|canada|mexico|brazil|argentina|chile|peru|egypt|morocco|south africa|kenya|tanzania|zimbabwe|botswana|namibia|madagascar|mauritius|seychelles|maldives|dubai|uae|qatar|oman|jordan|israel|turkey|greece|italy|spain|portugal|germany|austria|switzerland|netherlands|belgium|denmark|sweden|norway|finland|iceland|ireland|scotland|england|wales|russia|poland)\b`),
	regexp.MustCompile(`(?i)\b(kandy|nuwara eliya|colombo|galle|anuradhapura|sigiriya|ella|mirissa|polonnaruwa|negombo|trincomalee|jaffna|bentota|dambulla|hikkaduwa|unawatuna|matara|ratnapura)\b`),
}

var (
	locationNoise   = regexp.MustCompile(`(?i)\s+(for|with|starting|from|tour|tours)`)
	minBudgetExpr   = regexp.MustCompile(`(?i)(?:budget|price|cost).*?(?:above|over|more than|minimum|min)\s*\$?(\d+(?:,\d{3})*)`)
	maxBudgetExpr   = regexp.MustCompile(`(?i)(?:budget|price|cost).*?(?:below|under|less than|maximum|max)\s*\$?(\d+(?:,\d{3})*)`)
	budgetRangeExpr = regexp.MustCompile(`(?i)(?:budget|price|cost).*?\$?(\d+(?:,\d{3})*)\s*(?:to|-)\s*\$?(\d+(?:,\d{3})*)`)
	groupSizeExpr   = regexp.MustCompile(`(?i)(\d+)\s+(?:people|person|travelers|tourists)`)
	groupSizeAlt    = regexp.MustCompile(`(?i)(?:for|with)\s+(\d+)`)
	soloExpr        = regexp.MustCompile(`(?i)(?:solo|single)\s+traveler`)
	yearExpr        = regexp.MustCompile(`(\d{4})`)
)

var tourTypes = []string{
	"cultural", "adventure", "beach", "mountain", "city", "historical",
	"religious", "food", "wine", "nature", "safari", "heritage", "family",
}

var knownLanguages = []string{
	"english", "sinhala", "tamil", "french", "german", "spanish", "chinese", "japanese",
}

var monthNumbers = map[string]string{
	"january": "01", "february": "02", "march": "03", "april": "04",
	"may": "05", "june": "06", "july": "07", "august": "08",
	"september": "09", "october": "10", "november": "11", "december": "12",
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// ParseBrowseQuery extracts structured filters from a guide's natural
// language request like "show cultural tours in Kandy above $1000".
func ParseBrowseQuery(text string) BrowseFilters {
	textLower := strings.ToLower(text)
	filters := BrowseFilters{}

	for _, pattern := range locationPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		destination := strings.TrimSpace(match[1])
		destination = strings.TrimSpace(locationNoise.ReplaceAllString(destination, ""))
		if destination != "" {
			destination = titleWords(destination)
		}
		if len(destination) > 2 {
			filters.Destination = destination
			if len(strings.Fields(destination)) <= 3 {
				filters.Search = destination
			}
			break
		}
	}

	if m := minBudgetExpr.FindStringSubmatch(textLower); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			filters.MinBudget = &v
		}
	}
	if m := maxBudgetExpr.FindStringSubmatch(textLower); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			filters.MaxBudget = &v
		}
	}
	if filters.MinBudget == nil && filters.MaxBudget == nil {
		if m := budgetRangeExpr.FindStringSubmatch(textLower); m != nil {
			lo, loOK := parseAmount(m[1])
			hi, hiOK := parseAmount(m[2])
			if loOK && hiOK {
				filters.MinBudget = &lo
				filters.MaxBudget = &hi
			}
		}
	}

	for _, tt := range tourTypes {
		if strings.Contains(textLower, tt) {
			filters.TourType = tt
			break
		}
	}

	filters.StartDateFrom, filters.StartDateTo = parseDateRange(text, textLower, time.Now())

	for _, lang := range knownLanguages {
		if strings.Contains(textLower, lang) {
			filters.Languages = append(filters.Languages, titleWords(lang))
		}
	}

	if m := groupSizeExpr.FindStringSubmatch(textLower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			filters.NumberOfPeople = &n
		}
	} else if soloExpr.MatchString(textLower) {
		one := 1
		filters.NumberOfPeople = &one
	} else if m := groupSizeAlt.FindStringSubmatch(textLower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			filters.NumberOfPeople = &n
		}
	}

	if containsAny(textLower, "wheelchair", "accessible", "accessibility", "disability", "special needs") {
		filters.Requirements = "accessibility"
	}
	if containsAny(textLower, "urgent", "soon", "last minute", "asap", "immediately") {
		filters.Urgent = true
	}
	if containsAny(textLower, "no applications", "no competition", "least competition", "haven't applied") {
		filters.ApplicationStatus = "none"
	}

	return filters
}

func parseDateRange(text, textLower string, now time.Time) (from, to string) {
	if strings.Contains(textLower, "next week") || strings.Contains(textLower, "upcoming week") {
		daysUntilMonday := (8 - int(now.Weekday())) % 7
		if daysUntilMonday == 0 {
			daysUntilMonday = 7
		}
		nextMonday := now.AddDate(0, 0, daysUntilMonday)
		return nextMonday.Format("2006-01-02"), nextMonday.AddDate(0, 0, 7).Format("2006-01-02")
	}

	for monthName, monthNum := range monthNumbers {
		if !strings.Contains(textLower, monthName) {
			continue
		}
		year := strconv.Itoa(now.Year())
		if m := yearExpr.FindStringSubmatch(text); m != nil {
			year = m[1]
		}
		lastDay := "30"
		switch monthNum {
		case "01", "03", "05", "07", "08", "10", "12":
			lastDay = "31"
		case "02":
			lastDay = "28"
		}
		return fmt.Sprintf("%s-%s-01", year, monthNum), fmt.Sprintf("%s-%s-%s", year, monthNum, lastDay)
	}
	return "", ""
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func (f BrowseFilters) filterCount() int {
	count := 0
	if f.Destination != "" {
		count++
	}
	if f.Search != "" {
		count++
	}
	if f.TourType != "" {
		count++
	}
	if f.MinBudget != nil {
		count++
	}
	if f.MaxBudget != nil {
		count++
	}
	if f.StartDateFrom != "" || f.StartDateTo != "" {
		count++
	}
	if len(f.Languages) > 0 {
		count++
	}
	if f.NumberOfPeople != nil {
		count++
	}
	if f.Requirements != "" {
		count++
	}
	if f.Urgent {
		count++
	}
	if f.ApplicationStatus != "" {
		count++
	}
	return count
}

var vagueIndicators = []string{"all", "everything", "show me", "give me", "list", "browse", "available"}

// ValidateBrowseQuery scores how specific a browse query is. Below the
// 0.4 threshold the caller should ask clarifying questions instead of
// running the search.
func ValidateBrowseQuery(filters BrowseFilters, queryText string) Validation {
	queryLower := strings.ToLower(queryText)

	isVague := containsAny(queryLower, vagueIndicators...) && filters.filterCount() == 0

	confidence := 0.5
	missingClarity := []string{}

	if isVague {
		confidence = 0.2
		missingClarity = append(missingClarity, "filters")
	}

	if filters.Destination != "" {
		confidence += 0.2
	}
	if filters.TourType != "" {
		confidence += 0.15
	}
	if filters.MinBudget != nil || filters.MaxBudget != nil {
		confidence += 0.15
	}
	if filters.StartDateFrom != "" || filters.StartDateTo != "" {
		confidence += 0.1
	}
	if len(filters.Languages) > 0 {
		confidence += 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Validation{
		IsClear:        confidence >= 0.4,
		Confidence:     confidence,
		MissingClarity: missingClarity,
	}
}

// GenerateClarifyingQuestions builds the follow-up prompt for a vague
// browse query.
func GenerateClarifyingQuestions(filters BrowseFilters) string {
	var questions []string

	if filters.filterCount() == 0 {
		questions = append(questions,
			"What type of tours are you interested in? (e.g., cultural, adventure, beach)",
			"Are you looking for tours in a specific location or region?",
			"Do you have a budget range in mind?",
			"When are you available for tours? (dates or time period)",
		)
	} else {
		if filters.Destination == "" && filters.Search == "" {
			questions = append(questions, "Which location or region are you interested in? (e.g., Kandy, Nuwara Eliya, Colombo)")
		}
		if filters.TourType == "" {
			questions = append(questions, "What type of tour are you looking for? (cultural, adventure, beach, historical, etc.)")
		}
		if filters.MinBudget == nil && filters.MaxBudget == nil {
			questions = append(questions, "Do you have a budget preference? (e.g., above $1000, between $500-$1000)")
		}
		if filters.StartDateFrom == "" && filters.StartDateTo == "" {
			questions = append(questions, "When are you looking for tours? (specific dates, month, or time period)")
		}
	}

	switch {
	case len(questions) == 1:
		return fmt.Sprintf("To help you find the best tour requests, I need one more detail: %s", questions[0])
	case len(questions) > 1:
		var b strings.Builder
		b.WriteString("To help you find the best tour requests, I'd like to know a few more details:\n\n")
		for i, q := range questions {
			if i >= 4 {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		b.WriteString("\nYou can answer all at once, or I can search with whatever filters you've provided.")
		return b.String()
	default:
		return "I found some tour requests based on your query. Would you like to refine the search with more specific filters?"
	}
}
