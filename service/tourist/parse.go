package tourist

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
)

// Fallback extraction used when the LLM fails to return parseable JSON.
var (
	destinationExpr   = regexp.MustCompile(`(?i)(?:to|in|at)\s+([A-Z][a-zA-Z\s,]+?)(?:,|\.|from|for|with|$)`)
	moneyExpr         = regexp.MustCompile(`\$?(\d+(?:,\d{3})*(?:\.\d{2})?)`)
	peopleExpr        = regexp.MustCompile(`(?i)(\d+)\s+(?:people|person|travelers|tourists)`)
	peopleAltExpr     = regexp.MustCompile(`(?i)(?:for|with)\s+(\d+)`)
	tourTypeExpr      = regexp.MustCompile(`(?i)(cultural|adventure|beach|mountain|city|historical|religious|food|wine|nature|safari)`)
	dateExpr          = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})|([A-Z][a-z]+\s+\d{1,2},?\s+\d{4})`)
	touristNameExpr   = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)\s+(?:is planning|wants|needs|would like)`)
	languagesExpr     = regexp.MustCompile(`(?i)(?:in|speaks?|languages?)\s+([A-Z][a-z]+(?:\s+and\s+[A-Z][a-z]+)?)`)
	languageSplitExpr = regexp.MustCompile(`\s+and\s+|\s*,\s*`)
	updateBudgetExpr  = regexp.MustCompile(`(?i)(?:budget|price|cost).*?\$?(\d+(?:,\d{3})*)`)
	updateDestExpr    = regexp.MustCompile(`(?i)(?:to|change.*?to)\s+([A-Z][a-zA-Z\s,]+?)(?:,|\.|$)`)
)

func parseMoney(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseTourRequestText extracts what it can from free text with plain
// regex matching. The full text always survives as the description.
func (s *Service) ParseTourRequestText(text string) model.TourRequestInput {
	input := model.TourRequestInput{
		entity.TourRequestFieldTitle:          "Tour Request Tour",
		entity.TourRequestFieldDestination:    "",
		entity.TourRequestFieldStartDate:      time.Now().Format("2006-01-02"),
		entity.TourRequestFieldEndDate:        time.Now().Format("2006-01-02"),
		entity.TourRequestFieldBudget:         float64(0),
		entity.TourRequestFieldNumberOfPeople: 1,
		entity.TourRequestFieldTourType:       "general",
		entity.TourRequestFieldLanguages:      []string{"English"},
		entity.TourRequestFieldDescription:    text,
		entity.TourRequestFieldRequirements:   "",
		entity.TourRequestFieldTouristName:    "",
		entity.TourRequestFieldTouristEmail:   "",
	}

	if m := destinationExpr.FindStringSubmatch(text); m != nil {
		destination := strings.TrimSpace(m[1])
		input[entity.TourRequestFieldDestination] = destination
		input[entity.TourRequestFieldTitle] = destination + " Tour"
	}

	// the last money-looking number is usually the total budget
	if amounts := moneyExpr.FindAllStringSubmatch(text, -1); len(amounts) > 0 {
		if v, ok := parseMoney(amounts[len(amounts)-1][1]); ok {
			input[entity.TourRequestFieldBudget] = v
		}
	}

	if m := peopleExpr.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			input[entity.TourRequestFieldNumberOfPeople] = n
		}
	} else if m := peopleAltExpr.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			input[entity.TourRequestFieldNumberOfPeople] = n
		}
	}

	if m := tourTypeExpr.FindStringSubmatch(text); m != nil {
		input[entity.TourRequestFieldTourType] = strings.ToLower(m[1])
	}

	if dates := dateExpr.FindAllStringSubmatch(text, -1); len(dates) > 0 {
		input[entity.TourRequestFieldStartDate] = firstGroup(dates[0])
		if len(dates) > 1 {
			input[entity.TourRequestFieldEndDate] = firstGroup(dates[1])
		}
	}

	if m := touristNameExpr.FindStringSubmatch(text); m != nil {
		input[entity.TourRequestFieldTouristName] = m[1]
	}

	if m := languagesExpr.FindStringSubmatch(text); m != nil {
		parts := languageSplitExpr.Split(m[1], -1)
		langs := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				langs = append(langs, p)
			}
		}
		if len(langs) > 0 {
			input[entity.TourRequestFieldLanguages] = langs
		}
	}

	return input
}

func firstGroup(match []string) string {
	if match[1] != "" {
		return match[1]
	}
	return match[2]
}

// ParseUpdateText extracts field changes from an update instruction.
func (s *Service) ParseUpdateText(text string) map[string]interface{} {
	updates := map[string]interface{}{}

	if m := updateBudgetExpr.FindStringSubmatch(text); m != nil {
		if v, ok := parseMoney(m[1]); ok {
			updates[entity.TourRequestFieldBudget] = v
		}
	}
	if m := peopleExpr.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			updates[entity.TourRequestFieldNumberOfPeople] = n
		}
	}
	if m := updateDestExpr.FindStringSubmatch(text); m != nil {
		updates[entity.TourRequestFieldDestination] = strings.TrimSpace(m[1])
	}

	return updates
}
