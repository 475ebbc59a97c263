// Package classify holds the pure text heuristics that turn a raw scraped
// listing into structured fields: seniority gate, job type, work mode,
// salary range, and location.
package classify

import (
	"regexp"
	"strings"

	"github.com/priya/jobscout/internal/types"
)

var seniorTitles = []string{
	"senior", "lead", "principal", "manager", "architect", "head", "vp", "director",
}

var juniorTitles = []string{
	"junior", "jr", "intern", "trainee", "entry level", "fresher", "graduate",
}

// strictExpPattern matches phrases like "minimum 2 years" or "requires 3+ yrs"
// with the numeric bound between 2 and 9.
var strictExpPattern = regexp.MustCompile(`(minimum|required|requires|experience)\s*(?:of|:)?\s*[2-9]\s*(?:\+|plus)?\s*(?:years|yrs)`)

// EntryLevel reports whether a listing passes the experience-level gate.
// With experienceYears > 0 everything passes: experienced-role filtering is
// handled by query construction, not here. For freshers it blocks senior
// titles, lets junior titles through unconditionally, and otherwise rejects
// descriptions demanding multi-year experience.
func EntryLevel(title, description string, experienceYears int) bool {
	if experienceYears > 0 {
		return true
	}

	titleLower := strings.ToLower(title)

	for _, t := range seniorTitles {
		if strings.Contains(titleLower, t) {
			return false
		}
	}
	for _, t := range juniorTitles {
		if strings.Contains(titleLower, t) {
			return true
		}
	}

	return !strictExpPattern.MatchString(strings.ToLower(description))
}

var internKeywords = []string{"intern", "internship", "trainee", "apprentice", "students", "summer", "placement"}

var contractKeywords = []string{"contract", "freelance", "temporary", "part-time", "part time"}

// DetectJobType classifies a listing as internship, contract, or full-time.
// Internship keywords take precedence over contract keywords. Titles are
// matched by substring, descriptions by whole word.
func DetectJobType(title, description string) types.JobType {
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	for _, k := range internKeywords {
		if strings.Contains(titleLower, k) || hasWord(descLower, k) {
			return types.JobInternship
		}
	}
	for _, k := range contractKeywords {
		if strings.Contains(titleLower, k) || hasWord(descLower, k) {
			return types.JobContract
		}
	}
	return types.JobFullTime
}

// DetectWorkMode classifies remote over hybrid over onsite. "remote" counts
// in either the location or the description; "hybrid" only in the description.
func DetectWorkMode(location, description string) types.WorkMode {
	locLower := strings.ToLower(location)
	descLower := strings.ToLower(description)

	if strings.Contains(locLower, "remote") || strings.Contains(descLower, "remote") {
		return types.ModeRemote
	}
	if strings.Contains(descLower, "hybrid") {
		return types.ModeHybrid
	}
	return types.ModeOnsite
}

// knownCities is the fixed vocabulary for snippet-based location resolution.
var knownCities = []string{
	"Bangalore", "Bengaluru", "Mumbai", "Delhi", "Hyderabad",
	"Pune", "Chennai", "Gurgaon", "Noida", "Remote",
}

// Location returns the first known city found in the snippet, else def.
func Location(snippet, def string) string {
	snippetLower := strings.ToLower(snippet)
	for _, city := range knownCities {
		if strings.Contains(snippetLower, strings.ToLower(city)) {
			return city
		}
	}
	return def
}

func hasWord(text, word string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	return re.MatchString(text)
}
