// Package ats scores resumes against job descriptions: a bag-of-words
// cosine similarity plus a missing-keyword diff.
package ats

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Keyword budget per caller. The API path returns a short, user-facing list;
// the worker path casts a wider net and then filters against the technical
// vocabulary.
const (
	APIKeywordLimit    = 20
	WorkerKeywordLimit = 100

	maxTechnicalKeywords = 10
	fallbackKeywords     = 5
)

var tokenPattern = regexp.MustCompile(`\w{2,}`)

// Analyzer computes resume-to-JD similarity. Zero value is ready to use.
type Analyzer struct{}

// Score returns the bag-of-words cosine similarity between the two texts as
// a percentage rounded to two decimals. Either text being empty scores 0.
func (Analyzer) Score(resumeText, jdText string) float64 {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jdText) == "" {
		return 0
	}

	resumeCounts := termCounts(resumeText)
	jdCounts := termCounts(jdText)
	if len(resumeCounts) == 0 || len(jdCounts) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, a := range resumeCounts {
		normA += float64(a * a)
		if b, ok := jdCounts[term]; ok {
			dot += float64(a * b)
		}
	}
	for _, b := range jdCounts {
		normB += float64(b * b)
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Round(similarity*100*100) / 100
}

// MissingKeywords extracts the limit most frequent non-stopword terms from
// the job description and returns those absent from the resume under
// word-boundary matching. The result is alphabetically ordered.
func (Analyzer) MissingKeywords(resumeText, jdText string, limit int) []string {
	if strings.TrimSpace(jdText) == "" {
		return nil
	}

	keywords := topTerms(jdText, limit)
	resumeLower := strings.ToLower(resumeText)

	missing := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		if !re.MatchString(resumeLower) {
			missing = append(missing, kw)
		}
	}
	return missing
}

// WorkerMissingKeywords is the wide-net variant used by the task worker: it
// filters the missing candidates against the technical vocabulary, falling
// back to the first few unfiltered candidates when nothing technical is left.
func (a Analyzer) WorkerMissingKeywords(resumeText, jdText string) []string {
	candidates := a.MissingKeywords(resumeText, jdText, WorkerKeywordLimit)

	technical := make([]string, 0, len(candidates))
	for _, kw := range candidates {
		if _, ok := techKeywords[kw]; ok {
			technical = append(technical, kw)
		}
	}

	if len(technical) == 0 {
		if len(candidates) > fallbackKeywords {
			return candidates[:fallbackKeywords]
		}
		return candidates
	}
	if len(technical) > maxTechnicalKeywords {
		technical = technical[:maxTechnicalKeywords]
	}
	return technical
}

// Recommendations produces the advice strings stored alongside a score.
func (Analyzer) Recommendations(score float64, missing []string) []string {
	var recs []string
	if len(missing) > 0 {
		sample := missing
		if len(sample) > 5 {
			sample = sample[:5]
		}
		recs = append(recs, fmt.Sprintf(
			"Your resume is missing key terms found in the job description: %s.",
			strings.Join(sample, ", ")))
	}
	if score < 50 {
		recs = append(recs, "Your resume has a low match score. Consider tailoring it more specifically to the job description.")
	} else if score >= 80 {
		recs = append(recs, "Great match! Your resume aligns well with the job description.")
	}
	return recs
}

// termCounts tokenizes text into lowercase terms of two or more word
// characters and counts occurrences.
func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		counts[tok]++
	}
	return counts
}

// topTerms returns the limit most frequent non-stopword terms of text,
// sorted alphabetically. Frequency breaks ties toward inclusion; the final
// ordering is always alphabetical so output is stable run to run.
func topTerms(text string, limit int) []string {
	counts := termCounts(text)
	for term := range counts {
		if _, ok := stopWords[term]; ok {
			delete(counts, term)
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > limit {
		terms = terms[:limit]
	}
	sort.Strings(terms)
	return terms
}
