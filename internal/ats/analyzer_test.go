package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_EmptyInputs(t *testing.T) {
	var a Analyzer
	assert.Zero(t, a.Score("", "anything"))
	assert.Zero(t, a.Score("anything", ""))
	assert.Zero(t, a.Score("", ""))
}

func TestScore_IdenticalTexts(t *testing.T) {
	var a Analyzer
	text := "Experienced Python developer with Django, PostgreSQL and Docker. Built REST APIs at scale."
	assert.InDelta(t, 100.0, a.Score(text, text), 0.01)
}

func TestScore_DisjointTexts(t *testing.T) {
	var a Analyzer
	assert.Zero(t, a.Score("apples oranges bananas", "kernel scheduler preemption"))
}

func TestScore_PartialOverlap(t *testing.T) {
	var a Analyzer
	score := a.Score(
		"python developer with docker experience",
		"looking for python developer, kubernetes experience preferred",
	)
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 100.0)
}

func TestMissingKeywords_FindsAbsentTerms(t *testing.T) {
	var a Analyzer
	jd := "We need kubernetes kubernetes kubernetes and python python and docker. Strong docker skills."
	resume := "I know python very well."

	missing := a.MissingKeywords(resume, jd, APIKeywordLimit)
	assert.Contains(t, missing, "kubernetes")
	assert.Contains(t, missing, "docker")
	assert.NotContains(t, missing, "python")
}

func TestMissingKeywords_WordBoundary(t *testing.T) {
	var a Analyzer
	// "java" inside "javascript" must not count as present.
	missing := a.MissingKeywords("expert in javascript", "java java java backend", APIKeywordLimit)
	assert.Contains(t, missing, "java")
}

func TestMissingKeywords_EmptyJD(t *testing.T) {
	var a Analyzer
	assert.Empty(t, a.MissingKeywords("resume text", "", APIKeywordLimit))
}

func TestMissingKeywords_RespectsLimit(t *testing.T) {
	var a Analyzer
	jd := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"
	missing := a.MissingKeywords("nothing relevant here", jd, 5)
	assert.Len(t, missing, 5)
}

func TestWorkerMissingKeywords_FiltersToTechnicalVocabulary(t *testing.T) {
	var a Analyzer
	jd := "Seeking engineer fluent in kubernetes, terraform and golang ecosystems. Kubernetes mandatory."
	missing := a.WorkerMissingKeywords("I write documentation", jd)

	require.NotEmpty(t, missing)
	for _, kw := range missing {
		_, ok := techKeywords[kw]
		assert.True(t, ok, "keyword %q should be in the technical vocabulary", kw)
	}
}

func TestWorkerMissingKeywords_FallbackWhenNothingTechnical(t *testing.T) {
	var a Analyzer
	jd := "gardening landscaping pruning weeding mulching composting watering"
	missing := a.WorkerMissingKeywords("unrelated resume", jd)

	require.NotEmpty(t, missing)
	assert.LessOrEqual(t, len(missing), fallbackKeywords)
}

func TestRecommendations(t *testing.T) {
	var a Analyzer

	recs := a.Recommendations(30, []string{"kubernetes", "docker"})
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "kubernetes, docker")
	assert.Contains(t, recs[1], "low match score")

	recs = a.Recommendations(85, nil)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Great match")

	recs = a.Recommendations(65, nil)
	assert.Empty(t, recs)
}
