package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTaskConfigSearch(t *testing.T) {
	task := SearchTask{TaskType: TaskSearch}
	filters := []byte(`{
	  "location": "Pune",
	  "is_internship": true,
	  "experience_years": 2,
	  "scan_mode": "DEEP",
	  "auto_deep_fallback": true
	}`)

	require.NoError(t, task.DecodeTaskConfig(filters, nil))
	assert.Equal(t, "Pune", task.Filters.Location)
	assert.True(t, task.Filters.IsInternship)
	assert.Equal(t, 2, task.Filters.ExperienceYears)
	assert.Equal(t, ScanDeep, task.Filters.ScanMode)
	assert.True(t, task.Filters.AutoDeepFallback)
}

func TestDecodeTaskConfigDefaultsScanMode(t *testing.T) {
	task := SearchTask{TaskType: TaskSearch}
	require.NoError(t, task.DecodeTaskConfig([]byte(`{}`), nil))
	assert.Equal(t, ScanFast, task.Filters.ScanMode)

	empty := SearchTask{TaskType: TaskSearch}
	require.NoError(t, empty.DecodeTaskConfig(nil, nil))
	assert.Equal(t, ScanFast, empty.Filters.ScanMode)
}

func TestDecodeTaskConfigATS(t *testing.T) {
	task := SearchTask{TaskType: TaskATS}
	payload := []byte(`{
	  "resume_text": "python developer",
	  "job_description": "looking for a python developer"
	}`)

	require.NoError(t, task.DecodeTaskConfig(nil, payload))
	assert.Equal(t, "python developer", task.Payload.ResumeText)
	assert.Equal(t, "looking for a python developer", task.Payload.JobDescription)
}

func TestSearchFiltersExperienceYearsEncodings(t *testing.T) {
	cases := []struct {
		name string
		json string
		want int
	}{
		{"number", `{"experience_years": 3}`, 3},
		{"numeric string", `{"experience_years": "4"}`, 4},
		{"garbage string", `{"experience_years": "four"}`, 0},
		{"absent", `{}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := SearchTask{TaskType: TaskSearch}
			require.NoError(t, task.DecodeTaskConfig([]byte(tc.json), nil))
			assert.Equal(t, tc.want, task.Filters.ExperienceYears)
		})
	}
}
