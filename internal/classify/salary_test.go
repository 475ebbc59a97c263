package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalary_LPARange(t *testing.T) {
	lo, hi := Salary("Compensation: 5-8 LPA plus benefits")
	require.NotNil(t, lo)
	require.NotNil(t, hi)
	assert.Equal(t, 500000, *lo)
	assert.Equal(t, 800000, *hi)
}

func TestSalary_SingleLPA(t *testing.T) {
	lo, hi := Salary("Pay up to 12 LPA")
	require.NotNil(t, lo)
	assert.Equal(t, 1200000, *lo)
	assert.Equal(t, 1200000, *hi)
}

func TestSalary_FractionalLPA(t *testing.T) {
	lo, hi := Salary("around 4.5 lpa for freshers")
	require.NotNil(t, lo)
	assert.Equal(t, 450000, *lo)
	assert.Equal(t, 450000, *hi)
}

func TestSalary_MonthlyThousands(t *testing.T) {
	lo, hi := Salary("stipend of 50k per month")
	require.NotNil(t, lo)
	assert.Equal(t, 50000, *lo)
	assert.Equal(t, 50000, *hi)

	lo, hi = Salary("between 30k and 45k monthly")
	require.NotNil(t, lo)
	assert.Equal(t, 30000, *lo)
	assert.Equal(t, 45000, *hi)
}

func TestSalary_ExplicitRupees(t *testing.T) {
	lo, hi := Salary("pays Rs. 25,000 to ₹40,000")
	require.NotNil(t, lo)
	assert.Equal(t, 25000, *lo)
	assert.Equal(t, 40000, *hi)
}

func TestSalary_FirstPatternWins(t *testing.T) {
	// LPA figure present, so the "k" figures must be ignored entirely.
	lo, hi := Salary("6 LPA, roughly 50k per month")
	require.NotNil(t, lo)
	assert.Equal(t, 600000, *lo)
	assert.Equal(t, 600000, *hi)
}

func TestSalary_NoMention(t *testing.T) {
	lo, hi := Salary("no mention")
	assert.Nil(t, lo)
	assert.Nil(t, hi)

	lo, hi = Salary("")
	assert.Nil(t, lo)
	assert.Nil(t, hi)
}
