package classify

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// Lakhs per annum: "5 LPA", "5-8 LPA", "5 to 8 lpa".
	lpaPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:-|to)?\s*(\d+(?:\.\d+)?)?\s*lpa`)

	// Monthly figures in thousands: "50k", "120 k". Single digits are too
	// noisy ("24x7", "5k runs") to trust.
	thousandsPattern = regexp.MustCompile(`(\d{2,3})\s*k`)

	// Explicit rupee figures, comma-grouped or plain: "Rs. 40,000",
	// "₹500000", "INR 25,500".
	rupeesPattern = regexp.MustCompile(`(?:rs\.?|₹|inr)\s*(\d{1,3}(?:,\d{3})+|\d{4,})`)
)

// Salary extracts a salary range from a description. It tries, in order,
// the LPA pattern (scaled to annual rupees), monthly "Nk" figures, and
// explicit rupee amounts above a noise floor. The first pattern that
// matches wins; patterns are never combined. Returns (nil, nil) when
// nothing matches.
func Salary(description string) (*int, *int) {
	if description == "" {
		return nil, nil
	}
	desc := strings.ToLower(description)

	if m := lpaPattern.FindStringSubmatch(desc); m != nil {
		minLPA, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			maxLPA := minLPA
			if m[2] != "" {
				if v, err := strconv.ParseFloat(m[2], 64); err == nil {
					maxLPA = v
				}
			}
			lo, hi := int(minLPA*100000), int(maxLPA*100000)
			return &lo, &hi
		}
	}

	if ms := thousandsPattern.FindAllStringSubmatch(desc, -1); len(ms) > 0 {
		vals := make([]int, 0, len(ms))
		for _, m := range ms {
			if v, err := strconv.Atoi(m[1]); err == nil {
				vals = append(vals, v*1000)
			}
		}
		if len(vals) > 0 {
			sort.Ints(vals)
			lo, hi := vals[0], vals[len(vals)-1]
			return &lo, &hi
		}
	}

	if ms := rupeesPattern.FindAllStringSubmatch(desc, -1); len(ms) > 0 {
		vals := make([]int, 0, len(ms))
		for _, m := range ms {
			raw := strings.ReplaceAll(m[1], ",", "")
			if v, err := strconv.Atoi(raw); err == nil && v > 1000 {
				vals = append(vals, v)
			}
		}
		if len(vals) > 0 {
			sort.Ints(vals)
			lo, hi := vals[0], vals[len(vals)-1]
			return &lo, &hi
		}
	}

	return nil, nil
}
