package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tests := map[string]string{
		"1d":       "every day",
		"8d":       "every 8 days",
		"1y":       "every year",
		"6h":       "every 6 hours",
		"1w-mo-we": "every week on mon, wed",
		"2w-fr":    "every 2 weeks on fri",
		"1m-15":    "every month on day 15",
		"3m-2tu":   "every 3 months on the 2nd Tuesday",
	}
	for body, want := range tests {
		t.Run(body, func(t *testing.T) {
			rule, err := Decode(body)
			require.NoError(t, err)
			assert.Equal(t, want, Describe(rule))
		})
	}
}
