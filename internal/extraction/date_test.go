package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDate(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	cases := []struct {
		title      string
		wantRange  string
		wantStatus DateStatus
	}{
		{"Market Report, 2030", "2030", DateStatusSuccess},
		{"Market Analysis, 2023-2030", "2023-2030", DateStatusSuccess},
		{"Market Study [2024]", "2024", DateStatusSuccess},
		{"Market Outlook 2031", "2031", DateStatusSuccess},
		{"Cloud Computing Market in Healthcare", "", DateStatusNoDatesPresent},
		{"Market Report, 1999", "", DateStatusDatesMissed},
	}

	for _, tc := range cases {
		dateRange, status, _ := extractDate(tc.title, lib, cfg)
		assert.Equal(t, tc.wantRange, dateRange, "title=%q", tc.title)
		assert.Equal(t, tc.wantStatus, status, "title=%q", tc.title)
	}
}

func TestExtractDate_RemovesSpanAndOrphanComma(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	_, status, residual := extractDate("Oil & Gas Market Analysis and Trends, 2025", lib, cfg)

	assert.Equal(t, DateStatusSuccess, status)
	assert.Equal(t, "Oil & Gas Market Analysis and Trends", residual)
}

func TestExtractDate_BracketRemovesBrackets(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	dateRange, status, residual := extractDate("Market Study [2024]", lib, cfg)

	assert.Equal(t, "2024", dateRange)
	assert.Equal(t, DateStatusSuccess, status)
	assert.Equal(t, "Market Study", residual)
}

func TestValidYear(t *testing.T) {
	cfg := DefaultConfig()

	y, ok := validYear("2030", cfg)
	assert.True(t, ok)
	assert.Equal(t, 2030, y)

	_, ok = validYear("1999", cfg)
	assert.False(t, ok)

	_, ok = validYear("not-a-year", cfg)
	assert.False(t, ok)
}
