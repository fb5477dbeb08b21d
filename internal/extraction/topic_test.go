package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupDisplay_StripsOrphanConnectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"and Trends", "Trends"},
		{"Oil & Gas and", "Oil & Gas"},
		{"in Automotive", "Automotive"},
		{", Fashion", "Fashion"},
		{"and , Fashion", "Fashion"},
		{"Plus-Size Fashion", "Plus-Size Fashion"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cleanupDisplay(tc.in), "in=%q", tc.in)
	}
}

func TestSlugify_LowercasesAndHyphenates(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "personal-protective-equipment", slugify("Personal Protective Equipment", cfg))
	assert.Equal(t, "oil-and-gas", slugify("Oil & Gas", cfg))
	assert.Equal(t, "plus-size-fashion", slugify("Plus-Size Fashion", cfg))
	assert.Equal(t, "artificial-intelligence-ai-in-automotive", slugify("Artificial Intelligence (AI) in Automotive", cfg))
}

func TestSlugify_StandalonePlusBecomesWord(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "widgets-plus-gadgets", slugify("Widgets + Gadgets", cfg))
}

func TestNormalizeTopic(t *testing.T) {
	cfg := DefaultConfig()

	topic, topicName := normalizeTopic("Oil & Gas", cfg)
	assert.Equal(t, "Oil & Gas", topic)
	assert.Equal(t, "oil-and-gas", topicName)
}

func TestTopicConfidence(t *testing.T) {
	assert.Equal(t, 0.8, topicConfidence(true, DateStatusSuccess, "Market Report", []string{"APAC"}))
	assert.Equal(t, 0.6, topicConfidence(false, DateStatusSuccess, "Market Report", []string{"APAC"}))
	assert.Equal(t, 0.6, topicConfidence(true, DateStatusNoDatesPresent, "Market Report", []string{"APAC"}))
	assert.Equal(t, 0.6, topicConfidence(true, DateStatusSuccess, "", []string{"APAC"}))
	assert.Equal(t, 0.6, topicConfidence(true, DateStatusSuccess, "Market Report", nil))
}
