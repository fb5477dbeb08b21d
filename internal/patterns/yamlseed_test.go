package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
patterns:
  - kind: report_separator
    term: "&"
    priority: 1
    active: true
  - kind: geographic_entity
    term: "North America"
    priority: 1
    active: true
  - kind: geographic_entity
    term: "America"
    aliases: ["US & Canada"]
    priority: 5
    active: true
  - kind: date_pattern
    term: embedded_year
    regex: '\b(20\d{2})\b'
    format_type: embedded
    priority: 3
    active: true
`

func TestLoadYAML_ParsesAndValidates(t *testing.T) {
	lib, err := LoadYAML([]byte(sampleYAML))
	require.NoError(t, err)

	seps := lib.PatternsOf(KindReportSeparator)
	require.Len(t, seps, 1)
	assert.Equal(t, "&", seps[0].Term)

	geos := lib.PatternsOf(KindGeographicEntity)
	require.Len(t, geos, 2)

	dates := lib.PatternsOf(KindDatePattern)
	require.Len(t, dates, 1)
	assert.NotNil(t, dates[0].Compiled())
}

func TestLoadYAML_PreservesAliases(t *testing.T) {
	lib, err := LoadYAML([]byte(sampleYAML))
	require.NoError(t, err)

	geos := lib.PatternsOf(KindGeographicEntity)
	var america Pattern
	for _, p := range geos {
		if p.Term == "America" {
			america = p
		}
	}
	require.Equal(t, "America", america.Term)
	assert.Equal(t, []string{"US & Canada"}, america.Aliases)
}

func TestLoadYAML_RejectsInvalidCorpus(t *testing.T) {
	_, err := LoadYAML([]byte(`
patterns:
  - kind: market_term
    term: ""
    active: true
`))
	require.Error(t, err)
}

func TestLoadYAML_MalformedYAMLErrors(t *testing.T) {
	_, err := LoadYAML([]byte("patterns: [this is not valid"))
	require.Error(t, err)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	lib, err := LoadYAMLFile(path)
	require.NoError(t, err)
	assert.Len(t, lib.PatternsOf(KindReportSeparator), 1)
}

func TestLoadYAMLFile_MissingFileErrors(t *testing.T) {
	_, err := LoadYAMLFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
