package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careermitra/mentor-engine/internal/domain"
)

const jsonCatalog = `[
  {
    "name": "Software Engineer",
    "stage": "12th",
    "description": "Builds software systems.",
    "skills": ["Python", "Problem Solving"],
    "tags": ["coding"],
    "future_paths": ["B.Tech CSE"],
    "jobs": ["Backend Developer"],
    "intelligence_layer": {
      "stage_response": {"12th": "Pick PCM with computer science."},
      "interest_response": "Coding opens many doors."
    }
  },
  {
    "name": "Doctor",
    "stage": "12th",
    "skills": ["Biology"],
    "tags": ["medical"]
  }
]`

const yamlCatalog = `- name: Data Scientist
  stage: UG
  skills: [Statistics, Python]
  tags: [coding, data]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpen_JSON(t *testing.T) {
	s, err := Open(writeFile(t, "catalog.json", jsonCatalog))
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Software Engineer", entries[0].Name)
	assert.Equal(t, domain.Stage12th, entries[0].Stage)
	assert.Equal(t, "Pick PCM with computer science.", entries[0].Intelligence.StageResponse[domain.Stage12th])
	assert.Equal(t, "Doctor", entries[1].Name)
	assert.Equal(t, int64(1), s.Version())
}

func TestOpen_YAML(t *testing.T) {
	s, err := Open(writeFile(t, "catalog.yaml", yamlCatalog))
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Data Scientist", entries[0].Name)
	assert.Equal(t, []string{"coding", "data"}, entries[0].Tags)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Open(writeFile(t, "bad.json", `{"not":"a list"}`))
	assert.Error(t, err)

	_, err = Open(writeFile(t, "empty.json", `[]`))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestReload_BumpsVersionAndKeepsOrder(t *testing.T) {
	path := writeFile(t, "catalog.json", jsonCatalog)
	s, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, int64(1), s.Version())

	require.NoError(t, os.WriteFile(path, []byte(yamlJSONReplacement), 0o600))
	require.NoError(t, s.Reload())

	assert.Equal(t, int64(2), s.Version())
	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Pilot", entries[0].Name)
}

const yamlJSONReplacement = `[{"name": "Pilot", "stage": "12th", "tags": ["aviation"]}]`

func TestReload_BadFileKeepsSnapshot(t *testing.T) {
	path := writeFile(t, "catalog.json", jsonCatalog)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))
	assert.Error(t, s.Reload())

	assert.Equal(t, int64(1), s.Version())
	assert.Len(t, s.Entries(), 2)
}
