package memory

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "memory.jsonl"), nil)
	require.NoError(t, err)
	return s
}

func TestStore_AppendAndReadRecent(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Append(Record{Kind: KindConversation, Prompt: "first", Response: "one"}))
	require.NoError(t, s.Append(Record{Kind: KindConversation, Prompt: "second", Response: "two"}))
	require.NoError(t, s.Append(Record{Kind: KindConversation, Prompt: "third", Response: "three"}))

	recent := s.ReadRecent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[0].Prompt)
	assert.Equal(t, "third", recent[1].Prompt)
	assert.Equal(t, 3, s.Len())
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.jsonl")

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Append(Record{Kind: KindProspect, Prospect: "TUSD", Prompt: "analyze TUSD", Response: "engaged"}))

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Len())
	assert.Equal(t, "TUSD", reopened.ReadRecent(1)[0].Prospect)
}

func TestStore_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.jsonl")
	content := `{"version":1,"timestamp":"2024-01-02T10:00:00Z","kind":"conversation","prompt":"ok","response":"fine"}
this is not json
{"version":99,"kind":"conversation","prompt":"future","response":"format"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := Open(path, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "ok", s.ReadRecent(1)[0].Prompt)
}

func TestStore_FileIsHumanReadableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.jsonl")
	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Append(Record{Kind: KindConversation, Prompt: "p", Response: "r"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":1`)
	assert.Contains(t, string(data), `"kind":"conversation"`)
}

func TestStore_ProspectContext(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Append(Record{
		Kind:      KindProspect,
		Prospect:  "TUSD",
		Prompt:    "analyze prospect TUSD",
		Response:  "previously engaged, waiting on contract",
		Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, s.Append(Record{Kind: KindConversation, Prompt: "unrelated", Response: "nothing"}))

	ctx := s.ProspectContext("TUSD", 3)
	assert.Contains(t, ctx, "waiting on contract")
	assert.NotContains(t, ctx, "nothing")

	assert.Empty(t, s.ProspectContext("Unknown Corp", 3))
}

func TestStore_NilStoreIsNoOp(t *testing.T) {
	var s *Store

	assert.NoError(t, s.Append(Record{Prompt: "p"}))
	assert.Nil(t, s.ReadRecent(5))
	assert.Zero(t, s.Len())
	assert.Empty(t, s.ProspectContext("TUSD", 3))
	assert.Empty(t, s.ProjectContext("K12", 3))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("  ", nil)
	assert.Error(t, err)
}
