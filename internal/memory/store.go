package memory

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mzafir/hawk-ai-agent/internal/logging"
)

// recordVersion is bumped when the on-disk record shape changes.
// Readers skip records with versions they do not understand.
const recordVersion = 1

// Record kinds.
const (
	KindConversation = "conversation"
	KindProspect     = "prospect_analysis"
	KindProject      = "project_analysis"
)

// Record is one persisted memory entry. The format is line-delimited
// JSON so the log stays inspectable with standard tools.
type Record struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Prospect  string    `json:"prospect,omitempty"`
	Project   string    `json:"project,omitempty"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
}

// Store is an append-only conversation memory log. A nil *Store is a
// valid no-op store: persistence failures at startup disable memory for
// the session instead of crashing.
type Store struct {
	mu      sync.Mutex
	path    string
	records []Record
	logger  logging.Logger
}

// Open loads the memory log at path, creating parent directories as
// needed. Malformed or foreign-version lines are skipped, not fatal.
func Open(path string, logger logging.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("memory path is empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create memory directory: %w", err)
	}

	s := &Store{path: path, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open memory file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	skipped := 0
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(text, &rec); err != nil {
			skipped++
			continue
		}
		if rec.Version != recordVersion {
			skipped++
			continue
		}
		s.records = append(s.records, rec)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read memory file: %w", err)
	}
	if skipped > 0 {
		s.logger.Warn("skipped unreadable memory records", "path", s.path, "skipped", skipped)
	}
	return nil
}

// Append writes a record to the log. The file handle is opened, written
// and closed within the call so no handle outlives a crash.
func (s *Store) Append(rec Record) error {
	if s == nil {
		return nil
	}
	rec.Version = recordVersion
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode memory record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open memory file for append: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write memory record: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync memory file: %w", err)
	}

	s.records = append(s.records, rec)
	return nil
}

// ReadRecent returns up to n records, newest last. A nil store returns
// nothing.
func (s *Store) ReadRecent(n int) []Record {
	if s == nil || n <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.records) {
		n = len(s.records)
	}
	out := make([]Record, n)
	copy(out, s.records[len(s.records)-n:])
	return out
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// ProspectContext formats recent records mentioning the prospect into
// prompt context for the inference service. At most limit records are
// included, newest first.
func (s *Store) ProspectContext(prospect string, limit int) string {
	if s == nil || prospect == "" || limit <= 0 {
		return ""
	}
	needle := strings.ToLower(prospect)

	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	matched := 0
	for i := len(s.records) - 1; i >= 0 && matched < limit; i-- {
		rec := s.records[i]
		if !strings.EqualFold(rec.Prospect, prospect) &&
			!strings.Contains(strings.ToLower(rec.Prompt), needle) {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", rec.Timestamp.Format(time.RFC3339), truncate(rec.Response, 200))
		matched++
	}
	if b.Len() == 0 {
		return ""
	}
	return "Previous analysis history:\n" + b.String()
}

// ProjectContext is like ProspectContext but keyed on the project name.
func (s *Store) ProjectContext(project string, limit int) string {
	if s == nil || project == "" || limit <= 0 {
		return ""
	}
	needle := strings.ToLower(project)

	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	matched := 0
	for i := len(s.records) - 1; i >= 0 && matched < limit; i-- {
		rec := s.records[i]
		if !strings.EqualFold(rec.Project, project) &&
			!strings.Contains(strings.ToLower(rec.Prompt), needle) {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", rec.Timestamp.Format(time.RFC3339), truncate(rec.Response, 200))
		matched++
	}
	if b.Len() == 0 {
		return ""
	}
	return "Previous project analysis history:\n" + b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
