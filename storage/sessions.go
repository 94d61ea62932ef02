package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"mogen/model"
)

// Session is one persisted overlay-building conversation: the transcript,
// the last successfully evaluated program, and its placement.
type Session struct {
	ID             string                    `json:"id"`
	Name           string                    `json:"name"`
	Model          string                    `json:"model"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
	Entries        []model.ConversationEntry `json:"entries"`
	CurrentProgram string                    `json:"current_program,omitempty"`
	Layout         *model.LayoutHint         `json:"layout,omitempty"`
	Brand          *model.BrandAssets        `json:"brand,omitempty"`
}

// SessionMetadata is a lightweight version of Session for listing
type SessionMetadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	EntryCount int       `json:"entry_count"`
	HasProgram bool      `json:"has_program"`
}

// SessionStorage handles session persistence
type SessionStorage struct {
	sessionsDir string
}

// NewSessionStorage creates a new session storage
func NewSessionStorage(dataDir string) (*SessionStorage, error) {
	sessionsDir := filepath.Join(dataDir, "sessions")

	// Create sessions directory if it doesn't exist (0700 - user-only access)
	if err := os.MkdirAll(sessionsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &SessionStorage{
		sessionsDir: sessionsDir,
	}, nil
}

// Save saves a session to disk
func (s *SessionStorage) Save(session *Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	filename := fmt.Sprintf("%s.json", session.ID)
	path := filepath.Join(s.sessionsDir, filename)

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// 0600 - session files contain conversation history
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load loads a session from disk
func (s *SessionStorage) Load(id string) (*Session, error) {
	filename := fmt.Sprintf("%s.json", id)
	path := filepath.Join(s.sessionsDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// List returns metadata for all sessions, sorted by update time (newest first)
func (s *SessionStorage) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessions []SessionMetadata

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.sessionsDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue // Skip corrupted files
		}

		var session Session
		if err := json.Unmarshal(data, &session); err != nil {
			continue // Skip corrupted files
		}

		sessions = append(sessions, SessionMetadata{
			ID:         session.ID,
			Name:       session.Name,
			Model:      session.Model,
			CreatedAt:  session.CreatedAt,
			UpdatedAt:  session.UpdatedAt,
			EntryCount: len(session.Entries),
			HasProgram: session.CurrentProgram != "",
		})
	}

	// Sort by UpdatedAt (newest first)
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Delete deletes a session from disk
func (s *SessionStorage) Delete(id string) error {
	filename := fmt.Sprintf("%s.json", id)
	path := filepath.Join(s.sessionsDir, filename)

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete session file: %w", err)
	}

	return nil
}

// SaveCurrentSessionID saves the ID of the current session
func (s *SessionStorage) SaveCurrentSessionID(id string) error {
	path := filepath.Join(filepath.Dir(s.sessionsDir), "current_session.id")
	return os.WriteFile(path, []byte(id), 0600)
}

// LoadCurrentSessionID loads the ID of the last active session
func (s *SessionStorage) LoadCurrentSessionID() (string, error) {
	path := filepath.Join(filepath.Dir(s.sessionsDir), "current_session.id")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// RenameSession updates the name of a session
func (s *SessionStorage) RenameSession(id string, newName string) error {
	session, err := s.Load(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	session.Name = newName

	if err := s.Save(session); err != nil {
		return fmt.Errorf("failed to save renamed session: %w", err)
	}

	return nil
}

// SanitizeFilename removes or replaces characters that are invalid in filenames
func SanitizeFilename(name string) string {
	for _, ch := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " ", "\n", "\r"} {
		name = strings.ReplaceAll(name, ch, "-")
	}

	name = strings.Trim(name, "-.")

	if len(name) > 50 {
		name = name[:50]
	}

	if name == "" {
		name = "session"
	}

	return name
}

// GenerateExportPath generates a default export path for a session
func GenerateExportPath(sessionName string) string {
	homeDir := os.Getenv("HOME")
	if homeDir == "" {
		homeDir = os.Getenv("USERPROFILE") // Windows fallback
	}

	downloadsDir := filepath.Join(homeDir, "Downloads")
	sanitized := SanitizeFilename(sessionName)
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("mogen-session-%s-%s.json", sanitized, timestamp)

	return filepath.Join(downloadsDir, filename)
}

// ExportToJSON exports a session to a JSON file at the specified path
func (s *SessionStorage) ExportToJSON(id string, exportPath string) error {
	session, err := s.Load(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// GenerateSessionName generates a session name from the first user prompt
func GenerateSessionName(firstPrompt string) string {
	if firstPrompt == "" {
		return fmt.Sprintf("Overlay %s", time.Now().Format("Jan 2, 3:04 PM"))
	}

	name := firstPrompt
	if len(name) > 30 {
		name = name[:30] + "..."
	}

	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Sprintf("Overlay %s", time.Now().Format("Jan 2, 3:04 PM"))
	}

	return name
}

// EntryMatch represents a search result within a session transcript
type EntryMatch struct {
	EntryIndex int
	Role       model.Role
	Content    string
	Preview    string
	Timestamp  time.Time
}

// SearchEntries searches transcript entries in the current session
func SearchEntries(entries []model.ConversationEntry, query string) []EntryMatch {
	if query == "" {
		return []EntryMatch{}
	}

	queryLower := strings.ToLower(query)
	var matches []EntryMatch

	for i, entry := range entries {
		if !strings.Contains(strings.ToLower(entry.Content), queryLower) {
			continue
		}

		preview := entry.Content
		if len(preview) > 100 {
			preview = preview[:100] + "..."
		}

		matches = append(matches, EntryMatch{
			EntryIndex: i,
			Role:       entry.Role,
			Content:    entry.Content,
			Preview:    preview,
			Timestamp:  entry.Timestamp,
		})
	}

	return matches
}

// LockSession creates a lock file for a session to indicate it's in use
// Lock file format: <data_dir>/sessions/{session-id}.lock, content: PID
func (s *SessionStorage) LockSession(sessionID string) error {
	lockPath := filepath.Join(s.sessionsDir, sessionID+".lock")
	pid := os.Getpid()

	return os.WriteFile(lockPath, []byte(fmt.Sprintf("%d", pid)), 0600)
}

// UnlockSession removes the lock file for a session
func (s *SessionStorage) UnlockSession(sessionID string) error {
	lockPath := filepath.Join(s.sessionsDir, sessionID+".lock")

	err := os.Remove(lockPath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

// CheckSessionLock checks if a session is locked by another instance.
// If isLocked is true, the session is actively being used elsewhere.
func (s *SessionStorage) CheckSessionLock(sessionID string) (bool, error) {
	lockPath := filepath.Join(s.sessionsDir, sessionID+".lock")

	data, err := os.ReadFile(lockPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read lock file: %w", err)
	}

	var pid int
	if _, err := fmt.Sscanf(string(data), "%d", &pid); err != nil {
		// Invalid lock file, clean it up
		_ = os.Remove(lockPath)
		return false, nil
	}

	// os.FindProcess always succeeds on Unix; good enough as a basic
	// cross-platform liveness check.
	_, err = os.FindProcess(pid)
	if err != nil {
		_ = os.Remove(lockPath)
		return false, nil
	}

	return true, nil
}
