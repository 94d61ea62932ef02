package storage

import (
	"strings"
	"time"

	"mogen/model"
)

// SessionEntryMatch is one transcript hit found across every stored session.
type SessionEntryMatch struct {
	SessionID   string
	SessionName string
	EntryIndex  int
	Role        model.Role
	Content     string
	Preview     string
	Timestamp   time.Time
}

type SearchIndex struct {
	storage *SessionStorage
}

func NewSearchIndex(storage *SessionStorage) *SearchIndex {
	return &SearchIndex{storage: storage}
}

func (si *SearchIndex) SearchAllSessions(query string) ([]SessionEntryMatch, error) {
	if query == "" {
		return []SessionEntryMatch{}, nil
	}

	sessionList, err := si.storage.List()
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	var matches []SessionEntryMatch

	for _, sessionMeta := range sessionList {
		session, err := si.storage.Load(sessionMeta.ID)
		if err != nil {
			continue
		}

		for i, entry := range session.Entries {
			if !strings.Contains(strings.ToLower(entry.Content), queryLower) {
				continue
			}

			preview := entry.Content
			if len(preview) > 100 {
				preview = preview[:100] + "..."
			}

			matches = append(matches, SessionEntryMatch{
				SessionID:   session.ID,
				SessionName: session.Name,
				EntryIndex:  i,
				Role:        entry.Role,
				Content:     entry.Content,
				Preview:     preview,
				Timestamp:   entry.Timestamp,
			})
		}
	}

	return matches, nil
}
