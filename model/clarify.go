package model

import (
	"context"
	"fmt"
	"strings"
)

// Answer records the user's answer to one question of a clarification entry.
// Re-answering a question before the set is complete overwrites the earlier
// answer. Once every question is answered, the combined answers are submitted
// as a single follow-up message and the entry is resolved for good.
//
// The returned bool reports whether the answer completed the set and
// triggered a submission.
func (c *Conversation) Answer(ctx context.Context, entryID string, questionIndex int, answer string) (bool, error) {
	entry := c.entryByID(entryID)
	if entry == nil {
		return false, fmt.Errorf("no entry with id %s", entryID)
	}
	if entry.Role != RoleClarification {
		return false, fmt.Errorf("entry %s is not a clarification", entryID)
	}
	if entry.AllAnswered() {
		return false, fmt.Errorf("clarification %s is already resolved", entryID)
	}
	if questionIndex < 0 || questionIndex >= len(entry.Questions) {
		return false, fmt.Errorf("question index %d out of range (entry has %d questions)", questionIndex, len(entry.Questions))
	}
	if strings.TrimSpace(answer) == "" {
		return false, fmt.Errorf("empty answer for question %d", questionIndex)
	}

	q := &entry.Questions[questionIndex]
	// A chosen option id is resolved to its label; anything else is free text.
	q.Answer = answer
	for _, opt := range q.Options {
		if opt.ID == answer {
			q.Answer = opt.Label
			break
		}
	}
	q.Answered = true

	if !entry.AllAnswered() {
		return false, nil
	}

	if err := c.Submit(ctx, combinedAnswers(entry), false, nil); err != nil {
		return true, err
	}
	return true, nil
}

// combinedAnswers joins every question with its answer into the follow-up
// message sent once the set is complete.
func combinedAnswers(entry *ConversationEntry) string {
	lines := make([]string, 0, len(entry.Questions))
	for _, q := range entry.Questions {
		label := q.Text
		if q.Header != "" {
			label = q.Header + " - " + q.Text
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, q.Answer))
	}
	return strings.Join(lines, "\n")
}

func (c *Conversation) entryByID(id string) *ConversationEntry {
	for _, entry := range c.Entries {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}
