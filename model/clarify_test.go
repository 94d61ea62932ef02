package model_test

import (
	"context"
	"strings"
	"testing"

	"mogen/model"
	"mogen/provider/testutil"
	"mogen/tools"
)

func twoQuestionScript() []model.StreamEvent {
	return []model.StreamEvent{{
		Type:     model.EventToolCall,
		CallID:   "q1",
		ToolName: tools.AskClarifications,
		Args: map[string]any{
			"questions": []any{
				map[string]any{
					"header":   "Style",
					"question": "What mood should the overlay have?",
					"options": []any{
						map[string]any{"id": "energetic", "label": "Energetic"},
						map[string]any{"id": "calm", "label": "Calm"},
					},
				},
				map[string]any{
					"header":   "Placement",
					"question": "Where should it sit?",
					"options": []any{
						map[string]any{"id": "top", "label": "Top"},
						map[string]any{"id": "bottom", "label": "Bottom"},
					},
				},
			},
		},
	}}
}

func TestClarificationTurnReclassifiesEntry(t *testing.T) {
	c, _ := newConversation(twoQuestionScript())

	if err := c.Submit(context.Background(), "make me an overlay", false, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := c.LastEntry()
	if entry.Role != model.RoleClarification {
		t.Fatalf("role = %s, want clarification", entry.Role)
	}
	if len(entry.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(entry.Questions))
	}
	if entry.Questions[0].Header != "Style" || len(entry.Questions[0].Options) != 2 {
		t.Errorf("first question = %+v", entry.Questions[0])
	}
}

func TestClarificationReplacesCommentaryText(t *testing.T) {
	script := append([]model.StreamEvent{
		{Type: model.EventTextDelta, Text: "Let me narrow that down first."},
	}, twoQuestionScript()...)
	c, p := newConversation(script, testutil.TextScript("Got it."))

	if err := c.Submit(context.Background(), "make me an overlay", false, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := c.LastEntry()
	want := "What mood should the overlay have?\nWhere should it sit?"
	if entry.Content != want {
		t.Fatalf("content = %q, want the questions, not the lead-in prose", entry.Content)
	}

	// Later requests see the questions in the transcript, so the combined
	// answers have something to pair against.
	_, _ = c.Answer(context.Background(), entry.ID, 0, "calm")
	_, _ = c.Answer(context.Background(), entry.ID, 1, "top")
	var found bool
	for _, turn := range p.Requests[1].Turns {
		if strings.Contains(turn.Text, "What mood should the overlay have?") {
			found = true
		}
	}
	if !found {
		t.Error("clarification questions missing from the follow-up request")
	}
}

func TestAnswerGatesSubmissionUntilComplete(t *testing.T) {
	c, p := newConversation(twoQuestionScript(), testutil.TextScript("Got it."))

	_ = c.Submit(context.Background(), "make me an overlay", false, nil)
	entry := c.LastEntry()

	done, err := c.Answer(context.Background(), entry.ID, 0, "energetic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done {
		t.Error("one of two answers must not complete the set")
	}
	if p.Calls() != 1 {
		t.Fatalf("partial answers must not submit, got %d calls", p.Calls())
	}

	// Re-answering before completion overwrites.
	if _, err := c.Answer(context.Background(), entry.ID, 0, "calm"); err != nil {
		t.Fatalf("re-answer failed: %v", err)
	}
	if got := entry.Questions[0].Answer; got != "Calm" {
		t.Errorf("overwritten answer = %q, want option label %q", got, "Calm")
	}

	done, err = c.Answer(context.Background(), entry.ID, 1, "free text: above the ticker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done {
		t.Error("final answer should complete the set")
	}
	if p.Calls() != 2 {
		t.Fatalf("completed set must trigger one submission, got %d calls", p.Calls())
	}

	// The combined message pairs each question with its answer.
	followUp := p.Requests[1].Turns[len(p.Requests[1].Turns)-1]
	if !strings.Contains(followUp.Text, "Calm") || !strings.Contains(followUp.Text, "above the ticker") {
		t.Errorf("combined answers = %q", followUp.Text)
	}
	if len(strings.Split(followUp.Text, "\n")) != 2 {
		t.Errorf("combined answers should be newline-joined pairs: %q", followUp.Text)
	}
}

func TestAnswerErrors(t *testing.T) {
	c, _ := newConversation(twoQuestionScript(), testutil.TextScript("Got it."))
	_ = c.Submit(context.Background(), "make me an overlay", false, nil)
	entry := c.LastEntry()

	if _, err := c.Answer(context.Background(), "nope", 0, "x"); err == nil {
		t.Error("expected error for unknown entry id")
	}
	if _, err := c.Answer(context.Background(), entry.ID, 5, "x"); err == nil {
		t.Error("expected error for out-of-range question index")
	}
	if _, err := c.Answer(context.Background(), entry.ID, 0, "  "); err == nil {
		t.Error("expected error for empty answer")
	}

	_, _ = c.Answer(context.Background(), entry.ID, 0, "energetic")
	_, _ = c.Answer(context.Background(), entry.ID, 1, "top")

	// Resolved entries reject further answers.
	if _, err := c.Answer(context.Background(), entry.ID, 0, "calm"); err == nil {
		t.Error("expected error answering a resolved clarification")
	}
}

func TestAnswerRejectsNonClarificationEntry(t *testing.T) {
	c, _ := newConversation(testutil.TextScript("just commentary"))
	_ = c.Submit(context.Background(), "hello", false, nil)

	entry := c.LastEntry()
	if _, err := c.Answer(context.Background(), entry.ID, 0, "x"); err == nil {
		t.Error("expected error answering a non-clarification entry")
	}
}
