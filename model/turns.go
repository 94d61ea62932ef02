package model

import (
	"encoding/json"
	"regexp"
	"strings"

	"mogen/patch"
	"mogen/tools"
)

// OutcomeKind tags the terminal result of a turn.
type OutcomeKind string

const (
	OutcomeClarification OutcomeKind = "clarification"
	OutcomeProgram       OutcomeKind = "program"
	OutcomeCommentary    OutcomeKind = "commentary"
)

// TurnOutcome is the resolved result of one assistant turn. Exactly the
// fields for its kind are populated.
type TurnOutcome struct {
	Kind      OutcomeKind
	Questions []ClarificationQuestion
	Program   string
	Edits     []patch.Edit
	Layout    *LayoutHint
}

// ResolveTurn classifies a finished assistant entry, in strict priority
// order: clarification questions first, then a produced program, then the
// fenced-block fallback over the plain text, then commentary. A
// search-symbols invocation never resolves a turn by itself.
func ResolveTurn(entry *ConversationEntry) TurnOutcome {
	if questions := clarificationQuestions(entry); len(questions) > 0 {
		return TurnOutcome{Kind: OutcomeClarification, Questions: questions}
	}

	for _, inv := range entry.Tools {
		if inv.Name != tools.ProduceProgram {
			continue
		}
		program, _ := inv.Args["program"].(string)
		edits := editsFromArgs(inv.Args["edits"])
		if program == "" && len(edits) == 0 {
			continue
		}
		return TurnOutcome{
			Kind:    OutcomeProgram,
			Program: program,
			Edits:   edits,
			Layout:  layoutFromValue(inv.Args["layout"]),
		}
	}

	// Fallback channel: markers embedded in the plain text. Questions keep
	// their priority over a program here too.
	if questions := extractQuestionMarkers(entry.Content); len(questions) > 0 {
		return TurnOutcome{Kind: OutcomeClarification, Questions: questions}
	}
	if program, ok := extractFencedBlock(entry.Content); ok {
		return TurnOutcome{
			Kind:    OutcomeProgram,
			Program: program,
			Layout:  extractLayoutMarker(entry.Content),
		}
	}

	return TurnOutcome{Kind: OutcomeCommentary}
}

// clarificationQuestions collects questions across every ask-clarifications
// invocation in the entry.
func clarificationQuestions(entry *ConversationEntry) []ClarificationQuestion {
	var questions []ClarificationQuestion
	for _, inv := range entry.Tools {
		if inv.Name != tools.AskClarifications {
			continue
		}
		raw, ok := inv.Args["questions"].([]any)
		if !ok {
			continue
		}
		for _, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if q, ok := questionFromMap(m); ok {
				questions = append(questions, q)
			}
		}
	}
	return questions
}

func questionFromMap(m map[string]any) (ClarificationQuestion, bool) {
	q := ClarificationQuestion{}
	q.Header, _ = m["header"].(string)
	q.Text, _ = m["question"].(string)
	if q.Text == "" {
		return q, false
	}
	if rawOpts, ok := m["options"].([]any); ok {
		for _, rawOpt := range rawOpts {
			om, ok := rawOpt.(map[string]any)
			if !ok {
				continue
			}
			opt := ClarificationOption{}
			opt.ID, _ = om["id"].(string)
			opt.Label, _ = om["label"].(string)
			opt.Description, _ = om["description"].(string)
			if opt.Label != "" {
				q.Options = append(q.Options, opt)
			}
		}
	}
	return q, true
}

func editsFromArgs(raw any) []patch.Edit {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var edits []patch.Edit
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		find, _ := m["find"].(string)
		replace, _ := m["replace"].(string)
		if find != "" {
			edits = append(edits, patch.Edit{Find: find, Replace: replace})
		}
	}
	return edits
}

// layoutFromValue decodes a layout hint from tool args. Out-of-range or
// non-numeric fields are dropped rather than failing the whole turn.
func layoutFromValue(raw any) *LayoutHint {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	hint := &LayoutHint{}
	hint.X = percentField(m["x"])
	hint.Y = percentField(m["y"])
	hint.W = percentField(m["w"])
	hint.H = percentField(m["h"])
	if hint.X == nil && hint.Y == nil && hint.W == nil && hint.H == nil {
		return nil
	}
	return hint
}

func percentField(raw any) *float64 {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case int64:
		v = float64(n)
	case int:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		v = f
	default:
		return nil
	}
	if v < 0 || v > 100 {
		return nil
	}
	return &v
}

var (
	fencedBlockRe    = regexp.MustCompile("(?s)```[a-zA-Z]*\n(.*?)```")
	layoutMarkerRe   = regexp.MustCompile(`(?s)<layout>\s*(\{.*?\})\s*</layout>`)
	questionMarkerRe = regexp.MustCompile(`(?s)<question>\s*(\{.*?\})\s*</question>`)
)

// extractFencedBlock returns the body of the first fenced code block.
func extractFencedBlock(text string) (string, bool) {
	m := fencedBlockRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	body := strings.TrimSpace(m[1])
	if body == "" {
		return "", false
	}
	return body, true
}

// extractLayoutMarker parses a <layout>{...}</layout> marker, if present and
// well-formed. A malformed marker is ignored.
func extractLayoutMarker(text string) *LayoutHint {
	m := layoutMarkerRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(m[1]), &raw); err != nil {
		return nil
	}
	return layoutFromValue(raw)
}

// extractQuestionMarkers parses every <question>{...}</question> marker.
// Malformed markers are skipped.
func extractQuestionMarkers(text string) []ClarificationQuestion {
	var questions []ClarificationQuestion
	for _, m := range questionMarkerRe.FindAllStringSubmatch(text, -1) {
		var raw map[string]any
		if err := json.Unmarshal([]byte(m[1]), &raw); err != nil {
			continue
		}
		if q, ok := questionFromMap(raw); ok {
			questions = append(questions, q)
		}
	}
	return questions
}
