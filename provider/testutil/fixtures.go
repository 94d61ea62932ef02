package testutil

import (
	"mogen/model"
	"mogen/tools"
)

// TextScript returns a script that streams the given text as single-rune
// deltas, the way real providers fragment output.
func TextScript(text string) []model.StreamEvent {
	var script []model.StreamEvent
	for _, r := range text {
		script = append(script, model.StreamEvent{
			Type: model.EventTextDelta,
			Text: string(r),
		})
	}
	return script
}

// ProgramScript returns a script that produces a full program via the
// produce-program tool, preceded by a short commentary delta.
func ProgramScript(callID, program string) []model.StreamEvent {
	return []model.StreamEvent{
		{Type: model.EventTextDelta, Text: "Here is the overlay."},
		{
			Type:     model.EventToolCall,
			CallID:   callID,
			ToolName: tools.ProduceProgram,
			Args:     map[string]any{"program": program},
		},
	}
}

// ClarificationScript returns a script that asks a single two-option
// question.
func ClarificationScript(callID, header, question, optionA, optionB string) []model.StreamEvent {
	return []model.StreamEvent{
		{
			Type:     model.EventToolCall,
			CallID:   callID,
			ToolName: tools.AskClarifications,
			Args: map[string]any{
				"questions": []any{
					map[string]any{
						"header":   header,
						"question": question,
						"options": []any{
							map[string]any{"id": "a", "label": optionA},
							map[string]any{"id": "b", "label": optionB},
						},
					},
				},
			},
		},
	}
}
