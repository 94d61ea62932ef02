// Package tools defines the closed set of tools the generation model may
// invoke, as provider-agnostic MCP tool schemas, plus the conversions to each
// provider SDK's native tool format.
//
// The set is fixed: produce-program emits or edits an overlay program,
// ask-clarifications pauses generation behind user answers, and
// search-symbols queries the icon catalog. Adding a tool means touching the
// orchestrator's turn resolution, so there is deliberately no registry.
package tools

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Tool names. These appear verbatim in stream tool-invocation events.
const (
	ProduceProgram    = "produce-program"
	AskClarifications = "ask-clarifications"
	SearchSymbols     = "search-symbols"
)

// All returns the toolset advertised to SDK providers. The gateway service
// defines the same set server-side, so it never consumes these schemas.
func All() []mcptypes.Tool {
	return []mcptypes.Tool{
		{
			Name:        ProduceProgram,
			Description: "Emit a complete overlay render program, or a list of find/replace edits against the current program. Exactly one of program or edits must be present.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"program": map[string]any{
						"type":        "string",
						"description": "Full JavaScript source exporting a default render function.",
					},
					"edits": map[string]any{
						"type":        "array",
						"description": "Ordered find/replace edits applied to the current program.",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"find":    map[string]any{"type": "string"},
								"replace": map[string]any{"type": "string"},
							},
							"required": []string{"find", "replace"},
						},
					},
					"layout": map[string]any{
						"type":        "object",
						"description": "Suggested placement as percentages of the render surface, 0-100.",
						"properties": map[string]any{
							"x": map[string]any{"type": "number"},
							"y": map[string]any{"type": "number"},
							"w": map[string]any{"type": "number"},
							"h": map[string]any{"type": "number"},
						},
					},
				},
			},
		},
		{
			Name:        AskClarifications,
			Description: "Ask the user 1-3 multiple-choice questions before generating. Each question needs 2-5 options.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"questions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"header":   map[string]any{"type": "string"},
								"question": map[string]any{"type": "string"},
								"options": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type": "object",
										"properties": map[string]any{
											"id":          map[string]any{"type": "string"},
											"label":       map[string]any{"type": "string"},
											"description": map[string]any{"type": "string"},
										},
										"required": []string{"id", "label"},
									},
								},
							},
							"required": []string{"question", "options"},
						},
					},
				},
				Required: []string{"questions"},
			},
		},
		{
			Name:        SearchSymbols,
			Description: "Search the fixed icon and brand-mark catalog by keyword. Returns ranked symbol names usable in programs.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Keywords describing the wanted symbol.",
					},
					"limit": map[string]any{
						"type":        "number",
						"description": "Maximum number of results, default 5.",
					},
				},
				Required: []string{"query"},
			},
		},
	}
}
