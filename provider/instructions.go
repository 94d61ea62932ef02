package provider

import (
	"fmt"
	"strings"

	"mogen/model"
)

// buildSystemPrompt assembles the system instructions for SDK providers. The
// gateway provider never calls this; its service owns prompting server-side.
func buildSystemPrompt(req model.GenerationRequest) string {
	sections := []string{
		"You generate animated overlay programs: small JavaScript modules that export a default render function mapping a frame context to a node tree.",
		"",
		"Decide between three responses, in this order of preference:",
		"1. If the request is ambiguous, call ask-clarifications with 1-3 multiple-choice questions and produce nothing else.",
		"2. Otherwise call produce-program. Emit a full program, or find/replace edits when refining the current program.",
		"3. Only reply with plain commentary when no program change is wanted.",
		"",
		"Programs may only reference symbols from the fixed catalog. Use search-symbols to discover names; never invent them.",
		"The environment provides interpolate, spring, Easing, el, text, sequence and loop. No imports survive evaluation.",
	}

	if req.CurrentProgram != "" {
		sections = append(sections, "", "The current program, which edits apply against:", "```", req.CurrentProgram, "```")
	}

	if req.Brand != nil {
		if len(req.Brand.Palette) > 0 {
			sections = append(sections, "", "Brand palette: "+strings.Join(req.Brand.Palette, ", "))
		}
		for _, snippet := range req.Brand.Snippets {
			sections = append(sections, "", "Brand reference:", snippet)
		}
		for _, img := range req.Brand.Images {
			sections = append(sections, fmt.Sprintf("Brand image: %s", img.URL))
		}
	}

	return strings.Join(sections, "\n")
}
