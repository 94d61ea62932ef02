package model

import "time"

// Role classifies a conversation entry. It is fixed at creation; an assistant
// entry that turns out to be a set of questions is reclassified exactly once,
// at turn resolution, before any later entry exists.
type Role string

const (
	RoleUser          Role = "user"
	RoleAssistant     Role = "assistant"
	RoleClarification Role = "clarification"
)

// ToolStatus tracks a tool invocation's lifecycle. Transitions only run
// pending→complete or pending→error, never backward.
type ToolStatus string

const (
	ToolPending  ToolStatus = "pending"
	ToolComplete ToolStatus = "complete"
	ToolError    ToolStatus = "error"
)

// ToolInvocation is one structured action the model asked for during a turn,
// keyed by the stream's call identifier.
type ToolInvocation struct {
	ID     string
	Name   string
	Args   map[string]any
	Status ToolStatus
	Result any
}

// ClarificationOption is one selectable answer to a question.
type ClarificationOption struct {
	ID          string
	Label       string
	Description string
}

// ClarificationQuestion is one question blocking generation. Options holds
// 2-5 entries; a free-text answer is always permitted in their place.
type ClarificationQuestion struct {
	Header   string
	Text     string
	Options  []ClarificationOption
	Answer   string
	Answered bool
}

// ConversationEntry is one transcript item. Entries are ordered and
// append-only; only the newest entry mutates in place while its stream runs.
type ConversationEntry struct {
	ID        string
	Role      Role
	Content   string
	Tools     []ToolInvocation
	Questions []ClarificationQuestion
	IsError   bool
	Timestamp time.Time
}

// AllAnswered reports whether every question in the entry has an answer.
func (e *ConversationEntry) AllAnswered() bool {
	if len(e.Questions) == 0 {
		return false
	}
	for _, q := range e.Questions {
		if !q.Answered {
			return false
		}
	}
	return true
}

// toolByID returns the invocation with the given call identifier, or nil.
func (e *ConversationEntry) toolByID(id string) *ToolInvocation {
	for i := range e.Tools {
		if e.Tools[i].ID == id {
			return &e.Tools[i]
		}
	}
	return nil
}

// LayoutHint is the optional placement suggestion attached to a produced
// program. Fields are percentages of the render surface in [0,100]; a nil
// field leaves the existing placement untouched.
type LayoutHint struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	W *float64 `json:"w,omitempty"`
	H *float64 `json:"h,omitempty"`
}

// MediaRef points at media the user referenced in a prompt. Upload and
// storage are outside this module; only the reference travels with requests.
type MediaRef struct {
	URL  string `json:"url"`
	MIME string `json:"mime,omitempty"`
}

// BrandAssets bias generation toward a brand's look. They arrive from an
// external extraction step and pass through to the generation request as-is.
type BrandAssets struct {
	Palette  []string   `json:"palette,omitempty"`
	Images   []MediaRef `json:"images,omitempty"`
	Snippets []string   `json:"snippets,omitempty"`
}
