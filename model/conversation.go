package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mogen/config"
	"mogen/patch"
	"mogen/sandbox"
	"mogen/symbols"
	"mogen/tools"
)

// maxAutoRetries caps automatic resubmissions after a rejected program.
const maxAutoRetries = 2

// ErrSubmissionInFlight is returned when a submission arrives while a
// previous one is still streaming.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// Conversation orchestrates the generation loop: it maps the transcript into
// provider requests, consumes the event stream into live entries, resolves
// each finished turn, evaluates produced programs in the sandbox, and drives
// the automatic retry policy when a program is rejected.
type Conversation struct {
	Provider Provider
	Entries  []*ConversationEntry

	// CurrentProgram is the last program that evaluated successfully; edits
	// from later turns apply against it.
	CurrentProgram string
	CurrentLayout  *LayoutHint
	CurrentResult  *sandbox.Result

	// Brand, when set, rides along on every generation request.
	Brand *BrandAssets

	evaluator *sandbox.Evaluator
	index     *symbols.Index
	retries   int

	mu       sync.Mutex
	inFlight bool
}

// NewConversation builds a conversation bound to a provider and the symbol
// catalog index used by both the sandbox and local search-symbols answers.
func NewConversation(p Provider, index *symbols.Index) *Conversation {
	return &Conversation{
		Provider:  p,
		evaluator: sandbox.NewEvaluator(index),
		index:     index,
	}
}

// Submit sends user text through one or more generation turns. Empty text is
// ignored. While a submission is streaming, further user submissions are
// rejected; automatic retries are driven internally and never contend.
//
// isAutoRetry marks a submission that continues an in-flight exchange rather
// than starting a fresh one; callers almost always pass false.
func (c *Conversation) Submit(ctx context.Context, text string, isAutoRetry bool, media []MediaRef) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.inFlight && !isAutoRetry {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	if !isAutoRetry {
		c.retries = 0
	}

	outgoing := text
	autoRetry := isAutoRetry
	for {
		rejection, err := c.runTurn(ctx, outgoing, autoRetry, media)
		if err != nil {
			return err
		}
		if rejection == "" {
			return nil
		}
		if c.retries >= maxAutoRetries {
			c.retries = 0
			c.surfaceRejection(rejection)
			return nil
		}
		c.retries++
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Conversation] auto-retry %d/%d after rejection: %s", c.retries, maxAutoRetries, rejection)
		}
		outgoing = fmt.Sprintf("The generated program was rejected by the evaluator:\n%s\n\nFix the program and produce it again.", rejection)
		autoRetry = true
		media = nil
	}
}

// runTurn performs one request/stream/resolve cycle. A non-empty rejection
// means a produced program failed evaluation and the caller may retry; err is
// reserved for transport failures, which are terminal.
func (c *Conversation) runTurn(ctx context.Context, outgoing string, isAutoRetry bool, media []MediaRef) (string, error) {
	turns := c.requestTurns()
	turns = append(turns, Turn{Role: "user", Text: outgoing, Media: media})

	// Retry follow-ups ride only on the outgoing request; the transcript
	// keeps just what the user actually typed.
	if !isAutoRetry {
		c.appendEntry(&ConversationEntry{
			Role:    RoleUser,
			Content: outgoing,
		})
	}

	entry := c.appendEntry(&ConversationEntry{Role: RoleAssistant})

	req := GenerationRequest{
		Turns:          turns,
		CurrentProgram: c.CurrentProgram,
		Model:          c.Provider.GetModel(),
		Brand:          c.Brand,
	}

	err := c.Provider.Generate(ctx, req, func(ev StreamEvent) error {
		c.applyEvent(entry, ev)
		return nil
	})
	if err != nil {
		entry.IsError = true
		if entry.Content == "" {
			entry.Content = fmt.Sprintf("Generation failed: %v", err)
		}
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	c.completeLocalTools(entry)

	outcome := ResolveTurn(entry)
	switch outcome.Kind {
	case OutcomeClarification:
		entry.Role = RoleClarification
		entry.Questions = outcome.Questions
		// The display text becomes the questions themselves, replacing any
		// commentary that preceded the call, so later requests carry what
		// was asked rather than lead-in prose.
		texts := make([]string, len(outcome.Questions))
		for i, q := range outcome.Questions {
			texts[i] = q.Text
		}
		entry.Content = strings.Join(texts, "\n")
		return "", nil

	case OutcomeProgram:
		program := outcome.Program
		if len(outcome.Edits) > 0 {
			patched, applyErr := patch.Apply(c.CurrentProgram, outcome.Edits)
			if applyErr != nil {
				return fmt.Sprintf("could not apply edits: %v", applyErr), nil
			}
			program = patched
		}
		result := c.evaluator.Evaluate(program)
		if !result.OK() {
			return result.Err, nil
		}
		if c.CurrentProgram != "" && program != c.CurrentProgram {
			if summary := patch.Summary(c.CurrentProgram, program); summary != "" {
				if config.Debug && config.DebugLog != nil {
					config.DebugLog.Printf("[Conversation] program updated:\n%s", summary)
				}
			}
		}
		c.CurrentProgram = program
		c.CurrentResult = result
		c.mergeLayout(outcome.Layout)
		c.retries = 0
		return "", nil

	default:
		return "", nil
	}
}

// applyEvent folds one stream event into the live assistant entry.
func (c *Conversation) applyEvent(entry *ConversationEntry, ev StreamEvent) {
	switch ev.Type {
	case EventTextDelta:
		entry.Content += ev.Text

	case EventToolCall:
		if inv := entry.toolByID(ev.CallID); inv != nil {
			// A repeated call id refines the earlier invocation.
			inv.Name = ev.ToolName
			inv.Args = ev.Args
			return
		}
		entry.Tools = append(entry.Tools, ToolInvocation{
			ID:     ev.CallID,
			Name:   ev.ToolName,
			Args:   ev.Args,
			Status: ToolPending,
		})

	case EventToolResult:
		inv := entry.toolByID(ev.CallID)
		if inv == nil {
			return
		}
		inv.Result = ev.Result
		if inv.Status == ToolPending {
			inv.Status = ToolComplete
		}
	}
}

// completeLocalTools answers search-symbols invocations the stream left
// pending, from the local catalog index.
func (c *Conversation) completeLocalTools(entry *ConversationEntry) {
	for i := range entry.Tools {
		inv := &entry.Tools[i]
		if inv.Name != tools.SearchSymbols || inv.Status != ToolPending {
			continue
		}
		query, _ := inv.Args["query"].(string)
		limit := 5
		if n, ok := inv.Args["limit"].(float64); ok && n >= 1 {
			limit = int(n)
		}
		matches := c.index.Search(query, limit)
		names := make([]string, len(matches))
		for j, m := range matches {
			names[j] = m.Name
		}
		inv.Result = strings.Join(names, ", ")
		inv.Status = ToolComplete
	}
}

// surfaceRejection marks the newest assistant entry as the terminal failure
// after the retry budget is exhausted.
func (c *Conversation) surfaceRejection(rejection string) {
	for i := len(c.Entries) - 1; i >= 0; i-- {
		if c.Entries[i].Role == RoleAssistant {
			entry := c.Entries[i]
			entry.IsError = true
			msg := fmt.Sprintf("The program could not be repaired after %d attempts:\n%s", maxAutoRetries+1, rejection)
			if entry.Content != "" {
				entry.Content += "\n\n"
			}
			entry.Content += msg
			return
		}
	}
}

// requestTurns maps the transcript to provider turns. Clarification entries
// were authored by the model, so they map to the assistant role.
func (c *Conversation) requestTurns() []Turn {
	var turns []Turn
	for _, entry := range c.Entries {
		if entry.Content == "" {
			continue
		}
		role := "assistant"
		if entry.Role == RoleUser {
			role = "user"
		}
		turns = append(turns, Turn{Role: role, Text: entry.Content})
	}
	return turns
}

func (c *Conversation) appendEntry(entry *ConversationEntry) *ConversationEntry {
	entry.ID = uuid.New().String()
	entry.Timestamp = time.Now()
	c.Entries = append(c.Entries, entry)
	return entry
}

// LastEntry returns the newest transcript entry, or nil when empty.
func (c *Conversation) LastEntry() *ConversationEntry {
	if len(c.Entries) == 0 {
		return nil
	}
	return c.Entries[len(c.Entries)-1]
}

// InFlight reports whether a submission is currently streaming.
func (c *Conversation) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// mergeLayout folds a layout hint into the current placement, leaving absent
// fields untouched.
func (c *Conversation) mergeLayout(hint *LayoutHint) {
	if hint == nil {
		return
	}
	if c.CurrentLayout == nil {
		c.CurrentLayout = &LayoutHint{}
	}
	if hint.X != nil {
		c.CurrentLayout.X = hint.X
	}
	if hint.Y != nil {
		c.CurrentLayout.Y = hint.Y
	}
	if hint.W != nil {
		c.CurrentLayout.W = hint.W
	}
	if hint.H != nil {
		c.CurrentLayout.H = hint.H
	}
}
