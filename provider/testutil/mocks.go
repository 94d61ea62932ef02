// Package testutil provides mock providers for exercising conversation and
// stream handling without a network backend.
package testutil

import (
	"context"

	"mogen/model"
)

// ScriptedProvider implements model.Provider by replaying a fixed sequence
// of event scripts, one per Generate call. It records every request it sees.
type ScriptedProvider struct {
	// Scripts holds the event sequence for each successive Generate call.
	// A call past the end of Scripts streams nothing.
	Scripts [][]model.StreamEvent

	// Err, when set, is returned by Generate after streaming the call's
	// script (empty scripts fail immediately, like a dead connection).
	Err error

	// Requests accumulates every GenerationRequest passed to Generate.
	Requests []model.GenerationRequest

	calls        int
	currentModel string
}

// NewScriptedProvider builds a provider that replays the given scripts.
func NewScriptedProvider(scripts ...[]model.StreamEvent) *ScriptedProvider {
	return &ScriptedProvider{
		Scripts:      scripts,
		currentModel: "scripted-model",
	}
}

// Generate implements model.Provider.Generate.
func (m *ScriptedProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	m.Requests = append(m.Requests, req)

	var script []model.StreamEvent
	if m.calls < len(m.Scripts) {
		script = m.Scripts[m.calls]
	}
	m.calls++

	for _, ev := range script {
		if callback != nil {
			if err := callback(ev); err != nil {
				return err
			}
		}
	}
	return m.Err
}

// Calls reports how many times Generate ran.
func (m *ScriptedProvider) Calls() int {
	return m.calls
}

// GetModel implements model.Provider.GetModel.
func (m *ScriptedProvider) GetModel() string {
	return m.currentModel
}

// GetDisplayName implements model.Provider.GetDisplayName.
func (m *ScriptedProvider) GetDisplayName() string {
	return m.currentModel
}

// SetModel implements model.Provider.SetModel.
func (m *ScriptedProvider) SetModel(modelName string) {
	m.currentModel = modelName
}

// Ping implements model.Provider.Ping.
func (m *ScriptedProvider) Ping(ctx context.Context) error {
	return nil
}
