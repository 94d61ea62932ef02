package provider

import (
	"bytes"
	"encoding/json"

	"mogen/model"
)

// StreamDecoder incrementally decodes the gateway's line protocol into
// provider-agnostic events. Each line is TAG:PAYLOAD where the payload is a
// JSON value:
//
//	0:"text delta"
//	9:{"toolCallId":"...","toolName":"...","args":{...}}
//	a:{"toolCallId":"...","result":...}
//
// Chunk boundaries carry no meaning: a line split across chunks decodes
// identically to the same line arriving whole. Unrecognized tags and
// malformed payloads are skipped without failing the stream.
type StreamDecoder struct {
	buf bytes.Buffer
}

// NewStreamDecoder returns a decoder with an empty line buffer.
func NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{}
}

// Feed appends a chunk and returns the events decoded from every line that
// is now complete. A trailing partial line stays buffered for the next call.
func (d *StreamDecoder) Feed(chunk []byte) []model.StreamEvent {
	d.buf.Write(chunk)

	var events []model.StreamEvent
	for {
		data := d.buf.Bytes()
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return events
		}
		line := make([]byte, idx)
		copy(line, data[:idx])
		d.buf.Next(idx + 1)

		if ev, ok := decodeLine(line); ok {
			events = append(events, ev)
		}
	}
}

// Flush discards any buffered partial line. A stream that ends mid-line lost
// that line; there is nothing recoverable in it.
func (d *StreamDecoder) Flush() {
	d.buf.Reset()
}

func decodeLine(line []byte) (model.StreamEvent, bool) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return model.StreamEvent{}, false
	}
	idx := bytes.IndexByte(line, ':')
	if idx < 0 {
		return model.StreamEvent{}, false
	}
	tag, payload := string(line[:idx]), line[idx+1:]

	switch tag {
	case "0":
		var text string
		if err := json.Unmarshal(payload, &text); err != nil {
			return model.StreamEvent{}, false
		}
		return model.StreamEvent{Type: model.EventTextDelta, Text: text}, true

	case "9":
		var call struct {
			ToolCallID string         `json:"toolCallId"`
			ToolName   string         `json:"toolName"`
			Args       map[string]any `json:"args"`
		}
		if err := json.Unmarshal(payload, &call); err != nil || call.ToolCallID == "" || call.ToolName == "" {
			return model.StreamEvent{}, false
		}
		return model.StreamEvent{
			Type:     model.EventToolCall,
			CallID:   call.ToolCallID,
			ToolName: call.ToolName,
			Args:     call.Args,
		}, true

	case "a":
		var result struct {
			ToolCallID string `json:"toolCallId"`
			Result     any    `json:"result"`
		}
		if err := json.Unmarshal(payload, &result); err != nil || result.ToolCallID == "" {
			return model.StreamEvent{}, false
		}
		return model.StreamEvent{
			Type:   model.EventToolResult,
			CallID: result.ToolCallID,
			Result: result.Result,
		}, true
	}
	return model.StreamEvent{}, false
}
