package provider

import (
	"reflect"
	"testing"

	"mogen/model"
)

func TestStreamDecoderTextDeltas(t *testing.T) {
	d := NewStreamDecoder()

	events := d.Feed([]byte("0:\"Hello\"\n0:\" world\"\n"))
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	var accumulated string
	for _, ev := range events {
		if ev.Type != model.EventTextDelta {
			t.Errorf("expected text-delta, got %s", ev.Type)
		}
		accumulated += ev.Text
	}
	if accumulated != "Hello world" {
		t.Errorf("accumulated text = %q, want %q", accumulated, "Hello world")
	}
}

func TestStreamDecoderToolCall(t *testing.T) {
	d := NewStreamDecoder()

	line := `9:{"toolCallId":"call-1","toolName":"produce-program","args":{"program":"export default () => null;"}}` + "\n"
	events := d.Feed([]byte(line))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	ev := events[0]
	if ev.Type != model.EventToolCall {
		t.Errorf("type = %s, want %s", ev.Type, model.EventToolCall)
	}
	if ev.CallID != "call-1" {
		t.Errorf("call id = %q, want %q", ev.CallID, "call-1")
	}
	if ev.ToolName != "produce-program" {
		t.Errorf("tool name = %q, want %q", ev.ToolName, "produce-program")
	}
	if got := ev.Args["program"]; got != "export default () => null;" {
		t.Errorf("args.program = %v", got)
	}
}

func TestStreamDecoderToolResult(t *testing.T) {
	d := NewStreamDecoder()

	events := d.Feed([]byte(`a:{"toolCallId":"call-1","result":["IconBell"]}` + "\n"))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventToolResult {
		t.Errorf("type = %s, want %s", events[0].Type, model.EventToolResult)
	}
	if events[0].CallID != "call-1" {
		t.Errorf("call id = %q", events[0].CallID)
	}
}

// Chunk boundaries must not matter: splitting the byte stream at every
// possible position must decode to the same events as feeding it whole.
func TestStreamDecoderSplitInvariance(t *testing.T) {
	raw := []byte("0:\"Fade \"\n" +
		`9:{"toolCallId":"c1","toolName":"search-symbols","args":{"query":"bell"}}` + "\n" +
		`a:{"toolCallId":"c1","result":"IconBell"}` + "\n" +
		"0:\"in.\"\n")

	whole := NewStreamDecoder().Feed(raw)
	if len(whole) != 4 {
		t.Fatalf("expected 4 events from whole feed, got %d", len(whole))
	}

	for split := 0; split <= len(raw); split++ {
		d := NewStreamDecoder()
		events := d.Feed(raw[:split])
		events = append(events, d.Feed(raw[split:])...)

		if !reflect.DeepEqual(events, whole) {
			t.Fatalf("split at %d decoded differently: got %+v, want %+v", split, events, whole)
		}
	}
}

func TestStreamDecoderSkipsMalformedLines(t *testing.T) {
	d := NewStreamDecoder()

	raw := []byte("garbage line\n" +
		"7:\"unknown tag\"\n" +
		"0:not json\n" +
		`9:{"toolName":"missing-id"}` + "\n" +
		"0:\"kept\"\n")
	events := d.Feed(raw)
	if len(events) != 1 {
		t.Fatalf("expected only the valid line to decode, got %d events", len(events))
	}
	if events[0].Text != "kept" {
		t.Errorf("text = %q, want %q", events[0].Text, "kept")
	}
}

func TestStreamDecoderDiscardsTrailingPartial(t *testing.T) {
	d := NewStreamDecoder()

	events := d.Feed([]byte("0:\"complete\"\n0:\"partial"))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	d.Flush()
	if events := d.Feed([]byte("\"\n")); len(events) != 0 {
		t.Errorf("flushed partial line still decoded: %+v", events)
	}
}

func TestStreamDecoderCRLF(t *testing.T) {
	d := NewStreamDecoder()
	events := d.Feed([]byte("0:\"line\"\r\n"))
	if len(events) != 1 || events[0].Text != "line" {
		t.Fatalf("CRLF line not decoded: %+v", events)
	}
}
