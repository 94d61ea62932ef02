package sandbox

import "fmt"

// Node is one element of the render tree a sandboxed program produces for a
// frame. The playback layer walks it; the sandbox only guarantees its shape.
type Node struct {
	Kind     string         `json:"kind"`
	Props    map[string]any `json:"props,omitempty"`
	Children []*Node        `json:"children,omitempty"`
}

// FrameInput is the fixed four-field contract of the per-frame callable.
type FrameInput struct {
	Frame            int
	DurationInFrames int
	Width            int
	Height           int
}

// Placeholder builds the inert node rendered in place of a frame whose
// program threw. It never fails and carries the error text for inspection.
func Placeholder(msg string) *Node {
	return &Node{
		Kind:  "placeholder",
		Props: map[string]any{"error": msg},
	}
}

// decodeNode converts a value exported from the JS runtime into a Node.
// Strings and numbers become text nodes; arrays become anonymous groups;
// anything unrecognized decodes to nil and is dropped by the parent.
func decodeNode(raw any) *Node {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return &Node{Kind: "text", Props: map[string]any{"value": v}}
	case float64, int, int64:
		return &Node{Kind: "text", Props: map[string]any{"value": fmt.Sprintf("%v", v)}}
	case []any:
		group := &Node{Kind: "group"}
		for _, child := range v {
			if n := decodeNode(child); n != nil {
				group.Children = append(group.Children, n)
			}
		}
		return group
	case map[string]any:
		kind, _ := v["kind"].(string)
		if kind == "" {
			return nil
		}
		node := &Node{Kind: kind}
		if props, ok := v["props"].(map[string]any); ok && len(props) > 0 {
			node.Props = props
		}
		if children, ok := v["children"].([]any); ok {
			for _, child := range children {
				if n := decodeNode(child); n != nil {
					node.Children = append(node.Children, n)
				}
			}
		}
		return node
	default:
		return nil
	}
}
