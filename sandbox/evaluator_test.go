package sandbox

import (
	"strings"
	"testing"

	"mogen/symbols"
)

func newTestEvaluator() *Evaluator {
	return NewEvaluator(symbols.NewIndex())
}

func TestEvaluateRendersFrames(t *testing.T) {
	program := `
import { interpolate } from "remotion";

export default function Overlay(input) {
	const opacity = interpolate(input.frame, [0, 30], [0, 1], { extrapolateRight: "clamp" });
	return el("box", { opacity: opacity, width: input.width }, text("Hello"));
}
`
	res := newTestEvaluator().Evaluate(program)
	if !res.OK() {
		t.Fatalf("unexpected evaluation error: %s", res.Err)
	}

	node := res.Frame(FrameInput{Frame: 15, DurationInFrames: 90, Width: 1920, Height: 1080})
	if node.Kind != "box" {
		t.Fatalf("got kind %q, want box", node.Kind)
	}
	if got := node.Props["opacity"]; got != 0.5 {
		t.Errorf("opacity at frame 15: got %v, want 0.5", got)
	}
	if len(node.Children) != 1 || node.Children[0].Kind != "text" {
		t.Fatalf("expected one text child, got %+v", node.Children)
	}
	if got := node.Children[0].Props["value"]; got != "Hello" {
		t.Errorf("text value: got %v", got)
	}

	// Clamped past the range end.
	node = res.Frame(FrameInput{Frame: 90, DurationInFrames: 90, Width: 1920, Height: 1080})
	if got := node.Props["opacity"]; got != float64(1) {
		t.Errorf("opacity at frame 90: got %v, want 1", got)
	}
}

func TestEvaluateNamedExport(t *testing.T) {
	program := `
export function Overlay(input) {
	return el("box", { frame: input.frame });
}
`
	res := newTestEvaluator().Evaluate(program)
	if !res.OK() {
		t.Fatalf("unexpected evaluation error: %s", res.Err)
	}
	node := res.Frame(FrameInput{Frame: 3, DurationInFrames: 30, Width: 100, Height: 100})
	if node.Kind != "box" {
		t.Errorf("got kind %q", node.Kind)
	}
}

func TestEvaluateCompileError(t *testing.T) {
	res := newTestEvaluator().Evaluate(`export default function ( {`)
	if res.OK() {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(res.Err, "SyntaxError") {
		t.Errorf("compile error should be reported verbatim, got %q", res.Err)
	}
	if res.Frame != nil {
		t.Error("a failed result must not carry a callable")
	}
}

func TestEvaluateNoEntryPoint(t *testing.T) {
	res := newTestEvaluator().Evaluate(`var x = 1;`)
	if res.OK() {
		t.Fatal("expected a no-entry-point error")
	}
	if !strings.Contains(res.Err, "no entry point") {
		t.Errorf("got %q", res.Err)
	}
}

func TestEvaluateUnknownSymbol(t *testing.T) {
	program := `
export default function Overlay(input) {
	return el("box", {}, IconHeartz({}), BrandGithub({ size: 32 }));
}
`
	res := newTestEvaluator().Evaluate(program)
	if res.OK() {
		t.Fatal("expected a missing-dependency error")
	}
	if !strings.Contains(res.Err, "IconHeartz") {
		t.Errorf("error must name the unknown symbol, got %q", res.Err)
	}
	if strings.Contains(res.Err, "\n  BrandGithub") {
		t.Errorf("catalog member BrandGithub must not be flagged, got %q", res.Err)
	}
	if !strings.Contains(res.Err, "IconHeart") {
		t.Errorf("error should suggest close catalog matches, got %q", res.Err)
	}
}

func TestEvaluateCatalogMembersPass(t *testing.T) {
	program := `
export default function Overlay(input) {
	return el("row", {}, BrandYoutube({}), IconBell({ size: 24 }));
}
`
	res := newTestEvaluator().Evaluate(program)
	if !res.OK() {
		t.Fatalf("catalog members must never be false positives: %s", res.Err)
	}

	node := res.Frame(FrameInput{Frame: 0, DurationInFrames: 30, Width: 100, Height: 100})
	if len(node.Children) != 2 {
		t.Fatalf("expected 2 symbol children, got %d", len(node.Children))
	}
	if node.Children[0].Kind != "symbol" || node.Children[0].Props["name"] != "BrandYoutube" {
		t.Errorf("first child: %+v", node.Children[0])
	}
	if node.Children[1].Props["size"] != int64(24) && node.Children[1].Props["size"] != float64(24) {
		t.Errorf("symbol props not carried through: %+v", node.Children[1].Props)
	}
}

func TestEvaluateFrameThrowYieldsPlaceholder(t *testing.T) {
	program := `
export default function Overlay(input) {
	if (input.frame > 50) {
		throw new Error("boom past frame 50");
	}
	return el("box", {});
}
`
	res := newTestEvaluator().Evaluate(program)
	if !res.OK() {
		t.Fatalf("unexpected evaluation error: %s", res.Err)
	}

	// Static checks already ran; frames on either side of the throw behave
	// independently.
	if node := res.Frame(FrameInput{Frame: 0, DurationInFrames: 120, Width: 100, Height: 100}); node.Kind != "box" {
		t.Errorf("frame 0: got %q, want box", node.Kind)
	}
	node := res.Frame(FrameInput{Frame: 100, DurationInFrames: 120, Width: 100, Height: 100})
	if node.Kind != "placeholder" {
		t.Fatalf("frame 100: got %q, want placeholder", node.Kind)
	}
	errText, _ := node.Props["error"].(string)
	if !strings.Contains(errText, "boom") {
		t.Errorf("placeholder should carry the thrown message, got %q", errText)
	}
	// And a later good frame still renders.
	if node := res.Frame(FrameInput{Frame: 10, DurationInFrames: 120, Width: 100, Height: 100}); node.Kind != "box" {
		t.Errorf("frame 10 after a bad frame: got %q, want box", node.Kind)
	}
}

func TestEvaluateTopLevelThrow(t *testing.T) {
	res := newTestEvaluator().Evaluate(`throw new Error("bad program");`)
	if res.OK() {
		t.Fatal("expected an error")
	}
	if !strings.Contains(res.Err, "bad program") {
		t.Errorf("got %q", res.Err)
	}
}

func TestEvaluateSpringBinding(t *testing.T) {
	program := `
export default function Overlay(input) {
	const a = spring({ frame: input.frame, fps: 30 });
	const b = spring({ frame: input.frame, fps: 30 });
	return el("box", { scale: a, same: a === b });
}
`
	res := newTestEvaluator().Evaluate(program)
	if !res.OK() {
		t.Fatalf("unexpected evaluation error: %s", res.Err)
	}
	node := res.Frame(FrameInput{Frame: 20, DurationInFrames: 60, Width: 100, Height: 100})
	if node.Props["same"] != true {
		t.Error("spring must be deterministic within a frame")
	}
	scale, ok := node.Props["scale"].(float64)
	if !ok || scale <= 0 || scale > 1.5 {
		t.Errorf("implausible spring value %v", node.Props["scale"])
	}
}

func TestStripImports(t *testing.T) {
	src := `import { interpolate, spring } from "remotion";
import React from "react";
import "./styles.css";
const util = require("util");
import {
	a,
	b
} from "pkg";
var keep = 1;`

	got := stripImports(src)
	if strings.Contains(got, "import") || strings.Contains(got, "require") {
		t.Errorf("imports not fully stripped:\n%s", got)
	}
	if !strings.Contains(got, "var keep = 1;") {
		t.Errorf("non-import code must survive:\n%s", got)
	}
}

func TestReEvaluationIsPure(t *testing.T) {
	program := `export default function Overlay(input) { return el("box", { f: input.frame }); }`
	e := newTestEvaluator()

	a := e.Evaluate(program)
	b := e.Evaluate(program)
	if !a.OK() || !b.OK() {
		t.Fatalf("unexpected errors: %q / %q", a.Err, b.Err)
	}
	in := FrameInput{Frame: 7, DurationInFrames: 30, Width: 10, Height: 10}
	na, nb := a.Frame(in), b.Frame(in)
	if na.Kind != nb.Kind || na.Props["f"] != nb.Props["f"] {
		t.Errorf("structurally different results for identical text: %+v vs %+v", na, nb)
	}
}
