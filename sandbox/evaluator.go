// Package sandbox compiles and executes generated overlay programs inside an
// embedded JavaScript engine. Programs arrive as untrusted text from the
// generation pipeline; every dependency they may touch is supplied by the
// sandbox itself through a fixed allow-list of host bindings, so a program
// can compute render trees but cannot reach the process, filesystem, or
// network.
package sandbox

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dop251/goja"

	"mogen/symbols"
)

// entryName is the fixed internal name the program's export is normalized to.
const entryName = "__mogen_export"

// Result is the outcome of evaluating a program: a per-frame callable or a
// descriptive error, never both.
type Result struct {
	Frame func(FrameInput) *Node
	Err   string
}

// OK reports whether evaluation produced a callable.
func (r *Result) OK() bool {
	return r.Err == ""
}

// Evaluator turns program text into per-frame render callables.
type Evaluator struct {
	index *symbols.Index
}

// NewEvaluator creates an evaluator that validates symbol references against
// the given catalog index.
func NewEvaluator(index *symbols.Index) *Evaluator {
	return &Evaluator{index: index}
}

var (
	importFromRe   = regexp.MustCompile(`(?m)^[ \t]*import\s+[^;]*?from\s*['"][^'"]*['"]\s*;?[ \t]*$`)
	importBareRe   = regexp.MustCompile(`(?m)^[ \t]*import\s*['"][^'"]*['"]\s*;?[ \t]*$`)
	requireRe      = regexp.MustCompile(`(?m)^[ \t]*(?:const|let|var)\s+[^=]+=\s*require\s*\([^)]*\)\s*;?[ \t]*$`)
	exportDefault  = regexp.MustCompile(`\bexport\s+default\s+`)
	exportNamedRe  = regexp.MustCompile(`(?m)^([ \t]*)export\s+(function|const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	symbolRefRe    = regexp.MustCompile(`\b(?:Brand|Icon)[A-Z][A-Za-z0-9]*\b`)
)

// Evaluate runs the full gate sequence on programText. Each gate is hard: a
// failure stops the pipeline and reports without executing anything further.
func (e *Evaluator) Evaluate(programText string) *Result {
	src := stripImports(programText)
	src = normalizeExport(src)

	prog, err := goja.Compile("overlay.js", src, false)
	if err != nil {
		return &Result{Err: err.Error()}
	}

	// Static symbol check runs before execution so a bad reference surfaces
	// as an actionable message instead of an undefined-call throw mid-run.
	if missing := e.unknownSymbols(src); len(missing) > 0 {
		return &Result{Err: e.missingSymbolMessage(missing)}
	}

	vm := goja.New()
	e.installEnv(vm)

	if _, err := vm.RunProgram(prog); err != nil {
		return &Result{Err: fmt.Sprintf("program threw during evaluation: %s", err.Error())}
	}

	entry, ok := goja.AssertFunction(vm.Get(entryName))
	if !ok {
		return &Result{Err: "no entry point: the program must export a default render function"}
	}

	frame := func(in FrameInput) (node *Node) {
		// A bad frame renders a placeholder; it never crashes the player.
		defer func() {
			if r := recover(); r != nil {
				node = Placeholder(fmt.Sprintf("%v", r))
			}
		}()

		arg := vm.ToValue(map[string]any{
			"frame":            in.Frame,
			"durationInFrames": in.DurationInFrames,
			"width":            in.Width,
			"height":           in.Height,
		})
		v, err := entry(goja.Undefined(), arg)
		if err != nil {
			return Placeholder(err.Error())
		}
		n := decodeNode(v.Export())
		if n == nil {
			return Placeholder("program returned no renderable node")
		}
		return n
	}

	return &Result{Frame: frame}
}

// stripImports removes import and require statements. The sandbox supplies
// every dependency itself, so imports are dead weight at best and an escape
// hatch at worst.
func stripImports(src string) string {
	src = importFromRe.ReplaceAllString(src, "")
	src = importBareRe.ReplaceAllString(src, "")
	src = requireRe.ReplaceAllString(src, "")
	return src
}

// normalizeExport rewrites the program's single export to assign the render
// function to the fixed internal entry name.
func normalizeExport(src string) string {
	if exportDefault.MatchString(src) {
		return exportDefault.ReplaceAllString(src, entryName+" = ")
	}
	if m := exportNamedRe.FindStringSubmatch(src); m != nil {
		src = exportNamedRe.ReplaceAllString(src, "$1$2 $3")
		return src + "\n;" + entryName + " = " + m[3] + ";\n"
	}
	return src
}

// unknownSymbols returns every brand/icon-patterned identifier in src that is
// not a catalog member, sorted and de-duplicated. Catalog members never
// appear in the result.
func (e *Evaluator) unknownSymbols(src string) []string {
	seen := map[string]bool{}
	var missing []string
	for _, ref := range symbolRefRe.FindAllString(src, -1) {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		if !e.index.Has(ref) {
			missing = append(missing, ref)
		}
	}
	sort.Strings(missing)
	return missing
}

func (e *Evaluator) missingSymbolMessage(missing []string) string {
	var b strings.Builder
	b.WriteString("unknown symbols referenced by the program:")
	for _, name := range missing {
		fmt.Fprintf(&b, "\n  %s", name)
		if alts := e.index.Suggest(name, 3); len(alts) > 0 {
			fmt.Fprintf(&b, " (closest catalog matches: %s)", strings.Join(alts, ", "))
		}
	}
	b.WriteString("\nOnly symbols from the fixed catalog are available.")
	return b.String()
}
