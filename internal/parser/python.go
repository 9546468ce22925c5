// # internal/parser/python.go
package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pypm/internal/model"
)

// visitCtx carries the lexically-enclosing state needed to classify an
// import correctly: whether the current position is inside a TYPE_CHECKING
// conditional. Passed by value through the recursion.
type visitCtx struct {
	typingOnly bool
}

// classified accumulates the three disjoint name sets a ParseResult needs.
type classified struct {
	runtime importSet
	typing  importSet
	dynamic importSet
}

func newClassified() *classified {
	return &classified{runtime: importSet{}, typing: importSet{}, dynamic: importSet{}}
}

// add records name (reduced to its top-level segment) as Runtime or Typing
// depending on ctx.
func (c *classified) add(ctx visitCtx, name string) {
	name = topLevelSegment(name)
	if name == "" {
		return
	}
	if ctx.typingOnly {
		c.typing.add(name)
	} else {
		c.runtime.add(name)
	}
}

func (c *classified) addRuntime(name string) {
	if name = topLevelSegment(name); name != "" {
		c.runtime.add(name)
	}
}

func (c *classified) addDynamic(name string) {
	if name = topLevelSegment(name); name != "" {
		c.dynamic.add(name)
	}
}

func (c *classified) result() model.ParseResult {
	return model.ParseResult{
		Runtime: c.runtime.slice(),
		Typing:  c.typing.slice(),
		Dynamic: c.dynamic.slice(),
	}
}

// importSet is a small ordered-insertion-irrelevant string set; final
// ordering is imposed downstream by the Resolver's sort.
type importSet map[string]struct{}

func (s importSet) add(name string) {
	if name != "" {
		s[name] = struct{}{}
	}
}

func (s importSet) slice() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	return out
}

func topLevelSegment(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// pythonExtractor walks a Python syntax tree and classifies every import
// construct: direct imports, from-imports (dropping leading-dot relative
// imports entirely), TYPE_CHECKING-guarded blocks, reflective import
// calls, and DSN connection-string literals.
type pythonExtractor struct{}

func (e *pythonExtractor) Extract(root *sitter.Node, source []byte) model.ParseResult {
	out := newClassified()
	e.walk(root, source, visitCtx{}, out)
	return out.result()
}

func (e *pythonExtractor) walk(node *sitter.Node, source []byte, ctx visitCtx, out *classified) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "import_statement":
		e.extractImport(node, source, ctx, out)
		return
	case "import_from_statement":
		e.extractFromImport(node, source, ctx, out)
		return
	case "if_statement":
		e.walkIf(node, source, ctx, out)
		return
	case "call":
		e.extractDynamicImport(node, source, ctx, out)
	case "string":
		e.extractDSN(node, source, out)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, ctx, out)
	}
}

func (e *pythonExtractor) extractImport(node *sitter.Node, source []byte, ctx visitCtx, out *classified) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "dotted_name", "identifier":
			out.add(ctx, e.text(child, source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				out.add(ctx, e.text(name, source))
			}
		}
	}
}

// extractFromImport contributes the top-level of the imported module for
// "from X.Y import Z" statements. A leading-dot relative import
// ("from .X import Y" or bare "from . import Y") is ignored entirely.
func (e *pythonExtractor) extractFromImport(node *sitter.Node, source []byte, ctx visitCtx, out *classified) {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return
	}
	if moduleNode.Kind() == "relative_import" {
		return
	}
	out.add(ctx, e.text(moduleNode, source))
}

// walkIf applies the TYPE_CHECKING classification rule: the consequence
// block of a conditional whose test is TYPE_CHECKING (or an attribute
// access ending in .TYPE_CHECKING) is visited with typingOnly set; elif and
// else branches are each evaluated against their own test, with the final
// else branch (untyped) carrying the original, non-typing context.
func (e *pythonExtractor) walkIf(node *sitter.Node, source []byte, ctx visitCtx, out *classified) {
	cond := node.ChildByFieldName("condition")
	consequence := node.ChildByFieldName("consequence")

	innerCtx := ctx
	if cond != nil && e.isTypeChecking(cond, source) {
		innerCtx.typingOnly = true
	}
	if consequence != nil {
		e.walk(consequence, source, innerCtx, out)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "elif_clause":
			e.walkElif(child, source, ctx, out)
		case "else_clause":
			e.walk(child, source, ctx, out)
		}
	}
}

func (e *pythonExtractor) walkElif(node *sitter.Node, source []byte, ctx visitCtx, out *classified) {
	cond := node.ChildByFieldName("condition")
	consequence := node.ChildByFieldName("consequence")
	innerCtx := ctx
	if cond != nil && e.isTypeChecking(cond, source) {
		innerCtx.typingOnly = true
	}
	if consequence != nil {
		e.walk(consequence, source, innerCtx, out)
	}
}

func (e *pythonExtractor) isTypeChecking(node *sitter.Node, source []byte) bool {
	switch node.Kind() {
	case "identifier":
		return e.text(node, source) == "TYPE_CHECKING"
	case "attribute":
		attr := node.ChildByFieldName("attribute")
		if attr == nil {
			return false
		}
		return e.text(attr, source) == "TYPE_CHECKING"
	}
	return false
}

// extractDynamicImport recognizes import_module("x"), importlib.import_module("x"),
// and __import__("x") calls whose first positional argument is a string
// literal.
func (e *pythonExtractor) extractDynamicImport(node *sitter.Node, source []byte, ctx visitCtx, out *classified) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return
	}
	name := e.text(fn, source)
	if name != "import_module" && name != "__import__" && !strings.HasSuffix(name, ".import_module") {
		return
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		arg := args.Child(i)
		if arg.Kind() == "(" || arg.Kind() == ")" {
			continue
		}
		if lit, ok := e.stringLiteral(arg, source); ok {
			out.addDynamic(lit)
		}
		break
	}
}

func (e *pythonExtractor) extractDSN(node *sitter.Node, source []byte, out *classified) {
	lit, ok := e.stringLiteral(node, source)
	if !ok {
		return
	}
	if driver, ok := dsnDriverModule(lit); ok {
		out.addRuntime(driver)
	}
}

func (e *pythonExtractor) stringLiteral(node *sitter.Node, source []byte) (string, bool) {
	if node == nil || node.Kind() != "string" {
		return "", false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "string_content" {
			return e.text(node.Child(i), source), true
		}
	}
	return unquote(e.text(node, source)), true
}

func (e *pythonExtractor) text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// unquote strips a Python string literal's prefix letters (r, b, f, u and
// combinations) and its surrounding single/double/triple quotes.
func unquote(s string) string {
	i := 0
	for i < len(s) && s[i] != '\'' && s[i] != '"' {
		i++
	}
	s = s[i:]
	for _, q := range []string{`"""`, "'''"} {
		if len(s) >= 2*len(q) && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
