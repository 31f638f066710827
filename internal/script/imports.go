package script

import (
	"fmt"
	"regexp"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// ValidateImports rejects scripts that import or require a module whose root
// is not on the allow-list. The script is parsed with tree-sitter; when the
// parse fails the validator falls back to a line scan.
func (e *Executor) ValidateImports(src string) error {
	modules, ok := parseImports([]byte(src))
	if !ok {
		modules = scanImports(src)
	}
	for _, m := range modules {
		root := moduleRoot(m)
		if _, allowed := e.allowed[root]; !allowed {
			return fmt.Errorf("import of module %q is not allowed", root)
		}
	}
	return nil
}

// moduleRoot reduces a module path to its allow-list key:
// "fs/promises" -> "fs", "./utils/x" -> "utils/x" stays relative-rooted.
func moduleRoot(path string) string {
	path = strings.TrimPrefix(path, "./")
	if i := strings.IndexByte(path, '/'); i > 0 {
		return path[:i]
	}
	return path
}

// parseImports extracts import/require module paths from a JavaScript AST.
// The second return is false when the source could not be parsed at all.
func parseImports(src []byte) ([]string, bool) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	lang := tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return nil, false
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, false
	}
	defer tree.Close()

	var modules []string
	walk(tree.RootNode(), func(node *tree_sitter.Node) bool {
		switch node.Kind() {
		case "import_statement":
			if source := node.ChildByFieldName("source"); source != nil {
				modules = append(modules, stripQuotes(nodeText(source, src)))
			}
			return false
		case "call_expression":
			fn := node.ChildByFieldName("function")
			if fn == nil || nodeText(fn, src) != "require" {
				return true
			}
			args := node.ChildByFieldName("arguments")
			if args == nil {
				return true
			}
			for i := uint(0); i < args.NamedChildCount(); i++ {
				arg := args.NamedChild(i)
				if arg != nil && arg.Kind() == "string" {
					modules = append(modules, stripQuotes(nodeText(arg, src)))
					break
				}
			}
		}
		return true
	})
	return modules, true
}

// walk traverses the AST depth-first. Return false from fn to skip children.
func walk(node *tree_sitter.Node, fn func(*tree_sitter.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			walk(child, fn)
		}
	}
}

func nodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

func stripQuotes(s string) string {
	return strings.Trim(s, `"'`+"`")
}

var requireLineRe = regexp.MustCompile(`require\s*\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]\s*\)`)

// scanImports is the line-scan fallback used when parsing fails.
func scanImports(src string) []string {
	var modules []string
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "import\"") || strings.HasPrefix(line, "import'") {
			if m := importedModule(line); m != "" {
				modules = append(modules, m)
			}
		}
		for _, m := range requireLineRe.FindAllStringSubmatch(line, -1) {
			modules = append(modules, m[1])
		}
	}
	return modules
}

// importedModule pulls the module path out of an import line:
// `import x from "mod"`, `import "mod"`, `import {a} from 'mod'`.
func importedModule(line string) string {
	if i := strings.Index(line, " from "); i >= 0 {
		return stripQuotes(strings.TrimSuffix(strings.TrimSpace(line[i+len(" from "):]), ";"))
	}
	rest := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(line, "import")), ";")
	if len(rest) > 0 && (rest[0] == '"' || rest[0] == '\'' || rest[0] == '`') {
		return stripQuotes(rest)
	}
	return ""
}
