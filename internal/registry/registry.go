// Package registry holds the tool catalog that drives MCP registration and
// the listTools discovery output.
//
// Discovery degrades gracefully: a tool with a malformed or missing input
// schema still appears in the listing with its name and description, and an
// empty registry falls back to the built-in catalog.
package registry

import (
	"encoding/json"
	"slices"
	"strings"
	"sync"
)

// Example pairs a sample input with its expected output.
type Example struct {
	Input  json.RawMessage `json:"input,omitempty"`
	Output json.RawMessage `json:"output,omitempty"`
}

// Tool describes one registered tool.
//
// InputSchema is a JSON Schema object. OutputSchema is a flat field map
// (name -> {type, description}) describing the result envelope.
type Tool struct {
	Name         string
	Description  string
	Category     string
	InputSchema  json.RawMessage
	OutputSchema json.RawMessage
	Examples     []Example
}

// Registry is an ordered, concurrency-safe tool catalog.
type Registry struct {
	mu    sync.RWMutex
	tools []Tool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register appends a tool, replacing any existing tool of the same name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tools {
		if r.tools[i].Name == t.Name {
			r.tools[i] = t
			return
		}
	}
	r.tools = append(r.tools, t)
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// ParamSummary is the condensed per-parameter row of the summary view.
type ParamSummary struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ReturnSummary is the condensed per-field row of the summary view.
type ReturnSummary struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ToolInfo is one entry in the discovery listing.
type ToolInfo struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          string          `json:"category,omitempty"`
	Parameters        json.RawMessage `json:"parameters,omitempty"`
	Returns           json.RawMessage `json:"returns,omitempty"`
	Examples          []Example       `json:"examples,omitempty"`
	ParametersSummary []ParamSummary  `json:"parameters_summary,omitempty"`
	ReturnsSummary    []ReturnSummary `json:"returns_summary,omitempty"`
}

// Listing is the envelope returned by the listTools tool and the tools_list
// resource.
type Listing struct {
	Success    bool       `json:"success"`
	Tools      []ToolInfo `json:"tools"`
	Count      int        `json:"count"`
	Categories []string   `json:"categories"`
	Error      *string    `json:"error"`
}

// List builds the discovery listing. The detailed view carries full schemas
// and examples; the summary view carries condensed parameter/return rows.
// An empty registry serves the built-in catalog instead.
func (r *Registry) List(detailed bool) Listing {
	tools := r.Tools()
	if len(tools) == 0 {
		tools = BuiltinCatalog()
	}

	infos := make([]ToolInfo, 0, len(tools))
	var categories []string
	seen := map[string]bool{}

	for _, t := range tools {
		info := ToolInfo{
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
		}
		if info.Category == "" {
			info.Category = InferCategory(t.Name)
		}
		if info.Category != "" && !seen[info.Category] {
			seen[info.Category] = true
			categories = append(categories, info.Category)
		}

		if detailed {
			if props := schemaProperties(t.InputSchema); props != nil {
				info.Parameters = props
			}
			if len(t.OutputSchema) > 0 {
				info.Returns = t.OutputSchema
			}
			info.Examples = t.Examples
		} else {
			info.ParametersSummary = summarizeParams(t.InputSchema)
			info.ReturnsSummary = summarizeReturns(t.OutputSchema)
		}

		infos = append(infos, info)
	}

	if categories == nil {
		categories = []string{}
	}
	return Listing{
		Success:    true,
		Tools:      infos,
		Count:      len(infos),
		Categories: categories,
	}
}

// InferCategory guesses a tool's category from its name.
func InferCategory(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "encrypt"), strings.Contains(lower, "decrypt"), strings.Contains(lower, "crypto"):
		return "crypto"
	case strings.Contains(lower, "add"), strings.Contains(lower, "subtract"),
		strings.Contains(lower, "multiply"), strings.Contains(lower, "divide"),
		strings.Contains(lower, "modulo"):
		return "calculator"
	case strings.Contains(lower, "script"), strings.Contains(lower, "exec"):
		return "execution"
	case strings.Contains(lower, "list"):
		return "discovery"
	}
	return ""
}

// inputSchema is the subset of JSON Schema that discovery inspects.
type inputSchema struct {
	Properties map[string]schemaField `json:"properties"`
	Required   []string               `json:"required"`
}

type schemaField struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// schemaProperties extracts the properties object from an input schema.
// Returns nil when the schema is absent or malformed.
func schemaProperties(schema json.RawMessage) json.RawMessage {
	if len(schema) == 0 {
		return nil
	}
	var raw struct {
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(schema, &raw); err != nil {
		return nil
	}
	return raw.Properties
}

// summarizeParams condenses an input schema into per-parameter rows.
// Malformed schemas produce no rows rather than an error.
func summarizeParams(schema json.RawMessage) []ParamSummary {
	if len(schema) == 0 {
		return nil
	}
	var s inputSchema
	if err := json.Unmarshal(schema, &s); err != nil {
		return nil
	}
	required := map[string]bool{}
	for _, name := range s.Required {
		required[name] = true
	}

	// Deterministic order: required params first, then by name.
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sortParams(names, required)

	out := make([]ParamSummary, 0, len(names))
	for _, name := range names {
		f := s.Properties[name]
		typ := f.Type
		if typ == "" {
			typ = "unknown"
		}
		out = append(out, ParamSummary{
			Name:        name,
			Type:        typ,
			Description: f.Description,
			Required:    required[name],
		})
	}
	return out
}

// summarizeReturns condenses the output field map into per-field rows.
func summarizeReturns(schema json.RawMessage) []ReturnSummary {
	if len(schema) == 0 {
		return nil
	}
	var fields map[string]schemaField
	if err := json.Unmarshal(schema, &fields); err != nil {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sortParams(names, nil)

	out := make([]ReturnSummary, 0, len(names))
	for _, name := range names {
		f := fields[name]
		typ := f.Type
		if typ == "" {
			typ = "unknown"
		}
		out = append(out, ReturnSummary{Name: name, Type: typ, Description: f.Description})
	}
	return out
}

// sortParams orders parameter names required-first, then alphabetically.
func sortParams(names []string, required map[string]bool) {
	slices.SortFunc(names, func(a, b string) int {
		if required[a] != required[b] {
			if required[a] {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
}
