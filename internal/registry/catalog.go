package registry

import "encoding/json"

// calculator schemas are shared by all five arithmetic tools.
var calcInputSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"a": {
			"type": "number",
			"description": "The first operand. Can be integer or decimal, or a two-element array form [a, b]."
		},
		"b": {
			"type": "number",
			"description": "The second operand. Can be integer or decimal."
		}
	},
	"required": ["a", "b"]
}`)

func calcOutputSchema(desc string) json.RawMessage {
	return json.RawMessage(`{
		"success": {"type": "boolean", "description": "Whether operation succeeded"},
		"operation": {"type": "string", "description": "Operation performed"},
		"a": {"type": "number", "description": "First operand"},
		"b": {"type": "number", "description": "Second operand"},
		"result": {"type": "number", "description": "` + desc + `"},
		"error": {"type": "string", "description": "Error message if failed"}
	}`)
}

func calcExample(a, b, result string, op string) Example {
	return Example{
		Input:  json.RawMessage(`{"a": ` + a + `, "b": ` + b + `}`),
		Output: json.RawMessage(`{"success": true, "operation": "` + op + `", "a": ` + a + `, "b": ` + b + `, "result": ` + result + `, "error": null}`),
	}
}

// BuiltinCatalog returns the full static tool catalog. It seeds the live
// registry at startup and serves as the discovery fallback when the registry
// is empty.
func BuiltinCatalog() []Tool {
	return []Tool{
		{
			Name:        "encrypt",
			Description: "Encode text to base64 format. Accepts either a plain string or an object with 'text' property. Returns success status and the encoded result.",
			Category:    "crypto",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"text": {
						"type": "string",
						"description": "The plain text string to encode to base64. Can contain any Unicode characters."
					}
				},
				"required": ["text"]
			}`),
			OutputSchema: json.RawMessage(`{
				"success": {"type": "boolean", "description": "Whether operation succeeded"},
				"result": {"type": "string", "description": "Base64 encoded result"},
				"error": {"type": "string", "description": "Error message if failed"}
			}`),
			Examples: []Example{{
				Input:  json.RawMessage(`{"text": "Hello, World!"}`),
				Output: json.RawMessage(`{"success": true, "result": "SGVsbG8sIFdvcmxkIQ==", "error": null}`),
			}},
		},
		{
			Name:        "decrypt",
			Description: "Decode base64 string back to original text. Accepts either a plain base64 string or an object with 'encoded_text' property. Returns success status and the decoded result.",
			Category:    "crypto",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"encoded_text": {
						"type": "string",
						"description": "The base64 encoded string to decode back to original text. Must be valid base64 format."
					}
				},
				"required": ["encoded_text"]
			}`),
			OutputSchema: json.RawMessage(`{
				"success": {"type": "boolean", "description": "Whether operation succeeded"},
				"result": {"type": "string", "description": "Decoded original text"},
				"error": {"type": "string", "description": "Error message if failed"}
			}`),
			Examples: []Example{{
				Input:  json.RawMessage(`{"encoded_text": "SGVsbG8sIFdvcmxkIQ=="}`),
				Output: json.RawMessage(`{"success": true, "result": "Hello, World!", "error": null}`),
			}},
		},
		{
			Name:         "add",
			Description:  "Add two numbers together. Accepts object {a: number, b: number}. Returns operation details and sum result.",
			Category:     "calculator",
			InputSchema:  calcInputSchema,
			OutputSchema: calcOutputSchema("Addition result"),
			Examples:     []Example{calcExample("10", "5", "15", "add")},
		},
		{
			Name:         "subtract",
			Description:  "Subtract second number from first number. Accepts object {a: minuend, b: subtrahend}. Returns operation details and difference result.",
			Category:     "calculator",
			InputSchema:  calcInputSchema,
			OutputSchema: calcOutputSchema("Subtraction result"),
			Examples:     []Example{calcExample("10", "5", "5", "subtract")},
		},
		{
			Name:         "multiply",
			Description:  "Multiply two numbers together. Accepts object {a: number, b: number}. Returns operation details and product result.",
			Category:     "calculator",
			InputSchema:  calcInputSchema,
			OutputSchema: calcOutputSchema("Multiplication result"),
			Examples:     []Example{calcExample("10", "5", "50", "multiply")},
		},
		{
			Name:         "divide",
			Description:  "Divide first number by second number. Accepts object {a: dividend, b: divisor}. Includes division by zero protection. Returns operation details and quotient result.",
			Category:     "calculator",
			InputSchema:  calcInputSchema,
			OutputSchema: calcOutputSchema("Division result"),
			Examples:     []Example{calcExample("10", "5", "2", "divide")},
		},
		{
			Name:         "modulo",
			Description:  "Calculate remainder of first number divided by second number. Accepts object {a: dividend, b: divisor}. Includes modulo by zero protection. Returns operation details and remainder result.",
			Category:     "calculator",
			InputSchema:  calcInputSchema,
			OutputSchema: calcOutputSchema("Modulo result"),
			Examples:     []Example{calcExample("10", "3", "1", "modulo")},
		},
		{
			Name:        "executeScript",
			Description: "Execute a JavaScript snippet in a sandboxed interpreter. Module imports are restricted to an allow-list and execution is time-limited. Returns the script's 'result' variable, or all JSON-serializable top-level bindings.",
			Category:    "execution",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"script": {
						"type": "string",
						"description": "The script source to execute. Assign to 'result' to control the returned value."
					}
				},
				"required": ["script"]
			}`),
			OutputSchema: json.RawMessage(`{
				"success": {"type": "boolean", "description": "Whether execution succeeded"},
				"result": {"type": "object", "description": "Captured script bindings"},
				"error": {"type": "string", "description": "Error message if failed"}
			}`),
			Examples: []Example{{
				Input:  json.RawMessage(`{"script": "var result = 6 * 7;"}`),
				Output: json.RawMessage(`{"success": true, "result": {"result": 42}, "error": null}`),
			}},
		},
		{
			Name:        "listTools",
			Description: "Get a list of all available tools with their input/output schemas and descriptions.",
			Category:    "discovery",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"detailed": {
						"type": "boolean",
						"description": "Whether to include full schema details and examples in the response (default true)."
					}
				}
			}`),
			OutputSchema: json.RawMessage(`{
				"success": {"type": "boolean", "description": "Whether operation succeeded"},
				"tools": {"type": "array", "description": "Tool information with schemas and descriptions"},
				"count": {"type": "integer", "description": "Total number of available tools"},
				"categories": {"type": "array", "description": "Categories of available tools"},
				"error": {"type": "string", "description": "Error message if failed"}
			}`),
		},
	}
}
