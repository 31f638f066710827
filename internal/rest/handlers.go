package rest

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/calc"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/codec"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/params"
)

// cryptoEnvelope mirrors the MCP tool envelope for the crypto routes.
type cryptoEnvelope struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
	Result  *string `json:"result"`
}

func cryptoOK(result string) cryptoEnvelope {
	return cryptoEnvelope{Success: true, Result: &result}
}

func cryptoFail(msg string) cryptoEnvelope {
	return cryptoEnvelope{Error: &msg}
}

// scriptEnvelope mirrors the MCP executeScript envelope.
type scriptEnvelope struct {
	Success bool           `json:"success"`
	Result  map[string]any `json:"result"`
	Error   *string        `json:"error"`
}

// parseBody decodes a JSON object body. An empty body yields an empty map.
func parseBody(c *fiber.Ctx) (map[string]any, error) {
	body := c.Body()
	if len(body) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

func (s *Server) handleEncrypt(c *fiber.Ctx) error {
	args, err := parseBody(c)
	if err != nil {
		return badRequest(c, "invalid JSON body")
	}
	text, ok := params.Text(args, "text")
	if !ok || text == "" {
		return c.JSON(cryptoFail("Input text cannot be empty"))
	}
	return c.JSON(cryptoOK(codec.Encode(text)))
}

func (s *Server) handleDecrypt(c *fiber.Ctx) error {
	args, err := parseBody(c)
	if err != nil {
		return badRequest(c, "invalid JSON body")
	}
	text, ok := params.Text(args, "encoded_text")
	if !ok || text == "" {
		return c.JSON(cryptoFail("Input encoded text cannot be empty"))
	}
	decoded, err := codec.Decode(text)
	if err != nil {
		return c.JSON(cryptoFail("Invalid base64 format"))
	}
	return c.JSON(cryptoOK(decoded))
}

var calcOps = map[string]func(a, b float64) calc.Result{
	"add":      calc.Add,
	"subtract": calc.Subtract,
	"multiply": calc.Multiply,
	"divide":   calc.Divide,
	"modulo":   calc.Modulo,
}

// calcHandler builds the route handler for one arithmetic operation. The
// body may be {a, b}, {"params": {a, b}}, {"params": [a, b]}, or a bare
// two-element array.
func (s *Server) calcHandler(op string) fiber.Handler {
	fn := calcOps[op]
	return func(c *fiber.Ctx) error {
		var a, b float64

		body := c.Body()
		var arr []any
		if err := json.Unmarshal(body, &arr); err == nil {
			var perr error
			if a, b, perr = params.PairFromArray(arr); perr != nil {
				msg := perr.Error()
				return c.JSON(calc.Result{Operation: op, Error: &msg})
			}
			return c.JSON(fn(a, b))
		}

		args, err := parseBody(c)
		if err != nil {
			return badRequest(c, "invalid JSON body")
		}
		a, b, err = params.Pair(args)
		if err != nil {
			msg := err.Error()
			return c.JSON(calc.Result{Operation: op, Error: &msg})
		}
		return c.JSON(fn(a, b))
	}
}

func (s *Server) handleExecuteScript(c *fiber.Ctx) error {
	args, err := parseBody(c)
	if err != nil {
		return badRequest(c, "invalid JSON body")
	}
	src, _ := args["script"].(string)
	if src == "" {
		msg := "Script cannot be empty"
		return c.JSON(scriptEnvelope{Error: &msg})
	}
	if s.exec == nil {
		msg := "Script execution is disabled"
		return c.JSON(scriptEnvelope{Error: &msg})
	}
	out, err := s.exec.Run(c.UserContext(), src)
	if err != nil {
		msg := err.Error()
		return c.JSON(scriptEnvelope{Error: &msg})
	}
	return c.JSON(scriptEnvelope{Success: true, Result: out})
}
