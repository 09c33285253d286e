// Package tool describes the sec_api tool to agent frameworks.
package tool

import "encoding/json"

// Name is the identifier agents use to call the tool.
const Name = "sec_api"

// Description tells the model when to pick this tool.
const Description = "Use this tool to search SEC filings. " +
	"For company filings, provide a ticker symbol like 'TSLA' or 'AAPL'. " +
	"For text search, provide keywords like 'artificial intelligence'. " +
	"You can optionally specify form types (10-K, 10-Q, 8-K) and date ranges."

// Descriptor is the LLM-facing definition of a tool.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// Input is the argument object accepted by the routed entry point.
// Unknown keys are ignored when decoding.
type Input struct {
	Query string `json:"query"`
}

var inputSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "The search query or ticker symbol"
    }
  },
  "required": ["query"]
}`)

// SECAPI returns the descriptor of the sec_api tool.
func SECAPI() Descriptor {
	schema := make(json.RawMessage, len(inputSchema))
	copy(schema, inputSchema)
	return Descriptor{
		Name:        Name,
		Description: Description,
		InputSchema: schema,
	}
}
