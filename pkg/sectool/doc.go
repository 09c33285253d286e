// Package sectool exposes the sec_api tool to Go agent frameworks.
//
// The tool takes one free-text query. A query made only of uppercase
// letters A-Z and at most five characters long is treated as a ticker and
// answered with a filing lookup; anything else becomes a full-text search.
// Both routed calls return at most five results.
//
//	t, err := sectool.New(os.Getenv("SEC_API_KEY"))
//	if err != nil { ... }
//	res, err := t.Run(ctx, "TSLA")                    // filings for Tesla
//	res, err = t.Run(ctx, "artificial intelligence")  // full-text search
//
// Callers that need explicit parameters bypass routing:
//
//	res, err := t.FilingSearch(ctx, sectool.FilingQuery{Ticker: "AAPL", FormType: "10-K"})
//
// # Agent frameworks
//
// Name, Description and InputSchema describe the tool; Invoke accepts the
// decoded argument object. OpenAITool returns the function definition for
// github.com/sashabaranov/go-openai.
//
// # Errors
//
// Routed failures match ErrToolInvocation, explicit ones match ErrValue.
// The cause kind is one of ErrConfiguration, ErrInvalidInput, ErrUpstream.
package sectool
