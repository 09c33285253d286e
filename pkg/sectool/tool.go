package sectool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
	"github.com/kailas-cloud/sectool/internal/domain/tool"
	oaibridge "github.com/kailas-cloud/sectool/internal/transport/openai"
	"github.com/kailas-cloud/sectool/internal/transport/secapi"
	"github.com/kailas-cloud/sectool/internal/usecase/router"
)

// DefaultBaseURL is the public SEC API endpoint.
const DefaultBaseURL = "https://api.sec-api.io"

const defaultTimeout = 30 * time.Second

// Error prefixes for failures detected before the router is reached.
const (
	opFilingSearchErr  = "Error in filing search"
	opInvalidArguments = "Error invalid arguments"
)

// toolUseCase is the router (internal, swapped in tests).
type toolUseCase interface {
	Run(ctx context.Context, text string) (domain.Result, error)
	FilingSearch(ctx context.Context, p filing.Params) (domain.Result, error)
	FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error)
}

// Tool is the sec_api tool. It is safe for concurrent use when the
// underlying client is.
type Tool struct {
	svc        toolUseCase
	descriptor tool.Descriptor
	obs        *observer
}

// New creates the tool bound to apiKey. When apiKey is empty the key from
// WithDefaultAPIKey is used; if both are empty New fails with ErrConfiguration.
func New(apiKey string, opts ...Option) (*Tool, error) {
	cfg := &toolConfig{
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	cred := domain.ResolveCredential(apiKey, cfg.defaultAPIKey)
	svc, err := router.New(cred, clientFactory(cfg))
	if err != nil {
		return nil, fmt.Errorf("sectool: %w", err)
	}

	return &Tool{svc: svc, descriptor: tool.SECAPI(), obs: obs}, nil
}

func clientFactory(cfg *toolConfig) router.ClientFactory {
	return func(cred domain.Credential) (router.Client, error) {
		if cfg.client != nil {
			return &clientAdapter{inner: cfg.client}, nil
		}
		c, err := secapi.NewClient(&secapi.Config{
			Credential: cred,
			BaseURL:    cfg.baseURL,
			Timeout:    cfg.timeout,
			HTTPClient: cfg.httpClient,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Name returns "sec_api".
func (t *Tool) Name() string { return t.descriptor.Name }

// Description tells the model when to use the tool.
func (t *Tool) Description() string { return t.descriptor.Description }

// InputSchema returns the JSON schema of the argument object.
func (t *Tool) InputSchema() json.RawMessage {
	return tool.SECAPI().InputSchema
}

// OpenAITool returns the tool as an OpenAI function definition.
func (t *Tool) OpenAITool() openai.Tool {
	return oaibridge.Definition(t.descriptor)
}

// HandleToolCall executes an OpenAI tool call and returns the tool-role
// reply. Failures become the reply content so the model can retry.
func (t *Tool) HandleToolCall(ctx context.Context, call openai.ToolCall) openai.ChatCompletionMessage {
	return oaibridge.NewDispatcher(t.descriptor, observedRunner{t: t}).Handle(ctx, call)
}

// observedRunner routes dispatcher calls through Run so they are observed.
type observedRunner struct {
	t *Tool
}

func (r observedRunner) Run(ctx context.Context, text string) (domain.Result, error) {
	res, err := r.t.Run(ctx, text)
	if err != nil {
		return nil, err
	}
	return domain.Result(res), nil
}

// Run routes query to a filing lookup or a full-text search, limit 5.
// Errors match ErrToolInvocation.
func (t *Tool) Run(ctx context.Context, query string) (res Result, err error) {
	start := time.Now()
	defer func() { t.obs.observe(opRun, start, err) }()

	r, err := t.svc.Run(ctx, query)
	if err != nil {
		return nil, err
	}
	return Result(r), nil
}

// Invoke runs the tool with decoded JSON arguments. Only "query" is read.
func (t *Tool) Invoke(ctx context.Context, args map[string]any) (Result, error) {
	var query string
	if v, ok := args["query"]; ok && v != nil {
		s, isString := v.(string)
		if !isString {
			err := domain.ToolError(domain.KindInvalidInput, opInvalidArguments,
				fmt.Errorf("query must be a string, got %T: %w", v, domain.ErrInvalidInput))
			t.obs.observe(opRun, time.Now(), err)
			return nil, err
		}
		query = s
	}
	return t.Run(ctx, query)
}

// FilingSearch lists filings with explicit parameters. An empty ticker is
// rejected before any request; a non-positive limit keeps DefaultLimit.
// Errors match ErrValue.
func (t *Tool) FilingSearch(ctx context.Context, q FilingQuery) (res Result, err error) {
	start := time.Now()
	defer func() { t.obs.observe(opFilingSearch, start, err) }()

	p, err := filing.New(q.Ticker,
		filing.WithFormType(q.FormType),
		filing.WithDateRange(q.DateFrom, q.DateTo),
		filing.WithLimit(q.Limit),
	)
	if err != nil {
		return nil, domain.ValueError(domain.KindInvalidInput, opFilingSearchErr, err)
	}

	r, err := t.svc.FilingSearch(ctx, p)
	if err != nil {
		return nil, err
	}
	return Result(r), nil
}

// FullTextSearch searches filing text with explicit parameters. Errors match ErrValue.
func (t *Tool) FullTextSearch(ctx context.Context, q FullTextQuery) (res Result, err error) {
	start := time.Now()
	defer func() { t.obs.observe(opFullTextSearch, start, err) }()

	p := fulltext.New(q.Query,
		fulltext.WithFormTypes(q.FormTypes...),
		fulltext.WithDateRange(q.DateFrom, q.DateTo),
		fulltext.WithLimit(q.Limit),
	)
	r, err := t.svc.FullTextSearch(ctx, p)
	if err != nil {
		return nil, err
	}
	return Result(r), nil
}

// clientAdapter wraps a public APIClient as router.Client.
type clientAdapter struct {
	inner APIClient
}

func (a *clientAdapter) GetFilings(ctx context.Context, p filing.Params) (domain.Result, error) {
	res, err := a.inner.GetFilings(ctx, FilingQuery{
		Ticker:   p.Ticker(),
		FormType: p.FormType(),
		DateFrom: p.DateFrom(),
		DateTo:   p.DateTo(),
		Limit:    p.Limit(),
	})
	if err != nil {
		return nil, err
	}
	return domain.Result(res), nil
}

func (a *clientAdapter) FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error) {
	res, err := a.inner.FullTextSearch(ctx, FullTextQuery{
		Query:     p.Query(),
		FormTypes: p.FormTypes(),
		DateFrom:  p.DateFrom(),
		DateTo:    p.DateTo(),
		Limit:     p.Limit(),
	})
	if err != nil {
		return nil, err
	}
	return domain.Result(res), nil
}
