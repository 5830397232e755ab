package scanlib

import (
	"context"
	"io"

	"github.com/rezonia/invoice-scanner/internal/llm"
	"github.com/rezonia/invoice-scanner/internal/model"
	"github.com/rezonia/invoice-scanner/internal/parser/text"
	"github.com/rezonia/invoice-scanner/internal/processor"
)

// Options configures a Processor.
type Options struct {
	// Parser tunes the heuristic engine.
	Parser ParserConfig

	// LLM fallback configuration. The fallback only runs when EnableLLM
	// is set, an API key is present, and the deterministic engine found
	// zero invoices.
	EnableLLM  bool
	LLMAPIKey  string // env: LLM_API_KEY
	LLMBaseURL string // env: LLM_BASE_URL
	LLMModel   string // env: LLM_MODEL
}

// DefaultOptions returns default processor options.
func DefaultOptions() Options {
	return Options{
		Parser: DefaultParserConfig(),
	}
}

// Processor is the public parsing facade.
type Processor struct {
	pipeline *processor.Pipeline
}

// NewProcessor creates a processor with the given options.
func NewProcessor(opts Options) *Processor {
	parser := text.New(text.WithConfig(opts.Parser))

	var llmExtractor *llm.Extractor
	if opts.EnableLLM && opts.LLMAPIKey != "" {
		var clientOpts []llm.ClientOption
		if opts.LLMBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(opts.LLMBaseURL))
		}
		client := llm.NewClient(opts.LLMAPIKey, clientOpts...)

		extractorOpts := []llm.ExtractorOption{
			llm.WithExpectedStore(opts.Parser.ExpectedStore),
		}
		if opts.LLMModel != "" {
			extractorOpts = append(extractorOpts, llm.WithTextModel(opts.LLMModel))
		}
		llmExtractor = llm.NewExtractor(client, extractorOpts...)
	}

	return &Processor{
		pipeline: processor.NewPipeline(
			processor.WithParser(parser),
			processor.WithLLMExtractor(llmExtractor),
		),
	}
}

// NewDefaultProcessor creates a processor with default options.
func NewDefaultProcessor() *Processor {
	return NewProcessor(DefaultOptions())
}

// ParseText parses raw extracted text.
func (p *Processor) ParseText(ctx context.Context, input string) *ParseResult {
	return p.pipeline.ParseText(ctx, input)
}

// Parse reads the input, detects its format, and parses it.
func (p *Processor) Parse(ctx context.Context, r io.Reader) *ParseResult {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Failure("failed to read input: " + err.Error())
	}
	return p.pipeline.ParseBytes(ctx, data)
}

// ParseFile parses the file at path.
func (p *Processor) ParseFile(ctx context.Context, path string) *ParseResult {
	return p.pipeline.ParseFile(ctx, path)
}

// ParseBatch parses multiple inputs concurrently. Parse calls share no
// mutable state, so no locking is needed; results are returned in input
// order.
func (p *Processor) ParseBatch(ctx context.Context, inputs []io.Reader) []*ParseResult {
	results := make([]*ParseResult, len(inputs))
	done := make(chan struct{}, len(inputs))

	for i, input := range inputs {
		go func(idx int, r io.Reader) {
			results[idx] = p.Parse(ctx, r)
			done <- struct{}{}
		}(i, input)
	}

	for range inputs {
		<-done
	}
	return results
}
