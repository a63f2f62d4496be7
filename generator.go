package coverletter

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-coverletter/internal/cloudconvert"
	"github.com/alnah/go-coverletter/internal/docx"
	"github.com/alnah/go-coverletter/internal/fileutil"
)

// Converter turns DOCX bytes into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, docx []byte) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Converter = (*cloudconvert.Client)(nil)

// Generator orchestrates the template-to-letter pipeline.
// Create with New, then call Generate per request. Safe for concurrent
// use: configuration is read-only after New and every generation owns
// its document.
type Generator struct {
	cfg       generatorConfig
	converter Converter
}

// New creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithAPIKey, WithPollTimeout).
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{now: time.Now},
	}

	for _, opt := range opts {
		opt(g)
	}

	// Create the CloudConvert converter if not injected (e.g., by tests)
	// and a credential is available. Without either, DOCX output still
	// works; only the PDF path is closed off.
	if g.converter == nil && g.cfg.apiKey != "" {
		client, err := cloudconvert.New(g.cfg.apiKey, g.cfg.convertOpts...)
		if err != nil {
			return nil, fmt.Errorf("creating conversion client: %w", err)
		}
		g.converter = client
	}

	return g, nil
}

// Generate runs the full pipeline and returns the generated letter.
// The context is used for cancellation and timeout of the conversion
// wait; DOCX-only generation completes without I/O.
func (g *Generator) Generate(ctx context.Context, input Input) (*Result, error) {
	format, err := g.validateInput(input)
	if err != nil {
		return nil, err
	}

	// Resolve the letter date before deriving the placeholder map.
	info := input.Client
	info.Date, err = ResolveDate(info.Date, g.cfg.now())
	if err != nil {
		return nil, fmt.Errorf("resolving date: %w", err)
	}

	doc, err := docx.Parse(input.Template)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	doc.ReplaceWith(Placeholders(info), docx.ReplaceOptions{MergeRuns: input.MergeRuns})

	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}

	if format == FormatPDF {
		data, err = g.converter.Convert(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("converting to PDF: %w", err)
		}
	}

	return &Result{
		Data:     data,
		Filename: OutputFileName(input.Client, format),
	}, nil
}

// validateInput checks preconditions and returns the normalized output
// format. Missing fields are reported as validation sentinels, never
// as internal defects.
func (g *Generator) validateInput(input Input) (string, error) {
	if len(input.Template) == 0 {
		return "", ErrMissingTemplate
	}
	if err := input.Client.Validate(); err != nil {
		return "", err
	}

	format := input.Format
	switch format {
	case "":
		format = FormatDocx
	case FormatDocx, FormatPDF:
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, input.Format)
	}

	if format == FormatPDF && g.converter == nil {
		return "", ErrNoConverter
	}
	return format, nil
}

// OutputFileName derives the suggested output name from the client
// name and company, e.g. "Jane_Doe_Acme_cover_letter.pdf".
func OutputFileName(info ClientInfo, format string) string {
	if format == "" {
		format = FormatDocx
	}
	name := fileutil.SanitizeName(info.Name)
	company := fileutil.SanitizeName(info.Company)
	return fmt.Sprintf("%s_%s_cover_letter.%s", name, company, format)
}
