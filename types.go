package coverletter

import (
	"time"

	"github.com/alnah/go-coverletter/internal/cloudconvert"
)

// Output format constants.
const (
	FormatDocx = "docx"
	FormatPDF  = "pdf"
)

// ClientInfo holds the details substituted into a template. Supplied
// per generation request and never persisted.
type ClientInfo struct {
	Name     string // recipient name (required)
	Company  string // company name (required)
	Address1 string // first address line (required)
	Address2 string // second address line (optional)
	Date     string // letter date; empty or "auto" resolves to today
}

// Validate checks that the required client fields are present.
func (c ClientInfo) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.Company == "" {
		return ErrMissingCompany
	}
	if c.Address1 == "" {
		return ErrMissingAddress
	}
	return nil
}

// Input contains generation parameters.
type Input struct {
	Template []byte     // DOCX template bytes (required)
	Client   ClientInfo // client details (required fields validated)
	Format   string     // FormatDocx or FormatPDF (empty = docx)

	// MergeRuns additionally matches tokens split across adjacent
	// formatting runs of one paragraph. Off by default: the default
	// pass replaces only tokens intact within a single run.
	MergeRuns bool
}

// Result is the outcome of a successful generation: the full output
// bytes and a filesystem-safe suggested filename. On failure no bytes
// are returned at all.
type Result struct {
	Data     []byte
	Filename string
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	apiKey      string
	convertOpts []cloudconvert.Option
	now         func() time.Time
}

// WithAPIKey sets the CloudConvert credential used to build the
// default PDF converter. Without it (or an injected converter via
// WithConverter), only DOCX output is available.
func WithAPIKey(key string) Option {
	return func(g *Generator) {
		g.cfg.apiKey = key
	}
}

// WithConverter injects a DOCX-to-PDF converter, replacing the default
// CloudConvert client (used by tests).
func WithConverter(c Converter) Option {
	return func(g *Generator) {
		g.converter = c
	}
}

// WithPollInterval sets the delay between conversion job status checks.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithPollInterval(d time.Duration) Option {
	if d <= 0 {
		panic("coverletter: WithPollInterval duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.convertOpts = append(g.cfg.convertOpts, cloudconvert.WithPollInterval(d))
	}
}

// WithPollTimeout bounds the total time spent waiting for a conversion
// job. Zero disables the bound and restores the original unbounded
// wait.
func WithPollTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.cfg.convertOpts = append(g.cfg.convertOpts, cloudconvert.WithPollTimeout(d))
	}
}

// WithConversionEndpoint overrides the conversion API base URL (used
// by tests against a stub server).
func WithConversionEndpoint(url string) Option {
	return func(g *Generator) {
		g.cfg.convertOpts = append(g.cfg.convertOpts, cloudconvert.WithBaseURL(url))
	}
}

// WithClock injects the time source used to resolve automatic dates.
// Defaults to time.Now; tests pass a fixed clock.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.cfg.now = now
	}
}
