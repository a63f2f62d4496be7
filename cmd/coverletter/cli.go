package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	coverletter "github.com/alnah/go-coverletter"
	"github.com/alnah/go-coverletter/internal/assets"
	"github.com/alnah/go-coverletter/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidArgs      = errors.New("usage: coverletter [flags] <template.docx> | coverletter init <output.docx>")
	ErrInvalidExtension = errors.New("template must have a .docx extension")
	ErrReadTemplate     = errors.New("failed to read template file")
	ErrWriteOutput      = errors.New("failed to write output file")
)

// generator is the part of the library surface the CLI needs.
type generator interface {
	Generate(ctx context.Context, input coverletter.Input) (*coverletter.Result, error)
}

// generatorFactory builds a generator from resolved options.
type generatorFactory func(opts ...coverletter.Option) (generator, error)

// cliOptions holds parsed command-line values.
type cliOptions struct {
	configPath string
	name       string
	company    string
	address1   string
	address2   string
	date       string
	format     string
	output     string
	apiKey     string
	mergeRuns  bool
	pollEvery  time.Duration
	pollLimit  time.Duration

	showVersion bool
	showHelp    bool
	args        []string
}

// parseFlags parses command-line arguments into cliOptions.
func parseFlags(args []string) (*cliOptions, error) {
	opts := &cliOptions{}

	fs := flag.NewFlagSet("coverletter", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&opts.configPath, "config", "c", "", "config file name or path")
	fs.StringVar(&opts.name, "name", "", "client name")
	fs.StringVar(&opts.company, "company", "", "company name")
	fs.StringVar(&opts.address1, "address1", "", "address line 1")
	fs.StringVar(&opts.address2, "address2", "", "address line 2 (optional)")
	fs.StringVar(&opts.date, "date", "", `letter date: literal, "auto", or "auto:FORMAT"`)
	fs.StringVarP(&opts.format, "format", "f", "", "output format: docx or pdf")
	fs.StringVarP(&opts.output, "output", "o", "", "output file or directory")
	fs.StringVar(&opts.apiKey, "api-key", "", "CloudConvert API key (PDF output)")
	fs.BoolVar(&opts.mergeRuns, "merge-runs", false, "match tokens split across formatting runs")
	fs.DurationVar(&opts.pollEvery, "poll-interval", 0, "delay between conversion status checks")
	fs.DurationVar(&opts.pollLimit, "poll-timeout", 0, "max wait for the conversion job")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	fs.BoolVarP(&opts.showHelp, "help", "h", false, "print usage and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	opts.args = fs.Args()
	return opts, nil
}

// run parses arguments, resolves configuration, and dispatches to the
// requested command.
func run(ctx context.Context, args []string, newGen generatorFactory, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	switch {
	case opts.showHelp:
		printUsage(stdout)
		return nil
	case opts.showVersion:
		fmt.Fprintln(stdout, Version)
		return nil
	}

	if len(opts.args) > 0 && opts.args[0] == "init" {
		return runInit(opts.args[1:], stdout)
	}

	return runGenerate(ctx, opts, newGen, stdout)
}

// runInit writes the embedded starter template.
func runInit(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return ErrInvalidArgs
	}
	out := args[0]
	if !strings.EqualFold(filepath.Ext(out), ".docx") {
		out += ".docx"
	}

	data, err := assets.StarterTemplate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	fmt.Fprintf(stdout, "Created %s\n", out)
	return nil
}

// runGenerate resolves configuration, generates the letter, and writes
// the output file.
func runGenerate(ctx context.Context, opts *cliOptions, newGen generatorFactory, stdout io.Writer) error {
	if len(opts.args) != 1 {
		return ErrInvalidArgs
	}
	templatePath := opts.args[0]
	if !strings.EqualFold(filepath.Ext(templatePath), ".docx") {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(templatePath))
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	template, err := os.ReadFile(templatePath) // #nosec G304 -- template path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadTemplate, err)
	}

	input, genOpts := buildInput(opts, cfg, template)

	gen, err := newGen(genOpts...)
	if err != nil {
		return err
	}
	result, err := gen.Generate(ctx, input)
	if err != nil {
		return err
	}

	outPath := resolveOutputPath(opts.output, cfg.Output.Dir, result.Filename)
	if err := os.WriteFile(outPath, result.Data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	fmt.Fprintf(stdout, "Created %s\n", outPath)
	return nil
}

// resolveConfig loads the config file named by flag or environment.
// Without either, defaults apply and flags carry everything.
func resolveConfig(opts *cliOptions) (*config.Config, error) {
	env := loadEnvConfig()

	path := opts.configPath
	if path == "" {
		path = env.ConfigPath
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// buildInput merges flags over environment over config file into the
// generation input and generator options.
func buildInput(opts *cliOptions, cfg *config.Config, template []byte) (coverletter.Input, []coverletter.Option) {
	env := loadEnvConfig()

	input := coverletter.Input{
		Template: template,
		Client: coverletter.ClientInfo{
			Name:     firstNonEmpty(opts.name, cfg.Client.Name),
			Company:  firstNonEmpty(opts.company, cfg.Client.Company),
			Address1: firstNonEmpty(opts.address1, cfg.Client.Address1),
			Address2: firstNonEmpty(opts.address2, cfg.Client.Address2),
			Date:     firstNonEmpty(opts.date, cfg.Client.Date),
		},
		Format:    firstNonEmpty(opts.format, cfg.Output.Format),
		MergeRuns: opts.mergeRuns,
	}

	var genOpts []coverletter.Option
	if key := firstNonEmpty(opts.apiKey, env.APIKey, cfg.Convert.APIKey); key != "" {
		genOpts = append(genOpts, coverletter.WithAPIKey(key))
	}
	if d := firstNonZero(opts.pollEvery, cfg.Convert.PollIntervalDuration()); d > 0 {
		genOpts = append(genOpts, coverletter.WithPollInterval(d))
	}
	if d := firstNonZero(opts.pollLimit, cfg.Convert.PollTimeoutDuration()); d > 0 {
		genOpts = append(genOpts, coverletter.WithPollTimeout(d))
	}
	return input, genOpts
}

// resolveOutputPath picks the output location: an explicit file path
// wins, an explicit or configured directory gets the suggested name,
// otherwise the suggested name lands in the current directory.
func resolveOutputPath(flagOutput, configDir, suggested string) string {
	if flagOutput != "" {
		if info, err := os.Stat(flagOutput); err == nil && info.IsDir() {
			return filepath.Join(flagOutput, suggested)
		}
		return flagOutput
	}
	if configDir != "" {
		return filepath.Join(configDir, suggested)
	}
	return suggested
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `coverletter generates personalized cover letters from DOCX templates.

Usage:
  coverletter [flags] <template.docx>   generate a letter
  coverletter init <output.docx>        write a starter template

Placeholders recognized in templates:
  <<CLIENT_NAME>> <<COMPANY>> <<ADDRESS>> <<ADDRESS_LINE_1>> <<ADDRESS_LINE_2>> <<DATE>>

Flags:
  -c, --config string        config file name or path
      --name string          client name
      --company string       company name
      --address1 string      address line 1
      --address2 string      address line 2 (optional)
      --date string          letter date: literal, "auto", or "auto:FORMAT"
  -f, --format string        output format: docx or pdf (default docx)
  -o, --output string        output file or directory
      --api-key string       CloudConvert API key (PDF output)
      --merge-runs           match tokens split across formatting runs
      --poll-interval dur    delay between conversion status checks
      --poll-timeout dur     max wait for the conversion job
      --version              print version and exit
  -h, --help                 print usage and exit

Environment:
  COVERLETTER_API_KEY   CloudConvert API key
  COVERLETTER_CONFIG    config file name or path
`)
}
