package cloudconvert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// DefaultBaseURL is the production CloudConvert API endpoint.
const DefaultBaseURL = "https://api.cloudconvert.com"

// Polling defaults. The original tool polled once per second with no
// upper bound; the timeout here makes the wait finite.
const (
	DefaultPollInterval = 1 * time.Second
	DefaultPollTimeout  = 5 * time.Minute
)

// Job statuses reported by the API.
const (
	StatusWaiting    = "waiting"
	StatusProcessing = "processing"
	StatusFinished   = "finished"
	StatusError      = "error"
)

// Task names used in the conversion job description.
const (
	taskUpload  = "upload-file"
	taskConvert = "convert-file"
	taskExport  = "export-file"
)

// Sentinel errors for conversion operations.
var (
	ErrMissingAPIKey     = errors.New("cloudconvert: API key is required")
	ErrJobFailed         = errors.New("conversion job failed")
	ErrPollTimeout       = errors.New("conversion job polling timed out")
	ErrUploadRejected    = errors.New("upload rejected by storage endpoint")
	ErrMalformedResponse = errors.New("malformed API response")
	ErrRequestFailed     = errors.New("API request failed")
)

// Client talks to the CloudConvert jobs API. Create with New; the
// zero value is not usable. Safe for concurrent use: all fields are
// read-only after New.
type Client struct {
	baseURL      string
	apiKey       string
	httpc        *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithPollInterval sets the delay between job status checks.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithPollInterval(d time.Duration) Option {
	if d <= 0 {
		panic("cloudconvert: WithPollInterval duration must be positive")
	}
	return func(c *Client) { c.pollInterval = d }
}

// WithPollTimeout sets the maximum wall-clock time spent waiting for a
// job to reach a terminal status. Zero disables the bound.
func WithPollTimeout(d time.Duration) Option {
	return func(c *Client) { c.pollTimeout = d }
}

// New creates a Client with the given API credential.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		baseURL:      DefaultBaseURL,
		apiKey:       apiKey,
		httpc:        http.DefaultClient,
		pollInterval: DefaultPollInterval,
		pollTimeout:  DefaultPollTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Convert converts DOCX bytes to PDF via a remote job: create, upload,
// poll until terminal, download. The context cancels the wait between
// polls; the remote job itself is not cancelled.
func (c *Client) Convert(ctx context.Context, docx []byte) ([]byte, error) {
	job, err := c.createJob(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	form, err := job.uploadForm()
	if err != nil {
		return nil, err
	}
	if err := c.upload(ctx, form, docx); err != nil {
		return nil, fmt.Errorf("uploading input: %w", err)
	}

	job, err = c.waitForJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	if job.Status == StatusError {
		return nil, ErrJobFailed
	}

	fileURL, err := job.exportURL()
	if err != nil {
		return nil, err
	}
	pdf, err := c.download(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("downloading result: %w", err)
	}
	return pdf, nil
}

// createJob submits the three-task job description: import by upload,
// convert docx to pdf with the office engine, export by URL.
func (c *Client) createJob(ctx context.Context) (*job, error) {
	body := map[string]any{
		"tasks": map[string]any{
			taskUpload: map[string]any{
				"operation": "import/upload",
			},
			taskConvert: map[string]any{
				"operation":     "convert",
				"input":         taskUpload,
				"input_format":  "docx",
				"output_format": "pdf",
				"engine":        "office",
			},
			taskExport: map[string]any{
				"operation": "export/url",
				"input":     taskConvert,
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/jobs", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doJobRequest(req)
}

// fetchJob retrieves the current state of a job by id.
func (c *Client) fetchJob(ctx context.Context, id string) (*job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/jobs/"+id, nil)
	if err != nil {
		return nil, err
	}
	return c.doJobRequest(req)
}

// doJobRequest performs an authenticated job-management call and
// decodes the job envelope. Bearer auth applies only here, never to
// the upload or the final file download.
func (c *Client) doJobRequest(req *http.Request) (*job, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrRequestFailed, req.URL.Path, resp.Status)
	}

	var envelope struct {
		Data *job `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.Data == nil || envelope.Data.ID == "" {
		return nil, fmt.Errorf("%w: missing job data", ErrMalformedResponse)
	}
	return envelope.Data, nil
}

// upload posts the input bytes to the storage URL returned by the
// import task, passing the form parameters through verbatim. The
// response status is checked: the original tool fired and forgot,
// deferring failure discovery to the poll loop, but a rejected upload
// is detectable right here.
func (c *Client) upload(ctx context.Context, form *uploadForm, docx []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for key, val := range form.Parameters {
		if err := mw.WriteField(key, val); err != nil {
			return err
		}
	}
	fw, err := mw.CreateFormFile("file", "input.docx")
	if err != nil {
		return err
	}
	if _, err := fw.Write(docx); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, form.URL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s", ErrUploadRejected, resp.Status)
	}
	return nil
}

// waitForJob polls the job at a fixed interval until it reaches a
// terminal status, the poll timeout expires, or the context is
// cancelled.
func (c *Client) waitForJob(ctx context.Context, id string) (*job, error) {
	var deadline <-chan time.Time
	if c.pollTimeout > 0 {
		timer := time.NewTimer(c.pollTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		job, err := c.fetchJob(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("polling job %s: %w", id, err)
		}
		if job.Status == StatusFinished || job.Status == StatusError {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, fmt.Errorf("%w after %s", ErrPollTimeout, c.pollTimeout)
		case <-time.After(c.pollInterval):
		}
	}
}

// download fetches the exported file. The export URL is pre-signed, so
// no Authorization header is sent.
func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: download returned %s", ErrRequestFailed, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
