package cloudconvert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// stubService implements just enough of the jobs API for the client:
// job creation, the storage upload endpoint, status polling, and the
// final file download.
type stubService struct {
	t *testing.T

	mu           sync.Mutex
	statuses     []string // returned on successive polls; last repeats
	polls        int
	uploadStatus int // 0 = 201
	uploaded     []byte
	uploadFields map[string]string
	createBody   map[string]any
	noUploadForm bool
	noExportFile bool

	pdf []byte
	srv *httptest.Server
}

func newStubService(t *testing.T, statuses ...string) *stubService {
	s := &stubService{
		t:        t,
		statuses: statuses,
		pdf:      []byte("%PDF-1.7 stub"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/jobs", s.handleCreate)
	mux.HandleFunc("GET /v2/jobs/job-1", s.handlePoll)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /files/out.pdf", s.handleDownload)

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *stubService) client(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithBaseURL(s.srv.URL),
		WithPollInterval(time.Millisecond),
		WithPollTimeout(2 * time.Second),
	}, opts...)
	c, err := New("test-key", opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func (s *stubService) handleCreate(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
		s.t.Errorf("create Authorization = %q, want bearer credential", got)
	}
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	_ = json.Unmarshal(body, &s.createBody)
	noForm := s.noUploadForm
	s.mu.Unlock()

	uploadTask := map[string]any{
		"name":      "upload-file",
		"operation": "import/upload",
		"result": map[string]any{
			"form": map[string]any{
				"url": s.srv.URL + "/upload",
				"parameters": map[string]string{
					"key":       "uploads/job-1/input.docx",
					"signature": "sig-123",
				},
			},
		},
	}
	if noForm {
		delete(uploadTask, "result")
	}

	writeJob(w, "waiting", []any{
		uploadTask,
		map[string]any{"name": "convert-file", "operation": "convert"},
		map[string]any{"name": "export-file", "operation": "export/url"},
	})
}

func (s *stubService) handlePoll(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
		s.t.Errorf("poll Authorization = %q, want bearer credential", got)
	}

	s.mu.Lock()
	status := s.statuses[min(s.polls, len(s.statuses)-1)]
	s.polls++
	noExport := s.noExportFile
	s.mu.Unlock()

	var tasks []any
	if status == StatusFinished && !noExport {
		tasks = append(tasks, map[string]any{
			"name":      "export-file",
			"operation": "export/url",
			"status":    "finished",
			"result": map[string]any{
				"files": []any{
					map[string]any{"filename": "out.pdf", "url": s.srv.URL + "/files/out.pdf"},
				},
			},
		})
	}
	writeJob(w, status, tasks)
}

func (s *stubService) handleUpload(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("Authorization"); got != "" {
		s.t.Errorf("upload Authorization = %q, want none", got)
	}
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		s.t.Errorf("parsing upload form: %v", err)
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadStatus != 0 {
		w.WriteHeader(s.uploadStatus)
		return
	}

	s.uploadFields = map[string]string{}
	for key, vals := range r.MultipartForm.Value {
		s.uploadFields[key] = vals[0]
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.t.Errorf("missing file field: %v", err)
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()
	s.uploaded, _ = io.ReadAll(file)

	w.WriteHeader(http.StatusCreated)
}

func (s *stubService) handleDownload(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("Authorization"); got != "" {
		s.t.Errorf("download Authorization = %q, want none", got)
	}
	_, _ = w.Write(s.pdf)
}

func writeJob(w http.ResponseWriter, status string, tasks []any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{
			"id":     "job-1",
			"status": status,
			"tasks":  tasks,
		},
	})
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New("")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("New(\"\") error = %v, want ErrMissingAPIKey", err)
	}
}

func TestConvertHappyPath(t *testing.T) {
	t.Parallel()

	stub := newStubService(t, StatusWaiting, StatusProcessing, StatusFinished)
	client := stub.client(t)

	input := []byte("docx payload")
	got, err := client.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if string(got) != string(stub.pdf) {
		t.Errorf("Convert = %q, want %q", got, stub.pdf)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()

	if stub.polls != 3 {
		t.Errorf("polls = %d, want 3", stub.polls)
	}
	if string(stub.uploaded) != string(input) {
		t.Errorf("uploaded = %q, want %q", stub.uploaded, input)
	}

	// Form parameters must pass through verbatim.
	wantFields := map[string]string{
		"key":       "uploads/job-1/input.docx",
		"signature": "sig-123",
	}
	if diff := cmp.Diff(wantFields, stub.uploadFields); diff != "" {
		t.Errorf("upload fields mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertDeclaresConversionTasks(t *testing.T) {
	t.Parallel()

	stub := newStubService(t, StatusFinished)
	client := stub.client(t)

	if _, err := client.Convert(context.Background(), []byte("x")); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()

	tasks, ok := stub.createBody["tasks"].(map[string]any)
	if !ok {
		t.Fatalf("create body has no tasks: %v", stub.createBody)
	}
	convert, ok := tasks["convert-file"].(map[string]any)
	if !ok {
		t.Fatalf("create body has no convert-file task: %v", tasks)
	}
	want := map[string]any{
		"operation":     "convert",
		"input":         "upload-file",
		"input_format":  "docx",
		"output_format": "pdf",
		"engine":        "office",
	}
	if diff := cmp.Diff(want, convert); diff != "" {
		t.Errorf("convert task mismatch (-want +got):\n%s", diff)
	}
	if _, ok := tasks["upload-file"]; !ok {
		t.Error("create body missing upload-file task")
	}
	if _, ok := tasks["export-file"]; !ok {
		t.Error("create body missing export-file task")
	}
}

func TestConvertJobError(t *testing.T) {
	t.Parallel()

	stub := newStubService(t, StatusProcessing, StatusError)
	client := stub.client(t)

	out, err := client.Convert(context.Background(), []byte("x"))
	if !errors.Is(err, ErrJobFailed) {
		t.Errorf("Convert error = %v, want ErrJobFailed", err)
	}
	if out != nil {
		t.Errorf("Convert returned bytes alongside error: %q", out)
	}
}

func TestConvertUploadRejected(t *testing.T) {
	t.Parallel()

	stub := newStubService(t, StatusFinished)
	stub.uploadStatus = http.StatusForbidden
	client := stub.client(t)

	_, err := client.Convert(context.Background(), []byte("x"))
	if !errors.Is(err, ErrUploadRejected) {
		t.Errorf("Convert error = %v, want ErrUploadRejected", err)
	}
}

func TestConvertPollTimeout(t *testing.T) {
	t.Parallel()

	stub := newStubService(t, StatusProcessing)
	client := stub.client(t, WithPollInterval(5*time.Millisecond), WithPollTimeout(30*time.Millisecond))

	_, err := client.Convert(context.Background(), []byte("x"))
	if !errors.Is(err, ErrPollTimeout) {
		t.Errorf("Convert error = %v, want ErrPollTimeout", err)
	}
}

func TestConvertContextCancellation(t *testing.T) {
	t.Parallel()

	stub := newStubService(t, StatusProcessing)
	client := stub.client(t, WithPollInterval(50*time.Millisecond), WithPollTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := client.Convert(ctx, []byte("x"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert error = %v, want context.Canceled", err)
	}
}

func TestConvertCreateJobHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client, err := New("bad-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Convert(context.Background(), []byte("x"))
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("Convert error = %v, want ErrRequestFailed", err)
	}
}

func TestConvertMalformedResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(s *stubService)
	}{
		{
			name:  "upload task without form",
			setup: func(s *stubService) { s.noUploadForm = true },
		},
		{
			name:  "finished job without export files",
			setup: func(s *stubService) { s.noExportFile = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stub := newStubService(t, StatusFinished)
			tt.setup(stub)
			client := stub.client(t)

			_, err := client.Convert(context.Background(), []byte("x"))
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("Convert error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestConvertNotJSONResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	t.Cleanup(srv.Close)

	client, err := New("key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Convert(context.Background(), []byte("x"))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("Convert error = %v, want ErrMalformedResponse", err)
	}
}
