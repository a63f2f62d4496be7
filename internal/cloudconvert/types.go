package cloudconvert

import "fmt"

// job mirrors the API's job resource: an id, a status, and the tasks
// the job was created with. Jobs are remote-service entities; they are
// polled until terminal and then discarded, never persisted locally.
type job struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Tasks  []task `json:"tasks"`
}

// task is one step of a job. The import task carries the upload form
// in its result; the export task carries the result files.
type task struct {
	Name      string      `json:"name"`
	Operation string      `json:"operation"`
	Status    string      `json:"status"`
	Result    *taskResult `json:"result,omitempty"`
}

type taskResult struct {
	Form  *uploadForm  `json:"form,omitempty"`
	Files []resultFile `json:"files,omitempty"`
}

// uploadForm holds the pre-signed storage URL and the form fields that
// must accompany the multipart upload verbatim.
type uploadForm struct {
	URL        string            `json:"url"`
	Parameters map[string]string `json:"parameters"`
}

type resultFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// uploadForm locates the upload task's form in a freshly created job.
func (j *job) uploadForm() (*uploadForm, error) {
	for _, t := range j.Tasks {
		if t.Name == taskUpload {
			if t.Result == nil || t.Result.Form == nil || t.Result.Form.URL == "" {
				return nil, fmt.Errorf("%w: upload task has no form", ErrMalformedResponse)
			}
			return t.Result.Form, nil
		}
	}
	return nil, fmt.Errorf("%w: job has no %s task", ErrMalformedResponse, taskUpload)
}

// exportURL locates the first result file of the export task in a
// finished job.
func (j *job) exportURL() (string, error) {
	for _, t := range j.Tasks {
		if t.Name == taskExport {
			if t.Result == nil || len(t.Result.Files) == 0 || t.Result.Files[0].URL == "" {
				return "", fmt.Errorf("%w: export task has no result files", ErrMalformedResponse)
			}
			return t.Result.Files[0].URL, nil
		}
	}
	return "", fmt.Errorf("%w: job has no %s task", ErrMalformedResponse, taskExport)
}
