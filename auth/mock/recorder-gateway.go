package mock

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/TACC/taccster-2021-tapis-actors/auth"
	"github.com/google/uuid"
)

// Import records a single call to ImportData.
type Import struct {
	System    string
	Path      string
	FileName  string
	SourceURL string
}

// SentMessage records a single call to SendMessage.
type SentMessage struct {
	ActorID     string
	ExecutionID string
	Body        []byte
}

// RecorderGateway implements the Gateway interface and keeps the observed
// imports, uploads, job submissions, and actor messages for later
// retrieval and testing. Jobs it accepts are assigned uuid identifiers
// and the status PENDING. It is safe for concurrent use.
type RecorderGateway struct {
	mutex    sync.Mutex
	imports  []Import
	uploads  map[string]*bytes.Buffer
	jobs     []auth.Job
	requests []auth.JobRequest
	messages []SentMessage
}

// NewRecorderGateway creates a new instance of RecorderGateway.
func NewRecorderGateway() *RecorderGateway {
	return &RecorderGateway{
		uploads: make(map[string]*bytes.Buffer),
	}
}

// ImportData records the requested ingest and fabricates the FileInfo
// that the files service would return for it.
func (r *RecorderGateway) ImportData(system, destPath, fileName, sourceURL string) (auth.FileInfo, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.imports = append(r.imports, Import{System: system, Path: destPath, FileName: fileName, SourceURL: sourceURL})
	return auth.FileInfo{
		Name:   fileName,
		Path:   strings.TrimSuffix(destPath, "/") + "/" + fileName,
		System: system,
		Type:   "file",
	}, nil
}

// Upload stores the uploaded content in memory, keyed by the path the
// file would occupy in the destination system.
func (r *RecorderGateway) Upload(system, destPath, fileName string, content io.Reader) (auth.FileInfo, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return auth.FileInfo{}, err
	}
	fullPath := strings.TrimSuffix(destPath, "/") + "/" + fileName
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.uploads[fullPath] = bytes.NewBuffer(data)
	return auth.FileInfo{
		Name:   fileName,
		Path:   fullPath,
		System: system,
		Length: int64(len(data)),
		Type:   "file",
	}, nil
}

// ListFiles returns a FileInfo for every upload recorded under dirPath.
func (r *RecorderGateway) ListFiles(system, dirPath string) ([]auth.FileInfo, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	listing := make([]auth.FileInfo, 0)
	prefix := strings.TrimSuffix(dirPath, "/") + "/"
	for path, content := range r.uploads {
		if strings.HasPrefix(path, prefix) {
			listing = append(listing, auth.FileInfo{
				Name:   strings.TrimPrefix(path, prefix),
				Path:   path,
				System: system,
				Length: int64(content.Len()),
				Type:   "file",
			})
		}
	}
	return listing, nil
}

// SubmitJob records the request and returns a PENDING job with a fresh
// uuid for its ID.
func (r *RecorderGateway) SubmitJob(request auth.JobRequest) (auth.Job, error) {
	job := auth.Job{
		ID:     uuid.NewString(),
		Name:   request.Name,
		AppID:  request.AppID,
		Status: "PENDING",
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.requests = append(r.requests, request)
	r.jobs = append(r.jobs, job)
	return job, nil
}

// JobDetails returns the recorded job with the given ID, or an error when
// no such job was submitted, as the real jobs service would.
func (r *RecorderGateway) JobDetails(jobID string) (auth.Job, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for _, job := range r.jobs {
		if job.ID == jobID {
			return job, nil
		}
	}
	return auth.Job{}, fmt.Errorf("no job with id %s", jobID)
}

// SendMessage records the message and returns a fresh uuid as the
// execution ID.
func (r *RecorderGateway) SendMessage(actorID string, message []byte) (string, error) {
	executionID := uuid.NewString()
	body := make([]byte, len(message))
	copy(body, message)
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.messages = append(r.messages, SentMessage{ActorID: actorID, ExecutionID: executionID, Body: body})
	return executionID, nil
}

// APIServer returns a placeholder URL.
func (r *RecorderGateway) APIServer() string {
	return "https://gateway.invalid"
}

// AccessToken returns a placeholder token.
func (r *RecorderGateway) AccessToken() string {
	return "recorder-token"
}

// Imports returns every recorded call to ImportData.
func (r *RecorderGateway) Imports() []Import {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]Import{}, r.imports...)
}

// Jobs returns every job created by SubmitJob.
func (r *RecorderGateway) Jobs() []auth.Job {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]auth.Job{}, r.jobs...)
}

// Requests returns every job request passed to SubmitJob.
func (r *RecorderGateway) Requests() []auth.JobRequest {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]auth.JobRequest{}, r.requests...)
}

// MessagesTo returns the recorded messages addressed to the named actor.
func (r *RecorderGateway) MessagesTo(actorID string) []SentMessage {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	matching := make([]SentMessage, 0)
	for _, message := range r.messages {
		if message.ActorID == actorID {
			matching = append(matching, message)
		}
	}
	return matching
}

// Ensure that RecorderGateway implements the Gateway interface at compile-time
var _ auth.Gateway = &RecorderGateway{}
