package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// TapisGateway implements the Gateway interface over the Tapis v2 REST API.
// It carries no mutable state after construction and is safe to share
// between goroutines.
type TapisGateway struct {
	apiServer string
	token     string
	client    *http.Client
}

// envelope is the wrapper that every v2 API response arrives in.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Version string          `json:"version"`
	Result  json.RawMessage `json:"result"`
}

// do performs a single API request and decodes the response envelope's
// result into result, which may be nil when the caller only cares about
// success.
func (t *TapisGateway) do(method, requestPath, contentType string, body io.Reader, result interface{}) error {
	request, err := http.NewRequest(method, t.apiServer+requestPath, body)
	if err != nil {
		return fmt.Errorf("Failed to create request for %s: %s", requestPath, err)
	}
	request.Header.Add("Authorization", "Bearer "+t.token)
	if contentType != "" {
		request.Header.Add("Content-Type", contentType)
	}
	response, err := t.client.Do(request)
	if err != nil {
		return fmt.Errorf("Error sending request to %s: %s", requestPath, err)
	}
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("Failed to read response from %s: %s", requestPath, err)
	}
	var wrapper envelope
	if err = json.Unmarshal(responseBody, &wrapper); err != nil {
		if response.StatusCode < 200 || response.StatusCode >= 300 {
			return fmt.Errorf("Request to %s failed with status %d", requestPath, response.StatusCode)
		}
		return fmt.Errorf("Failed to decode response from %s: %s", requestPath, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("Request to %s failed with status %d: %s", requestPath, response.StatusCode, wrapper.Message)
	}
	if result != nil {
		if err = json.Unmarshal(wrapper.Result, result); err != nil {
			return fmt.Errorf("Failed to decode result from %s: %s", requestPath, err)
		}
	}
	return nil
}

// ImportData asks the files service to ingest the file at sourceURL into
// destPath on the named storage system, stored under fileName. The transfer
// happens server-side; ImportData returns once the files service accepts
// the request.
func (t *TapisGateway) ImportData(system, destPath, fileName, sourceURL string) (FileInfo, error) {
	var info FileInfo
	form := url.Values{}
	form.Set("urlToIngest", sourceURL)
	form.Set("fileName", fileName)
	requestPath := "/files/v2/media/system/" + system + "/" + strings.TrimPrefix(destPath, "/")
	err := t.do(http.MethodPost, requestPath, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), &info)
	if err != nil {
		return info, fmt.Errorf("Failed to import %s into %s: %s", sourceURL, system, err)
	}
	return info, nil
}

// Upload stages local file content directly into destPath on the named
// storage system under fileName.
func (t *TapisGateway) Upload(system, destPath, fileName string, content io.Reader) (FileInfo, error) {
	var info FileInfo
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("fileToUpload", fileName)
	if err != nil {
		return info, fmt.Errorf("Failed to create upload form: %s", err)
	}
	if _, err = io.Copy(part, content); err != nil {
		return info, fmt.Errorf("Failed to read upload content: %s", err)
	}
	if err = writer.Close(); err != nil {
		return info, fmt.Errorf("Failed to finalize upload form: %s", err)
	}
	requestPath := "/files/v2/media/system/" + system + "/" + strings.TrimPrefix(destPath, "/")
	err = t.do(http.MethodPost, requestPath, writer.FormDataContentType(), body, &info)
	if err != nil {
		return info, fmt.Errorf("Failed to upload %s to %s: %s", fileName, system, err)
	}
	return info, nil
}

// ListFiles returns the files already present at dirPath on the named
// storage system.
func (t *TapisGateway) ListFiles(system, dirPath string) ([]FileInfo, error) {
	var listing []FileInfo
	requestPath := "/files/v2/listings/system/" + system + "/" + strings.TrimPrefix(dirPath, "/")
	err := t.do(http.MethodGet, requestPath, "", nil, &listing)
	if err != nil {
		return nil, fmt.Errorf("Failed to list %s on %s: %s", dirPath, system, err)
	}
	return listing, nil
}

// SubmitJob sends a job definition to the jobs service and returns the
// job that the service created for it.
func (t *TapisGateway) SubmitJob(request JobRequest) (Job, error) {
	var job Job
	definition, err := json.Marshal(request)
	if err != nil {
		return job, fmt.Errorf("Failed to encode job definition: %s", err)
	}
	err = t.do(http.MethodPost, "/jobs/v2/", "application/json", bytes.NewReader(definition), &job)
	if err != nil {
		return job, fmt.Errorf("Failed to submit job %s: %s", request.Name, err)
	}
	return job, nil
}

// JobDetails fetches the current state of a submitted job.
func (t *TapisGateway) JobDetails(jobID string) (Job, error) {
	var job Job
	err := t.do(http.MethodGet, "/jobs/v2/"+jobID, "", nil, &job)
	if err != nil {
		return job, fmt.Errorf("Failed to fetch job %s: %s", jobID, err)
	}
	return job, nil
}

// SendMessage delivers a message to the named actor's inbox and returns
// the ID of the execution that the platform schedules for it.
func (t *TapisGateway) SendMessage(actorID string, message []byte) (string, error) {
	var result struct {
		ExecutionID string `json:"execution_id"`
	}
	err := t.do(http.MethodPost, "/actors/v2/"+actorID+"/messages", "application/json",
		bytes.NewReader(message), &result)
	if err != nil {
		return "", fmt.Errorf("Failed to message actor %s: %s", actorID, err)
	}
	return result.ExecutionID, nil
}

// APIServer returns the base URL of the gateway this client talks to.
func (t *TapisGateway) APIServer() string {
	return t.apiServer
}

// AccessToken returns the bearer token this client authenticates with.
func (t *TapisGateway) AccessToken() string {
	return t.token
}

// Ensure that TapisGateway implements the Gateway interface at compile-time
var _ Gateway = &TapisGateway{}
