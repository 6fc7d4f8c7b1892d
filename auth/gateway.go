package auth

import (
	"io"
)

// Gateway defines everything that the pipeline's actors need from the
// science gateway platform.
type Gateway interface {
	ImportData(system, destPath, fileName, sourceURL string) (FileInfo, error)
	Upload(system, destPath, fileName string, content io.Reader) (FileInfo, error)
	ListFiles(system, dirPath string) ([]FileInfo, error)
	SubmitJob(request JobRequest) (Job, error)
	JobDetails(jobID string) (Job, error)
	SendMessage(actorID string, message []byte) (string, error)
	APIServer() string
	AccessToken() string
}

// FileInfo describes a single file within a gateway storage system.
type FileInfo struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	System string `json:"systemId"`
	Length int64  `json:"length"`
	Type   string `json:"type"`
}

// URI returns the agave URI that other gateway services use to refer to
// this file.
func (f FileInfo) URI() string {
	return "agave://" + f.System + "/" + f.Path
}

// JobRequest is the definition of a batch job to be submitted to the
// gateway's jobs service. Inputs maps app input names to one or more
// agave URIs.
type JobRequest struct {
	Name          string              `json:"name"`
	AppID         string              `json:"appId"`
	Archive       bool                `json:"archive"`
	MaxRunTime    string              `json:"maxRunTime,omitempty"`
	Inputs        map[string][]string `json:"inputs,omitempty"`
	Parameters    map[string]string   `json:"parameters,omitempty"`
	Notifications []JobNotification   `json:"notifications,omitempty"`
}

// JobNotification asks the jobs service to POST to a URL when the job
// reaches the named event. The event "*" subscribes to every status change.
type JobNotification struct {
	URL        string `json:"url"`
	Event      string `json:"event"`
	Persistent bool   `json:"persistent"`
}

// Job describes a job known to the gateway's jobs service.
type Job struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	AppID  string `json:"appId"`
	Owner  string `json:"owner"`
	Status string `json:"status"`
}
