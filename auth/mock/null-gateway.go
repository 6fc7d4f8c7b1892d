package mock

import (
	"io"

	"github.com/TACC/taccster-2021-tapis-actors/auth"
)

// NullGateway implements the Gateway interface but always returns
// the zero values of its methods.
type NullGateway uint8

func NewNullGateway() NullGateway {
	return NullGateway(0)
}

// ImportData returns an empty FileInfo and nil.
func (n NullGateway) ImportData(system, destPath, fileName, sourceURL string) (auth.FileInfo, error) {
	return auth.FileInfo{}, nil
}

// Upload drains the content and returns an empty FileInfo and nil.
func (n NullGateway) Upload(system, destPath, fileName string, content io.Reader) (auth.FileInfo, error) {
	_, _ = io.Copy(io.Discard, content)
	return auth.FileInfo{}, nil
}

// ListFiles returns an empty FileInfo slice and nil.
func (n NullGateway) ListFiles(system, dirPath string) ([]auth.FileInfo, error) {
	return []auth.FileInfo{}, nil
}

// SubmitJob returns an empty Job and nil.
func (n NullGateway) SubmitJob(request auth.JobRequest) (auth.Job, error) {
	return auth.Job{}, nil
}

// JobDetails returns an empty Job and nil.
func (n NullGateway) JobDetails(jobID string) (auth.Job, error) {
	return auth.Job{}, nil
}

// SendMessage returns the empty string and nil.
func (n NullGateway) SendMessage(actorID string, message []byte) (string, error) {
	return "", nil
}

// APIServer returns the empty string.
func (n NullGateway) APIServer() string {
	return ""
}

// AccessToken returns the empty string.
func (n NullGateway) AccessToken() string {
	return ""
}

// Ensure that NullGateway implements the Gateway interface at compile-time
var _ auth.Gateway = NewNullGateway()
