package mock

import (
	"fmt"
	"io"

	"github.com/TACC/taccster-2021-tapis-actors/auth"
)

// ErrorGateway implements the Gateway interface but always returns
// the error values of its methods.
type ErrorGateway struct{}

func NewErrorGateway() ErrorGateway {
	return ErrorGateway{}
}

// ImportData always returns an empty FileInfo and an error.
func (e ErrorGateway) ImportData(system, destPath, fileName, sourceURL string) (auth.FileInfo, error) {
	return auth.FileInfo{}, fmt.Errorf("import rejected")
}

// Upload always returns an empty FileInfo and an error.
func (e ErrorGateway) Upload(system, destPath, fileName string, content io.Reader) (auth.FileInfo, error) {
	return auth.FileInfo{}, fmt.Errorf("upload rejected")
}

// ListFiles always returns an empty FileInfo slice and an error.
func (e ErrorGateway) ListFiles(system, dirPath string) ([]auth.FileInfo, error) {
	return []auth.FileInfo{}, fmt.Errorf("listing rejected")
}

// SubmitJob always returns an empty Job and an error.
func (e ErrorGateway) SubmitJob(request auth.JobRequest) (auth.Job, error) {
	return auth.Job{}, fmt.Errorf("submission rejected")
}

// JobDetails always returns an empty Job and an error.
func (e ErrorGateway) JobDetails(jobID string) (auth.Job, error) {
	return auth.Job{}, fmt.Errorf("job lookup rejected")
}

// SendMessage always returns the empty string and an error.
func (e ErrorGateway) SendMessage(actorID string, message []byte) (string, error) {
	return "", fmt.Errorf("message rejected")
}

// APIServer returns the empty string.
func (e ErrorGateway) APIServer() string {
	return ""
}

// AccessToken returns the empty string.
func (e ErrorGateway) AccessToken() string {
	return ""
}

// Ensure that ErrorGateway implements the Gateway interface at compile-time
var _ auth.Gateway = ErrorGateway{}
