package actors

import (
	"fmt"
	"path"
	"strings"

	"github.com/TACC/taccster-2021-tapis-actors/auth"
)

// inputName is the app input that the staged file is bound to. The apps
// this pipeline targets declare a single input with this name.
const inputName = "inputFile"

// Submitter is the job actor in the middle of the pipeline. For each
// message it submits a batch job running its configured app against the
// staged input file.
type Submitter struct {
	gateway     auth.Gateway
	appID       string
	maxRunTime  string
	archive     bool
	notifyActor string
	notifyNonce string
}

// NewSubmitter returns a submitter that runs the given app. When
// notifyActor is non-empty, each submitted job carries a notification
// that POSTs every status change to that actor's inbox, authenticated
// with notifyNonce.
func NewSubmitter(gateway auth.Gateway, appID, maxRunTime string, archive bool, notifyActor, notifyNonce string) (*Submitter, error) {
	if gateway == nil {
		return nil, fmt.Errorf("Unable to submit with a nil gateway")
	}
	if appID == "" {
		return nil, fmt.Errorf("App ID cannot be the empty string")
	}
	if notifyActor != "" && notifyNonce == "" {
		return nil, fmt.Errorf("A notify actor requires a nonce for its callback url")
	}
	return &Submitter{
		gateway:     gateway,
		appID:       appID,
		maxRunTime:  maxRunTime,
		archive:     archive,
		notifyActor: notifyActor,
		notifyNonce: notifyNonce,
	}, nil
}

// callbackURL builds the notification target on the notify actor's inbox.
// The ${JOB_ID} and ${JOB_STATUS} macros are expanded by the jobs service
// when it fires the notification, and arrive at the actor as its message.
func (s *Submitter) callbackURL() string {
	return fmt.Sprintf("%s/actors/v2/%s/messages?x-nonce=%s&job_id=${JOB_ID}&status=${JOB_STATUS}",
		s.gateway.APIServer(), s.notifyActor, s.notifyNonce)
}

// Handle submits a batch job against the staged file named by the message
// and returns the job that the jobs service created for it.
func (s *Submitter) Handle(message Message) (auth.Job, error) {
	if message.File == "" {
		return auth.Job{}, fmt.Errorf("Job message is missing an input file")
	}
	name := message.JobName
	if name == "" {
		name = s.appID + "-" + strings.TrimSuffix(path.Base(message.File), path.Ext(message.File))
	}
	request := auth.JobRequest{
		Name:       name,
		AppID:      s.appID,
		Archive:    s.archive,
		MaxRunTime: s.maxRunTime,
		Inputs:     map[string][]string{inputName: {message.File}},
	}
	if s.notifyActor != "" {
		request.Notifications = []auth.JobNotification{
			{URL: s.callbackURL(), Event: "*", Persistent: true},
		}
	}
	job, err := s.gateway.SubmitJob(request)
	if err != nil {
		return auth.Job{}, fmt.Errorf("Failed to submit job %s: %s", name, err)
	}
	return job, nil
}
