package actors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxNotifyAttempts is the number of delivery attempts made against a
// webhook before giving up.
const maxNotifyAttempts = 5

// Notifier is the actor at the tail of the pipeline. For each job status
// message it posts a human-readable status line to a chat webhook.
// Transient delivery failures are retried with exponential backoff;
// client errors from the webhook are not.
type Notifier struct {
	webhookURL string
	retryWait  time.Duration
	client     *http.Client
}

// NewNotifier returns a notifier that posts to webhookURL. The retry wait
// is the base wait before a retry is attempted.
func NewNotifier(webhookURL string, retryWait time.Duration) (*Notifier, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("Webhook url cannot be the empty string")
	}
	parsed, err := url.Parse(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse webhook url %s: %s", webhookURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("Webhook url %s must use http or https", webhookURL)
	}
	return &Notifier{
		webhookURL: webhookURL,
		retryWait:  retryWait,
		client:     http.DefaultClient,
	}, nil
}

// Handle posts the job status carried by the message to the webhook.
func (n *Notifier) Handle(message Message) error {
	if message.JobID == "" {
		return fmt.Errorf("Status message is missing a job id")
	}
	if message.Status == "" {
		return fmt.Errorf("Status message is missing a status")
	}
	text := fmt.Sprintf("Job %s is now %s", message.JobID, message.Status)
	if message.JobName != "" {
		text = fmt.Sprintf("Job %s (%s) is now %s", message.JobName, message.JobID, message.Status)
	}
	payload, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return fmt.Errorf("Failed to encode webhook payload: %s", err)
	}

	// attempt makes a single pass at delivering the payload and returns an
	// error if it fails.
	attempt := func() error {
		response, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("Error posting to webhook: %s", err)
		}
		defer response.Body.Close()
		if response.StatusCode >= 200 && response.StatusCode < 300 {
			return nil
		}
		err = fmt.Errorf("Webhook rejected status post with status %d", response.StatusCode)
		if response.StatusCode >= 400 && response.StatusCode < 500 {
			// The webhook will never accept this payload, stop retrying.
			return backoff.Permanent(err)
		}
		return err
	}

	wait := backoff.NewExponentialBackOff()
	if n.retryWait > 0 {
		wait.InitialInterval = n.retryWait
	}
	err = backoff.Retry(attempt, backoff.WithMaxRetries(wait, maxNotifyAttempts-1))
	if err != nil {
		return fmt.Errorf("Failed to deliver status for job %s: %s", message.JobID, err)
	}
	return nil
}
