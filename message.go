package actors

import (
	"encoding/json"
	"fmt"
)

// Message is the JSON payload passed between the actors in the pipeline.
//
// URL is the location of a remote file that the Ingestor should import
// System and Path override the Ingestor's configured destination, when set
// File is the agave URI of an ingested file that the Submitter should run on
// JobName is an optional display name carried through to the batch job
// JobID and Status describe a submitted job and drive the Notifier
//
// Each handler only reads the fields it needs, so a single type covers
// every hop of the pipeline.
type Message struct {
	URL     string `json:"url,omitempty"`
	System  string `json:"system,omitempty"`
	Path    string `json:"path,omitempty"`
	File    string `json:"file,omitempty"`
	JobName string `json:"job_name,omitempty"`
	JobID   string `json:"job_id,omitempty"`
	Status  string `json:"status,omitempty"`
}

// ParseMessage decodes a raw actor message. The empty string and malformed
// JSON are both errors.
func ParseMessage(raw string) (Message, error) {
	var message Message
	if raw == "" {
		return message, fmt.Errorf("Cannot parse an empty message")
	}
	if err := json.Unmarshal([]byte(raw), &message); err != nil {
		return message, fmt.Errorf("Failed to parse message %q: %s", raw, err)
	}
	return message, nil
}

// Encode renders the message as JSON for delivery to another actor.
func (m Message) Encode() ([]byte, error) {
	encoded, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("Failed to encode message: %s", err)
	}
	return encoded, nil
}
