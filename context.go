package actors

import (
	"fmt"
	"os"

	"github.com/TACC/taccster-2021-tapis-actors/auth"
)

// Context holds the execution context that the platform injects into an
// actor container through environment variables. Every field besides
// RawMessage may be empty when an actor is run outside the platform.
type Context struct {
	RawMessage  string
	ContentType string
	ActorID     string
	ExecutionID string
	Username    string
	State       string
	APIServer   string
	AccessToken string
}

// NewContext reads the actor execution context out of the environment.
// It fails if no message is present, since a handler has nothing to do
// without one.
func NewContext() (*Context, error) {
	raw, ok := os.LookupEnv("MSG")
	if !ok {
		return nil, fmt.Errorf("No message in environment: MSG is unset")
	}
	return &Context{
		RawMessage:  raw,
		ContentType: os.Getenv("_abaco_Content_Type"),
		ActorID:     os.Getenv("_abaco_actor_id"),
		ExecutionID: os.Getenv("_abaco_execution_id"),
		Username:    os.Getenv("_abaco_username"),
		State:       os.Getenv("_abaco_actor_state"),
		APIServer:   os.Getenv("_abaco_api_server"),
		AccessToken: os.Getenv("_abaco_access_token"),
	}, nil
}

// Message parses the raw message that this execution was started with.
func (c *Context) Message() (Message, error) {
	return ParseMessage(c.RawMessage)
}

// Gateway builds a gateway client from the API server and access token
// that the platform injected into this execution.
func (c *Context) Gateway() (auth.Gateway, error) {
	gateway, err := auth.AuthenticateWithToken(c.APIServer, c.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("Failed to build gateway from execution context: %s", err)
	}
	return gateway, nil
}
