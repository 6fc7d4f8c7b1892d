package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// checkAPIServer validates that the API server URL is usable as the base
// of gateway requests. The URL MUST carry an http or https scheme.
func checkAPIServer(apiServer string) (string, error) {
	parsed, err := url.Parse(apiServer)
	if err != nil {
		return "", fmt.Errorf("Unable to parse API server url %s: %s", apiServer, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("API server url %s must use http or https", apiServer)
	}
	return strings.TrimSuffix(apiServer, "/"), nil
}

// Authenticate performs the OAuth2 password grant against the gateway's
// token endpoint and returns a Gateway that uses the resulting access
// token. The consumer key and secret identify a registered OAuth client.
func Authenticate(apiServer, consumerKey, consumerSecret, username, password string) (Gateway, error) {
	server, err := checkAPIServer(apiServer)
	if err != nil {
		return nil, err
	}
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	form.Set("scope", "PRODUCTION")
	request, err := http.NewRequest(http.MethodPost, server+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("Failed to create token request: %s", err)
	}
	request.SetBasicAuth(consumerKey, consumerSecret)
	request.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("Error sending token request: %s", err)
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("Failed to read token response: %s", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("Failed to authenticate with gateway: status %d", response.StatusCode)
	}
	var grant struct {
		AccessToken string `json:"access_token"`
	}
	if err = json.Unmarshal(body, &grant); err != nil {
		return nil, fmt.Errorf("Failed to decode token response: %s", err)
	}
	if grant.AccessToken == "" {
		return nil, fmt.Errorf("Token response contained no access token")
	}
	return &TapisGateway{
		apiServer: server,
		token:     grant.AccessToken,
		client:    http.DefaultClient,
	}, nil
}

// AuthenticateWithToken wraps an existing access token, such as the one
// the platform injects into a running actor, in a Gateway.
func AuthenticateWithToken(apiServer, accessToken string) (Gateway, error) {
	server, err := checkAPIServer(apiServer)
	if err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, fmt.Errorf("Access token cannot be the empty string")
	}
	return &TapisGateway{
		apiServer: server,
		token:     accessToken,
		client:    http.DefaultClient,
	}, nil
}
