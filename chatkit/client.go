// Package chatkit talks to the hosted chat-workflow provider. The service
// only needs one capability from it: exchange a workflow id and an
// anonymous user id for a short-lived client credential the embeddable
// widget can use.
package chatkit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// DefaultWorkflowID is the hardcoded fallback used when neither the
// request body nor the environment names a workflow.
const DefaultWorkflowID = "wf_691498ab3cd08190b31a1ecadd223ed008ae1288861d6473"

const (
	sessionsPath   = "/v1/chatkit/sessions"
	betaHeader     = "OpenAI-Beta"
	betaHeaderVal  = "chatkit_beta=v1"
	requestTimeout = 30 * time.Second
)

// SessionRequest describes one provider session to create.
type SessionRequest struct {
	WorkflowID        string
	UserID            string
	FileUploadEnabled bool
}

// Session is the short-lived credential handed to the widget. ExpiresAfter
// is passed through opaquely; its shape belongs to the provider.
type Session struct {
	ClientSecret string          `json:"client_secret"`
	ExpiresAfter json.RawMessage `json:"expires_after"`
}

// SessionCreator is the single capability the HTTP layer depends on.
type SessionCreator interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// Client is the resty-backed SessionCreator.
type Client struct {
	http *resty.Client
}

var _ SessionCreator = (*Client)(nil)

func NewClient(apiBase, apiKey string) *Client {
	httpClient := resty.New().
		SetBaseURL(apiBase).
		SetAuthToken(apiKey).
		SetHeader(betaHeader, betaHeaderVal).
		SetTimeout(requestTimeout)
	return &Client{http: httpClient}
}

// wire shapes for the provider call
type (
	workflowRef struct {
		ID string `json:"id"`
	}
	fileUpload struct {
		Enabled bool `json:"enabled"`
	}
	chatkitConfiguration struct {
		FileUpload fileUpload `json:"file_upload"`
	}
	createSessionBody struct {
		Workflow      workflowRef          `json:"workflow"`
		User          string               `json:"user"`
		Configuration chatkitConfiguration `json:"chatkit_configuration"`
	}
)

// CreateSession asks the provider for a new widget session. Provider-side
// rejections come back as *UpstreamError carrying the original status and
// body; transport failures are plain errors.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	var session Session
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createSessionBody{
			Workflow: workflowRef{ID: req.WorkflowID},
			User:     req.UserID,
			Configuration: chatkitConfiguration{
				FileUpload: fileUpload{Enabled: req.FileUploadEnabled},
			},
		}).
		SetResult(&session).
		Post(sessionsPath)
	if err != nil {
		return nil, errors.Wrap(err, "[CreateSession] provider request")
	}

	if resp.IsError() {
		return nil, newUpstreamError(resp.StatusCode(), resp.Status(), resp.Body())
	}
	return &session, nil
}
