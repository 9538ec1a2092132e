package chatkit

import (
	"encoding/json"
	"fmt"
)

// UpstreamError is a provider-reported failure (4xx/5xx with a structured
// body). Status and message are forwarded to the caller as-is; that path
// carries no secrets, and the original message aids debugging.
type UpstreamError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("chatkit: upstream %d: %s", e.StatusCode, e.Message)
}

func newUpstreamError(statusCode int, status string, body []byte) *UpstreamError {
	var payload map[string]interface{}
	_ = json.Unmarshal(body, &payload)

	message := extractUpstreamMessage(payload)
	if message == "" {
		message = fmt.Sprintf("Failed to create session: %s", status)
	}

	// Details always carries a JSON value; unparseable bodies become {}.
	details := json.RawMessage(body)
	if !json.Valid(body) {
		details = json.RawMessage(`{}`)
	}
	return &UpstreamError{StatusCode: statusCode, Message: message, Details: details}
}

// extractUpstreamMessage digs a human-readable message out of the known
// provider error shapes: "error" as a string, "error.message",
// "details" as a string, "details.error(.message)", then "message".
func extractUpstreamMessage(payload map[string]interface{}) string {
	if payload == nil {
		return ""
	}

	if msg := errorField(payload["error"]); msg != "" {
		return msg
	}

	switch details := payload["details"].(type) {
	case string:
		return details
	case map[string]interface{}:
		if msg := errorField(details["error"]); msg != "" {
			return msg
		}
	}

	if msg, ok := payload["message"].(string); ok {
		return msg
	}
	return ""
}

func errorField(v interface{}) string {
	switch err := v.(type) {
	case string:
		return err
	case map[string]interface{}:
		if msg, ok := err["message"].(string); ok {
			return msg
		}
	}
	return ""
}
