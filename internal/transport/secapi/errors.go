package secapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/sectool/internal/domain"
)

// APIError is a non-2xx answer from the SEC API.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if detail := extractDetail(e.Body); detail != "" {
		return fmt.Sprintf("sec api error %d: %s", e.StatusCode, detail)
	}
	return fmt.Sprintf("sec api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap lets errors.Is(err, domain.ErrUpstream) match.
func (e *APIError) Unwrap() error { return domain.ErrUpstream }

// extractDetail pulls a message out of the common JSON error shapes.
func extractDetail(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	switch {
	case parsed.Message != "":
		return parsed.Message
	case parsed.Error != "":
		return parsed.Error
	default:
		return parsed.Detail
	}
}
