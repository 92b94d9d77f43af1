package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnauthorized marks a 401 from the backend. Page controllers treat
// it differently from every other failure: the session is stale, so the
// user is sent back to the login screen instead of shown a toast.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries a non-2xx backend response: the status code and the
// parsed JSON error body, forwarded as-is to the UI layer.
type APIError struct {
	StatusCode int
	Message    string
	Body       map[string]interface{}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// decodeError turns a non-2xx response into ErrUnauthorized or an
// *APIError. An unparseable body still yields an *APIError with the
// status code, never a panic or a nil error.
func decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	if err := json.Unmarshal(body, &apiErr.Body); err != nil {
		return apiErr
	}
	// Common backend error shapes: {"message": "..."} or {"error": "..."}.
	if msg, ok := apiErr.Body["message"].(string); ok {
		apiErr.Message = msg
	} else if msg, ok := apiErr.Body["error"].(string); ok {
		apiErr.Message = msg
	}
	return apiErr
}
