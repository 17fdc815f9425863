package shared

import (
	"encoding/json"
	"net/http"
)

// Validatable is implemented by request payloads that check their own
// presence rules.
type Validatable interface {
	Validate() error
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest runs the payload's own validation rules.
func ValidateRequest(v Validatable) error {
	if v == nil {
		return nil
	}
	return v.Validate()
}
