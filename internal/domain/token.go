package domain

import "strings"

type TokenStatus string

const (
	TokenOK      TokenStatus = "OK"
	TokenInvalid TokenStatus = "INVALID"
	TokenError   TokenStatus = "ERROR"
)

// TokenFieldError is one element-level validation failure reported by the
// card widget.
type TokenFieldError struct {
	Field   string
	Message string
	Kind    string
}

// TokenResult is the outcome of one tokenize call. Tokens are single-use
// under the payment processor's contract; results are never cached.
type TokenResult struct {
	Status TokenStatus
	Token  string
	Errors []TokenFieldError
}

func (r TokenResult) OK() bool {
	return r.Status == TokenOK && r.Token != ""
}

// Message joins the element-level error messages into one user-facing
// string, falling back to a generic message when the upstream error list
// is empty.
func (r TokenResult) Message() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	if len(msgs) == 0 {
		return "Card tokenization failed"
	}
	return strings.Join(msgs, ", ")
}
