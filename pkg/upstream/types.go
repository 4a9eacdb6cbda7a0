package upstream

import "encoding/json"

// User is the subset of the upstream user record the gateway inspects.
type User struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
}

// UserPage is one page of the paginated users listing.
type UserPage struct {
	Users []User `json:"users"`
}

// Issue is the subset of the upstream issue record the gateway inspects.
// The full payload is passed through to callers untouched.
type Issue struct {
	ID  json.Number `json:"id"`
	Key string      `json:"key"`
}

// IssueEnvelope is the nested shape upstream uses for single-issue responses.
type IssueEnvelope struct {
	Issue Issue `json:"issue"`
}
