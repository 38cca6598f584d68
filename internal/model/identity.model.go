package model

// Identity is the authenticated principal attached to a request.
type Identity struct {
	Subject       string
	Authenticated bool
	Roles         []string
}
