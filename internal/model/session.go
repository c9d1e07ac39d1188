package model

import "time"

// Session is created once at login and passed through explicitly; downstream
// code never re-derives identity by decoding tokens. UpstreamToken is the
// opaque bearer token the portal issued.
type Session struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	UpstreamToken string    `json:"upstream_token"`
	CreatedAt     time.Time `json:"created_at"`
}
