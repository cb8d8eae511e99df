package models

import "time"

// StoredResponse is the last answer given in a voice session, kept so the
// user can ask for it to be repeated.
type StoredResponse struct {
	SessionID string    `json:"sessionId" msgpack:"session_id"`
	Locale    string    `json:"locale" msgpack:"locale"`
	Command   string    `json:"command" msgpack:"command"`
	Intent    string    `json:"intent" msgpack:"intent"`
	Response  string    `json:"response" msgpack:"response"`
	Speech    string    `json:"speech" msgpack:"speech"`
	CreatedAt time.Time `json:"createdAt" msgpack:"created_at"`
}
