package interpretvoicecommand

import "voice-assistant/internal/models"

// Input is the job payload. Snapshot is optional; without it the worker
// loads the records from the database.
type Input struct {
	Command   string           `json:"command"`
	Locale    string           `json:"locale,omitempty"`
	SessionID string           `json:"sessionId,omitempty"`
	Snapshot  *models.Snapshot `json:"snapshot,omitempty"`
}

// Output is merged into the process variables on completion.
type Output struct {
	SessionID  string  `json:"sessionId"`
	Action     string  `json:"action"`
	Locale     string  `json:"locale"`
	Intent     string  `json:"intent,omitempty"`
	Outcome    string  `json:"outcome,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Response   string  `json:"response"`
	Speech     string  `json:"speech"`
	Repeated   bool    `json:"repeated,omitempty"`
	Code       string  `json:"code,omitempty"`
}
