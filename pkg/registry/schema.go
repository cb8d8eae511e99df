// pkg/registry/schema.go
package registry

import (
	"fmt"
	"time"

	"voice-assistant/internal/common/validation"
)

// ActivityRegistry lists the job types this service implements and the
// payloads they accept.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// InputValidator compiles the activity's input schema.
func (a *Activity) InputValidator() (*validation.Validator, error) {
	if len(a.InputSchema) == 0 {
		return nil, fmt.Errorf("activity %s has no input schema", a.ID)
	}
	return validation.Compile(a.InputSchema)
}

// OutputValidator compiles the activity's output schema.
func (a *Activity) OutputValidator() (*validation.Validator, error) {
	if len(a.OutputSchema) == 0 {
		return nil, fmt.Errorf("activity %s has no output schema", a.ID)
	}
	return validation.Compile(a.OutputSchema)
}

// TimeoutDuration parses Timeout, falling back to def when it is empty or
// malformed.
func (a *Activity) TimeoutDuration(def time.Duration) time.Duration {
	if d, err := time.ParseDuration(a.Timeout); err == nil && d > 0 {
		return d
	}
	return def
}
