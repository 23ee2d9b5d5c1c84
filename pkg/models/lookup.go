package models

import (
	"time"
)

// Lookup status values
const (
	LookupSucceeded = "succeeded"
	LookupFailed    = "failed"
)

// Lookup records the outcome of one correction request
type Lookup struct {
	ID           string       `json:"id" doc:"Lookup unique identifier"`
	Name         string       `json:"name" doc:"Headphone model name"`
	Source       string       `json:"source" doc:"Measurement source"`
	Category     Category     `json:"category" doc:"Headphone form factor"`
	Locator      string       `json:"locator" doc:"Document address that was fetched"`
	Status       string       `json:"status" enum:"succeeded,failed" doc:"Lookup outcome"`
	ErrorKind    *string      `json:"error_kind,omitempty" doc:"Failure classification"`
	ErrorMessage *string      `json:"error_message,omitempty" doc:"Human-readable failure message"`
	Bands        *BandProfile `json:"bands,omitempty" doc:"Resulting band gains in dB"`
	CreatedAt    time.Time    `json:"created_at" doc:"When the lookup completed"`
}
