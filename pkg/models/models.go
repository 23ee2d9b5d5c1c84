package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// SearchHeadphonesRequest represents a catalog search
type SearchHeadphonesRequest struct {
	Query string `query:"q" maxLength:"200" doc:"Case-insensitive substring of the headphone name; empty lists the whole catalog"`
}

// HeadphoneEntry is a catalog entry as returned by the API
type HeadphoneEntry struct {
	HeadphoneRef
	DisplayType string `json:"display_type" doc:"Human-readable form factor"`
	Locator     string `json:"locator" doc:"Correction-curve document address"`
}

// SearchHeadphonesResponse represents the catalog search results
type SearchHeadphonesResponse struct {
	Body struct {
		Headphones []HeadphoneEntry `json:"headphones" doc:"Matching catalog entries"`
	}
}

// GetCorrectionRequest represents a request to compute a correction profile
type GetCorrectionRequest struct {
	Body HeadphoneRef
}

// CorrectionResponseBody is the body of a successful correction
type CorrectionResponseBody struct {
	LookupID  string       `json:"lookup_id,omitempty" doc:"Identifier of the recorded lookup"`
	Headphone HeadphoneRef `json:"headphone" doc:"Requested headphone"`
	Locator   string       `json:"locator" doc:"Correction-curve document address"`
	Bands     []BandGain   `json:"bands" doc:"Band gains aligned with the target grid"`
	Gains     BandProfile  `json:"gains" doc:"Band gains in dB, 32 Hz to 16 kHz"`
}

// GetCorrectionResponse represents the computed correction profile
type GetCorrectionResponse struct {
	Body CorrectionResponseBody
}

// BatchCorrectionRequest represents a request for several profiles at once
type BatchCorrectionRequest struct {
	Body struct {
		Headphones []HeadphoneRef `json:"headphones" minItems:"1" maxItems:"50" doc:"Headphones to correct"`
	}
}

// BatchCorrectionItem is the outcome for one headphone in a batch
type BatchCorrectionItem struct {
	Headphone HeadphoneRef `json:"headphone" doc:"Requested headphone"`
	Locator   string       `json:"locator" doc:"Correction-curve document address"`
	Gains     *BandProfile `json:"gains,omitempty" doc:"Band gains in dB when the lookup succeeded"`
	ErrorKind string       `json:"error_kind,omitempty" doc:"Failure classification"`
	Error     string       `json:"error,omitempty" doc:"Human-readable failure message"`
}

// BatchCorrectionResponse represents the per-headphone batch outcomes
type BatchCorrectionResponse struct {
	Body struct {
		Results []BatchCorrectionItem `json:"results" doc:"Outcomes in request order"`
	}
}

// ListLookupsRequest represents a request for recent lookups
type ListLookupsRequest struct {
	Limit int `query:"limit" minimum:"0" maximum:"500" doc:"Maximum number of lookups to return; 0 uses the server default"`
}

// ListLookupsResponse represents recent lookups, newest first
type ListLookupsResponse struct {
	Body struct {
		Lookups []*Lookup `json:"lookups" doc:"Recorded lookups, newest first"`
	}
}

// GetLookupRequest represents a request for a recorded lookup
type GetLookupRequest struct {
	ID string `path:"id" doc:"Lookup ID"`
}

// GetLookupResponse represents a recorded lookup
type GetLookupResponse struct {
	Body *Lookup
}
