package api

import (
	"net/http"

	"github.com/RMahshie/soundmax/internal/api/handlers"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, correctionHandler *handlers.CorrectionHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "searchHeadphones",
		Method:      http.MethodGet,
		Path:        "/api/headphones",
		Summary:     "Search headphones",
		Description: "Searches the headphone catalog by case-insensitive name substring",
		Tags:        []string{"Catalog"},
	}, correctionHandler.SearchHeadphones)

	huma.Register(api, huma.Operation{
		OperationID: "getCorrection",
		Method:      http.MethodPost,
		Path:        "/api/corrections",
		Summary:     "Compute a correction profile",
		Description: "Fetches the headphone's GraphicEQ curve and resamples it onto the 10-band grid",
		Tags:        []string{"Correction"},
	}, correctionHandler.GetCorrection)

	huma.Register(api, huma.Operation{
		OperationID: "batchCorrection",
		Method:      http.MethodPost,
		Path:        "/api/corrections/batch",
		Summary:     "Compute several correction profiles",
		Description: "Runs independent correction lookups; each item carries its own result or error",
		Tags:        []string{"Correction"},
	}, correctionHandler.BatchCorrection)

	huma.Register(api, huma.Operation{
		OperationID: "listLookups",
		Method:      http.MethodGet,
		Path:        "/api/lookups",
		Summary:     "List recent lookups",
		Description: "Returns recorded correction lookups, newest first",
		Tags:        []string{"Lookups"},
	}, correctionHandler.ListLookups)

	huma.Register(api, huma.Operation{
		OperationID: "getLookup",
		Method:      http.MethodGet,
		Path:        "/api/lookups/{id}",
		Summary:     "Get a lookup",
		Description: "Returns one recorded correction lookup",
		Tags:        []string{"Lookups"},
	}, correctionHandler.GetLookup)
}
