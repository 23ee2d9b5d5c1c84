package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RMahshie/soundmax/internal/catalog"
	"github.com/RMahshie/soundmax/internal/processing"
	"github.com/RMahshie/soundmax/internal/repository"
	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CorrectionHandler handles headphone correction HTTP requests
type CorrectionHandler struct {
	catalog          *catalog.Catalog
	correctionSvc    processing.CorrectionService
	lookups          repository.LookupRepository
	batchConcurrency int
	listLimit        int
}

// Options holds handler tunables
type Options struct {
	BatchConcurrency int
	ListLimit        int
}

// NewCorrectionHandler creates a new correction handler
func NewCorrectionHandler(cat *catalog.Catalog, correctionSvc processing.CorrectionService, lookups repository.LookupRepository, opts Options) *CorrectionHandler {
	if opts.ListLimit <= 0 {
		opts.ListLimit = 50
	}
	return &CorrectionHandler{
		catalog:          cat,
		correctionSvc:    correctionSvc,
		lookups:          lookups,
		batchConcurrency: opts.BatchConcurrency,
		listLimit:        opts.ListLimit,
	}
}

// SearchHeadphones returns catalog entries matching the query
func (h *CorrectionHandler) SearchHeadphones(ctx context.Context, req *models.SearchHeadphonesRequest) (*models.SearchHeadphonesResponse, error) {
	matches := h.catalog.Search(req.Query)

	resp := &models.SearchHeadphonesResponse{}
	resp.Body.Headphones = make([]models.HeadphoneEntry, 0, len(matches))
	for _, ref := range matches {
		resp.Body.Headphones = append(resp.Body.Headphones, models.HeadphoneEntry{
			HeadphoneRef: ref,
			DisplayType:  ref.Category.DisplayName(),
			Locator:      h.correctionSvc.Locator(ref).String(),
		})
	}

	log.Info().Str("query", req.Query).Int("matches", len(matches)).Msg("Catalog search")
	return resp, nil
}

// GetCorrection fetches and resamples the correction curve for one headphone
func (h *CorrectionHandler) GetCorrection(ctx context.Context, req *models.GetCorrectionRequest) (*models.GetCorrectionResponse, error) {
	ref, err := normalizeRef(req.Body)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid headphone", err)
	}

	res, err := h.correctionSvc.GetCorrection(ctx, ref)
	if err != nil {
		return nil, statusError(err)
	}

	grid := models.TargetGrid()
	return &models.GetCorrectionResponse{
		Body: models.CorrectionResponseBody{
			LookupID:  res.LookupID,
			Headphone: ref,
			Locator:   res.Locator.String(),
			Bands:     res.Profile.Bands(grid),
			Gains:     res.Profile,
		},
	}, nil
}

// BatchCorrection computes profiles for several headphones independently
func (h *CorrectionHandler) BatchCorrection(ctx context.Context, req *models.BatchCorrectionRequest) (*models.BatchCorrectionResponse, error) {
	refs := make([]models.HeadphoneRef, len(req.Body.Headphones))
	for i, raw := range req.Body.Headphones {
		ref, err := normalizeRef(raw)
		if err != nil {
			return nil, huma.Error400BadRequest(fmt.Sprintf("Invalid headphone at index %d", i), err)
		}
		refs[i] = ref
	}

	results := h.correctionSvc.GetCorrections(ctx, refs, h.batchConcurrency)

	resp := &models.BatchCorrectionResponse{}
	resp.Body.Results = make([]models.BatchCorrectionItem, len(results))
	failed := 0
	for i, res := range results {
		item := models.BatchCorrectionItem{
			Headphone: res.Ref,
			Locator:   res.Locator.String(),
		}
		if res.Err != nil {
			failed++
			item.ErrorKind, item.Error = describe(res.Err)
		} else {
			profile := res.Profile
			item.Gains = &profile
		}
		resp.Body.Results[i] = item
	}

	log.Info().Int("requested", len(refs)).Int("failed", failed).Msg("Batch correction finished")
	return resp, nil
}

// ListLookups returns the most recent lookups
func (h *CorrectionHandler) ListLookups(ctx context.Context, req *models.ListLookupsRequest) (*models.ListLookupsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = h.listLimit
	}

	lookups, err := h.lookups.ListRecent(ctx, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list lookups", err)
	}

	resp := &models.ListLookupsResponse{}
	resp.Body.Lookups = lookups
	if resp.Body.Lookups == nil {
		resp.Body.Lookups = []*models.Lookup{}
	}
	return resp, nil
}

// GetLookup returns one recorded lookup
func (h *CorrectionHandler) GetLookup(ctx context.Context, req *models.GetLookupRequest) (*models.GetLookupResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid lookup ID", err)
	}

	lookup, err := h.lookups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLookupNotFound) {
			return nil, huma.Error404NotFound("Lookup not found", err)
		}
		return nil, huma.Error500InternalServerError("Failed to get lookup", err)
	}

	return &models.GetLookupResponse{Body: lookup}, nil
}

func normalizeRef(ref models.HeadphoneRef) (models.HeadphoneRef, error) {
	category, err := models.ParseCategory(string(ref.Category))
	if err != nil {
		return ref, err
	}
	ref.Name = strings.TrimSpace(ref.Name)
	ref.Source = strings.TrimSpace(ref.Source)
	ref.Category = category
	if ref.Name == "" || ref.Source == "" {
		return ref, errors.New("name and source are required")
	}
	return ref, nil
}

// statusError maps a correction failure onto an HTTP status
func statusError(err error) error {
	var corrErr *processing.Error
	if !errors.As(err, &corrErr) {
		return huma.Error500InternalServerError("Correction failed", err)
	}

	log.Error().Err(err).Str("kind", string(corrErr.Kind)).Msg("Correction request failed")

	msg := corrErr.Message()
	switch corrErr.Kind {
	case processing.KindInvalidLocator:
		return huma.Error400BadRequest(msg, err)
	case processing.KindDocumentNotFound:
		return huma.Error404NotFound(msg, err)
	case processing.KindMissingHeader, processing.KindNoSamples:
		return huma.Error422UnprocessableEntity(msg, err)
	default:
		return huma.Error502BadGateway(msg, err)
	}
}

func describe(err error) (kind, message string) {
	var corrErr *processing.Error
	if errors.As(err, &corrErr) {
		return string(corrErr.Kind), corrErr.Message()
	}
	return "", err.Error()
}
