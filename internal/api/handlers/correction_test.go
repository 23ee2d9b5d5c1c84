package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RMahshie/soundmax/internal/catalog"
	"github.com/RMahshie/soundmax/internal/curve"
	"github.com/RMahshie/soundmax/internal/fetcher"
	"github.com/RMahshie/soundmax/internal/processing"
	"github.com/RMahshie/soundmax/internal/repository"
	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCorrectionService implements processing.CorrectionService for testing
type MockCorrectionService struct {
	mock.Mock
}

func (m *MockCorrectionService) GetCorrection(ctx context.Context, ref models.HeadphoneRef) (processing.Result, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(processing.Result), args.Error(1)
}

func (m *MockCorrectionService) GetCorrectionAsync(ctx context.Context, ref models.HeadphoneRef) <-chan processing.Result {
	args := m.Called(ctx, ref)
	return args.Get(0).(<-chan processing.Result)
}

func (m *MockCorrectionService) GetCorrections(ctx context.Context, refs []models.HeadphoneRef, limit int) []processing.Result {
	args := m.Called(ctx, refs, limit)
	return args.Get(0).([]processing.Result)
}

func (m *MockCorrectionService) Locator(ref models.HeadphoneRef) models.Locator {
	return curve.BuildLocator(ref)
}

// MockLookupRepository implements repository.LookupRepository for testing
type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) Create(ctx context.Context, lookup *models.Lookup) error {
	args := m.Called(ctx, lookup)
	return args.Error(0)
}

func (m *MockLookupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lookup, error) {
	args := m.Called(ctx, id)
	lookup, _ := args.Get(0).(*models.Lookup)
	return lookup, args.Error(1)
}

func (m *MockLookupRepository) ListRecent(ctx context.Context, limit int) ([]*models.Lookup, error) {
	args := m.Called(ctx, limit)
	lookups, _ := args.Get(0).([]*models.Lookup)
	return lookups, args.Error(1)
}

var hd600 = models.HeadphoneRef{Name: "Sennheiser HD 600", Source: "oratory1990", Category: models.CategoryOverEar}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestSearchHeadphones(t *testing.T) {
	handler := NewCorrectionHandler(catalog.Default(), &MockCorrectionService{}, &MockLookupRepository{}, Options{})

	resp, err := handler.SearchHeadphones(context.Background(), &models.SearchHeadphonesRequest{Query: "hd 600"})

	require.NoError(t, err)
	require.Len(t, resp.Body.Headphones, 1)
	entry := resp.Body.Headphones[0]
	assert.Equal(t, hd600, entry.HeadphoneRef)
	assert.Equal(t, "Over-ear", entry.DisplayType)
	assert.Equal(t, curve.BuildLocator(hd600).String(), entry.Locator)

	resp, err = handler.SearchHeadphones(context.Background(), &models.SearchHeadphonesRequest{Query: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Body.Headphones)
	assert.Empty(t, resp.Body.Headphones)
}

func TestGetCorrection(t *testing.T) {
	profile := models.BandProfile{1, 0.5, 0.4, 0.3, 0.1, 0, -0.5, -1, -1.5, -2}

	tests := []struct {
		name      string
		input     models.HeadphoneRef
		mockSetup func(*MockCorrectionService)
		wantCode  int
	}{
		{
			name:  "success",
			input: hd600,
			mockSetup: func(m *MockCorrectionService) {
				m.On("GetCorrection", mock.Anything, hd600).
					Return(processing.Result{Ref: hd600, Locator: curve.BuildLocator(hd600), LookupID: "abc", Profile: profile}, nil)
			},
		},
		{
			name:  "input is normalized",
			input: models.HeadphoneRef{Name: "  Sennheiser HD 600 ", Source: "oratory1990", Category: "Over-Ear"},
			mockSetup: func(m *MockCorrectionService) {
				m.On("GetCorrection", mock.Anything, hd600).
					Return(processing.Result{Ref: hd600, Profile: profile}, nil)
			},
		},
		{
			name:      "unknown category",
			input:     models.HeadphoneRef{Name: "X", Source: "y", Category: "bone"},
			mockSetup: func(m *MockCorrectionService) {},
			wantCode:  400,
		},
		{
			name:      "blank name",
			input:     models.HeadphoneRef{Name: " ", Source: "y", Category: models.CategoryInEar},
			mockSetup: func(m *MockCorrectionService) {},
			wantCode:  400,
		},
		{
			name:  "document not found",
			input: hd600,
			mockSetup: func(m *MockCorrectionService) {
				m.On("GetCorrection", mock.Anything, hd600).Return(processing.Result{},
					&processing.Error{Kind: processing.KindDocumentNotFound, Err: fetcher.ErrDocumentNotFound})
			},
			wantCode: 404,
		},
		{
			name:  "parse failure",
			input: hd600,
			mockSetup: func(m *MockCorrectionService) {
				m.On("GetCorrection", mock.Anything, hd600).Return(processing.Result{},
					&processing.Error{Kind: processing.KindMissingHeader, Err: curve.ErrMissingHeader})
			},
			wantCode: 422,
		},
		{
			name:  "network failure",
			input: hd600,
			mockSetup: func(m *MockCorrectionService) {
				m.On("GetCorrection", mock.Anything, hd600).Return(processing.Result{},
					&processing.Error{Kind: processing.KindNetworkFailure, Err: &fetcher.NetworkError{Err: errors.New("dial tcp: refused")}})
			},
			wantCode: 502,
		},
		{
			name:  "invalid locator",
			input: hd600,
			mockSetup: func(m *MockCorrectionService) {
				m.On("GetCorrection", mock.Anything, hd600).Return(processing.Result{},
					&processing.Error{Kind: processing.KindInvalidLocator, Err: errors.New("bad url")})
			},
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockCorrectionService{}
			tt.mockSetup(mockSvc)
			handler := NewCorrectionHandler(catalog.Default(), mockSvc, &MockLookupRepository{}, Options{})

			resp, err := handler.GetCorrection(context.Background(), &models.GetCorrectionRequest{Body: tt.input})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, statusOf(t, err))
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, hd600, resp.Body.Headphone)
				assert.Equal(t, profile, resp.Body.Gains)
				require.Len(t, resp.Body.Bands, models.BandCount)
				assert.Equal(t, models.BandGain{FrequencyHz: 1000, GainDB: 0}, resp.Body.Bands[5])
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestGetCorrection_ErrorMessage(t *testing.T) {
	mockSvc := &MockCorrectionService{}
	mockSvc.On("GetCorrection", mock.Anything, hd600).Return(processing.Result{},
		&processing.Error{Kind: processing.KindDocumentNotFound, Err: fetcher.ErrDocumentNotFound})
	handler := NewCorrectionHandler(catalog.Default(), mockSvc, &MockLookupRepository{}, Options{})

	_, err := handler.GetCorrection(context.Background(), &models.GetCorrectionRequest{Body: hd600})

	var model *huma.ErrorModel
	require.ErrorAs(t, err, &model)
	assert.Equal(t, "EQ data not found for this headphone", model.Detail)
}

func TestBatchCorrection(t *testing.T) {
	missing := models.HeadphoneRef{Name: "Missing", Source: "oratory1990", Category: models.CategoryOnEar}
	mockSvc := &MockCorrectionService{}
	mockSvc.On("GetCorrections", mock.Anything, []models.HeadphoneRef{hd600, missing}, 3).Return([]processing.Result{
		{Ref: hd600, Profile: models.BandProfile{9}},
		{Ref: missing, Err: &processing.Error{Kind: processing.KindDocumentNotFound, Err: fetcher.ErrDocumentNotFound}},
	})
	handler := NewCorrectionHandler(catalog.Default(), mockSvc, &MockLookupRepository{}, Options{BatchConcurrency: 3})

	req := &models.BatchCorrectionRequest{}
	req.Body.Headphones = []models.HeadphoneRef{hd600, missing}
	resp, err := handler.BatchCorrection(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Body.Results, 2)
	require.NotNil(t, resp.Body.Results[0].Gains)
	assert.Equal(t, 9.0, resp.Body.Results[0].Gains[0])
	assert.Empty(t, resp.Body.Results[0].Error)
	assert.Nil(t, resp.Body.Results[1].Gains)
	assert.Equal(t, "document_not_found", resp.Body.Results[1].ErrorKind)
	assert.Equal(t, "EQ data not found for this headphone", resp.Body.Results[1].Error)
	mockSvc.AssertExpectations(t)
}

func TestBatchCorrection_InvalidItem(t *testing.T) {
	mockSvc := &MockCorrectionService{}
	handler := NewCorrectionHandler(catalog.Default(), mockSvc, &MockLookupRepository{}, Options{})

	req := &models.BatchCorrectionRequest{}
	req.Body.Headphones = []models.HeadphoneRef{hd600, {Name: "X", Source: "y", Category: "nope"}}
	_, err := handler.BatchCorrection(context.Background(), req)

	assert.Equal(t, 400, statusOf(t, err))
	mockSvc.AssertNotCalled(t, "GetCorrections", mock.Anything, mock.Anything, mock.Anything)
}

func TestListLookups(t *testing.T) {
	lookups := []*models.Lookup{{ID: uuid.New().String(), Name: "a", Status: models.LookupSucceeded, CreatedAt: time.Now()}}

	t.Run("default limit", func(t *testing.T) {
		mockRepo := &MockLookupRepository{}
		mockRepo.On("ListRecent", mock.Anything, 25).Return(lookups, nil)
		handler := NewCorrectionHandler(catalog.Default(), &MockCorrectionService{}, mockRepo, Options{ListLimit: 25})

		resp, err := handler.ListLookups(context.Background(), &models.ListLookupsRequest{})

		require.NoError(t, err)
		assert.Equal(t, lookups, resp.Body.Lookups)
		mockRepo.AssertExpectations(t)
	})

	t.Run("explicit limit and empty result", func(t *testing.T) {
		mockRepo := &MockLookupRepository{}
		mockRepo.On("ListRecent", mock.Anything, 5).Return(nil, nil)
		handler := NewCorrectionHandler(catalog.Default(), &MockCorrectionService{}, mockRepo, Options{})

		resp, err := handler.ListLookups(context.Background(), &models.ListLookupsRequest{Limit: 5})

		require.NoError(t, err)
		assert.NotNil(t, resp.Body.Lookups)
		assert.Empty(t, resp.Body.Lookups)
	})

	t.Run("repository failure", func(t *testing.T) {
		mockRepo := &MockLookupRepository{}
		mockRepo.On("ListRecent", mock.Anything, 50).Return(nil, assert.AnError)
		handler := NewCorrectionHandler(catalog.Default(), &MockCorrectionService{}, mockRepo, Options{})

		_, err := handler.ListLookups(context.Background(), &models.ListLookupsRequest{})

		assert.Equal(t, 500, statusOf(t, err))
	})
}

func TestGetLookup(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		id        string
		mockSetup func(*MockLookupRepository)
		wantCode  int
	}{
		{
			name: "found",
			id:   id.String(),
			mockSetup: func(m *MockLookupRepository) {
				m.On("GetByID", mock.Anything, id).Return(&models.Lookup{ID: id.String()}, nil)
			},
		},
		{
			name:      "invalid id",
			id:        "not-a-uuid",
			mockSetup: func(m *MockLookupRepository) {},
			wantCode:  400,
		},
		{
			name: "not found",
			id:   id.String(),
			mockSetup: func(m *MockLookupRepository) {
				m.On("GetByID", mock.Anything, id).Return(nil, repository.ErrLookupNotFound)
			},
			wantCode: 404,
		},
		{
			name: "repository failure",
			id:   id.String(),
			mockSetup: func(m *MockLookupRepository) {
				m.On("GetByID", mock.Anything, id).Return(nil, assert.AnError)
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockLookupRepository{}
			tt.mockSetup(mockRepo)
			handler := NewCorrectionHandler(catalog.Default(), &MockCorrectionService{}, mockRepo, Options{})

			resp, err := handler.GetLookup(context.Background(), &models.GetLookupRequest{ID: tt.id})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, statusOf(t, err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, id.String(), resp.Body.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
