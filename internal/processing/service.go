package processing

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/RMahshie/soundmax/internal/curve"
	"github.com/RMahshie/soundmax/internal/fetcher"
	"github.com/RMahshie/soundmax/internal/repository"
	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds concurrent fetches in GetCorrections
const DefaultBatchConcurrency = 4

// Result is the outcome of one correction request
type Result struct {
	Ref      models.HeadphoneRef
	Locator  models.Locator
	LookupID string
	Profile  models.BandProfile
	Err      error
}

type CorrectionService interface {
	GetCorrection(ctx context.Context, ref models.HeadphoneRef) (Result, error)
	GetCorrectionAsync(ctx context.Context, ref models.HeadphoneRef) <-chan Result
	GetCorrections(ctx context.Context, refs []models.HeadphoneRef, limit int) []Result
	Locator(ref models.HeadphoneRef) models.Locator
}

type correctionService struct {
	locators curve.LocatorBuilder
	fetcher  fetcher.Fetcher
	lookups  repository.LookupRepository
	grid     models.Grid
}

// NewCorrectionService wires the pipeline. lookups may be nil, in which
// case outcomes are not recorded.
func NewCorrectionService(locators curve.LocatorBuilder, f fetcher.Fetcher, lookups repository.LookupRepository) CorrectionService {
	return &correctionService{
		locators: locators,
		fetcher:  f,
		lookups:  lookups,
		grid:     models.TargetGrid(),
	}
}

func (s *correctionService) Locator(ref models.HeadphoneRef) models.Locator {
	return s.locators.Build(ref)
}

// GetCorrection runs locate, fetch, parse and resample for ref, stopping at
// the first failure. The returned error is always an *Error. Once issued,
// the fetch and the lookup write ignore cancellation of ctx.
func (s *correctionService) GetCorrection(ctx context.Context, ref models.HeadphoneRef) (Result, error) {
	start := time.Now()
	ctx = context.WithoutCancel(ctx)
	res := s.run(ctx, ref)
	res.LookupID = s.record(ctx, res)

	logEvent := log.Info()
	if res.Err != nil {
		logEvent = log.Warn().Err(res.Err)
	}
	logEvent.
		Str("headphone", ref.Name).
		Str("source", ref.Source).
		Str("category", string(ref.Category)).
		Str("locator", res.Locator.String()).
		Dur("latency", time.Since(start)).
		Msg("Correction lookup finished")

	if res.Err != nil {
		return res, res.Err
	}
	return res, nil
}

func (s *correctionService) run(ctx context.Context, ref models.HeadphoneRef) Result {
	res := Result{Ref: ref}

	// Step 1: Build locator
	res.Locator = s.locators.Build(ref)
	if err := validateLocator(res.Locator); err != nil {
		res.Err = &Error{Kind: KindInvalidLocator, Err: err}
		return res
	}

	// Step 2: Fetch document
	doc, err := s.fetcher.Fetch(ctx, res.Locator)
	if err != nil {
		res.Err = classify(err)
		return res
	}

	// Step 3: Parse samples
	samples, err := curve.Parse(doc)
	if err != nil {
		res.Err = classify(err)
		return res
	}

	// Step 4: Resample onto the band grid
	res.Profile = curve.Resample(samples, s.grid)
	return res
}

// GetCorrectionAsync runs GetCorrection on its own goroutine. The fetch
// always runs to completion; callers that lose interest simply drop the
// channel. Exactly one Result is sent.
func (s *correctionService) GetCorrectionAsync(ctx context.Context, ref models.HeadphoneRef) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		defer close(out)
		res, _ := s.GetCorrection(ctx, ref)
		out <- res
	}()

	return out
}

// GetCorrections runs independent lookups for refs with at most limit in
// flight. Results are index-aligned with refs; a failure in one lookup
// does not affect the others.
func (s *correctionService) GetCorrections(ctx context.Context, refs []models.HeadphoneRef, limit int) []Result {
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	results := make([]Result, len(refs))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, ref := range refs {
		g.Go(func() error {
			results[i], _ = s.GetCorrection(ctx, ref)
			return nil
		})
	}
	_ = g.Wait() // goroutines never fail; errors live in results

	return results
}

// record appends the outcome to the lookup log and returns its ID
func (s *correctionService) record(ctx context.Context, res Result) string {
	if s.lookups == nil {
		return ""
	}

	lookup := &models.Lookup{
		ID:        uuid.New().String(),
		Name:      res.Ref.Name,
		Source:    res.Ref.Source,
		Category:  res.Ref.Category,
		Locator:   res.Locator.String(),
		Status:    models.LookupSucceeded,
		CreatedAt: time.Now(),
	}
	if res.Err != nil {
		lookup.Status = models.LookupFailed
		if e, ok := res.Err.(*Error); ok {
			kind := string(e.Kind)
			msg := e.Message()
			lookup.ErrorKind = &kind
			lookup.ErrorMessage = &msg
		}
	} else {
		profile := res.Profile
		lookup.Bands = &profile
	}

	if err := s.lookups.Create(ctx, lookup); err != nil {
		log.Warn().Err(err).Str("headphone", res.Ref.Name).Msg("Failed to record lookup")
		return ""
	}
	return lookup.ID
}

func validateLocator(locator models.Locator) error {
	u, err := url.ParseRequestURI(locator.String())
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("locator %q has no scheme or host", locator)
	}
	return nil
}
