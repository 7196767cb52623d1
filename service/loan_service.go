package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"emi-calculator/calculator"
	"emi-calculator/domain"
	"emi-calculator/logger"
	"emi-calculator/metrics"
	"emi-calculator/repository"
)

type LoanService struct {
	cache  repository.CacheRepository
	logger logger.Logger
	ttl    time.Duration
}

// NewLoanService creates a LoanService. A nil cache disables caching.
func NewLoanService(
	cache repository.CacheRepository,
	log logger.Logger,
	ttl time.Duration,
) *LoanService {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &LoanService{
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"component": "loan_service"}),
		ttl:    ttl,
	}
}

// CalculateLoan returns the EMI result for input, serving repeated inputs from
// the cache. Cache failures are logged and never fail the calculation.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {
	start := time.Now()
	defer func() {
		metrics.CalculationDuration.Observe(time.Since(start).Seconds())
	}()

	key := cacheKey(input)

	if result, ok := s.lookup(ctx, key); ok {
		metrics.CalculationsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
		return result, nil
	}

	result, err := calculator.ComputeInput(input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.CalculationsTotal.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		}
		s.logger.WithError(err).Debug("calculation rejected", nil)
		return domain.LoanResult{}, err
	}
	metrics.CalculationsTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	s.store(ctx, key, result)

	return result, nil
}

func (s *LoanService) lookup(ctx context.Context, key string) (domain.LoanResult, bool) {
	if s.cache == nil {
		return domain.LoanResult{}, false
	}

	val, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheError).Inc()
		s.logger.WithError(err).Warn("cache lookup failed", map[string]interface{}{"key": key})
		return domain.LoanResult{}, false
	}
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheMiss).Inc()
		return domain.LoanResult{}, false
	}

	var result domain.LoanResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheError).Inc()
		s.logger.WithError(err).Warn("discarding corrupt cache entry", map[string]interface{}{"key": key})
		return domain.LoanResult{}, false
	}

	metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheHit).Inc()
	return result, true
}

func (s *LoanService) store(ctx context.Context, key string, result domain.LoanResult) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode result for cache", nil)
		return
	}

	// not critical if it fails
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		s.logger.WithError(err).Warn("failed to cache calculation", map[string]interface{}{"key": key})
	}
}

func cacheKey(input domain.LoanInput) string {
	return cacheKeyPrefix +
		strconv.FormatFloat(input.Principal, 'g', -1, 64) + ":" +
		strconv.FormatFloat(input.AnnualRatePercent, 'g', -1, 64) + ":" +
		strconv.FormatFloat(input.TermYears, 'g', -1, 64)
}
