package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/logging"
	"github.com/dmitrijs2005/bookwise/internal/server/booklist"
	"github.com/dmitrijs2005/bookwise/internal/server/cache"
	"github.com/dmitrijs2005/bookwise/internal/server/llm"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
)

// Model call outcomes reported to a ModelObserver.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeMalformed   = "malformed"
)

// ModelObserver records model calls (metrics).
type ModelObserver interface {
	ObserveModelCall(outcome string, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveModelCall(string, time.Duration) {}

// RecommendationService turns a free-text query into a validated book list.
// Each call runs strictly in order: validate the query, build the prompt,
// call the model once, parse the answer. A failing step ends the call and
// the model is never retried. With a cache, valid answers are kept per
// normalised query and served without a model call until they expire;
// failures are never cached.
type RecommendationService struct {
	model    llm.Model
	timeout  time.Duration
	logger   logging.Logger
	observer ModelObserver
	cache    *cache.TTL[[]models.Book]
}

// RecommendationOption configures a RecommendationService.
type RecommendationOption func(*RecommendationService)

// WithResultCache keeps valid results for ttl, at most size queries. A
// non-positive ttl leaves caching off.
func WithResultCache(ttl time.Duration, size int) RecommendationOption {
	return func(s *RecommendationService) {
		if ttl > 0 {
			s.cache = cache.NewTTL[[]models.Book](ttl, size)
		}
	}
}

func NewRecommendationService(model llm.Model, timeout time.Duration, logger logging.Logger, observer ModelObserver, opts ...RecommendationOption) *RecommendationService {
	if observer == nil {
		observer = nopObserver{}
	}
	s := &RecommendationService{
		model:    model,
		timeout:  timeout,
		logger:   logger.With("module", "recommendations"),
		observer: observer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend returns up to q.Count books for user, or one of
// ErrInvalidQuery, ErrModelUnavailable, ErrMalformedModelOutput,
// ErrorInternal.
func (s *RecommendationService) Recommend(ctx context.Context, user *models.User, q models.RecommendationQuery) ([]models.Book, error) {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return nil, common.ErrInvalidQuery
	}
	if q.Count == 0 {
		q.Count = models.DefaultRecommendationCount
	}
	if q.Count < 1 || q.Count > models.MaxRecommendationCount || !q.Filters.Valid() {
		return nil, common.ErrInvalidQuery
	}

	key := queryKey(q)
	if s.cache != nil {
		if books, ok := s.cache.Get(key); ok {
			s.logger.Debug(ctx, "recommendations served from cache", "user", user.UserName, "count", len(books))
			return slices.Clone(books), nil
		}
	}

	prompt, err := booklist.BuildPrompt(q)
	if err != nil {
		s.logger.Error(ctx, "prompt build failed", "error", err)
		return nil, common.ErrorInternal
	}

	raw, elapsed, err := s.complete(ctx, prompt)
	if err != nil {
		s.observer.ObserveModelCall(OutcomeUnavailable, elapsed)
		s.logger.Warn(ctx, "model call failed", "user", user.UserName, "elapsed", elapsed, "error", err)
		return nil, common.ErrModelUnavailable
	}

	switch r := booklist.Parse(raw).(type) {
	case booklist.Valid:
		s.observer.ObserveModelCall(OutcomeOK, elapsed)
		books := r.Books
		if len(books) > q.Count {
			books = books[:q.Count]
		}
		if s.cache != nil {
			s.cache.Set(key, slices.Clone(books))
		}
		s.logger.Info(ctx, "recommendations served", "user", user.UserName, "count", len(books), "elapsed", elapsed)
		return books, nil
	case booklist.Invalid:
		s.observer.ObserveModelCall(OutcomeMalformed, elapsed)
		s.logger.Warn(ctx, "model output rejected", "user", user.UserName, "reason", r.Reason, "bytes", len(raw))
		return nil, common.ErrMalformedModelOutput
	default:
		return nil, common.ErrorInternal
	}
}

func (s *RecommendationService) complete(ctx context.Context, prompt string) (string, time.Duration, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	raw, err := s.model.Complete(ctx, prompt)
	return raw, time.Since(start), err
}

// queryKey identifies a validated query for caching. Text is compared
// case-insensitively.
func queryKey(q models.RecommendationQuery) string {
	b, _ := json.Marshal(struct {
		Text    string                       `json:"text"`
		Count   int                          `json:"count"`
		Filters models.RecommendationFilters `json:"filters"`
	}{strings.ToLower(q.Text), q.Count, q.Filters})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
