package services

import (
	"context"
	"errors"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/cache"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/events"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/metrics"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"go.uber.org/zap"
)

// DefaultCacheTTL is how long a persisted settings read stays cached
const DefaultCacheTTL = 5 * time.Minute

var _ SettingsService = (*SettingsServiceImpl)(nil)

// SettingsServiceImpl implements SettingsService on top of a repository and
// an advisory read cache. The repository is always the source of truth.
type SettingsServiceImpl struct {
	settingsRepo repositories.SettingsRepository
	cache        cache.Cache[models.CachedSettings]
	ttl          time.Duration
	metrics      *metrics.SettingsMetrics
	logger       *zap.Logger
	publisher    events.Publisher
	now          func() time.Time
}

// NewSettingsService creates a new SettingsServiceImpl. A non-positive ttl
// selects DefaultCacheTTL; nil metrics and logger are allowed.
func NewSettingsService(
	settingsRepo repositories.SettingsRepository,
	settingsCache cache.Cache[models.CachedSettings],
	ttl time.Duration,
	m *metrics.SettingsMetrics,
	logger *zap.Logger,
) *SettingsServiceImpl {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsServiceImpl{
		settingsRepo: settingsRepo,
		cache:        settingsCache,
		ttl:          ttl,
		metrics:      m,
		logger:       logger,
		publisher:    events.Nop{},
		now:          time.Now,
	}
}

// SetPublisher routes settings change events to p. A nil p disables them.
func (s *SettingsServiceImpl) SetPublisher(p events.Publisher) {
	if p == nil {
		p = events.Nop{}
	}
	s.publisher = p
}

func cacheKey(tenantID string, category models.Category) string {
	return tenantID + ":" + string(category)
}

func validCategory(category models.Category) bool {
	_, ok := models.ParseCategory(string(category))
	return ok
}

// Get retrieves the effective settings for a tenant and category
func (s *SettingsServiceImpl) Get(ctx context.Context, tenantID string, category models.Category) (*models.SettingsResult, error) {
	if !validCategory(category) {
		return nil, ErrInvalidCategory
	}

	key := cacheKey(tenantID, category)
	if entry, ok := s.cache.Get(key); ok {
		// An entry without a document is corrupt and counts as a miss
		if entry.Settings != nil && s.now().Sub(entry.Timestamp) < s.ttl {
			s.metrics.RecordCacheHit(string(category))
			return &models.SettingsResult{
				Category:  category,
				Settings:  entry.Settings.Clone(),
				UpdatedAt: entry.UpdatedAt,
				FromCache: true,
			}, nil
		}
		s.cache.Delete(key)
	}
	s.metrics.RecordCacheMiss(string(category))

	record, err := s.settingsRepo.FindByTenantAndCategory(ctx, tenantID, category)
	if errors.Is(err, repositories.ErrNotFound) {
		// Defaults are not cached, only persisted reads are
		return &models.SettingsResult{
			Category:  category,
			Settings:  DefaultSettings(category),
			IsDefault: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, models.CachedSettings{
		Settings:  record.Settings.Clone(),
		UpdatedAt: record.UpdatedAt,
		Timestamp: s.now(),
	}, s.ttl)

	return &models.SettingsResult{
		Category:  category,
		Settings:  record.Settings.Clone(),
		UpdatedAt: record.UpdatedAt,
	}, nil
}

// GetAll retrieves the effective settings for every category in enumeration order
func (s *SettingsServiceImpl) GetAll(ctx context.Context, tenantID string) ([]*models.SettingsResult, error) {
	results := make([]*models.SettingsResult, 0, len(models.Categories))
	for _, category := range models.Categories {
		result, err := s.Get(ctx, tenantID, category)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Put validates and stores a settings document, replacing any previous one
func (s *SettingsServiceImpl) Put(ctx context.Context, tenantID, userID string, category models.Category, document interface{}) (*models.SettingsResult, error) {
	if !validCategory(category) {
		return nil, ErrInvalidCategory
	}

	var doc models.Document
	switch d := document.(type) {
	case map[string]interface{}:
		doc = models.Document(d)
	case models.Document:
		doc = d
	}
	if doc == nil {
		return nil, ErrInvalidFormat
	}
	doc = doc.Clone()

	if err := ValidateSettings(category, doc); err != nil {
		s.metrics.RecordValidationFailure(string(category))
		s.logger.Debug("settings rejected",
			zap.String("tenant_id", tenantID),
			zap.String("category", string(category)),
			zap.Error(err))
		return nil, err
	}

	record, err := s.settingsRepo.Upsert(ctx, tenantID, category, doc, userID)
	if err != nil {
		return nil, err
	}
	// Evict only after the write is durable; the next Get re-caches
	s.cache.Delete(cacheKey(tenantID, category))
	s.metrics.RecordWrite(string(category))

	s.logger.Info("settings updated",
		zap.String("tenant_id", tenantID),
		zap.String("category", string(category)),
		zap.String("updated_by", userID))

	// Subscribers only drop stale copies, so a lost event is logged, not returned
	event := events.SettingsChanged{
		TenantID:  tenantID,
		Category:  category,
		UpdatedBy: userID,
		UpdatedAt: record.UpdatedAt,
	}
	if err := s.publisher.PublishSettingsChanged(ctx, event); err != nil {
		s.logger.Warn("failed to publish settings event",
			zap.String("tenant_id", tenantID),
			zap.String("category", string(category)),
			zap.Error(err))
	}

	return &models.SettingsResult{
		Category:  category,
		Settings:  record.Settings.Clone(),
		UpdatedAt: record.UpdatedAt,
	}, nil
}
