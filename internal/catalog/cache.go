package catalog

import (
	"context"
	"encoding/json"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	cacheExpireSeconds = 10 * 60
	megabyte           = 1024 * 1024
	groupsCacheKey     = "groups"
)

//go:generate mockgen -source=$GOFILE -destination=cache_mocks_test.go -package=catalog

type exercisesRepo interface {
	ByMuscleGroup(ctx context.Context, muscleGroup string) ([]Exercise, error)
	MuscleGroups(ctx context.Context) ([]string, error)
}

// CachedRepo fronts the catalog repo with an in-process cache. The catalog
// is reference data, so entries just expire instead of being invalidated.
type CachedRepo struct {
	repo  exercisesRepo
	cache *freecache.Cache
}

func NewCachedRepo(repo exercisesRepo, cacheSizeMB int) *CachedRepo {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 10
	}
	return &CachedRepo{
		repo:  repo,
		cache: freecache.NewCache(cacheSizeMB * megabyte),
	}
}

// groupCacheKey keeps the group as given; the repo matches it exactly.
func groupCacheKey(muscleGroup string) []byte {
	return []byte("group::" + muscleGroup)
}

func (c *CachedRepo) ByMuscleGroup(ctx context.Context, muscleGroup string) ([]Exercise, error) {
	cacheKey := groupCacheKey(muscleGroup)
	var exercises []Exercise
	if c.getCached(cacheKey, &exercises) {
		return exercises, nil
	}

	exercises, err := c.repo.ByMuscleGroup(ctx, muscleGroup)
	if err != nil {
		return nil, err
	}

	// an empty group is not cached, so newly seeded exercises show up right away
	if len(exercises) > 0 {
		c.setCached(cacheKey, exercises)
	}

	return exercises, nil
}

func (c *CachedRepo) MuscleGroups(ctx context.Context) ([]string, error) {
	var groups []string
	if c.getCached([]byte(groupsCacheKey), &groups) {
		return groups, nil
	}

	groups, err := c.repo.MuscleGroups(ctx)
	if err != nil {
		return nil, err
	}

	c.setCached([]byte(groupsCacheKey), groups)
	return groups, nil
}

func (c *CachedRepo) getCached(key []byte, dest any) bool {
	cachedBytes, err := c.cache.Get(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cachedBytes, dest); err != nil {
		log.Errorf("catalog cache, unmarshal %s: %s", key, err)
		return false
	}
	log.Tracef("catalog cache hit: %s", key)
	return true
}

func (c *CachedRepo) setCached(key []byte, value any) {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		log.Errorf("catalog cache, marshal %s: %s", key, err)
		return
	}
	if err := c.cache.Set(key, valueBytes, cacheExpireSeconds); err != nil {
		log.Errorf("catalog cache, set %s: %s", key, err)
	}
}
