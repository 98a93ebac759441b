package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"career_compass_v2/internal/domain/repository"

	"github.com/gosimple/slug"
)

// TipGenerator is the external generative-text collaborator. A nil generator
// means no provider is configured and the static fallback is used.
type TipGenerator interface {
	GenerateTips(ctx context.Context, strand string) (string, error)
}

// TipsService proxies career-tip requests for an academic strand. It never
// fails: collaborator errors, cache errors, and empty responses all collapse
// into a static fallback sentence.
type TipsService struct {
	generator TipGenerator
	cache     repository.TipsCache
	cacheTTL  time.Duration
}

func NewTipsService(generator TipGenerator, cache repository.TipsCache, cacheTTL time.Duration) *TipsService {
	return &TipsService{
		generator: generator,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// StrandTips returns guidance text for a strand. The strand name is an
// opaque label; it is slugified only to form a stable cache key.
func (s *TipsService) StrandTips(ctx context.Context, strand string) string {
	name := strings.TrimSpace(strand)
	if name == "" {
		name = "General Academic"
	}
	key := slug.Make(name)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			return cached
		}
	}

	if s.generator == nil {
		return fallbackTips(name)
	}

	tips, err := s.generator.GenerateTips(ctx, name)
	if err != nil || strings.TrimSpace(tips) == "" {
		if err != nil {
			log.Printf("tip generation for %q failed: %v", name, err)
		}
		return fallbackTips(name)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, tips, s.cacheTTL); err != nil {
			log.Printf("failed to cache tips for %q: %v", name, err)
		}
	}
	return tips
}

func fallbackTips(strand string) string {
	return fmt.Sprintf("Explore careers in %s. It offers great opportunities!", strand)
}
