package kegg

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/enzyme"
	"golang.org/x/text/unicode/norm"
)

// CachedService answers lookups from a cache before asking the wrapped Service.
// Identifiers are normalised with CacheKey and the wrapped Service is asked for the normalised,
// database-qualified identifier, so a cache entry always holds the answer for its own key.
// Marking and image retrieval are never cached.
type CachedService struct {
	Service
	cache cache.Client
}

func NewCachedService(svc Service, c cache.Client) *CachedService {
	return &CachedService{
		Service: svc,
		cache:   c,
	}
}

// CacheKey is the database-qualified identifier, e.g. "ec:1.1.1.1".
func CacheKey(kind enzyme.Kind, id string) string {
	return norm.NFKC.String(kind.Qualify(strings.TrimSpace(id)))
}

func (s *CachedService) LookupPathwaysByEnzyme(ctx context.Context, ecID string) ([]string, error) {
	return s.lookup(ctx, enzyme.EC, ecID, s.Service.LookupPathwaysByEnzyme)
}

func (s *CachedService) LookupPathwaysByKO(ctx context.Context, koID string) ([]string, error) {
	return s.lookup(ctx, enzyme.KO, koID, s.Service.LookupPathwaysByKO)
}

func (s *CachedService) lookup(ctx context.Context, kind enzyme.Kind, id string, fetch func(context.Context, string) ([]string, error)) ([]string, error) {
	key := CacheKey(kind, id)

	lookup, err := s.cache.Get(key)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if lookup != nil {
		log.Ctx(ctx).Debug().Str("key", key).Msg("cache hit")
		return lookup.Pathways, nil
	}

	pathways, err := fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, &cache.Lookup{Pathways: pathways}); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return pathways, nil
}
