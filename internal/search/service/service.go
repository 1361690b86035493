package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"skrytki/internal/search/repository"
	"skrytki/internal/search/transport"
	"skrytki/platform/apperr"
	"skrytki/platform/config"
	"skrytki/platform/logger"
)

// Repository is the storage the service searches.
type Repository interface {
	Search(ctx context.Context, f repository.Filter) ([]repository.Record, error)
	EntityURIs(ctx context.Context, id int64) ([]string, error)
}

// ResultCache caches search results. Implementations swallow their own
// failures.
type ResultCache interface {
	Get(ctx context.Context, params transport.SearchParams) ([]transport.AddressRecord, bool)
	Set(ctx context.Context, params transport.SearchParams, records []transport.AddressRecord)
}

type noCache struct{}

func (noCache) Get(context.Context, transport.SearchParams) ([]transport.AddressRecord, bool) {
	return nil, false
}

func (noCache) Set(context.Context, transport.SearchParams, []transport.AddressRecord) {}

type Service struct {
	repo         Repository
	cache        ResultCache
	defaultLimit int
	maxLimit     int
	log          *logger.Logger
}

// New creates the search service. cache may be nil.
func New(repo Repository, cache ResultCache, cfg config.SearchConfig, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	if cache == nil {
		cache = noCache{}
	}
	return &Service{
		repo:         repo,
		cache:        cache,
		defaultLimit: cfg.GetSearchDefaultLimit(),
		maxLimit:     cfg.GetSearchMaxLimit(),
		log:          log,
	}
}

var (
	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	spaceRun    = regexp.MustCompile(`\s+`)
)

// Pattern turns a trimmed user query into an ILIKE pattern: LIKE
// metacharacters are escaped and every run of whitespace matches anything.
func Pattern(query string) string {
	escaped := likeEscaper.Replace(query)
	return "%" + spaceRun.ReplaceAllString(escaped, "%") + "%"
}

// Params resolves the optional request options against the configured
// defaults.
func (s *Service) Params(query string, opts transport.SearchOptions) transport.SearchParams {
	params := transport.SearchParams{
		Query: strings.TrimSpace(query),
		Limit: s.defaultLimit,
	}
	if opts.CzyUrzad != nil {
		params.CzyUrzad = *opts.CzyUrzad
	}
	if opts.Limit != nil && *opts.Limit > 0 {
		params.Limit = *opts.Limit
	}
	if s.maxLimit > 0 && params.Limit > s.maxLimit {
		params.Limit = s.maxLimit
	}
	return params
}

// Search returns the records matching params: REGON matches first, then name
// matches, then address matches.
func (s *Service) Search(ctx context.Context, params transport.SearchParams) ([]transport.AddressRecord, error) {
	if params.Query == "" || params.Limit <= 0 {
		return []transport.AddressRecord{}, nil
	}

	start := time.Now()
	log := s.log.WithContext(ctx)

	if cached, ok := s.cache.Get(ctx, params); ok {
		log.SearchServed(params.Query, params.CzyUrzad, params.Limit, len(cached), true)
		return cached, nil
	}

	rows, err := s.repo.Search(ctx, repository.Filter{
		Pattern:  Pattern(params.Query),
		Regon:    params.Query,
		CzyUrzad: params.CzyUrzad,
		Limit:    params.Limit,
	})
	if err != nil {
		log.DatabaseError("search", err)
		appErr := apperr.Internal("search failed").WithOp("search.Search")
		appErr.Err = err
		return nil, appErr
	}

	records := make([]transport.AddressRecord, len(rows))
	for i, r := range rows {
		records[i] = transport.AddressRecord{
			ID:      r.ID,
			Nazwa:   r.Nazwa,
			Regon:   r.Regon,
			Adres:   r.Adres,
			Skrytka: r.Skrytka,
		}
	}

	s.cache.Set(ctx, params, records)
	log.SearchServed(params.Query, params.CzyUrzad, params.Limit, len(records), false)
	log.Debug("search finished", "latency_ms", time.Since(start).Milliseconds())

	return records, nil
}

// URIs returns every skrytka of the entity record id belongs to.
func (s *Service) URIs(ctx context.Context, id int64) ([]string, error) {
	if id <= 0 {
		return nil, apperr.Validation("id must be a positive integer")
	}

	uris, err := s.repo.EntityURIs(ctx, id)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("entity uris", err)
		appErr := apperr.Internal("lookup failed").WithOp("search.URIs")
		appErr.Err = err
		return nil, appErr
	}
	if len(uris) == 0 {
		return nil, apperr.NotFound("record not found")
	}

	return uris, nil
}
