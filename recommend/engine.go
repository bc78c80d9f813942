package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/poiesic/cinerec/catalog"
	"github.com/poiesic/cinerec/core"
)

// Engine scores the movie catalog against a structured intent and produces
// ranked, justified recommendations. All scoring is deterministic; the same
// intent over the same catalog always yields the same result.
type Engine struct {
	store  catalog.Store
	config *Config
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new recommendation engine over the given catalog.
func NewEngine(store catalog.Store, config *Config, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		store:  store,
		config: config,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Recommend ranks catalog movies against the intent.
// Returns a result whose Recommendations may be empty when nothing overlaps.
func (e *Engine) Recommend(ctx context.Context, request string, intent *core.Intent) (*core.RankedResult, error) {
	return e.RecommendWithMonitor(ctx, request, intent, nil)
}

// RecommendWithMonitor ranks catalog movies against the intent, reporting
// routing, anchor resolution, and scoring stages to the monitor.
//
// Title intents are anchored to the catalog movie they name and scored
// against that movie's attributes, excluding the anchor itself. When the
// named title is not in the catalog, the request falls back to category
// matching on whatever genres or keywords the intent carried; with none, the
// result is empty. Category intents score the catalog directly against the
// intent's own attributes.
func (e *Engine) RecommendWithMonitor(ctx context.Context, request string, intent *core.Intent, monitor Monitor) (*core.RankedResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateIntent(intent); err != nil {
		return nil, err
	}

	strategy := SelectStrategy(intent)
	monitor.AfterRouting(strategy)

	movies, err := e.store.AllMovies(ctx)
	if err != nil {
		e.logger.Error("error scanning catalog", "err", err)
		return nil, err
	}

	result := &core.RankedResult{
		Request:  request,
		Intent:   *intent,
		Strategy: strategy,
	}

	var refGenres, refKeywords []string
	switch strategy {
	case core.StrategyTitle:
		anchor := e.resolveAnchor(movies, intent.Title)
		if anchor == nil {
			monitor.AnchorMiss(intent.Title)
			if !intent.HasCategories() {
				e.logger.Warn("requested title not in catalog", "title", intent.Title)
				result.Recommendations = []core.Recommendation{}
				return result, nil
			}
			// The request named a title we don't have, but also described
			// what kind of movie it is. Use that instead.
			e.logger.Info("requested title not in catalog, matching on categories",
				"title", intent.Title)
			result.Strategy = core.StrategyCategory
			refGenres, refKeywords = intent.Genres, intent.Keywords
		} else {
			e.logger.Debug("anchor resolved", "title", anchor.Title, "id", anchor.Id)
			monitor.AnchorResolved(anchor)
			result.Anchor = anchor
			refGenres, refKeywords = anchor.Genres, anchor.Keywords
		}
	default:
		refGenres, refKeywords = intent.Genres, intent.Keywords
	}

	scored := e.scoreCatalog(movies, result.Anchor, refGenres, refKeywords)
	monitor.AfterScoring(len(scored))

	sortScored(scored)
	if len(scored) > e.config.TopK {
		scored = scored[:e.config.TopK]
	}

	recommendations := make([]core.Recommendation, 0, len(scored))
	for _, candidate := range scored {
		recommendations = append(recommendations, candidate.rec)
	}
	result.Recommendations = recommendations

	return result, nil
}

// scoredMovie pairs a recommendation with its source movie so ordering can
// consult attributes the recommendation does not carry.
type scoredMovie struct {
	movie *core.Movie
	rec   core.Recommendation
}

// scoreCatalog computes the weighted overlap score for every catalog movie
// against the reference attributes. Movies with no overlap at all are
// dropped, as is the anchor itself.
func (e *Engine) scoreCatalog(movies []*core.Movie, anchor *core.Movie, refGenres, refKeywords []string) []scoredMovie {
	scored := make([]scoredMovie, 0, 64)

	for _, movie := range movies {
		if movie == nil {
			continue
		}
		if anchor != nil && movie.Id == anchor.Id {
			continue
		}

		matchedGenres, genreRatio := overlapGenres(movie.Genres, refGenres)
		matchedKeywords, keywordRatio := overlapKeywords(movie.Keywords, refKeywords)

		score := e.config.GenreWeight*genreRatio + e.config.KeywordWeight*keywordRatio
		if score <= 0 {
			continue
		}

		scored = append(scored, scoredMovie{
			movie: movie,
			rec: core.Recommendation{
				Title:           movie.Title,
				Score:           score,
				VoteAverage:     movie.VoteAverage,
				MatchedGenres:   matchedGenres,
				MatchedKeywords: matchedKeywords,
				Justification:   describeMatch(matchedGenres, matchedKeywords),
			},
		})
	}

	return scored
}

// sortScored orders candidates by score descending, breaking ties by vote
// average, then popularity, then title. The title leg makes the order total,
// so equal inputs always rank identically.
func sortScored(scored []scoredMovie) {
	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.rec.Score != b.rec.Score {
			return a.rec.Score > b.rec.Score
		}
		if a.movie.VoteAverage != b.movie.VoteAverage {
			return a.movie.VoteAverage > b.movie.VoteAverage
		}
		if a.movie.Popularity != b.movie.Popularity {
			return a.movie.Popularity > b.movie.Popularity
		}
		return a.movie.Title < b.movie.Title
	})
}

// resolveAnchor finds the catalog movie a requested title refers to. Exact
// normalized matches win, then substring containment, then Jaro-Winkler
// similarity above the configured threshold. Within a rung, ambiguity is
// settled by vote count, the strongest signal for picking the famous entry
// of a franchise.
func (e *Engine) resolveAnchor(movies []*core.Movie, title string) *core.Movie {
	want := normalizeTitle(title)
	if want == "" {
		return nil
	}

	var best *core.Movie
	for _, movie := range movies {
		if normalizeTitle(movie.Title) == want {
			if best == nil || movie.VoteCount > best.VoteCount {
				best = movie
			}
		}
	}
	if best != nil {
		return best
	}

	for _, movie := range movies {
		have := normalizeTitle(movie.Title)
		if have == "" {
			continue
		}
		if strings.Contains(have, want) {
			if best == nil || movie.VoteCount > best.VoteCount {
				best = movie
			}
		}
	}
	if best != nil {
		return best
	}

	for _, movie := range movies {
		have := normalizeTitle(movie.Title)
		if have == "" {
			continue
		}
		if smetrics.JaroWinkler(want, have, 0.7, 4) >= e.config.TitleThreshold {
			if best == nil || movie.VoteCount > best.VoteCount {
				best = movie
			}
		}
	}
	return best
}

// describeMatch phrases a deterministic justification from the matched
// attributes. An analyst pass may later replace it with richer prose.
func describeMatch(genres, keywords []string) string {
	genreList := strings.Join(genres, ", ")
	keywordList := strings.Join(keywords, ", ")

	switch {
	case genreList != "" && keywordList != "":
		return fmt.Sprintf("A close genre match (%s) that shares the themes: %s.", genreList, keywordList)
	case genreList != "":
		return fmt.Sprintf("A close genre match: %s.", genreList)
	default:
		return fmt.Sprintf("Shares the themes: %s.", keywordList)
	}
}
