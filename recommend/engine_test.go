package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/cinerec/catalog/badger"
	"github.com/poiesic/cinerec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, movies ...*core.Movie) *Engine {
	t.Helper()

	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if len(movies) > 0 {
		_, err = store.AddMovies(context.Background(), movies...)
		require.NoError(t, err)
	}

	engine, err := NewEngine(store, DefaultConfig())
	require.NoError(t, err)
	return engine
}

func TestNewEngine(t *testing.T) {
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	t.Run("valid configuration", func(t *testing.T) {
		engine, err := NewEngine(store, DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		engine, err := NewEngine(store, nil)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("unnormalized weights are rescaled", func(t *testing.T) {
		engine, err := NewEngine(store, NewConfig(WithGenreWeight(3), WithKeywordWeight(1)))
		require.NoError(t, err)
		assert.InDelta(t, 0.75, engine.config.GenreWeight, 1e-9)
		assert.InDelta(t, 0.25, engine.config.KeywordWeight, 1e-9)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewEngine(nil, DefaultConfig())
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewEngine(store, NewConfig(WithTopK(0)))
		assert.Error(t, err)
	})
}

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name   string
		intent *core.Intent
		want   core.Strategy
	}{
		{"title only", &core.Intent{Title: "The Matrix"}, core.StrategyTitle},
		{"genres only", &core.Intent{Genres: []string{"horror"}}, core.StrategyCategory},
		{"keywords only", &core.Intent{Keywords: []string{"zombie"}}, core.StrategyCategory},
		{"title wins over categories", &core.Intent{Title: "Alien", Genres: []string{"horror"}}, core.StrategyTitle},
		{"nil intent", nil, core.StrategyCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectStrategy(tt.intent))
		})
	}
}

func TestRecommend_CategoryScoring(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "Perfect Match", Genres: []string{"action"}, Keywords: []string{"heist", "getaway"}},
		&core.Movie{Title: "Genre Only", Genres: []string{"action", "drama"}, Keywords: []string{"courtroom"}},
		&core.Movie{Title: "Keyword Only", Genres: []string{"comedy"}, Keywords: []string{"heist"}},
		&core.Movie{Title: "No Overlap", Genres: []string{"documentary"}, Keywords: []string{"nature"}},
	)

	intent := &core.Intent{Genres: []string{"action"}, Keywords: []string{"heist"}}
	result, err := engine.Recommend(context.Background(), "action heist movie", intent)
	require.NoError(t, err)

	assert.Equal(t, core.StrategyCategory, result.Strategy)
	assert.Nil(t, result.Anchor)
	require.Len(t, result.Recommendations, 3, "zero-score movies must be dropped")

	assert.Equal(t, "Perfect Match", result.Recommendations[0].Title)
	assert.InDelta(t, 1.0, result.Recommendations[0].Score, 1e-9)

	assert.Equal(t, "Genre Only", result.Recommendations[1].Title)
	assert.InDelta(t, 0.6, result.Recommendations[1].Score, 1e-9)

	assert.Equal(t, "Keyword Only", result.Recommendations[2].Title)
	assert.InDelta(t, 0.4, result.Recommendations[2].Score, 1e-9)
}

func TestRecommend_MatchedAttributes(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "Hit", Genres: []string{"action", "crime"}, Keywords: []string{"bank heist", "getaway driver"}},
	)

	intent := &core.Intent{Genres: []string{"action"}, Keywords: []string{"heist", "submarine"}}
	result, err := engine.Recommend(context.Background(), "", intent)
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.Equal(t, []string{"action"}, rec.MatchedGenres)
	assert.Equal(t, []string{"heist"}, rec.MatchedKeywords)
	assert.NotEmpty(t, rec.Justification)
	// genre 1/1 weighted 0.6, keywords 1/2 weighted 0.4
	assert.InDelta(t, 0.8, rec.Score, 1e-9)
}

func TestRecommend_TieBreaks(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "Echo", Genres: []string{"war"}, Keywords: []string{"heist"}, VoteAverage: 6.0, Popularity: 3},
		&core.Movie{Title: "Alpha", Genres: []string{"crime"}, Keywords: []string{"heist"}, VoteAverage: 7.0, Popularity: 10},
		&core.Movie{Title: "Beta", Genres: []string{"drama"}, Keywords: []string{"heist"}, VoteAverage: 8.0, Popularity: 5},
		&core.Movie{Title: "Gamma", Genres: []string{"thriller"}, Keywords: []string{"heist"}, VoteAverage: 7.0, Popularity: 20},
		&core.Movie{Title: "Delta", Genres: []string{"mystery"}, Keywords: []string{"heist"}, VoteAverage: 6.0, Popularity: 3},
	)

	intent := &core.Intent{Keywords: []string{"heist"}}
	result, err := engine.Recommend(context.Background(), "", intent)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 5)

	titles := make([]string, 0, 5)
	for _, rec := range result.Recommendations {
		titles = append(titles, rec.Title)
	}
	// Same score everywhere: vote average first, then popularity, then title.
	assert.Equal(t, []string{"Beta", "Gamma", "Alpha", "Delta", "Echo"}, titles)
}

func TestRecommend_TopKTruncation(t *testing.T) {
	movies := make([]*core.Movie, 0, 8)
	for _, title := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		movies = append(movies, &core.Movie{
			Title:    title,
			Genres:   []string{"horror"},
			Keywords: []string{"zombie"},
		})
	}

	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	_, err = store.AddMovies(context.Background(), movies...)
	require.NoError(t, err)

	engine, err := NewEngine(store, NewConfig(WithTopK(3)))
	require.NoError(t, err)

	result, err := engine.Recommend(context.Background(), "", &core.Intent{Genres: []string{"horror"}})
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 3)
}

func TestRecommend_TitleStrategy(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{
			Title:     "The Matrix",
			Genres:    []string{"action", "science fiction"},
			Keywords:  []string{"simulation", "dystopia"},
			VoteCount: 24000,
		},
		&core.Movie{
			Title:    "The Matrix Reloaded",
			Genres:   []string{"action", "science fiction"},
			Keywords: []string{"simulation"},
		},
		&core.Movie{
			Title:    "Blade Runner",
			Genres:   []string{"science fiction"},
			Keywords: []string{"dystopia", "android"},
		},
		&core.Movie{
			Title:    "The Notebook",
			Genres:   []string{"romance"},
			Keywords: []string{"love letter"},
		},
	)

	intent := &core.Intent{Title: "The Matrix"}
	result, err := engine.Recommend(context.Background(), "movies like The Matrix", intent)
	require.NoError(t, err)

	assert.Equal(t, core.StrategyTitle, result.Strategy)
	require.NotNil(t, result.Anchor)
	assert.Equal(t, "The Matrix", result.Anchor.Title)

	require.Len(t, result.Recommendations, 2)
	for _, rec := range result.Recommendations {
		assert.NotEqual(t, "The Matrix", rec.Title, "anchor must never recommend itself")
	}

	// Reloaded: genres 2/2, keywords 1/2 -> 0.6 + 0.2
	assert.Equal(t, "The Matrix Reloaded", result.Recommendations[0].Title)
	assert.InDelta(t, 0.8, result.Recommendations[0].Score, 1e-9)
	// Blade Runner: genres 1/2, keywords 1/2 -> 0.3 + 0.2
	assert.Equal(t, "Blade Runner", result.Recommendations[1].Title)
	assert.InDelta(t, 0.5, result.Recommendations[1].Score, 1e-9)
}

func TestRecommend_AnchorSubstringMatch(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "The Matrix", Genres: []string{"action"}, Keywords: []string{"simulation"}, VoteCount: 24000},
		&core.Movie{Title: "The Matrix Reloaded", Genres: []string{"action"}, Keywords: []string{"simulation"}, VoteCount: 18000},
	)

	intent := &core.Intent{Title: "Matrix"}
	result, err := engine.Recommend(context.Background(), "", intent)
	require.NoError(t, err)

	require.NotNil(t, result.Anchor)
	assert.Equal(t, "The Matrix", result.Anchor.Title, "ambiguity resolves to the highest vote count")
}

func TestRecommend_AnchorFuzzyMatch(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "The Matrix", Genres: []string{"action"}, Keywords: []string{"simulation"}, VoteCount: 24000},
		&core.Movie{Title: "Blade Runner", Genres: []string{"science fiction"}, Keywords: []string{"android"}},
	)

	// Transposed letters should still resolve.
	intent := &core.Intent{Title: "The Matirx"}
	result, err := engine.Recommend(context.Background(), "", intent)
	require.NoError(t, err)

	require.NotNil(t, result.Anchor)
	assert.Equal(t, "The Matrix", result.Anchor.Title)
}

func TestRecommend_AnchorMissFallsBackToCategories(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "Dawn of the Dead", Genres: []string{"horror"}, Keywords: []string{"zombie"}},
		&core.Movie{Title: "The Notebook", Genres: []string{"romance"}, Keywords: []string{"love letter"}},
	)

	intent := &core.Intent{Title: "Zyzzyx Plateau", Genres: []string{"horror"}}
	result, err := engine.Recommend(context.Background(), "", intent)
	require.NoError(t, err)

	assert.Equal(t, core.StrategyCategory, result.Strategy)
	assert.Nil(t, result.Anchor)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Dawn of the Dead", result.Recommendations[0].Title)
}

func TestRecommend_AnchorMissWithoutCategories(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "Heat", Genres: []string{"crime"}, Keywords: []string{"heist"}},
	)

	intent := &core.Intent{Title: "Zyzzyx Plateau"}
	result, err := engine.Recommend(context.Background(), "", intent)
	require.NoError(t, err)

	assert.Equal(t, core.StrategyTitle, result.Strategy)
	assert.Nil(t, result.Anchor)
	assert.True(t, result.Empty())
}

func TestRecommend_NoOverlapIsEmptyNotError(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "Heat", Genres: []string{"crime"}, Keywords: []string{"heist"}},
	)

	intent := &core.Intent{Genres: []string{"western"}}
	result, err := engine.Recommend(context.Background(), "", intent)
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.NotNil(t, result.Recommendations)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	engine := seedCatalog(t)

	result, err := engine.Recommend(context.Background(), "", &core.Intent{Genres: []string{"horror"}})
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestRecommend_InvalidIntent(t *testing.T) {
	engine := seedCatalog(t)

	_, err := engine.Recommend(context.Background(), "", &core.Intent{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidIntent))

	_, err = engine.Recommend(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestRecommend_Deterministic(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "Alpha", Genres: []string{"action"}, Keywords: []string{"heist"}, VoteAverage: 7.1},
		&core.Movie{Title: "Beta", Genres: []string{"action"}, Keywords: []string{"getaway"}, VoteAverage: 6.9},
		&core.Movie{Title: "Gamma", Genres: []string{"action", "crime"}, Keywords: []string{"heist", "vault"}, VoteAverage: 7.5},
	)

	intent := &core.Intent{Genres: []string{"action"}, Keywords: []string{"heist"}}

	first, err := engine.Recommend(context.Background(), "same request", intent)
	require.NoError(t, err)
	second, err := engine.Recommend(context.Background(), "same request", intent)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommendWithMonitor(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "The Matrix", Genres: []string{"action"}, Keywords: []string{"simulation"}},
		&core.Movie{Title: "The Matrix Reloaded", Genres: []string{"action"}, Keywords: []string{"simulation"}},
	)

	monitor := &captureMonitor{}
	result, err := engine.RecommendWithMonitor(context.Background(), "", &core.Intent{Title: "The Matrix"}, monitor)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, core.StrategyTitle, monitor.routed)
	assert.Equal(t, "The Matrix", monitor.anchorTitle)
	assert.Equal(t, 1, monitor.scoredCandidates)
}

func TestRecommendWithMonitor_AnchorMiss(t *testing.T) {
	engine := seedCatalog(t,
		&core.Movie{Title: "Heat", Genres: []string{"crime"}, Keywords: []string{"heist"}},
	)

	monitor := &captureMonitor{}
	_, err := engine.RecommendWithMonitor(context.Background(), "", &core.Intent{Title: "Zyzzyx Plateau"}, monitor)
	require.NoError(t, err)

	assert.Equal(t, "Zyzzyx Plateau", monitor.missedTitle)
	assert.Empty(t, monitor.anchorTitle)
}

// captureMonitor records the engine-driven hooks.
type captureMonitor struct {
	routed           core.Strategy
	anchorTitle      string
	missedTitle      string
	scoredCandidates int
}

func (m *captureMonitor) Start(_ string)                 {}
func (m *captureMonitor) AfterExtraction(_ *core.Intent) {}
func (m *captureMonitor) AfterRouting(strategy core.Strategy) {
	m.routed = strategy
}
func (m *captureMonitor) AnchorResolved(anchor *core.Movie) {
	m.anchorTitle = anchor.Title
}
func (m *captureMonitor) AnchorMiss(title string) {
	m.missedTitle = title
}
func (m *captureMonitor) AfterScoring(candidates int) {
	m.scoredCandidates = candidates
}
func (m *captureMonitor) AfterJustification(_ int)       {}
func (m *captureMonitor) Finish(_ *core.RankedResult)    {}
