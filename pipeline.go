// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cinerec

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/cinerec/ai"
	"github.com/poiesic/cinerec/ai/openai"
	"github.com/poiesic/cinerec/catalog"
	"github.com/poiesic/cinerec/catalog/badger"
	"github.com/poiesic/cinerec/core"
	"github.com/poiesic/cinerec/ingest"
	"github.com/poiesic/cinerec/intent"
	"github.com/poiesic/cinerec/recommend"
)

// Clip limits applied to candidate data before it enters the analyst
// prompt.
const (
	pitchOverviewRunes = 400
	pitchKeywords      = 10
)

// Pipeline wires the full recommendation flow around one catalog
// database: intent extraction, strategy routing, deterministic scoring,
// and the final pitch-writing pass.
type Pipeline struct {
	store     catalog.Store
	provider  ai.Provider
	extractor *intent.Extractor
	engine    *recommend.Engine
	monitor   recommend.Monitor
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	aiConfig        *ai.Config
	intentConfig    *intent.Config
	recommendConfig *recommend.Config
	provider        ai.Provider
	monitor         recommend.Monitor
}

// WithAIConfig sets the model client configuration.
func WithAIConfig(config *ai.Config) PipelineOption {
	return func(o *pipelineOptions) {
		o.aiConfig = config
	}
}

// WithIntentConfig sets the extraction retry budget and delay.
func WithIntentConfig(config *intent.Config) PipelineOption {
	return func(o *pipelineOptions) {
		o.intentConfig = config
	}
}

// WithRecommendConfig sets the scoring weights, result count, and title
// match threshold.
func WithRecommendConfig(config *recommend.Config) PipelineOption {
	return func(o *pipelineOptions) {
		o.recommendConfig = config
	}
}

// WithProvider supplies a prebuilt AI provider instead of constructing
// the OpenAI-compatible one. The pipeline takes ownership and closes it.
func WithProvider(provider ai.Provider) PipelineOption {
	return func(o *pipelineOptions) {
		o.provider = provider
	}
}

// WithMonitor registers a monitor whose hooks fire as each request
// moves through the stages.
func WithMonitor(monitor recommend.Monitor) PipelineOption {
	return func(o *pipelineOptions) {
		o.monitor = monitor
	}
}

// NewPipeline opens the catalog database at filePath and assembles the
// recommendation flow around it. The extraction prompt vocabulary is
// seeded from the genres already present in the catalog, falling back
// to the canonical list when the catalog is empty.
func NewPipeline(filePath string, opts ...PipelineOption) (*Pipeline, error) {
	// Apply options
	options := &pipelineOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create movie store
	store, err := badger.NewMovieStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	// Seed the extraction vocabulary from the catalog
	genres, err := store.Genres(context.Background())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	extractor, err := intent.NewExtractor(provider.Completer(), options.intentConfig,
		intent.WithGenres(genres))
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	engine, err := recommend.NewEngine(store, options.recommendConfig)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	monitor := options.monitor
	if monitor == nil {
		monitor = recommend.NopMonitor()
	}

	return &Pipeline{
		store:     store,
		provider:  provider,
		extractor: extractor,
		engine:    engine,
		monitor:   monitor,
		logger:    slog.Default(),
	}, nil
}

// Recommend runs the full flow for one request: extract a structured
// intent from the raw text, route it, score the catalog, and annotate
// the winners with model-written pitches. A result with zero
// recommendations is the valid "nothing matched" outcome, not an error.
func (p *Pipeline) Recommend(ctx context.Context, rawText string) (*core.RankedResult, error) {
	p.monitor.Start(rawText)

	extracted, err := p.extractor.Extract(ctx, rawText)
	if err != nil {
		return nil, err
	}
	p.monitor.AfterExtraction(extracted)

	result, err := p.engine.RecommendWithMonitor(ctx, rawText, extracted, p.monitor)
	if err != nil {
		return nil, err
	}

	p.justify(ctx, rawText, result)

	p.monitor.Finish(result)
	return result, nil
}

// Store returns the catalog store backing this pipeline.
func (p *Pipeline) Store() catalog.Store {
	return p.store
}

// NewLoader creates a catalog loader that writes into this pipeline's
// store.
func (p *Pipeline) NewLoader(opts ...ingest.Option) (*ingest.Loader, error) {
	return ingest.NewLoader(p.store, opts...)
}

// Close releases the AI provider and the catalog database.
func (p *Pipeline) Close() error {
	// Close AI provider first
	if err := p.provider.Close(); err != nil {
		p.logger.Error("error closing AI provider", "err", err)
	}

	if err := p.store.Close(); err != nil {
		p.logger.Error("error closing catalog store", "err", err)
		return err
	}
	return nil
}

// justify replaces the deterministic match explanations with pitches
// written by the analyst model. Ranking and membership never change: a
// failed or partial pitch pass leaves the deterministic text standing.
func (p *Pipeline) justify(ctx context.Context, request string, result *core.RankedResult) {
	if result.Empty() {
		return
	}

	candidates := p.buildCandidates(ctx, result.Recommendations)
	if len(candidates) == 0 {
		return
	}

	pitches, err := p.provider.Justifier().Justify(ctx, request, candidates)
	if err != nil {
		p.logger.Warn("pitch writing failed, keeping deterministic justifications", "err", err)
		return
	}

	byTitle := make(map[string]string, len(pitches))
	for _, pitch := range pitches {
		byTitle[titleKey(pitch.Title)] = pitch.Justification
	}

	annotated := 0
	for i := range result.Recommendations {
		if pitch, ok := byTitle[titleKey(result.Recommendations[i].Title)]; ok {
			result.Recommendations[i].Justification = pitch
			annotated++
		}
	}

	p.monitor.AfterJustification(annotated)
}

// buildCandidates re-reads the ranked movies from the store and clips
// their fields to prompt-friendly sizes.
func (p *Pipeline) buildCandidates(ctx context.Context, recs []core.Recommendation) []ai.Candidate {
	ids := make([]core.ID, len(recs))
	for i, rec := range recs {
		ids[i] = core.IDFromTitle(rec.Title)
	}

	movies, err := p.store.GetMovies(ctx, ids...)
	if err != nil {
		p.logger.Warn("could not read ranked movies for the pitch pass", "err", err)
		return nil
	}

	candidates := make([]ai.Candidate, 0, len(movies))
	for _, movie := range movies {
		keywords := movie.Keywords
		if len(keywords) > pitchKeywords {
			keywords = keywords[:pitchKeywords]
		}

		candidates = append(candidates, ai.Candidate{
			Title:       movie.Title,
			Overview:    clipRunes(movie.Overview, pitchOverviewRunes),
			Genres:      movie.Genres,
			Keywords:    keywords,
			VoteAverage: movie.VoteAverage,
		})
	}

	return candidates
}

// titleKey folds a title for matching model pitches back to ranked
// results.
func titleKey(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// clipRunes truncates s to at most n runes.
func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
