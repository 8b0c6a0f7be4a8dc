package services

import (
	"context"

	"github.com/vishyyyyyyyyy/ToyoQuest/config"
	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/models"
	"github.com/vishyyyyyyyyy/ToyoQuest/storage"
)

// Pipeline wires catalog text, the customer profile and the completion
// service into recommendation requests. All state is read fresh per
// request; nothing is cached between calls.
type Pipeline struct {
	cfg    *config.Config
	store  *storage.Store
	gemini *GeminiClient
}

func NewPipeline(cfg *config.Config, store *storage.Store, gemini *GeminiClient) *Pipeline {
	return &Pipeline{cfg: cfg, store: store, gemini: gemini}
}

// RecommendationResult carries the parsed entries plus the raw response,
// tagged with the parsing strategy that produced them.
type RecommendationResult struct {
	Entries  []models.RecommendationEntry
	Strategy Strategy
	RawText  string
}

// GetRecommendations runs the full one-shot pipeline: format the catalog,
// aggregate the latest profile and quiz data, prompt the model and parse
// its answer. Missing profile or quiz data degrades to defaults; a missing
// or unparseable catalog propagates, as does a completion-service failure.
func (p *Pipeline) GetRecommendations(ctx context.Context) (*RecommendationResult, error) {
	catalogText, err := FormatCatalog(p.cfg.Storage.CatalogFile, p.cfg.Formatter.MaxChars)
	if err != nil {
		return nil, err
	}

	profile := p.store.LoadFinancials()
	selection := p.store.LoadQuiz()
	summary := AggregatePreferences(selection)

	logger.Info("generating recommendations",
		"budget", renderScalar(profile.Budget),
		"credit_score", renderScalar(profile.CreditScore),
		"selected_cards", selection.SelectedCards,
		"style_preferences", summary.Sentence())

	prompt := catalogText + "\n\n" + BuildRecommendationPrompt(profile, summary)

	raw, err := p.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	entries, strategy := ParseRecommendations(raw)
	logger.Info("recommendations parsed", "count", len(entries), "strategy", strategy.String())

	return &RecommendationResult{
		Entries:  entries,
		Strategy: strategy,
		RawText:  raw,
	}, nil
}

// NewChat seeds a multi-turn session with the current catalog text.
func (p *Pipeline) NewChat() (*ChatSession, error) {
	catalogText, err := FormatCatalog(p.cfg.Storage.CatalogFile, p.cfg.Formatter.MaxChars)
	if err != nil {
		return nil, err
	}
	return NewChatSession(p.gemini, catalogText), nil
}
