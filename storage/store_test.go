package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vishyyyyyyyyy/ToyoQuest/config"
	"github.com/vishyyyyyyyyy/ToyoQuest/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.FinancialsFile = filepath.Join(dir, "latest_financials.json")
	cfg.Storage.QuizFile = filepath.Join(dir, "latest_quiz.json")
	return NewStore(cfg)
}

func TestFinancialsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveFinancials(map[string]any{
		"name":        "sam",
		"budget":      "30000-35000",
		"creditScore": 720,
		"extraKey":    "kept on disk",
	}))

	profile := store.LoadFinancials()
	require.Equal(t, "sam", profile.Name)
	require.Equal(t, "30000-35000", profile.Budget)
	require.EqualValues(t, 720, profile.CreditScore)
	require.Nil(t, profile.DownPayment)

	// persisted wholesale and pretty-printed
	raw, err := os.ReadFile(store.financialsPath)
	require.NoError(t, err)
	require.Contains(t, string(raw), "extraKey")
	require.Contains(t, string(raw), "\n    ")
}

func TestFinancialsLastWriteWins(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveFinancials(map[string]any{"name": "first"}))
	require.NoError(t, store.SaveFinancials(map[string]any{"budget": "20000"}))

	profile := store.LoadFinancials()
	require.Nil(t, profile.Name)
	require.Equal(t, "20000", profile.Budget)
}

func TestLoadMissingFilesDegradeToDefaults(t *testing.T) {
	store := newTestStore(t)

	profile := store.LoadFinancials()
	require.Equal(t, models.CustomerProfile{}, profile)

	selection := store.LoadQuiz()
	require.NotNil(t, selection.SelectedCards)
	require.Empty(t, selection.SelectedCards)
}

func TestQuizRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveQuiz(models.QuizSelection{
		SelectedCards: []string{"Sleek Sporty", "Chill"},
	}))

	selection := store.LoadQuiz()
	require.Equal(t, []string{"Sleek Sporty", "Chill"}, selection.SelectedCards)
}

func TestLoadMalformedFileDegrades(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.quizPath, []byte("{not json"), 0644))

	selection := store.LoadQuiz()
	require.Empty(t, selection.SelectedCards)
}

func TestFinancialsNumbersSurvive(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveFinancials(map[string]any{"downPayment": 5000}))

	raw, err := os.ReadFile(store.financialsPath)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), "5000"))
}
