package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vishyyyyyyyyy/ToyoQuest/config"
	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/models"
)

// Store persists the two single-slot intake files. Each submission
// overwrites the whole file; there is no history and no per-user keying,
// so the last writer wins.
type Store struct {
	financialsPath string
	quizPath       string
}

func NewStore(cfg *config.Config) *Store {
	return &Store{
		financialsPath: cfg.Storage.FinancialsFile,
		quizPath:       cfg.Storage.QuizFile,
	}
}

// SaveFinancials writes the submitted form payload wholesale, keeping any
// extra keys the frontend happened to send.
func (s *Store) SaveFinancials(data map[string]any) error {
	return writePrettyJSON(s.financialsPath, data)
}

// LoadFinancials returns the most recent financial profile. A missing or
// unreadable file degrades to an empty profile, logged, never an error.
func (s *Store) LoadFinancials() models.CustomerProfile {
	var profile models.CustomerProfile
	if !readPrettyJSON(s.financialsPath, &profile) {
		return models.CustomerProfile{}
	}
	return profile
}

// SaveQuiz writes the latest quiz selections.
func (s *Store) SaveQuiz(selection models.QuizSelection) error {
	return writePrettyJSON(s.quizPath, selection)
}

// LoadQuiz returns the most recent quiz selections, or an empty selection
// when nothing has been submitted yet.
func (s *Store) LoadQuiz() models.QuizSelection {
	var selection models.QuizSelection
	if !readPrettyJSON(s.quizPath, &selection) {
		return models.QuizSelection{SelectedCards: []string{}}
	}
	if selection.SelectedCards == nil {
		selection.SelectedCards = []string{}
	}
	return selection
}

func writePrettyJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("store: create dir for %q: %w", path, err)
	}

	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("store: marshal %q: %w", path, err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("store: write %q: %w", path, err)
	}
	return nil
}

func readPrettyJSON(path string, out any) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no saved data yet", "path", path)
		} else {
			logger.Error("failed to read saved data", "path", path, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("saved data is malformed, ignoring", "path", path, "error", err)
		return false
	}
	return true
}
