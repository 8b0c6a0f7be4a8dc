package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vishyyyyyyyyy/ToyoQuest/config"
	_ "github.com/vishyyyyyyyyy/ToyoQuest/docs" // swagger annotations
	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/models"
	"github.com/vishyyyyyyyyy/ToyoQuest/scraper"
	"github.com/vishyyyyyyyyy/ToyoQuest/services"
	"github.com/vishyyyyyyyyy/ToyoQuest/storage"
	"github.com/vishyyyyyyyyy/ToyoQuest/utils"
)

// Deps carries the request-scoped collaborators into the handlers, instead
// of hiding them in package globals.
type Deps struct {
	Cfg      *config.Config
	Store    *storage.Store
	Pipeline *services.Pipeline
	Scraper  *scraper.Scraper
}

// The multi-turn chat keeps one session for the whole process, matching the
// single-operator, most-recent-wins model of the rest of the state.
var (
	chatMu      sync.Mutex
	chatSession *services.ChatSession
)

// PostFinancialsHandler godoc
// @Summary Submit the financial profile form
// @Description Persists the submitted JSON wholesale, overwriting the previous profile
// @Tags intake
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid body"
// @Router /financials [post]
func PostFinancialsHandler(w http.ResponseWriter, r *http.Request, deps *Deps) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if data == nil {
		data = map[string]any{}
	}

	logger.Info("financials submitted",
		"name", data["name"], "budget", data["budget"], "credit_score", data["creditScore"])

	if err := deps.Store.SaveFinancials(data); err != nil {
		logger.Error("failed to persist financials", "error", err)
		utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"received": data,
	})
}

// GetFinancialsHandler godoc
// @Summary Usage instructions for the financials endpoint
// @Tags intake
// @Produce plain
// @Success 200 {string} string "instructions"
// @Router /financials [get]
func GetFinancialsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Send a JSON POST to this endpoint with keys: name, budget, creditScore, downPayment, paymentPeriod, annualMileage, leaseMonths"))
}

// PostQuizHandler godoc
// @Summary Submit the style-quiz card selections
// @Description Persists {"selectedCards": [...]} wholesale, overwriting the previous selection
// @Tags intake
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid body"
// @Router /quiz [post]
func PostQuizHandler(w http.ResponseWriter, r *http.Request, deps *Deps) {
	var selection models.QuizSelection
	if err := json.NewDecoder(r.Body).Decode(&selection); err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if selection.SelectedCards == nil {
		selection.SelectedCards = []string{}
	}

	logger.Info("quiz submitted", "selected_cards", selection.SelectedCards)

	if err := deps.Store.SaveQuiz(selection); err != nil {
		logger.Error("failed to persist quiz selections", "error", err)
		utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"received": selection,
	})
}

// GetQuizHandler godoc
// @Summary Read back the most recent quiz selection
// @Tags intake
// @Produce json
// @Success 200 {object} models.QuizSelection "latest selection, empty when none"
// @Router /quiz [get]
func GetQuizHandler(w http.ResponseWriter, r *http.Request, deps *Deps) {
	utils.WriteFormattedJSON(w, deps.Store.LoadQuiz())
}

// GetRecommendationsHandler godoc
// @Summary Generate vehicle recommendations
// @Description Runs the full pipeline: catalog text + customer profile -> completion service -> parsed top-3 list
// @Tags recommendations
// @Produce json
// @Success 200 {object} models.APIResponse "recommendation list"
// @Failure 500 {object} models.APIResponse "pipeline failure"
// @Router /recommendations [get]
func GetRecommendationsHandler(w http.ResponseWriter, r *http.Request, deps *Deps) {
	result, err := deps.Pipeline.GetRecommendations(r.Context())
	if err != nil {
		writePipelineError(w, err)
		return
	}

	if len(result.Entries) == 0 {
		utils.WriteErrorResponse(w, models.CodeNoRecommendations, map[string]interface{}{
			"recommendations": []models.RecommendationEntry{},
			"raw_preview":     utils.Preview(result.RawText, 200),
		})
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"recommendations": result.Entries,
		"strategy":        result.Strategy.String(),
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

// PostChatHandler godoc
// @Summary Exchange one turn with the vehicle-matching chat
// @Description Seeds a session with the catalog on first use; the conversation log grows for the life of the process
// @Tags recommendations
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "model reply"
// @Failure 400 {object} models.APIResponse "missing message"
// @Failure 500 {object} models.APIResponse "completion failure"
// @Router /chat [post]
func PostChatHandler(w http.ResponseWriter, r *http.Request, deps *Deps) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		utils.WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
			"param": "message",
		})
		return
	}

	chatMu.Lock()
	defer chatMu.Unlock()

	if chatSession == nil {
		session, err := deps.Pipeline.NewChat()
		if err != nil {
			writePipelineError(w, err)
			return
		}
		chatSession = session
	}

	reply, err := chatSession.Send(r.Context(), req.Message)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"reply": reply,
		"turns": chatSession.Turns(),
	})
}

// PostScrapeHandler godoc
// @Summary Rebuild the vehicle catalog from the manufacturer's site
// @Description Fetches every configured model page and rewrites the catalog CSV wholesale
// @Tags catalog
// @Produce json
// @Success 200 {object} models.APIResponse "record count"
// @Failure 500 {object} models.APIResponse "write failure"
// @Router /scrape [post]
func PostScrapeHandler(w http.ResponseWriter, r *http.Request, deps *Deps) {
	records := deps.Scraper.Run(r.Context())
	if len(records) == 0 {
		utils.WriteErrorResponse(w, models.CodeScrapeError, map[string]interface{}{
			"records": 0,
		})
		return
	}

	if err := storage.WriteCatalog(deps.Cfg.Storage.CatalogFile, records); err != nil {
		logger.Error("failed to write catalog", "error", err)
		utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
		return
	}

	// The catalog changed, so the next chat should reseed from it.
	chatMu.Lock()
	chatSession = nil
	chatMu.Unlock()

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"records": len(records),
		"catalog": deps.Cfg.Storage.CatalogFile,
	})
}

// writePipelineError maps pipeline failures onto the response-code scheme
// without ever letting a fault propagate to the transport layer.
func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrCatalogNotFound):
		utils.WriteErrorResponse(w, models.CodeCatalogMissing, map[string]interface{}{})
	case errors.Is(err, storage.ErrCatalogParse):
		utils.WriteCustomErrorResponse(w, models.CodeCatalogParseError, err.Error(), map[string]interface{}{})
	case errors.Is(err, services.ErrRecommendationRequest):
		utils.WriteCustomErrorResponse(w, models.CodeThirdPartyAPIError, err.Error(), map[string]interface{}{})
	default:
		utils.WriteCustomErrorResponse(w, models.CodeRecommendGenError, err.Error(), map[string]interface{}{})
	}
}

// CORSMiddleware mirrors the permissive headers the original server set so
// the Next.js frontend on another port can call the API directly.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RegisterRoutes(r *chi.Mux, deps *Deps) {
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/financials", func(w http.ResponseWriter, r *http.Request) {
		PostFinancialsHandler(w, r, deps)
	})
	r.Get("/financials", GetFinancialsHandler)

	r.Post("/quiz", func(w http.ResponseWriter, r *http.Request) {
		PostQuizHandler(w, r, deps)
	})
	r.Get("/quiz", func(w http.ResponseWriter, r *http.Request) {
		GetQuizHandler(w, r, deps)
	})

	r.Get("/recommendations", func(w http.ResponseWriter, r *http.Request) {
		GetRecommendationsHandler(w, r, deps)
	})

	r.Post("/chat", func(w http.ResponseWriter, r *http.Request) {
		PostChatHandler(w, r, deps)
	})

	r.Post("/scrape", func(w http.ResponseWriter, r *http.Request) {
		PostScrapeHandler(w, r, deps)
	})
}
