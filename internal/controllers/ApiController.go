package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"chessetl/internal/dataset"
	"chessetl/internal/perspective"
	"chessetl/internal/providers"
	"chessetl/internal/services"
)

type ApiController struct {
	logger    providers.Logger
	service   services.DatasetServiceInterface
	projector *perspective.Projector
	cache     providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.DatasetServiceInterface, projector *perspective.Projector, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		service:   service,
		projector: projector,
		cache:     cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		if errors.Is(err, dataset.ErrDatasetEmpty) || errors.Is(err, perspective.ErrNoSubjectRows) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetGames(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	ac.serveFromCacheOrCompute(w, "games:"+player, func() (any, error) {
		if player == "" {
			return ac.service.Rows(), nil
		}
		return ac.service.ByPlayer(player), nil
	})
}

func (ac *ApiController) GetPlayers(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "players", func() (any, error) {
		return ac.service.Players(), nil
	})
}

func (ac *ApiController) GetSummary(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "summary", func() (any, error) {
		return ac.service.Summary(), nil
	})
}

// GetPerspective projects the loaded dataset for one subject on
// demand. An unknown subject is a 404, not a server error.
func (ac *ApiController) GetPerspective(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	if player == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, "perspective:"+player, func() (any, error) {
		return ac.projector.Project(ac.service.Rows(), []string{player})
	})
}
