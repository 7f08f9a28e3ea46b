// Package api exposes the engine's query operations over HTTP in serve
// mode. All endpoints are read-only: the index is built before the server
// starts and never changes while it runs.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ateeblj/Mini-Google/config"
	"github.com/Ateeblj/Mini-Google/internal/metrics"
	"github.com/Ateeblj/Mini-Google/internal/tokenizer"
	"github.com/Ateeblj/Mini-Google/services"
)

// API holds the handler dependencies.
type API struct {
	engine  services.Engine
	cfg     *config.Config
	metrics *metrics.Metrics
}

// NewAPI creates the handler set.
func NewAPI(engine services.Engine, cfg *config.Config, m *metrics.Metrics) *API {
	return &API{engine: engine, cfg: cfg, metrics: m}
}

// SetupRoutes registers all routes and middleware on router.
func SetupRoutes(router *gin.Engine, engine services.Engine, cfg *config.Config, m *metrics.Metrics) {
	apiHandler := NewAPI(engine, cfg, m)

	router.Use(RequestID())
	router.Use(Logger())
	router.Use(Metrics())
	router.Use(RateLimit(cfg.Server.RateRPS, cfg.Server.RateBurst))

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/status", apiHandler.StatusHandler)
	router.GET("/search", apiHandler.SearchHandler)
	router.GET("/autocomplete", apiHandler.AutocompleteHandler)
	router.GET("/prefix-search", apiHandler.PrefixSearchHandler)
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}

// HealthCheckHandler reports liveness.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StatusHandler reports index statistics.
func (api *API) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, services.StatusResponse{
		Status:            "ready",
		Documents:         api.engine.DocumentCount(),
		UniqueTerms:       api.engine.UniqueTermCount(),
		DataDirectory:     api.engine.DataDir(),
		TotalWordsIndexed: api.engine.TotalWordsIndexed(),
	})
}

// SearchHandler serves ranked keyword search.
// Query params: q (required), page, page_size.
func (api *API) SearchHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, services.ErrorResponse{Error: "missing query parameter 'q'"})
		return
	}
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", api.cfg.Search.ResultsPerPage)

	start := time.Now()
	results := api.engine.Search(query, page, pageSize)
	totalResults := api.engine.TotalResults(query)
	elapsed := time.Since(start)
	api.observe(services.ModeSearch, elapsed)

	queryTerms := tokenizer.Tokenize(tokenizer.ToLowerASCII(query))
	resp := services.BuildSearchResponse(api.engine, services.ModeSearch, query, queryTerms, results, totalResults, page, pageSize, elapsed)
	resp.QueryID = uuid.NewString()
	c.JSON(http.StatusOK, resp)
}

// AutocompleteHandler serves trie completions.
// Query params: prefix (required), limit.
func (api *API) AutocompleteHandler(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, services.ErrorResponse{Error: "missing query parameter 'prefix'"})
		return
	}
	limit := intQuery(c, "limit", api.cfg.Search.AutocompleteLimit)

	start := time.Now()
	suggestions := api.engine.Autocomplete(prefix, limit)
	elapsed := time.Since(start)
	api.observe("autocomplete", elapsed)

	c.JSON(http.StatusOK, services.AutocompleteResponse{
		Prefix:      prefix,
		Count:       len(suggestions),
		TimeMs:      elapsed.Milliseconds(),
		Suggestions: suggestions,
	})
}

// PrefixSearchHandler serves prefix-expanded ranked search.
// Query params: prefix (required), expand_limit, page, page_size.
func (api *API) PrefixSearchHandler(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, services.ErrorResponse{Error: "missing query parameter 'prefix'"})
		return
	}
	expandLimit := intQuery(c, "expand_limit", api.cfg.Search.ExpandLimit)
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", api.cfg.Search.ResultsPerPage)

	start := time.Now()
	results := api.engine.PrefixSearch(prefix, expandLimit, page, pageSize)
	totalResults := api.engine.PrefixTotalResults(prefix, expandLimit)
	elapsed := time.Since(start)
	api.observe(services.ModePrefixSearch, elapsed)

	resp := services.BuildSearchResponse(api.engine, services.ModePrefixSearch, prefix, []string{prefix}, results, totalResults, page, pageSize, elapsed)
	resp.QueryID = uuid.NewString()
	c.JSON(http.StatusOK, resp)
}

func (api *API) observe(mode string, elapsed time.Duration) {
	if api.metrics == nil {
		return
	}
	api.metrics.QueriesTotal.WithLabelValues(mode).Inc()
	api.metrics.QueryLatency.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
