// Command minigoogle builds an in-memory full-text index over a directory
// of .txt files and answers a single query — ranked search, autocomplete,
// or prefix search — as one JSON document on stdout. With --serve it keeps
// the index resident and exposes the same operations over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ateeblj/Mini-Google/api"
	"github.com/Ateeblj/Mini-Google/config"
	"github.com/Ateeblj/Mini-Google/internal/engine"
	"github.com/Ateeblj/Mini-Google/internal/metrics"
	"github.com/Ateeblj/Mini-Google/internal/tokenizer"
	"github.com/Ateeblj/Mini-Google/services"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to YAML config file")
		dataDir     = flag.String("data-dir", "", "Directory to index (default ./Data)")
		searchQuery = flag.String("search", "", "Run a ranked search for the given query")
		acPrefix    = flag.String("autocomplete", "", "List trie completions for the given prefix")
		psPrefix    = flag.String("prefixsearch", "", "Run a prefix-expanded search for the given prefix")
		topK        = flag.Int("topK", 0, "Results per page (default 10)")
		limit       = flag.Int("limit", 0, "Max autocomplete suggestions (default 10)")
		expandLimit = flag.Int("expandLimit", 0, "Max trie expansions for prefix search (default 100)")
		page        = flag.Int("page", 1, "1-based page index")
		perDocNorm  = flag.Bool("per-doc-norm", false, "Use each document's own length for tf and length normalization")
		serve       = flag.Bool("serve", false, "Keep the index resident and serve queries over HTTP")
		port        = flag.Int("port", 0, "HTTP port for --serve (default 8080)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, *dataDir, *topK, *limit, *expandLimit, *port, *perDocNorm)
	setupLogging(cfg.Logging)

	eng := engine.New(engine.Options{PerDocLengthNorm: cfg.Search.PerDocLengthNorm})
	if err := eng.IndexFolder(cfg.DataDir); err != nil {
		emitJSON(services.ErrorResponse{Error: "No documents could be indexed."})
		os.Exit(1)
	}
	if eng.DocumentCount() == 0 {
		emitJSON(services.ErrorResponse{Error: "No documents could be indexed."})
		os.Exit(1)
	}

	switch {
	case *serve:
		runServer(eng, cfg)
	case *searchQuery != "":
		runSearch(eng, cfg, *searchQuery, *page)
	case *acPrefix != "":
		runAutocomplete(eng, cfg, *acPrefix)
	case *psPrefix != "":
		runPrefixSearch(eng, cfg, *psPrefix, *page)
	default:
		emitJSON(services.StatusResponse{
			Status:            "ready",
			Documents:         eng.DocumentCount(),
			UniqueTerms:       eng.UniqueTermCount(),
			DataDirectory:     cfg.DataDir,
			TotalWordsIndexed: eng.TotalWordsIndexed(),
		})
	}
}

func applyFlagOverrides(cfg *config.Config, dataDir string, topK, limit, expandLimit, port int, perDocNorm bool) {
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if topK > 0 {
		cfg.Search.ResultsPerPage = topK
	}
	if limit > 0 {
		cfg.Search.AutocompleteLimit = limit
	}
	if expandLimit > 0 {
		cfg.Search.ExpandLimit = expandLimit
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if perDocNorm {
		cfg.Search.PerDocLengthNorm = true
	}
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	// JSON logs to stderr; stdout is reserved for the result document.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = logger
}

func runSearch(eng *engine.Engine, cfg *config.Config, query string, page int) {
	start := time.Now()
	results := eng.Search(query, page, cfg.Search.ResultsPerPage)
	totalResults := eng.TotalResults(query)
	elapsed := time.Since(start)

	queryTerms := tokenizer.Tokenize(tokenizer.ToLowerASCII(query))
	emitJSON(services.BuildSearchResponse(eng, services.ModeSearch, query, queryTerms, results, totalResults, page, cfg.Search.ResultsPerPage, elapsed))
}

func runAutocomplete(eng *engine.Engine, cfg *config.Config, prefix string) {
	start := time.Now()
	suggestions := eng.Autocomplete(prefix, cfg.Search.AutocompleteLimit)
	elapsed := time.Since(start)

	emitJSON(services.AutocompleteResponse{
		Prefix:      prefix,
		Count:       len(suggestions),
		TimeMs:      elapsed.Milliseconds(),
		Suggestions: suggestions,
	})
}

func runPrefixSearch(eng *engine.Engine, cfg *config.Config, prefix string, page int) {
	start := time.Now()
	results := eng.PrefixSearch(prefix, cfg.Search.ExpandLimit, page, cfg.Search.ResultsPerPage)
	totalResults := eng.PrefixTotalResults(prefix, cfg.Search.ExpandLimit)
	elapsed := time.Since(start)

	emitJSON(services.BuildSearchResponse(eng, services.ModePrefixSearch, prefix, []string{prefix}, results, totalResults, page, cfg.Search.ResultsPerPage, elapsed))
}

func runServer(eng *engine.Engine, cfg *config.Config) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(eng.CacheStats)
		m.SetIndexStats(eng.DocumentCount(), eng.UniqueTermCount(), eng.TotalWordsIndexed())
	}
	api.SetupRoutes(router, eng, cfg, m)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

func emitJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding output")
	}
}
