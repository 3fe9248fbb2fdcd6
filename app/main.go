package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newshub/app/api"
	"newshub/app/cfg"
	"newshub/app/database"
	"newshub/app/keywords"
	"newshub/app/langdetect"
	"newshub/app/logging"
	"newshub/app/news"
	"newshub/app/provider"
	"newshub/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logging.Init(appCfg.Debug)

	slog.Info("Starting NewsHub", "version", appCfg.Version, "mode", appCfg.Mode)

	db, err := database.NewConnection(appCfg.DBHost, appCfg.DBPort,
		appCfg.DBUser, appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	articleRepo := database.NewArticleRepository(db)
	sourceRepo := database.NewSourceRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	switch appCfg.Mode {
	case "serve":
		runServer(ctx, appCfg, articleRepo, sourceRepo)
	case "fetch-articles":
		runFetchArticles(ctx, appCfg, articleRepo)
	case "fetch-sources":
		runFetchSources(ctx, appCfg, sourceRepo)
	}
}

func runServer(ctx context.Context, appCfg *cfg.Cfg,
	articleRepo database.ArticleRepository, sourceRepo database.SourceRepository) {
	detector := langdetect.NewDetector()

	handler := api.NewHandler(articleRepo, sourceRepo, detector, appCfg.Version)
	router := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}

func runFetchArticles(ctx context.Context, appCfg *cfg.Cfg, articleRepo database.ArticleRepository) {
	client := newProviderClient(appCfg)
	extractor := keywords.NewExtractor()
	detector := langdetect.NewDetector()

	newTask := func(category string) tasks.TaskInterface {
		return tasks.NewFetchArticlesTask(client, articleRepo, extractor, detector,
			category, appCfg.Country, appCfg.PageSize)
	}

	runner := tasks.NewRunner(ctx, newTask, fetchCategories(appCfg),
		time.Duration(appCfg.FetchInterval)*time.Second, appCfg.Once)
	runner.Start()
	runner.Wait()
}

func runFetchSources(ctx context.Context, appCfg *cfg.Cfg, sourceRepo database.SourceRepository) {
	client := newProviderClient(appCfg)

	newTask := func(category string) tasks.TaskInterface {
		return tasks.NewFetchSourcesTask(client, sourceRepo,
			category, appCfg.Language, appCfg.Country)
	}

	runner := tasks.NewRunner(ctx, newTask, fetchCategories(appCfg),
		time.Duration(appCfg.SourcesInterval)*time.Second, appCfg.Once)
	runner.Start()
	runner.Wait()
}

func newProviderClient(appCfg *cfg.Cfg) *provider.Client {
	if appCfg.NewsAPIKey == "" {
		slog.Error("NEWSAPI_API_KEY is required for ingestion jobs")
		os.Exit(1)
	}
	return provider.NewClient(appCfg.NewsAPIKey, appCfg.UserAgent)
}

func fetchCategories(appCfg *cfg.Cfg) []string {
	if appCfg.Category != "" {
		return []string{appCfg.Category}
	}
	return news.Categories
}
