// Command shakedown inserts one article and prints it with its generated id.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wiki-content/internal/config"
	"wiki-content/internal/domain"
	"wiki-content/internal/infrastructure/database"
	"wiki-content/internal/logger"
	"wiki-content/internal/metrics"
	"wiki-content/internal/repository"
)

func main() {
	categoryType := flag.String("category", "science", "article category")
	articleTitle := flag.String("title", "Stuff", "article title")
	textContent := flag.String("text", "Paragraphs", "article body")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Configure(cfg.LogLevel)

	article, err := domain.NewArticle(nil, *categoryType, *articleTitle, *textContent)
	if err != nil {
		logger.Fatal("Invalid article",
			slog.String("kind", domain.KindOf(err).String()),
			slog.String("error", err.Error()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer db.Close()

	if err := database.HealthCheck(ctx, db); err != nil {
		logger.Fatal("Database health check failed",
			slog.String("error", err.Error()))
	}

	if err := metrics.RegisterDBStats(db, cfg.DBName); err != nil {
		logger.Warn("Failed to register database metrics",
			slog.String("error", err.Error()))
	}

	if err := repository.InsertArticle(ctx, db, article); err != nil {
		logger.Fatal("Failed to insert article",
			slog.String("kind", domain.KindOf(err).String()),
			slog.String("error", err.Error()))
	}

	articleID, _ := article.ArticleID()
	logger.InfoContext(ctx, "Article inserted",
		slog.Int64("article_id", articleID))

	out, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode article",
			slog.String("error", err.Error()))
	}
	fmt.Fprintln(os.Stdout, string(out))

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("Failed to write metrics textfile",
				slog.String("path", cfg.MetricsTextfile),
				slog.String("error", err.Error()))
		}
	}
}
