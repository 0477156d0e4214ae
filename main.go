package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/vmiyer/portfolio/internal/analytics"
	"github.com/vmiyer/portfolio/internal/config"
	"github.com/vmiyer/portfolio/internal/content"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	portfolio, err := content.Load(cfg.ContentFile)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	var views *analytics.Store
	if cfg.AnalyticsEnabled() {
		views, err = analytics.Open(context.Background(), cfg.AnalyticsDB)
		if err != nil {
			log.Fatalf("Failed to open analytics database: %v", err)
		}
		defer views.Close()

		// Privacy cleanup of old page views runs in the background.
		go cleanupOldViews(context.Background(), views)
	}

	r, err := newRouter(cfg, portfolio, views)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	log.Printf("Serving %s on %s%s", portfolio.Site.Owner, cfg.Addr(), cfg.BasePath)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
