package main

import (
	"context"
	"flag"
	"log"
	"time"

	"scholar-sync/internal/app"
	"scholar-sync/internal/config"
	"scholar-sync/internal/database/migration"
	"scholar-sync/internal/pipeline"
	"scholar-sync/internal/repository"
	"scholar-sync/internal/scraper"
)

func main() {
	scrape := flag.Bool("scrape", false, "refresh scholarships from directory sources before matching")
	pages := flag.Int("pages", 2, "listing pages per directory source")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		migCancel()
		log.Fatalf("migration failed: %v", err)
	}
	migCancel()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	scholarshipRepo := repository.NewPostgresScholarshipRepository(c.DB)

	if *scrape {
		ds := scraper.NewDirectoryScraper(c.DB, scholarshipRepo)
		if err := ds.Scrape(ctx, directoryTargets(*pages)); err != nil {
			log.Printf("scrape error: %v", err)
		}
	}

	matchingPipeline := pipeline.NewMatchingPipeline(
		repository.NewPostgresStudentRepository(c.DB),
		scholarshipRepo,
		repository.NewPostgresMatchRepository(c.DB),
		repository.NewPostgresNotificationRepository(c.DB),
		repository.NewPostgresPipelineRunRepository(c.DB),
		nil, nil, cfg.Pipeline,
	)

	summary, err := matchingPipeline.Run(ctx)
	if err != nil {
		log.Fatalf("pipeline run failed: %v", err)
	}

	log.Printf("run complete students=%d eligible=%d created=%d updated=%d notified=%d duration=%s",
		summary.StudentsProcessed, summary.EligiblePairs, summary.MatchesCreated,
		summary.MatchesUpdated, summary.NotificationsSent, summary.Duration)
}

func directoryTargets(pages int) []scraper.DirectoryTarget {
	return []scraper.DirectoryTarget{
		{
			SourceName:   "CareerOneStop",
			BaseURL:      "https://www.careeronestop.org",
			ListURL:      "https://www.careeronestop.org/toolkit/training/find-scholarships.aspx?curPage=%d",
			Pages:        pages,
			LinkSelector: "table.cos-table td a",
			NameSelector: "h1",
			BodySelector: "div.cos-main-content",
		},
	}
}
