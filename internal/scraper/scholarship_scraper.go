package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"scholar-sync/internal/database"
	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/repository"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
)

// DirectoryTarget describes one scholarship directory site: where the
// listing pages live and which selectors pull out the fields.
type DirectoryTarget struct {
	SourceName       string
	BaseURL          string
	ListURL          string // may contain %d for the page number
	Pages            int
	LinkSelector     string
	NameSelector     string
	AmountSelector   string
	DeadlineSelector string
	BodySelector     string
}

type listingItem struct {
	Link string
	Name string
}

type scholarshipDetail struct {
	Name     string
	Amount   string
	Deadline string
	Body     string
	URL      string
}

type DirectoryScraper struct {
	db           database.DB
	scholarships repository.ScholarshipRepository
}

func NewDirectoryScraper(db database.DB, scholarships repository.ScholarshipRepository) *DirectoryScraper {
	return &DirectoryScraper{db: db, scholarships: scholarships}
}

// Scrape walks each target's listing pages, visits every scholarship detail
// page, and upserts what it finds keyed by (source, external id). Page and
// item failures are logged to the ingest run and skipped.
func (s *DirectoryScraper) Scrape(ctx context.Context, targets []DirectoryTarget) error {
	if s == nil || s.db == nil || s.scholarships == nil {
		return fmt.Errorf("nil scraper/db")
	}

	for _, t := range targets {
		if strings.TrimSpace(t.SourceName) == "" || strings.TrimSpace(t.ListURL) == "" {
			continue
		}
		if strings.TrimSpace(t.BaseURL) == "" {
			t.BaseURL = t.ListURL
		}
		if strings.TrimSpace(t.LinkSelector) == "" {
			t.LinkSelector = "a"
		}
		if strings.TrimSpace(t.NameSelector) == "" {
			t.NameSelector = "h1"
		}
		if strings.TrimSpace(t.BodySelector) == "" {
			t.BodySelector = "body"
		}
		if t.Pages < 1 {
			t.Pages = 1
		}

		sourceID, err := ensureScholarshipSource(ctx, s.db, t.SourceName, t.BaseURL)
		if err != nil {
			continue
		}
		runID, _ := createIngestRun(ctx, s.db, sourceID)

		status := "finished"
		if err := s.scrapeTarget(ctx, t, sourceID, runID); err != nil {
			status = "failed"
		}
		_ = finishIngestRun(ctx, s.db, runID, status)
	}

	return nil
}

func (s *DirectoryScraper) scrapeTarget(ctx context.Context, t DirectoryTarget, sourceID, runID uuid.UUID) error {
	var lastErr error
	for page := 1; page <= t.Pages; page++ {
		listURL := t.ListURL
		if strings.Contains(listURL, "%d") {
			listURL = fmt.Sprintf(listURL, page)
		}

		items, err := s.scrapeListingPage(ctx, t, listURL)
		if err != nil {
			lastErr = err
			_ = logIngest(ctx, s.db, runID, "error", fmt.Sprintf("list page %d: %v", page, err))
			continue
		}

		for _, it := range items {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d, err := s.scrapeDetailPage(ctx, t, it.Link)
			if err != nil {
				_ = logIngest(ctx, s.db, runID, "error", fmt.Sprintf("detail %s: %v", it.Link, err))
				continue
			}

			upsert := detailToUpsert(sourceID, it, d)
			if upsert.Name == "" {
				continue
			}
			if err := s.scholarships.UpsertScholarships(ctx, []repository.ScholarshipUpsert{upsert}); err != nil {
				_ = logIngest(ctx, s.db, runID, "error", fmt.Sprintf("upsert %s: %v", it.Link, err))
				continue
			}
			_ = logIngest(ctx, s.db, runID, "info", fmt.Sprintf("scholarship upserted url=%s name=%s", d.URL, upsert.Name))
		}
	}
	return lastErr
}

func (s *DirectoryScraper) scrapeListingPage(ctx context.Context, t DirectoryTarget, listURL string) ([]listingItem, error) {
	c := newCollector(listURL)

	items := make([]listingItem, 0)
	dedup := map[string]struct{}{}

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML(t.LinkSelector, func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		abs := normalizeURL(e.Request.AbsoluteURL(href))
		if abs == "" {
			return
		}
		if _, ok := dedup[abs]; ok {
			return
		}
		dedup[abs] = struct{}{}

		items = append(items, listingItem{Link: abs, Name: strings.TrimSpace(e.Text)})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return items, nil
}

func (s *DirectoryScraper) scrapeDetailPage(ctx context.Context, t DirectoryTarget, pageURL string) (scholarshipDetail, error) {
	c := newCollector(pageURL)

	var out scholarshipDetail
	out.URL = pageURL
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML(t.NameSelector, func(e *colly.HTMLElement) {
		if out.Name == "" {
			out.Name = strings.TrimSpace(e.Text)
		}
	})
	if strings.TrimSpace(t.AmountSelector) != "" {
		c.OnHTML(t.AmountSelector, func(e *colly.HTMLElement) {
			if out.Amount == "" {
				out.Amount = strings.TrimSpace(e.Text)
			}
		})
	}
	if strings.TrimSpace(t.DeadlineSelector) != "" {
		c.OnHTML(t.DeadlineSelector, func(e *colly.HTMLElement) {
			if out.Deadline == "" {
				out.Deadline = strings.TrimSpace(e.Text)
			}
		})
	}
	c.OnHTML(t.BodySelector, func(e *colly.HTMLElement) {
		out.Body = strings.TrimSpace(e.Text)
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return scholarshipDetail{}, ctx.Err()
	}
	if err := c.Visit(pageURL); err != nil {
		return scholarshipDetail{}, err
	}
	c.Wait()
	if reqErr != nil {
		return scholarshipDetail{}, reqErr
	}
	return out, nil
}

func newCollector(pageURL string) *colly.Collector {
	allowed := hostFromURL(pageURL)
	var c *colly.Collector
	if allowed == "" {
		c = colly.NewCollector()
	} else {
		c = colly.NewCollector(colly.AllowedDomains(allowed))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 850 * time.Millisecond, Delay: 450 * time.Millisecond})
	return c
}

func detailToUpsert(sourceID uuid.UUID, it listingItem, d scholarshipDetail) repository.ScholarshipUpsert {
	name := d.Name
	if name == "" {
		name = it.Name
	}

	up := repository.ScholarshipUpsert{
		SourceID:   sourceID,
		ExternalID: stableExternalIDFromURL(d.URL),
		Name:       name,
	}
	if u := normalizeURL(d.URL); u != "" {
		up.URL = &u
	}
	if cents, ok := parseAmountCents(d.Amount); ok {
		up.AmountCents = &cents
	}
	if dl, ok := parseDeadline(d.Deadline); ok {
		up.Deadline = &dl
	}
	if body := strings.TrimSpace(d.Body); body != "" {
		desc := body
		if len(desc) > 4000 {
			desc = desc[:4000]
		}
		up.Description = &desc
	}
	if crit := criteriaFromText(d.Body); crit != nil {
		up.Criteria = crit
	}
	return up
}

var (
	amountRe = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{1,2})?)`)
	gpaRe    = regexp.MustCompile(`(?i)(?:minimum\s+)?GPA\s+(?:of\s+)?(\d\.\d{1,2})`)
)

func parseAmountCents(raw string) (int64, bool) {
	m := amountRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int64(v * 100), true
}

func parseDeadline(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	layouts := []string{
		"January 2, 2006",
		"Jan 2, 2006",
		"01/02/2006",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// criteriaFromText pulls the few constraints a directory page states in
// prose. Everything it cannot recognize stays absent, which the filters
// treat as unrestricted.
func criteriaFromText(body string) *scholarship.EligibilityCriteria {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	lower := strings.ToLower(body)

	var crit scholarship.EligibilityCriteria

	if m := gpaRe.FindStringSubmatch(body); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 && v <= 4.0 {
			crit.Academic = &scholarship.AcademicCriteria{MinGPA: &v}
		}
	}
	if strings.Contains(lower, "financial need") {
		t := true
		crit.Financial = &scholarship.FinancialCriteria{RequiresFinancialNeed: &t}
	}
	if strings.Contains(lower, "first generation") || strings.Contains(lower, "first-generation") {
		t := true
		crit.Special = &scholarship.SpecialCriteria{FirstGenerationRequired: &t}
	}

	if crit.Academic == nil && crit.Financial == nil && crit.Special == nil {
		return nil
	}
	return &crit
}
