package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"resume-match/internal/domain/extraction"
	"resume-match/internal/domain/job"
	"resume-match/internal/logger"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Ingester stores scraped postings under a source tag.
type Ingester interface {
	Ingest(ctx context.Context, source string, postings []job.Posting) (int, error)
}

// PageFetcher returns the rendered HTML of a page. Targets marked headless
// are fetched through it instead of colly.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Options struct {
	Workers   int
	Pages     int
	UserAgent string
	// Delay between requests to the same domain.
	Delay time.Duration
	// RatePerSecond caps detail page fetches per target. Zero disables it.
	RatePerSecond int
}

type Summary struct {
	Target   string `json:"target"`
	Found    int    `json:"found"`
	Stored   int    `json:"stored"`
	Failures int    `json:"failures"`
}

// CareersScraper collects postings from company careers pages: a listing page
// yields detail links, and each detail page becomes one posting.
type CareersScraper struct {
	ingest   Ingester
	renderer PageFetcher
	opts     Options
	log      *zap.Logger
}

func NewCareersScraper(ingest Ingester, renderer PageFetcher, opts Options, log *zap.Logger) *CareersScraper {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Pages <= 0 {
		opts.Pages = 1
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &CareersScraper{ingest: ingest, renderer: renderer, opts: opts, log: logger.OrNop(log)}
}

type listItem struct {
	Link     string
	Title    string
	Location string
}

type detail struct {
	Title       string
	Location    string
	Description string
	URL         string
}

// Run scrapes every target in turn. A failing target is logged and does not
// stop the others.
func (s *CareersScraper) Run(ctx context.Context, targets []Target) ([]Summary, error) {
	if s == nil || s.ingest == nil {
		return nil, errors.New("nil scraper/ingester")
	}
	out := make([]Summary, 0, len(targets))
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		sum, err := s.ScrapeTarget(ctx, t)
		if err != nil {
			s.log.Warn("careers target failed", zap.String("target", t.Name), zap.Error(err))
		}
		out = append(out, sum)
	}
	return out, nil
}

func (s *CareersScraper) ScrapeTarget(ctx context.Context, t Target) (Summary, error) {
	sum := Summary{Target: t.Name}
	if err := t.validate(); err != nil {
		return sum, err
	}
	t = t.withDefaults()
	if t.Headless && s.renderer == nil {
		return sum, fmt.Errorf("target %s needs a headless fetcher", t.Name)
	}

	var (
		mu       sync.Mutex
		postings []job.Posting
	)

	pool := NewWorkerPool(s.opts.Workers, s.opts.Workers*2)
	pool.SetRateLimit(s.opts.RatePerSecond)
	results := pool.Run(ctx)

	failures := make(chan int, 1)
	go func() {
		n := 0
		for res := range results {
			if res.Err != nil {
				n++
				s.log.Debug("careers detail failed", zap.String("target", t.Name), zap.Error(res.Err))
			}
		}
		failures <- n
	}()

	seen := map[string]struct{}{}
	for page := 1; page <= s.opts.Pages; page++ {
		listURL := t.ListURL
		if strings.Contains(listURL, "%d") {
			listURL = fmt.Sprintf(listURL, page)
		} else if page > 1 {
			break
		}

		items, err := s.listing(ctx, t, listURL)
		if err != nil {
			s.log.Warn("careers listing failed", zap.String("target", t.Name), zap.Int("page", page), zap.Error(err))
			sum.Failures++
			continue
		}
		for _, it := range items {
			if _, dup := seen[it.Link]; dup {
				continue
			}
			seen[it.Link] = struct{}{}
			sum.Found++

			submitted := pool.Submit(func(ctx context.Context) error {
				d, err := s.detail(ctx, t, it.Link)
				if err != nil {
					return fmt.Errorf("%s: %w", it.Link, err)
				}
				p := toPosting(t, it, d)
				mu.Lock()
				postings = append(postings, p)
				mu.Unlock()
				return nil
			})
			if !submitted {
				break
			}
		}
	}

	pool.Close()
	sum.Failures += <-failures
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	n, err := s.ingest.Ingest(ctx, job.CareersSource(t.Name), postings)
	sum.Stored = n
	s.log.Info("careers target scraped",
		zap.String("target", t.Name),
		zap.Int("found", sum.Found),
		zap.Int("stored", sum.Stored),
		zap.Int("failures", sum.Failures),
	)
	return sum, err
}

func (s *CareersScraper) listing(ctx context.Context, t Target, listURL string) ([]listItem, error) {
	if t.Headless {
		html, err := s.renderer.Fetch(ctx, listURL)
		if err != nil {
			return nil, err
		}
		return parseListing(html, t, listURL)
	}

	c := s.collector(listURL)
	items := make([]listItem, 0)
	dedup := map[string]struct{}{}

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

		it := listItem{Link: abs}
		if t.TitleSelector != "" {
			it.Title = cleanText(e.DOM.Find(t.TitleSelector).Text())
		}
		if it.Title == "" {
			it.Title = cleanText(e.Text)
		}
		if t.LocationSelector != "" {
			it.Location = cleanText(e.DOM.Find(t.LocationSelector).Text())
		}
		items = append(items, it)
	})

	if err := visit(ctx, c, listURL); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CareersScraper) detail(ctx context.Context, t Target, jobURL string) (detail, error) {
	if t.Headless {
		html, err := s.renderer.Fetch(ctx, jobURL)
		if err != nil {
			return detail{}, err
		}
		return parseDetail(html, t, jobURL)
	}

	c := s.collector(jobURL)
	out := detail{URL: jobURL}

	c.OnHTML(t.TitleSelector, func(e *colly.HTMLElement) {
		if out.Title == "" {
			out.Title = cleanText(e.Text)
		}
	})
	if t.LocationSelector != "" {
		c.OnHTML(t.LocationSelector, func(e *colly.HTMLElement) {
			if out.Location == "" {
				out.Location = cleanText(e.Text)
			}
		})
	}
	c.OnHTML(t.DetailBodySelector, func(e *colly.HTMLElement) {
		out.Description = cleanText(e.Text)
	})

	if err := visit(ctx, c, jobURL); err != nil {
		return detail{}, err
	}
	return out, nil
}

func (s *CareersScraper) collector(pageURL string) *colly.Collector {
	opts := []colly.CollectorOption{colly.UserAgent(s.opts.UserAgent)}
	if host := hostFromURL(pageURL); host != "" {
		opts = append(opts, colly.AllowedDomains(host))
	}
	c := colly.NewCollector(opts...)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, Delay: s.opts.Delay})
	return c
}

func visit(ctx context.Context, c *colly.Collector, pageURL string) error {
	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.Visit(pageURL); err != nil {
		return err
	}
	c.Wait()
	return reqErr
}

func toPosting(t Target, it listItem, d detail) job.Posting {
	title := pickNonEmpty(d.Title, it.Title)
	location := pickNonEmpty(d.Location, it.Location)
	if location == "" {
		if city, ok := extraction.FindMajorCity(d.Description); ok {
			location = strings.ToUpper(city[:1]) + city[1:]
		} else if strings.Contains(strings.ToLower(d.Description), "remote") {
			location = "Remote"
		}
	}
	return job.Posting{
		Title:           title,
		Company:         t.Company,
		Description:     d.Description,
		RequiredSkills:  extraction.ExtractSkills(title + "\n" + d.Description),
		Location:        location,
		ExperienceLevel: extraction.InferJobLevel(title, nil),
		URL:             pickNonEmpty(normalizeURL(d.URL), it.Link),
	}
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

// normalizeURL drops fragments and tracking query parameters.
func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	u.Fragment = ""
	q := u.Query()
	for k := range q {
		if strings.HasPrefix(strings.ToLower(k), "utm_") {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func pickNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
