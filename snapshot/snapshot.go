package snapshot

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"house-prices/config"
	"house-prices/services"
	"house-prices/utils"
)

// Result records where the screenshot of one query was written.
type Result struct {
	Query url.Values
	Path  string
	Err   error
}

// Capturer renders dashboard pages in headless Chrome and saves screenshots.
type Capturer struct {
	cfg    *config.Config
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
}

// New creates a ready-to-use Capturer.
func New(cfg *config.Config, logger *utils.Logger) *Capturer {
	return &Capturer{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		},
	}
}

// ParseQueries validates raw "cond=5&year=2006" style arguments. No
// arguments means a single snapshot of the default page.
func ParseQueries(args []string) ([]url.Values, error) {
	if len(args) == 0 {
		return []url.Values{services.DefaultSelection().Values()}, nil
	}
	out := make([]url.Values, 0, len(args))
	for _, a := range args {
		v, err := url.ParseQuery(a)
		if err != nil {
			return nil, fmt.Errorf("snapshot: parse %q: %w", a, err)
		}
		_, sel, err := services.ParseQuery(v)
		if err != nil {
			return nil, fmt.Errorf("snapshot: %q: %w", a, err)
		}
		out = append(out, sel.Values())
	}
	return out, nil
}

// PageURL joins the dashboard base URL and a query.
func PageURL(base string, q url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("snapshot: dashboard url: %w", err)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FileName derives a stable screenshot name from a query.
func FileName(q url.Values) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(q.Encode()))
	return fmt.Sprintf("cond%s_year%s_%08x.png",
		q.Get(services.ParamCondition), q.Get(services.ParamYearBuilt), h.Sum32())
}

// Distinct drops repeated queries, keeping the first occurrence of each.
func Distinct(queries []url.Values) []url.Values {
	seen := utils.NewKeySet()
	out := make([]url.Values, 0, len(queries))
	for _, q := range queries {
		if seen.Add(q.Encode()) {
			out = append(out, q)
		}
	}
	return out
}

// Capture takes one screenshot per distinct query. Duplicate queries are
// skipped. Per-query failures are reported in the results, not as an error.
// A Capturer may be reused; each call starts with no results.
func (c *Capturer) Capture(ctx context.Context, queries []url.Values) ([]Result, error) {
	distinct := Distinct(queries)
	if skipped := len(queries) - len(distinct); skipped > 0 {
		c.logger.Debug("[snapshot] %d duplicate queries skipped", skipped)
	}

	if err := os.MkdirAll(c.cfg.SnapshotDir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: create output dir: %w", err)
	}

	chromeBin := c.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	c.logger.Info("[snapshot] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1400, 1000),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// Start the browser once so tabs share it.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("snapshot: start browser: %w", err)
	}

	var (
		mu      sync.Mutex
		results []Result
	)
	for _, q := range distinct {
		q := q
		c.pool.Submit(func() {
			path, err := c.captureOne(browserCtx, q)
			if err != nil {
				c.logger.Error("[snapshot] %s: %v", q.Encode(), err)
			} else {
				c.logger.Info("[snapshot] Saved %s", path)
			}
			mu.Lock()
			results = append(results, Result{Query: q, Path: path, Err: err})
			mu.Unlock()
		})
	}
	c.pool.Wait()

	c.logger.Info("[snapshot] Captured %d queries", len(results))
	return results, nil
}

func (c *Capturer) captureOne(browserCtx context.Context, q url.Values) (string, error) {
	pageURL, err := PageURL(c.cfg.DashboardURL, q)
	if err != nil {
		return "", err
	}
	path := filepath.Join(c.cfg.SnapshotDir, FileName(q))

	err = c.retry.Do(browserCtx, "snapshot "+q.Encode(), func() error {
		tabCtx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 30*time.Second)
		defer cancelTimeout()

		var buf []byte
		if err := chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitVisible(`#results`, chromedp.ByID),
			chromedp.FullScreenshot(&buf, 100),
		); err != nil {
			return fmt.Errorf("chromedp run: %w", err)
		}
		return os.WriteFile(path, buf, 0644)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
