package fetch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/wwdctools/wwdc-parser/pkg/types"
)

const (
	defaultNavigateTimeout = 30 * time.Second

	// defaultWaitSelector is populated by JavaScript on documentation
	// pages, so its presence signals the page has rendered.
	defaultWaitSelector = "h1"
)

// Browser fetches pages through headless Chrome so JavaScript-built
// content (Apple Developer documentation) is present in the returned HTML.
type Browser struct {
	cfg types.BrowserConfig

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

func browserDefaults(cfg types.BrowserConfig) types.BrowserConfig {
	if cfg.NavigateTimeout <= 0 {
		cfg.NavigateTimeout = defaultNavigateTimeout
	}
	if cfg.WaitSelector == "" {
		cfg.WaitSelector = defaultWaitSelector
	}
	return cfg
}

// NewBrowser creates a Browser. Chrome is launched lazily on first Fetch.
func NewBrowser(cfg types.BrowserConfig) *Browser {
	return &Browser{cfg: browserDefaults(cfg)}
}

// connect launches a local headless Chrome, or connects to cfg.RemoteURL
// when set.
func (b *Browser) connect() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	controlURL := b.cfg.RemoteURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		b.lnch = l
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect chrome: %w", err)
	}
	b.browser = browser
	return browser, nil
}

// Fetch navigates a stealth tab to the URL, waits for the page to load
// and for the wait selector to appear, and returns the rendered DOM.
func (b *Browser) Fetch(ctx context.Context, url string) (*Result, error) {
	browser, err := b.connect()
	if err != nil {
		return nil, err
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("create tab: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, b.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load %s: %w", url, err)
	}

	// Element blocks until the selector appears, which is the signal
	// that client-side rendering has produced the content.
	if _, err := page.Context(navCtx).Element(b.cfg.WaitSelector); err != nil {
		return nil, fmt.Errorf("wait for %q on %s: %w", b.cfg.WaitSelector, url, err)
	}

	res, err := page.Context(navCtx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("get DOM: %w", err)
	}

	body := []byte(res.Value.Str())
	h := sha256.Sum256(body)
	return &Result{
		Body:       body,
		StatusCode: 200,
		Hash:       fmt.Sprintf("%x", h),
	}, nil
}

// Close shuts down the browser and, when launched locally, the Chrome
// process.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	if b.lnch != nil {
		b.lnch.Cleanup()
	}
	b.browser = nil
	b.lnch = nil
	return err
}
