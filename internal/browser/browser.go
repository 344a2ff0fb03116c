// Package browser captures live pages through Chrome so they can be
// queried like parsed HTML. Computed visibility and focus do not survive
// serialization, so they are written onto the DOM as marker attributes
// before the document is read.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/pinchtab/ariaquery/dom/htmltree"
	"github.com/pinchtab/ariaquery/internal/config"
	"github.com/pinchtab/ariaquery/internal/snapshot"
)

var ErrUnsupportedURL = errors.New("unsupported url scheme")

// markScript tags every element the page does not render.
var markScript = fmt.Sprintf(`(() => {
	let n = 0;
	for (const el of document.querySelectorAll("*")) {
		const s = getComputedStyle(el);
		if (s.display === "none" || s.visibility === "hidden" || s.visibility === "collapse") {
			el.setAttribute(%q, "");
			n++;
		}
	}
	if (document.activeElement && document.activeElement !== document.body) {
		document.activeElement.setAttribute(%q, "");
	}
	return n;
})()`, htmltree.HiddenMarker, snapshot.FocusedMarker)

// CheckURL accepts http, https, file and data URLs.
func CheckURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "file", "data":
		return nil
	}
	return fmt.Errorf("%q: %w", u.Scheme, ErrUnsupportedURL)
}

func allocatorOptions(cfg *config.RuntimeConfig) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if cfg.Headless {
		opts = append(opts, chromedp.Headless)
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if cfg.ChromeBinary != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromeBinary))
	}
	return append(opts,
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
}

func newAllocator(ctx context.Context, cfg *config.RuntimeConfig) (context.Context, context.CancelFunc) {
	if cfg.CdpURL != "" {
		slog.Debug("connecting to Chrome", "url", cfg.CdpURL)
		return chromedp.NewRemoteAllocator(ctx, cfg.CdpURL)
	}
	slog.Debug("launching Chrome", "headless", cfg.Headless, "binary", cfg.ChromeBinary)
	return chromedp.NewExecAllocator(ctx, allocatorOptions(cfg)...)
}

// Capture loads rawURL in a fresh tab and returns its rendered DOM.
func Capture(ctx context.Context, cfg *config.RuntimeConfig, rawURL string) (*htmltree.Document, error) {
	if err := CheckURL(rawURL); err != nil {
		return nil, err
	}

	allocCtx, allocCancel := newAllocator(ctx, cfg)
	defer allocCancel()
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()
	tCtx, cancel := context.WithTimeout(tabCtx, cfg.NavigateTimeout)
	defer cancel()

	var markup string
	err := chromedp.Run(tCtx,
		emulate(cfg),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			res, exc, err := runtime.Evaluate(markScript).WithReturnByValue(true).Do(ctx)
			if err != nil {
				return fmt.Errorf("mark hidden: %w", err)
			}
			if exc != nil {
				return fmt.Errorf("mark hidden: %s", exc.Text)
			}
			slog.Debug("marked hidden elements", "url", rawURL, "count", string(res.Value))
			return nil
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			root, err := dom.GetDocument().WithDepth(-1).Do(ctx)
			if err != nil {
				return fmt.Errorf("get document: %w", err)
			}
			markup, err = dom.GetOuterHTML().WithNodeID(root.NodeID).Do(ctx)
			if err != nil {
				return fmt.Errorf("get outer html: %w", err)
			}
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", rawURL, err)
	}
	slog.Info("captured page", "url", rawURL, "bytes", len(markup))
	return htmltree.ParseString(markup, htmltree.WithHiddenMarker(htmltree.HiddenMarker))
}
