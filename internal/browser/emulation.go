package browser

import (
	"context"
	"runtime"
	"strings"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/pinchtab/ariaquery/internal/config"
)

// emulate applies the configured user agent and locale to the tab before
// navigation. Pages that serve different markup per client then expose
// the tree that client would see.
func emulate(cfg *config.RuntimeConfig) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if cfg.Locale != "" {
			if err := emulation.SetLocaleOverride().WithLocale(cfg.Locale).Do(ctx); err != nil {
				return err
			}
		}
		if p := userAgentOverride(cfg.UserAgent, cfg.Locale, runtime.GOOS, runtime.GOARCH); p != nil {
			return p.Do(ctx)
		}
		return nil
	})
}

// userAgentOverride builds the override for ua, or nil to keep the browser
// default. Client hints are filled in when ua names a Chrome version.
func userAgentOverride(ua, locale, goos, goarch string) *emulation.SetUserAgentOverrideParams {
	if ua == "" {
		return nil
	}
	p := emulation.SetUserAgentOverride(ua).WithPlatform(navigatorPlatform(goos))
	if locale != "" {
		p = p.WithAcceptLanguage(locale)
	}

	full := chromeVersion(ua)
	if full == "" {
		return p
	}
	major, _, _ := strings.Cut(full, ".")
	arch := "x86"
	if goarch == "arm64" {
		arch = "arm"
	}
	return p.WithUserAgentMetadata(&emulation.UserAgentMetadata{
		Platform:     platformName(goos),
		Architecture: arch,
		Bitness:      "64",
		Mobile:       strings.Contains(ua, " Mobile"),
		Brands: []*emulation.UserAgentBrandVersion{
			{Brand: "Not(A:Brand", Version: "99"},
			{Brand: "Chromium", Version: major},
		},
		FullVersionList: []*emulation.UserAgentBrandVersion{
			{Brand: "Not(A:Brand", Version: "99.0.0.0"},
			{Brand: "Chromium", Version: full},
		},
	})
}

// chromeVersion extracts "144.0.7559.133" from "... Chrome/144.0.7559.133 Safari/...".
func chromeVersion(ua string) string {
	_, rest, ok := strings.Cut(ua, "Chrome/")
	if !ok {
		return ""
	}
	v, _, _ := strings.Cut(rest, " ")
	return v
}

func navigatorPlatform(goos string) string {
	switch goos {
	case "darwin":
		return "MacIntel"
	case "windows":
		return "Win32"
	}
	return "Linux x86_64"
}

func platformName(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	}
	return "Linux"
}
