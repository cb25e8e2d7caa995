package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Chrome implements Browser at compile time.
var _ Browser = (*Chrome)(nil)

// Chrome is a headless Chrome process driven over the DevTools protocol.
type Chrome struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// LaunchChrome starts a headless Chrome. Images are not loaded since only
// the DOM is read. Returns an error if Chrome or Chromium cannot be found.
func LaunchChrome() (*Chrome, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("blink-settings", "imagesEnabled=false").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &Chrome{browser: b, launcher: l}, nil
}

// Render opens url in a fresh tab under userAgent and returns the DOM once
// the load event has fired. The tab is closed before returning.
func (c *Chrome) Render(ctx context.Context, url, userAgent string) (string, error) {
	tab, err := c.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open tab: %w", err)
	}
	defer tab.Close()

	page := tab.Context(ctx)
	if userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent}); err != nil {
			return "", err
		}
	}
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// Close shuts the browser down and kills its process.
func (c *Chrome) Close() error {
	err := c.browser.Close()
	c.launcher.Kill()
	return err
}

// PID returns the process ID of the browser launcher.
func (c *Chrome) PID() int {
	return c.launcher.PID()
}
