package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"galeria-admin/storage"
)

// ScreenshotService captures a gallery's public storefront in a headless
// browser and stores the captures at their canonical asset paths, one per
// viewport.
type ScreenshotService struct {
	assetDir string
}

// NewScreenshotService creates a screenshot service writing captures under
// assetDir, laid out exactly like the storage bucket.
func NewScreenshotService(assetDir string) *ScreenshotService {
	return &ScreenshotService{assetDir: assetDir}
}

var screenshotViewports = []struct {
	role   storage.AssetRole
	width  int64
	height int64
}{
	{storage.RoleScreenshotDesktop, 1280, 800},
	{storage.RoleScreenshotMobile, 390, 844},
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// CaptureStorefront renders storefrontURL at the desktop and mobile
// viewports and writes the PNG captures to their canonical asset paths.
// Returns the storage keys of the written captures.
func (s *ScreenshotService) CaptureStorefront(ctx context.Context, galleryID, storefrontURL string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	// NoSandbox is required when running in Docker/containers
	opts = append(opts, chromedp.NoSandbox)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	var keys []string
	for _, vp := range screenshotViewports {
		key, err := storage.ResolvePath(galleryID, vp.role, "png")
		if err != nil {
			return nil, err
		}

		buf, err := s.capture(allocCtx, storefrontURL, vp.width, vp.height)
		if err != nil {
			return nil, fmt.Errorf("failed to capture %s: %w", vp.role, err)
		}

		fullPath := filepath.Join(s.assetDir, filepath.FromSlash(key))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create asset directory: %w", err)
		}
		if err := os.WriteFile(fullPath, buf, 0644); err != nil {
			return nil, fmt.Errorf("failed to write capture: %w", err)
		}

		log.Printf("✓ Stored %s capture for gallery %s at %s", vp.role, galleryID, key)
		keys = append(keys, key)
	}

	return keys, nil
}

func (s *ScreenshotService) capture(allocCtx context.Context, url string, width, height int64) ([]byte, error) {
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var buf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(width, height),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(1500*time.Millisecond), // let fonts/images settle
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
