package receipts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

const (
	defaultRenderTimeout = 30 * time.Second
	// 80mm thermal roll
	receiptPaperWidthInches = 3.15
)

// PDFRenderer turns a receipt page into a PDF document
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ChromeConfig configures the headless Chrome renderer
type ChromeConfig struct {
	// RemoteURL points at a running Chrome DevTools endpoint. Empty launches a local browser.
	RemoteURL string
	Timeout   time.Duration
	NoSandbox bool
}

// ChromePDFRenderer prints HTML to PDF through the Chrome DevTools Protocol
type ChromePDFRenderer struct {
	timeout     time.Duration
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromePDFRenderer prepares a browser allocator. The browser starts on first render.
func NewChromePDFRenderer(cfg ChromeConfig) *ChromePDFRenderer {
	r := &ChromePDFRenderer{timeout: cfg.Timeout}
	if r.timeout <= 0 {
		r.timeout = defaultRenderTimeout
	}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// RenderPDF loads html into a blank page and prints it
func (r *ChromePDFRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	if len(html) == 0 {
		return nil, errors.New("receipt HTML is empty")
	}
	if r.allocCtx == nil {
		return nil, errors.New("renderer is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			log.Debugf(format, args...)
		}),
	)
	defer browserCancel()

	// stop the browser work when the request context ends
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(receiptPaperWidthInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("PDF rendering timed out after %v: %w", r.timeout, err)
		}
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(pdf) == 0 {
		return nil, errors.New("generated PDF is empty")
	}
	return pdf, nil
}

// Close releases the browser allocator
func (r *ChromePDFRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCancel = nil
		r.allocCtx = nil
	}
	return nil
}
