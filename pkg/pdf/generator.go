package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Letter, поля 0.6in со всех сторон
const (
	paperWidthIn  = 8.5
	paperHeightIn = 11.0
	marginIn      = 0.6
)

// Options задает параметры одного рендера
type Options struct {
	// HeaderTemplate/FooterTemplate — HTML-шаблоны колонтитулов Chromium.
	// Если хотя бы один задан, включается displayHeaderFooter.
	HeaderTemplate string
	FooterTemplate string

	// PreferCSSPageSize отдает приоритет @page CSS над форматом Letter
	PreferCSSPageSize bool
}

// Generator растеризует HTML в PDF через headless Chromium.
// Каждый вызов получает одноразовый браузерный контекст с гарантированным
// закрытием: упавший рендер не оставляет висящий процесс браузера.
type Generator struct {
	timeout time.Duration
}

// NewGenerator создает генератор PDF с таймаутом на один рендер.
// Таймаут обязателен: ожидание загрузки страницы — единственная
// операция конвейера, способная зависнуть без ограничения.
func NewGenerator(timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Generator{timeout: timeout}
}

// Generate загружает готовый HTML как содержимое страницы, включает
// эмуляцию print-медиа (чтобы применился print-CSS) и печатает PDF.
func (g *Generator) Generate(ctx context.Context, html string, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = &Options{}
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, g.timeout)
	defer cancelRun()

	var buf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		emulation.SetEmulatedMedia().WithMedia("print"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.PrintToPDF().
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(marginIn).
				WithMarginBottom(marginIn).
				WithMarginLeft(marginIn).
				WithMarginRight(marginIn).
				WithPrintBackground(true).
				WithPreferCSSPageSize(opts.PreferCSSPageSize)

			if opts.HeaderTemplate != "" || opts.FooterTemplate != "" {
				params = params.WithDisplayHeaderFooter(true).
					WithHeaderTemplate(opts.HeaderTemplate).
					WithFooterTemplate(opts.FooterTemplate)
			}

			var err error
			buf, _, err = params.Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromium pdf render failed: %w", err)
	}
	return buf, nil
}
