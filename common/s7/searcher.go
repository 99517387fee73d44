package s7

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/explore-flights/multimodal/common"
)

const defaultStartUrl = "https://ibe.s7.ru/air"

type Searcher struct {
	startUrl       string
	execPath       string
	resultsTimeout time.Duration
	settleDelay    time.Duration
}

type SearcherOption func(s *Searcher)

func WithStartUrl(startUrl string) SearcherOption {
	return func(s *Searcher) {
		s.startUrl = startUrl
	}
}

func WithExecPath(execPath string) SearcherOption {
	return func(s *Searcher) {
		s.execPath = execPath
	}
}

func WithResultsTimeout(timeout time.Duration) SearcherOption {
	return func(s *Searcher) {
		s.resultsTimeout = timeout
	}
}

func NewSearcher(opts ...SearcherOption) *Searcher {
	s := &Searcher{}
	for _, opt := range opts {
		opt(s)
	}

	s.startUrl = cmp.Or(s.startUrl, defaultStartUrl)
	s.resultsTimeout = cmp.Or(s.resultsTimeout, time.Minute)
	s.settleDelay = cmp.Or(s.settleDelay, time.Second*3)

	return s
}

// Search drives a headless browser through the booking form and parses the result page.
// A result page that never shows any result card yields an empty list.
func (s *Searcher) Search(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	if s.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(s.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	origin := CityToIATA(q.Origin)
	destination := CityToIATA(q.Destination)
	if !isIATACode(origin) || !isIATACode(destination) {
		slog.WarnContext(ctx, "searching with non iata location", slog.String("origin", origin), slog.String("destination", destination))
	}

	err := chromedp.Run(browserCtx, s.searchForm(q, origin, destination))

	if err != nil {
		return nil, fmt.Errorf("s7: failed to submit search form: %w", err)
	}

	waitCtx, waitCancel := context.WithTimeout(browserCtx, s.resultsTimeout)
	defer waitCancel()

	if err = chromedp.Run(waitCtx, chromedp.WaitVisible(resultCardSelector, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return []common.FlightOption{}, nil
		}

		return nil, fmt.Errorf("s7: waiting for results: %w", err)
	}

	var html string
	err = chromedp.Run(
		browserCtx,
		chromedp.Sleep(s.settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)

	if err != nil {
		return nil, fmt.Errorf("s7: failed to read result page: %w", err)
	}

	return ParseResults(strings.NewReader(html))
}

func (s *Searcher) searchForm(q common.FlightQuery, origin, destination string) chromedp.Tasks {
	tripType := "В одну сторону"
	if q.RoundTrip() {
		tripType = "Туда и обратно"
	}

	tasks := chromedp.Tasks{
		chromedp.Navigate(s.startUrl),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Click(radioXPath(tripType), chromedp.BySearch, chromedp.NodeVisible),
		fillField("Откуда", origin),
		fillField("Куда", destination),
		fillField("Туда", q.Date.Dotted()),
	}

	if q.RoundTrip() {
		tasks = append(tasks, fillField("Обратно", q.ReturnDate.Dotted()))
	}

	return append(tasks, chromedp.Click(`//button[contains(., 'Найти') or contains(., 'Искать')]`, chromedp.BySearch, chromedp.NodeVisible))
}

func fillField(label, value string) chromedp.Tasks {
	sel := inputNearLabelXPath(label)
	return chromedp.Tasks{
		chromedp.Click(sel, chromedp.BySearch, chromedp.NodeVisible),
		chromedp.SetValue(sel, "", chromedp.BySearch),
		chromedp.SendKeys(sel, value, chromedp.BySearch),
		chromedp.Sleep(time.Second),
		chromedp.SendKeys(sel, kb.Enter, chromedp.BySearch),
	}
}

func inputNearLabelXPath(label string) string {
	return fmt.Sprintf(
		`(//*[normalize-space(text())='%s']/ancestor::*[.//input[not(@type='hidden')]][1]//input[not(@type='hidden')])[1]`,
		label,
	)
}

func radioXPath(label string) string {
	return fmt.Sprintf(`(//*[@role='radio' or @type='radio'][contains(., '%s') or @aria-label='%s'])[1]`, label, label)
}
