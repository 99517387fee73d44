package s7

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/explore-flights/multimodal/common"
)

const (
	resultCardSelector = "[data-qa='tripItem']"
	carrierSelector    = "[class*='title_logo']"
	timeSelector       = "[class*='segment_route__time']"
	priceSelector      = "[data-qa='cost_tariffItem']"
	defaultCarrier     = "S7"
	currencyRUB        = "RUB"
)

// ParseResults extracts flight options from a rendered result page.
// Cards that lack individual fields are kept with those fields empty.
func ParseResults(r io.Reader) ([]common.FlightOption, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	cards := doc.Find(resultCardSelector)
	options := make([]common.FlightOption, 0, cards.Length())

	cards.Each(func(i int, card *goquery.Selection) {
		options = append(options, parseCard(i+1, card))
	})

	return options, nil
}

func parseCard(idx int, card *goquery.Selection) common.FlightOption {
	direction := strings.TrimSpace(card.AttrOr("data-direction", ""))
	carrier := strings.TrimSpace(card.Find(carrierSelector).First().Text())

	var flightNumber string
	if direction != "" {
		flightNumber = strings.TrimSpace(carrier + " " + direction)
	} else {
		flightNumber = fmt.Sprintf("%s #%d", cmp.Or(carrier, defaultCarrier), idx)
	}

	var depTime, arrTime string
	if times := card.Find(timeSelector); times.Length() >= 2 {
		depTime = strings.TrimSpace(times.First().Text())
		arrTime = strings.TrimSpace(times.Last().Text())
	}

	var prices []int
	card.Find(priceSelector).Each(func(_ int, s *goquery.Selection) {
		if p, ok := parsePrice(s.Text()); ok {
			prices = append(prices, p)
		}
	})

	var price int
	if len(prices) > 0 {
		price = slices.Min(prices)
	}

	return common.FlightOption{
		FlightNumber:  flightNumber,
		Carrier:       cmp.Or(carrier, defaultCarrier),
		DepartureTime: depTime,
		ArrivalTime:   arrTime,
		Price:         price,
		Currency:      currencyRUB,
	}
}

// parsePrice keeps only the digits, "12 345 ₽" is 12345.
func parsePrice(raw string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, raw)

	if digits == "" {
		return 0, false
	}

	p, err := strconv.Atoi(digits)
	return p, err == nil
}
