package s7

import (
	"strings"
	"testing"

	"github.com/explore-flights/multimodal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultPage = `<html><body>
<div data-qa="tripItem" data-direction="S7 3012">
	<div class="card_title_logo__x1">S7 Airlines</div>
	<span class="segment_route__time_a">09:15</span>
	<span class="segment_route__time_b">10:40</span>
	<span class="segment_route__time_c">17:05</span>
	<div data-qa="cost_tariffItem">от 24 310 ₽</div>
	<div data-qa="cost_tariffItem">19 990 ₽</div>
	<div data-qa="cost_tariffItem">нет мест</div>
</div>
<div data-qa="tripItem">
	<span class="segment_route__time">23:50</span>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	options, err := ParseResults(strings.NewReader(resultPage))
	require.NoError(t, err)
	require.Len(t, options, 2)

	assert.Equal(t, common.FlightOption{
		FlightNumber:  "S7 Airlines S7 3012",
		Carrier:       "S7 Airlines",
		DepartureTime: "09:15",
		ArrivalTime:   "17:05",
		Price:         19990,
		Currency:      "RUB",
	}, options[0])

	assert.Equal(t, common.FlightOption{
		FlightNumber: "S7 #2",
		Carrier:      "S7",
		Currency:     "RUB",
	}, options[1])
}

func TestParseResults_Empty(t *testing.T) {
	options, err := ParseResults(strings.NewReader(`<html><body><p>Рейсов не найдено</p></body></html>`))
	if assert.NoError(t, err) {
		assert.NotNil(t, options)
		assert.Empty(t, options)
	}
}

func TestCityToIATA(t *testing.T) {
	assert.Equal(t, "MOW", CityToIATA(" Москва "))
	assert.Equal(t, "YKS", CityToIATA("якутск"))
	assert.Equal(t, "VVO", CityToIATA("vvo"))
	assert.Equal(t, "ЧУРАПЧА", CityToIATA("Чурапча"))

	assert.True(t, isIATACode("YKS"))
	assert.False(t, isIATACode("ЯКУ"))
	assert.False(t, isIATACode("YK1"))
}
