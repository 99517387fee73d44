package s7

import (
	"strings"
	"unicode"
)

var cityIATA = map[string]string{
	"москва":                   "MOW",
	"санкт-петербург":          "LED",
	"новосибирск":              "OVB",
	"екатеринбург":             "SVX",
	"казань":                   "KZN",
	"сочи":                     "AER",
	"владивосток":              "VVO",
	"краснодар":                "KRR",
	"самара":                   "KUF",
	"уфа":                      "UFA",
	"красноярск":               "KJA",
	"омск":                     "OMS",
	"челябинск":                "CEK",
	"иркутск":                  "IKT",
	"нижний новгород":          "GOJ",
	"пермь":                    "PEE",
	"ростов":                   "ROV",
	"волгоград":                "VOG",
	"астрахань":                "ASF",
	"мурманск":                 "MMK",
	"петропавловск-камчатский": "PKC",
	"якутск":                   "YKS",
}

// CityToIATA maps a russian city name to its IATA code. Unknown values are
// assumed to already be codes and are returned upper-cased.
func CityToIATA(city string) string {
	c := strings.ToLower(strings.TrimSpace(city))
	if code, ok := cityIATA[c]; ok {
		return code
	}

	return strings.ToUpper(strings.TrimSpace(city))
}

func isIATACode(v string) bool {
	if len(v) != 3 {
		return false
	}

	for _, r := range v {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}
