package codec

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var regionNames = display.Regions(language.English)

// NormalizeCountry maps an ISO 3166-1 alpha-2, alpha-3 or UN M.49 code to its
// English country name ("US", "usa" and "840" all give "United States").
// It never fails: input that is not a known code is returned trimmed.
func NormalizeCountry(code string) string {
	s := strings.TrimSpace(code)
	if s == "" {
		return ""
	}
	r, err := language.ParseRegion(strings.ToUpper(s))
	if err != nil {
		return s
	}
	if name := regionNames.Name(r); name != "" {
		return name
	}
	return s
}
