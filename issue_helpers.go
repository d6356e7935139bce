package csvskema

import (
	"strconv"

	"github.com/reoring/csvskema/i18n"
)

// IssueAt creates an Issue for the key of the i-th field definition with the
// provided code and params map. The message comes from the current translator.
func IssueAt(i int, key, code string, params map[string]any) Issue {
	return Issue{Path: fieldPointer(i, key), Code: code, Message: i18n.T(code, stringParams(params)), Params: params}
}

func fieldPointer(i int, key string) string {
	p := "/fields/" + strconv.Itoa(i)
	if key != "" {
		p += "/" + key
	}
	return p
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch t := v.(type) {
		case string:
			out[k] = t
		case int:
			out[k] = strconv.Itoa(t)
		case DataType:
			out[k] = t.String()
		}
	}
	return out
}
