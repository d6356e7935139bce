package i18n

import "strings"

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "name" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "bad_field":
			msg = "フィールドの値が不正です"
		case "missing_field":
			msg = "必須フィールドが不足しています"
		case "end_of_input":
			msg = "入力の終端です"
		case "empty_name":
			msg = "フィールド名が空です"
		case "unknown_type":
			msg = "未知の型です: {type}"
		case "duplicate_field":
			msg = "フィールド名が重複しています: {name}"
		case "invalid_default":
			msg = "既定値 {default} は型 {type} に変換できません"
		case "parse_error":
			msg = "解析エラー"
		}
	default: // "en"
		switch code {
		case "bad_field":
			msg = "bad field"
		case "missing_field":
			msg = "missing required field"
		case "end_of_input":
			msg = "end of input"
		case "empty_name":
			msg = "field name is empty"
		case "unknown_type":
			msg = "unknown field type {type}"
		case "duplicate_field":
			msg = "duplicate field name {name}"
		case "invalid_default":
			msg = "invalid default {default} expected type {type}"
		case "parse_error":
			msg = "parse error"
		}
	}
	if msg == "" {
		return code
	}
	return expand(msg, data)
}

// expand substitutes {key} placeholders with values from data. Unknown
// placeholders are left in place.
func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
