package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for compile error codes.
// data provides optional metadata to embed in the message (for example,
// "keyword" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates refer
// to data keys as {key}.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"duplicate_keyword":  "keyword {keyword} is set more than once",
		"illegal_keyword":    "keyword {keyword} is not allowed for type {type}",
		"missing_type":       "schema block has no type",
		"invalid_value":      "invalid value {value} for keyword {keyword}: {reason}",
		"unknown_keyword":    "unknown keyword {keyword}",
		"duplicate_property": "property {property} is declared more than once",
	},
	"ja": {
		"duplicate_keyword":  "キーワード {keyword} が重複しています",
		"illegal_keyword":    "キーワード {keyword} は型 {type} では使用できません",
		"missing_type":       "スキーマに型が指定されていません",
		"invalid_value":      "キーワード {keyword} の値 {value} が不正です: {reason}",
		"unknown_keyword":    "未知のキーワードです: {keyword}",
		"duplicate_property": "プロパティ {property} が重複しています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dict[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
