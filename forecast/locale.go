package forecast

import (
	"os"
	"strings"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// DefaultLocale is used when the environment names no supported locale
const DefaultLocale = monday.LocaleEnUS

// The first entry is the matcher's fallback.
var supportedLocales = []monday.Locale{
	monday.LocaleEnUS,
	monday.LocaleEnGB,
	monday.LocaleFrFR,
	monday.LocaleDeDE,
	monday.LocaleEsES,
	monday.LocaleItIT,
	monday.LocalePtBR,
	monday.LocalePtPT,
	monday.LocaleNlNL,
	monday.LocaleRuRU,
	monday.LocalePlPL,
	monday.LocaleSvSE,
	monday.LocaleJaJP,
	monday.LocaleZhCN,
}

var localeMatcher = newLocaleMatcher()

func newLocaleMatcher() language.Matcher {
	tags := make([]language.Tag, len(supportedLocales))
	for i, l := range supportedLocales {
		tags[i] = language.Make(strings.ReplaceAll(string(l), "_", "-"))
	}
	return language.NewMatcher(tags)
}

// ParseLocale maps a POSIX locale ("fr_FR.UTF-8") or BCP 47 tag ("fr-FR")
// to the closest supported locale.
func ParseLocale(value string) monday.Locale {
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	value = strings.TrimSpace(value)
	if value == "" || value == "C" || value == "POSIX" {
		return DefaultLocale
	}

	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return DefaultLocale
	}
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedLocales[index]
}

// LocaleFromEnv resolves the locale from LC_ALL, LC_TIME and LANG, in that order
func LocaleFromEnv() monday.Locale {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return ParseLocale(v)
		}
	}
	return DefaultLocale
}
