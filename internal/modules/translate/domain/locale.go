package domain

// Flag glyphs that trigger a translation when used as a reaction.
const (
	FlagKR = "🇰🇷"
	FlagJP = "🇯🇵"
	FlagUS = "🇺🇸"
)

var localeFlags = map[string]string{
	FlagKR: "ko-kr",
	FlagJP: "ja-jp",
	FlagUS: "en-us",
}

// LocaleByFlag returns the locale a flag emoji stands for.
func LocaleByFlag(flag string) (string, bool) {
	locale, ok := localeFlags[flag]
	return locale, ok
}
