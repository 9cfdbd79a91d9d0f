package gtlang

import "strings"

// LanguageNames maps Minecraft locale codes to names used in prompts.
var LanguageNames = map[string]string{
	"en_US": "English (United States)",
	"en_GB": "English (United Kingdom)",
	"de_DE": "German (Germany)",
	"es_ES": "Spanish (Spain)",
	"es_MX": "Spanish (Mexico)",
	"fr_FR": "French (France)",
	"it_IT": "Italian (Italy)",
	"ja_JP": "Japanese (Japan)",
	"ko_KR": "Korean (South Korea)",
	"nl_NL": "Dutch (Netherlands)",
	"pl_PL": "Polish (Poland)",
	"pt_BR": "Portuguese (Brazil)",
	"pt_PT": "Portuguese (Portugal)",
	"ru_RU": "Russian (Russia)",
	"sv_SE": "Swedish (Sweden)",
	"tr_TR": "Turkish (Turkey)",
	"uk_UA": "Ukrainian (Ukraine)",
	"zh_CN": "Chinese (Simplified)",
	"zh_TW": "Chinese (Traditional)",
	"ar_SA": "Arabic (Saudi Arabia)",
	"he_IL": "Hebrew (Israel)",
}

// ShortCodeToLocale maps the short codes used for workplace directories to
// full Minecraft locale codes.
var ShortCodeToLocale = map[string]string{
	"en": "en_US",
	"de": "de_DE",
	"es": "es_ES",
	"fr": "fr_FR",
	"it": "it_IT",
	"ja": "ja_JP",
	"ko": "ko_KR",
	"nl": "nl_NL",
	"pl": "pl_PL",
	"pt": "pt_BR",
	"ru": "ru_RU",
	"sv": "sv_SE",
	"tr": "tr_TR",
	"uk": "uk_UA",
	"zh": "zh_CN",
	"ar": "ar_SA",
	"he": "he_IL",
}

// localeClarifications disambiguate locales a model tends to confuse.
var localeClarifications = map[string]string{
	"zh_CN": "Use Simplified Chinese characters and mainland terminology.",
	"zh_TW": "Use Traditional Chinese characters and Taiwanese terminology.",
	"pt_BR": "Use Brazilian Portuguese, not European Portuguese.",
	"pt_PT": "Use European Portuguese, not Brazilian Portuguese.",
	"es_MX": "Use Latin American Spanish, not Castilian.",
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true,
	"he": true,
	"fa": true,
	"ur": true,
}

// MinecraftLocale expands a short code ("zh") or a loosely written locale
// ("zh-cn") to the Minecraft form ("zh_CN"). Unknown codes are returned
// normalized but otherwise unchanged.
func MinecraftLocale(langCode string) string {
	code := NormalizeLocale(langCode)
	if locale, ok := ShortCodeToLocale[strings.ToLower(code)]; ok {
		return locale
	}
	if base, region, ok := strings.Cut(code, "_"); ok {
		return strings.ToLower(base) + "_" + strings.ToUpper(region)
	}
	return code
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[MinecraftLocale(langCode)]; ok {
		return name
	}
	return langCode
}

// GetLocaleClarification returns an extra prompt hint for locales that are
// easily confused, or "".
func GetLocaleClarification(langCode string) string {
	return localeClarifications[MinecraftLocale(langCode)]
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(langCode string) string {
	if RTLLanguages[normalizeBaseLang(langCode)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(langCode string) bool {
	return GetDirection(langCode) == "rtl"
}

// NormalizeLocale converts a language code to the underscore form (e.g., "zh-CN" → "zh_CN").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "-", "_")
}

// ToHTMLLang converts a locale code to HTML lang attribute format (e.g., "zh_CN" → "zh-CN").
func ToHTMLLang(langCode string) string {
	return strings.ReplaceAll(MinecraftLocale(langCode), "_", "-")
}
