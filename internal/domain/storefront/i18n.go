package storefront

import "strings"

// Lang is a storefront UI language.
type Lang string

const (
	LangEN Lang = "en"
	LangJP Lang = "jp"
)

// Translations are the static landing page strings.
type Translations struct {
	Headline      string `json:"headline"`
	Subheadline   string `json:"subheadline"`
	AboutTitle    string `json:"about_title"`
	LangSwitch    string `json:"lang_switch"`
	WalletConnect string `json:"wallet_connect"`
	ManualMint    string `json:"manual_mint"`
}

var translations = map[Lang]Translations{
	LangEN: {
		Headline:      "Protect Your Crypto Privacy",
		Subheadline:   "Guides and tools for ultimate anonymity in the crypto world.",
		AboutTitle:    "Available Guidelines",
		LangSwitch:    "日本語",
		WalletConnect: "Connect Wallet",
		ManualMint:    "Manual Mint (QR)",
	},
	LangJP: {
		Headline:      "暗号資産のプライバシーを守る",
		Subheadline:   "究極の匿名性を実現するためのガイドとツール。",
		AboutTitle:    "利用可能なガイド",
		LangSwitch:    "EN",
		WalletConnect: "ウォレット接続",
		ManualMint:    "手動ミント (QR)",
	},
}

// ParseLang maps a query value onto a supported language, defaulting to en.
func ParseLang(s string) Lang {
	lang := Lang(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := translations[lang]; ok {
		return lang
	}
	return LangEN
}

// Translate returns the strings for lang.
func Translate(lang Lang) Translations {
	return translations[ParseLang(string(lang))]
}
