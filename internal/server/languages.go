package server

import "math/rand/v2"

type Language struct {
	Name string
	Code string
}

// Languages lists the translation targets shown on every page.
var Languages = []Language{
	{"Amharic", "am"},
	{"Arabic", "ar"},
	{"Basque", "eu"},
	{"Bengali", "bn"},
	{"English", "en"},
	{"Portuguese (Brazil)", "pt-BR"},
	{"Bulgarian", "bg"},
	{"Catalan", "ca"},
	{"Cherokee", "chr"},
	{"Croatian", "hr"},
	{"Czech", "cs"},
	{"Danish", "da"},
	{"Dutch", "nl"},
	{"Estonian", "et"},
	{"Filipino", "fil"},
	{"Finnish", "fi"},
	{"French", "fr"},
	{"German", "de"},
	{"Greek", "el"},
	{"Gujarati", "gu"},
	{"Hebrew", "iw"},
	{"Hindi", "hi"},
	{"Hungarian", "hu"},
	{"Icelandic", "is"},
	{"Indonesian", "id"},
	{"Italian", "it"},
	{"Japanese", "ja"},
	{"Kannada", "kn"},
	{"Korean", "ko"},
	{"Latvian", "lv"},
	{"Lithuanian", "lt"},
	{"Malay", "ms"},
	{"Malayalam", "ml"},
	{"Marathi", "mr"},
	{"Norwegian", "no"},
	{"Polish", "pl"},
	{"Portuguese (Portugal)", "pt-PT"},
	{"Romanian", "ro"},
	{"Russian", "ru"},
	{"Serbian", "sr"},
	{"Chinese (PRC)", "zh-CN"},
	{"Slovak", "sk"},
	{"Slovenian", "sl"},
	{"Spanish", "es"},
	{"Swahili", "sw"},
	{"Swedish", "sv"},
	{"Tamil", "ta"},
	{"Telugu", "te"},
	{"Thai", "th"},
	{"Chinese (Taiwan)", "zh-TW"},
	{"Turkish", "tr"},
	{"Urdu", "ur"},
	{"Ukrainian", "uk"},
	{"Vietnamese", "vi"},
	{"Welsh", "cy"},
}

// RandomLanguage feeds the example translation URL.
func RandomLanguage() Language {
	return Languages[rand.IntN(len(Languages))]
}
