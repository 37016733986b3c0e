package models

type LanguageToolResponse struct {
	Matches []LanguageToolMatch `json:"matches"`
}

type LanguageToolMatch struct {
	Message      string                    `json:"message"`
	Offset       int                       `json:"offset"`
	Length       int                       `json:"length"`
	Replacements []LanguageToolReplacement `json:"replacements"`
	Rule         LanguageToolRule          `json:"rule"`
}

type LanguageToolReplacement struct {
	Value string `json:"value"`
}

type LanguageToolRule struct {
	ID string `json:"id"`
}
