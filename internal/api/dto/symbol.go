package dto

// SymbolSearchResult is one autocomplete match from the symbol search proxy.
type SymbolSearchResult struct {
	Symbol      string `json:"symbol"`
	DisplayName string `json:"display_name"`
	Exchange    string `json:"exchange"`
}
