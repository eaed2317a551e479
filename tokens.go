package folionet

import "strings"

// Token describes an asset that can appear in a portfolio allocation.
type Token struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Network string `json:"network,omitempty"`
}

// Tokens is the static catalog of assets the marketplace understands.
var Tokens = []Token{
	{Symbol: "ETH", Name: "Ethereum"},
	{Symbol: "USDC", Name: "USD Coin"},
	{Symbol: "LINK", Name: "Chainlink"},
	{Symbol: "WBTC", Name: "Wrapped Bitcoin"},
	{Symbol: "AAVE", Name: "Aave"},
	{Symbol: "UNI", Name: "Uniswap"},
	{Symbol: "MATIC", Name: "Polygon"},
	{Symbol: "DAI", Name: "Dai"},
}

// GetTokenInfo looks up a catalog entry by symbol, case-insensitively.
func GetTokenInfo(symbol string) (Token, bool) {
	for _, t := range Tokens {
		if strings.EqualFold(t.Symbol, symbol) {
			return t, true
		}
	}
	return Token{}, false
}
