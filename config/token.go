package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type TokenConfig struct {
	Address  common.Address
	Decimals uint8
}

// TokenStore holds the configured tokens of every chain keyed by symbol.
type TokenStore struct {
	Tokens map[uint64]map[string]TokenConfig
}

func NewTokenStore() *TokenStore {
	return &TokenStore{
		Tokens: make(map[uint64]map[string]TokenConfig),
	}
}

func (s *TokenStore) Add(chainID uint64, tokens map[string]TokenConfig) {
	if s.Tokens[chainID] == nil {
		s.Tokens[chainID] = make(map[string]TokenConfig)
	}
	for symbol, c := range tokens {
		s.Tokens[chainID][symbol] = c
	}
}

func (s *TokenStore) ConfigByAddress(chainID uint64, address common.Address) (string, TokenConfig, error) {
	tokens, ok := s.Tokens[chainID]
	if !ok {
		return "", TokenConfig{}, fmt.Errorf("no tokens for chain %d", chainID)
	}

	for symbol, c := range tokens {
		if c.Address == address {
			return symbol, c, nil
		}
	}

	return "", TokenConfig{}, fmt.Errorf("no symbol for address %s", address.Hex())
}

func (s *TokenStore) ConfigBySymbol(chainID uint64, symbol string) (TokenConfig, error) {
	tokens, ok := s.Tokens[chainID]
	if !ok {
		return TokenConfig{}, fmt.Errorf("no tokens for chain %d", chainID)
	}

	c, ok := tokens[symbol]
	if !ok {
		return TokenConfig{}, fmt.Errorf("no config for token %s", symbol)
	}

	return c, nil
}

// BaseUnits converts a human readable amount such as "1.5" into the token's
// integer base units. Amounts with more precision than the token supports,
// and non-positive amounts, are rejected.
func (c TokenConfig) BaseUnits(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("amount %s must be positive", amount)
	}

	units := d.Shift(int32(c.Decimals))
	if !units.Equal(units.Truncate(0)) {
		return decimal.Decimal{}, fmt.Errorf("amount %s exceeds %d decimals", amount, c.Decimals)
	}

	return units, nil
}

// HumanAmount formats base units with the token's decimals.
func (c TokenConfig) HumanAmount(units decimal.Decimal) string {
	return units.Shift(-int32(c.Decimals)).String()
}
