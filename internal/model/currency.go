package model

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/swapbroker/pkg/safe"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Currency describes the unit system of a tradable asset.
type Currency struct {
	Name              string `yaml:"name"`
	Symbol            string `yaml:"symbol"`
	QuantumsPerCommon int64  `yaml:"quantumsPerCommon"`
}

// ToQuantums converts a common amount (e.g. 0.5 BTC) to quantums. Amounts
// finer than one quantum are rejected.
func (c Currency) ToQuantums(common decimal.Decimal) (int64, error) {
	q, err := safe.Int64(common.Mul(decimal.NewFromInt(c.QuantumsPerCommon)))
	if err != nil {
		return 0, fmt.Errorf("%w for %s: %v", ErrAmountTooPrecise, c.Symbol, err)
	}
	return q, nil
}

// ToCommon converts quantums to common units.
func (c Currency) ToCommon(quantums int64) decimal.Decimal {
	return decimal.NewFromInt(quantums).Div(decimal.NewFromInt(c.QuantumsPerCommon))
}

// Currencies indexes currency configuration by symbol.
type Currencies map[string]Currency

// DefaultCurrencies are used when no currency file is configured.
func DefaultCurrencies() Currencies {
	return Currencies{
		"BTC": {Name: "Bitcoin", Symbol: "BTC", QuantumsPerCommon: btcutil.SatoshiPerBitcoin},
		"LTC": {Name: "Litecoin", Symbol: "LTC", QuantumsPerCommon: btcutil.SatoshiPerBitcoin},
	}
}

// LoadCurrencies reads a YAML document of the form
//
//	currencies:
//	  - name: Bitcoin
//	    symbol: BTC
//	    quantumsPerCommon: 100000000
func LoadCurrencies(r io.Reader) (Currencies, error) {
	var doc struct {
		Currencies []Currency `yaml:"currencies"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode currencies: %w", err)
	}

	out := make(Currencies, len(doc.Currencies))
	for _, c := range doc.Currencies {
		if c.Symbol == "" {
			return nil, fmt.Errorf("currency %q has no symbol", c.Name)
		}
		if c.QuantumsPerCommon <= 0 {
			return nil, fmt.Errorf("currency %s: quantumsPerCommon must be positive", c.Symbol)
		}
		if _, ok := out[c.Symbol]; ok {
			return nil, fmt.Errorf("currency %s configured twice", c.Symbol)
		}
		out[c.Symbol] = c
	}
	return out, nil
}

// Lookup returns the configuration of symbol.
func (c Currencies) Lookup(symbol string) (Currency, error) {
	currency, ok := c[symbol]
	if !ok {
		return Currency{}, fmt.Errorf("%w: no currency configuration is available for %s", ErrUnknownCurrency, symbol)
	}
	return currency, nil
}
