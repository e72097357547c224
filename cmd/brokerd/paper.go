package main

import (
	"fmt"
	"sort"

	"github.com/goodnatureofminers/swapbroker/internal/blockorder"
	"github.com/goodnatureofminers/swapbroker/internal/engine"
	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/paper"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// venue is what the broker trades against: the relayer, the engines and the
// local view of every market.
type venue struct {
	exchange   *paper.Exchange
	engines    *engine.Registry
	orderbooks []blockorder.Orderbook
}

func newPaperVenue(markets []string, currencies model.Currencies, logger *zap.Logger) (*venue, error) {
	mid, err := decimal.NewFromString(config.Paper.MidPrice)
	if err != nil {
		return nil, fmt.Errorf("paper mid price: %w", err)
	}
	levelSize, err := decimal.NewFromString(config.Paper.LevelSize)
	if err != nil {
		return nil, fmt.Errorf("paper level size: %w", err)
	}
	balance, err := decimal.NewFromString(config.Paper.Balance)
	if err != nil {
		return nil, fmt.Errorf("paper balance: %w", err)
	}
	maxPayment, err := decimal.NewFromString(config.Paper.MaxPayment)
	if err != nil {
		return nil, fmt.Errorf("paper max payment: %w", err)
	}

	var (
		books   []*paper.Book
		symbols = make(map[string]model.Currency)
	)
	for _, market := range markets {
		baseSymbol, counterSymbol, err := model.ParseMarket(market)
		if err != nil {
			return nil, err
		}
		base, err := currencies.Lookup(baseSymbol)
		if err != nil {
			return nil, err
		}
		counter, err := currencies.Lookup(counterSymbol)
		if err != nil {
			return nil, err
		}
		symbols[base.Symbol], symbols[counter.Symbol] = base, counter

		size, err := base.ToQuantums(levelSize)
		if err != nil {
			return nil, fmt.Errorf("paper level size: %w", err)
		}
		quantumMid := mid.Mul(decimal.NewFromInt(counter.QuantumsPerCommon)).Div(decimal.NewFromInt(base.QuantumsPerCommon))
		book := paper.NewBook(base.Symbol, counter.Symbol)
		if err := book.Seed(quantumMid, config.Paper.Levels, size); err != nil {
			return nil, fmt.Errorf("seed %s: %w", market, err)
		}
		books = append(books, book)
		logger.Info("seeded paper book", zap.String("market", market), zap.String("mid", mid.String()), zap.Int("levels", config.Paper.Levels))
	}

	names := make([]string, 0, len(symbols))
	for s := range symbols {
		names = append(names, s)
	}
	sort.Strings(names)

	swaps := paper.NewSwaps()
	engines := make([]engine.Engine, 0, len(names))
	for _, s := range names {
		c := symbols[s]
		capacity, err := c.ToQuantums(balance)
		if err != nil {
			return nil, fmt.Errorf("paper balance: %w", err)
		}
		maxSize, err := c.ToQuantums(maxPayment)
		if err != nil {
			return nil, fmt.Errorf("paper max payment: %w", err)
		}
		e, err := paper.NewEngine(paper.EngineConfig{
			Symbol:         c.Symbol,
			MaxPaymentSize: maxSize,
			Outbound:       capacity,
			Inbound:        capacity,
		}, swaps, logger)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}
	registry, err := engine.NewRegistry(engines...)
	if err != nil {
		return nil, err
	}

	exchange, err := paper.NewExchange(paper.ExchangeConfig{
		Books:     books,
		Swaps:     swaps,
		Logger:    logger,
		FillDelay: config.Paper.FillDelay,
		AutoFill:  true,
	})
	if err != nil {
		return nil, err
	}

	orderbooks := make([]blockorder.Orderbook, 0, len(books))
	for _, b := range books {
		orderbooks = append(orderbooks, b)
	}
	return &venue{exchange: exchange, engines: registry, orderbooks: orderbooks}, nil
}
