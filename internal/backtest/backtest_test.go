package backtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/invest-backtest/internal/broker"
	"github.com/rickgao/invest-backtest/internal/instruments"
	"github.com/rickgao/invest-backtest/internal/model"
)

var testInstrument = model.Instrument{
	FIGI:           "BBG004730N88",
	Ticker:         "SBER",
	ClassCode:      "TQBR",
	Name:           "Sberbank",
	Lot:            10,
	Currency:       "rub",
	InstrumentType: "share",
}

var baseTime = time.Date(2022, 5, 10, 10, 0, 0, 0, time.UTC)

func q(t *testing.T, s string) model.Quotation {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad quotation literal %q: %v", s, err)
	}
	return model.QuotationFromDecimal(d)
}

func bar(t *testing.T, minute int, open, high, low, close string) model.Candle {
	t.Helper()
	return model.Candle{
		Open:     q(t, open),
		High:     q(t, high),
		Low:      q(t, low),
		Close:    q(t, close),
		Volume:   1000,
		Time:     baseTime.Add(time.Duration(minute) * time.Minute),
		Complete: true,
	}
}

func newTestBacktest(t *testing.T, candles []model.Candle) *Backtest {
	t.Helper()
	bt := New(Config{
		InitialCapital: model.QuotationFromInt(100000),
		Currency:       "rub",
		CommissionRate: decimal.RequireFromString("0.003"),
	}, instruments.NewRegistry([]model.Instrument{testInstrument}), nil)
	bt.AddCandles(testInstrument.FIGI, candles)
	return bt
}

func threeBars(t *testing.T) []model.Candle {
	t.Helper()
	return []model.Candle{
		bar(t, 0, "122.90", "123.00", "122.50", "122.86"),
		bar(t, 1, "122.90", "123.87", "122.80", "123.65"),
		bar(t, 2, "123.60", "123.90", "123.40", "123.70"),
	}
}

func TestMarketOrderRoundTrip(t *testing.T) {
	ctx := context.Background()
	bt := newTestBacktest(t, threeBars(t))
	acc := bt.Account()

	if !bt.Tick() {
		t.Fatal("first tick failed")
	}

	buy, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionBuy,
		Type:         broker.OrderTypeMarket,
		QuantityLots: 1,
	})
	if err != nil {
		t.Fatalf("PostOrder buy failed: %v", err)
	}
	if got := buy.InitialOrderPrice.String(); got != "1228.6 rub" {
		t.Errorf("initial order price = %q, want 1228.6 rub", got)
	}
	if buy.Status != broker.OrderStatusNew {
		t.Errorf("status = %q, want new", buy.Status)
	}

	if !bt.Tick() {
		t.Fatal("second tick failed")
	}

	state, err := acc.GetOrderState(ctx, buy.OrderID)
	if err != nil {
		t.Fatalf("GetOrderState failed: %v", err)
	}
	if state.Status != broker.OrderStatusFill {
		t.Fatalf("status after tick = %q, want fill", state.Status)
	}
	if got := state.ExecutedOrderPrice.String(); got != "1228.6 rub" {
		t.Errorf("executed order price = %q, want 1228.6 rub", got)
	}

	ops, err := acc.GetOperations(ctx, broker.OperationsFilter{})
	if err != nil {
		t.Fatalf("GetOperations failed: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("got %d operations, want 2", len(ops))
	}
	if ops[0].Type != broker.OperationTradePayment || ops[0].Payment.String() != "-1228.6 rub" {
		t.Errorf("trade payment = %v %q", ops[0].Type, ops[0].Payment.String())
	}
	if ops[1].Type != broker.OperationCommission || ops[1].Payment.String() != "-3.6858 rub" {
		t.Errorf("commission = %v %q", ops[1].Type, ops[1].Payment.String())
	}
	if !ops[0].Time.Equal(baseTime.Add(time.Minute)) {
		t.Errorf("operation time = %v, want settling bar time", ops[0].Time)
	}

	pf, err := acc.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("GetPortfolio failed: %v", err)
	}
	if got := pf.TotalAmountCurrencies.String(); got != "98767.7142 rub" {
		t.Errorf("cash after buy = %q, want 98767.7142 rub", got)
	}
	if got := pf.TotalAmountShares.String(); got != "1236.5 rub" {
		t.Errorf("shares value = %q, want 1236.5 rub", got)
	}
	if len(pf.Positions) != 1 {
		t.Fatalf("got %d positions, want 1", len(pf.Positions))
	}
	pos := pf.Positions[0]
	if pos.QuantityLots != 1 || pos.AveragePrice.String() != "1228.6 rub" {
		t.Errorf("position = %d lots at %q", pos.QuantityLots, pos.AveragePrice.String())
	}

	if _, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionSell,
		Type:         broker.OrderTypeMarket,
		QuantityLots: 1,
	}); err != nil {
		t.Fatalf("PostOrder sell failed: %v", err)
	}

	if !bt.Tick() {
		t.Fatal("third tick failed")
	}

	ops, err = acc.GetOperations(ctx, broker.OperationsFilter{})
	if err != nil {
		t.Fatalf("GetOperations failed: %v", err)
	}
	if len(ops) != 4 {
		t.Fatalf("got %d operations, want 4", len(ops))
	}
	if got := ops[2].Payment.String(); got != "1236.5 rub" {
		t.Errorf("sell payment = %q, want 1236.5 rub", got)
	}
	if got := ops[3].Payment.String(); got != "-3.7095 rub" {
		t.Errorf("sell commission = %q, want -3.7095 rub", got)
	}

	pf, err = acc.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("GetPortfolio failed: %v", err)
	}
	if got := pf.TotalAmountCurrencies.String(); got != "100000.5047 rub" {
		t.Errorf("final cash = %q, want 100000.5047 rub", got)
	}
	if len(pf.Positions) != 1 {
		t.Fatalf("closed position entry dropped, got %d positions", len(pf.Positions))
	}
	pos = pf.Positions[0]
	if pos.QuantityLots != 0 || !pos.AveragePrice.Quotation().IsZero() {
		t.Errorf("closed position = %d lots at %q, want 0 lots at zero", pos.QuantityLots, pos.AveragePrice.String())
	}
	if got := bt.Capital().String(); got != "100000.5047 rub" {
		t.Errorf("capital = %q, want 100000.5047 rub", got)
	}
}

func TestLimitBuyFillsAtLimitPrice(t *testing.T) {
	ctx := context.Background()
	bt := newTestBacktest(t, threeBars(t))
	acc := bt.Account()
	bt.Tick()

	order, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionBuy,
		Type:         broker.OrderTypeLimit,
		Price:        q(t, "123"),
		QuantityLots: 10,
	})
	if err != nil {
		t.Fatalf("PostOrder failed: %v", err)
	}
	if got := order.InitialOrderPrice.String(); got != "12300 rub" {
		t.Errorf("initial order price = %q, want 12300 rub", got)
	}

	// Next bar trades down to 122.80, below the limit.
	bt.Tick()

	state, err := acc.GetOrderState(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("GetOrderState failed: %v", err)
	}
	if state.Status != broker.OrderStatusFill {
		t.Fatalf("status = %q, want fill", state.Status)
	}

	ops, _ := acc.GetOperations(ctx, broker.OperationsFilter{})
	if len(ops) != 2 {
		t.Fatalf("got %d operations, want 2", len(ops))
	}
	if got := ops[0].Payment.String(); got != "-12300 rub" {
		t.Errorf("trade payment = %q, want -12300 rub", got)
	}
	if got := ops[1].Payment.String(); got != "-36.9 rub" {
		t.Errorf("commission = %q, want -36.9 rub", got)
	}
}

func TestLimitBuyStaysPendingAboveMarket(t *testing.T) {
	ctx := context.Background()
	bt := newTestBacktest(t, threeBars(t))
	acc := bt.Account()
	bt.Tick()

	order, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionBuy,
		Type:         broker.OrderTypeLimit,
		Price:        q(t, "122"),
		QuantityLots: 1,
	})
	if err != nil {
		t.Fatalf("PostOrder failed: %v", err)
	}

	// No remaining bar trades down to 122.
	for bt.Tick() {
	}

	state, err := acc.GetOrderState(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("GetOrderState failed: %v", err)
	}
	if state.Status != broker.OrderStatusNew {
		t.Errorf("status = %q, want new", state.Status)
	}
	orders, _ := acc.GetOrders(ctx)
	if len(orders) != 1 {
		t.Errorf("got %d active orders, want 1", len(orders))
	}
	if ops, _ := acc.GetOperations(ctx, broker.OperationsFilter{}); len(ops) != 0 {
		t.Errorf("got %d operations, want 0", len(ops))
	}
}

func TestSellRejectedAtSubmission(t *testing.T) {
	ctx := context.Background()
	bt := newTestBacktest(t, threeBars(t))
	acc := bt.Account()
	bt.Tick()

	_, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionSell,
		Type:         broker.OrderTypeMarket,
		QuantityLots: 1,
	})
	if !errors.Is(err, broker.ErrInsufficientPosition) {
		t.Fatalf("err = %v, want ErrInsufficientPosition", err)
	}
	orders, _ := acc.GetOrders(ctx)
	if len(orders) != 0 {
		t.Errorf("rejected order reached the book, %d active orders", len(orders))
	}
}

func TestSellRejectedAtSettlement(t *testing.T) {
	ctx := context.Background()
	bt := newTestBacktest(t, threeBars(t))
	acc := bt.Account()
	bt.Tick()

	if _, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionBuy,
		Type:         broker.OrderTypeMarket,
		QuantityLots: 1,
	}); err != nil {
		t.Fatalf("PostOrder buy failed: %v", err)
	}
	bt.Tick()

	// Both sells pass the submission check against the single held lot;
	// only the first can settle.
	first, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionSell,
		Type:         broker.OrderTypeMarket,
		QuantityLots: 1,
	})
	if err != nil {
		t.Fatalf("PostOrder first sell failed: %v", err)
	}
	second, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionSell,
		Type:         broker.OrderTypeMarket,
		QuantityLots: 1,
	})
	if err != nil {
		t.Fatalf("PostOrder second sell failed: %v", err)
	}
	bt.Tick()

	firstState, _ := acc.GetOrderState(ctx, first.OrderID)
	if firstState.Status != broker.OrderStatusFill {
		t.Errorf("first sell status = %q, want fill", firstState.Status)
	}
	secondState, _ := acc.GetOrderState(ctx, second.OrderID)
	if secondState.Status != broker.OrderStatusRejected {
		t.Errorf("second sell status = %q, want rejected", secondState.Status)
	}
	if secondState.Message == "" {
		t.Error("rejected order has no message")
	}
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	bt := newTestBacktest(t, threeBars(t))
	acc := bt.Account()
	bt.Tick()

	order, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionBuy,
		Type:         broker.OrderTypeLimit,
		Price:        q(t, "122"),
		QuantityLots: 1,
	})
	if err != nil {
		t.Fatalf("PostOrder failed: %v", err)
	}
	if err := acc.CancelOrder(ctx, order.OrderID); err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}

	bt.Tick()

	state, _ := acc.GetOrderState(ctx, order.OrderID)
	if state.Status != broker.OrderStatusCancelled {
		t.Errorf("status = %q, want cancelled", state.Status)
	}
	if ops, _ := acc.GetOperations(ctx, broker.OperationsFilter{}); len(ops) != 0 {
		t.Errorf("cancelled order settled, %d operations", len(ops))
	}
	if err := acc.CancelOrder(ctx, order.OrderID); err == nil {
		t.Error("second cancel succeeded, want error")
	}
	if err := acc.CancelOrder(ctx, "missing"); !errors.Is(err, broker.ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestPostOrderIdempotency(t *testing.T) {
	ctx := context.Background()
	bt := newTestBacktest(t, threeBars(t))
	acc := bt.Account()
	bt.Tick()

	spec := broker.OrderSpec{
		FIGI:         testInstrument.FIGI,
		Direction:    broker.DirectionBuy,
		Type:         broker.OrderTypeMarket,
		QuantityLots: 1,
		OrderID:      "client-key-1",
	}
	first, err := acc.PostOrder(ctx, spec)
	if err != nil {
		t.Fatalf("PostOrder failed: %v", err)
	}
	second, err := acc.PostOrder(ctx, spec)
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if first.OrderID != second.OrderID {
		t.Errorf("order ids differ: %q vs %q", first.OrderID, second.OrderID)
	}
	orders, _ := acc.GetOrders(ctx)
	if len(orders) != 1 {
		t.Errorf("got %d active orders, want 1", len(orders))
	}
}

func TestPostOrderValidation(t *testing.T) {
	ctx := context.Background()
	bt := newTestBacktest(t, threeBars(t))
	acc := bt.Account()
	bt.Tick()

	tests := []struct {
		name string
		spec broker.OrderSpec
	}{
		{"missing figi", broker.OrderSpec{Direction: broker.DirectionBuy, Type: broker.OrderTypeMarket, QuantityLots: 1}},
		{"zero quantity", broker.OrderSpec{FIGI: testInstrument.FIGI, Direction: broker.DirectionBuy, Type: broker.OrderTypeMarket}},
		{"bad direction", broker.OrderSpec{FIGI: testInstrument.FIGI, Direction: "hold", Type: broker.OrderTypeMarket, QuantityLots: 1}},
		{"bad type", broker.OrderSpec{FIGI: testInstrument.FIGI, Direction: broker.DirectionBuy, Type: "stop", QuantityLots: 1}},
		{"limit without price", broker.OrderSpec{FIGI: testInstrument.FIGI, Direction: broker.DirectionBuy, Type: broker.OrderTypeLimit, QuantityLots: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := acc.PostOrder(ctx, tt.spec); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	t.Run("unknown instrument", func(t *testing.T) {
		_, err := acc.PostOrder(ctx, broker.OrderSpec{
			FIGI: "NOPE", Direction: broker.DirectionBuy, Type: broker.OrderTypeMarket, QuantityLots: 1,
		})
		if !errors.Is(err, instruments.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestRevealedCandles(t *testing.T) {
	bt := newTestBacktest(t, threeBars(t))

	if got := bt.Candles(testInstrument.FIGI); got != nil {
		t.Errorf("candles before first tick = %d, want none", len(got))
	}
	bt.Tick()
	bt.Tick()
	got := bt.Candles(testInstrument.FIGI)
	if len(got) != 2 {
		t.Fatalf("got %d revealed candles, want 2", len(got))
	}
	if got[1].Close.String() != "123.65" {
		t.Errorf("latest close = %q, want 123.65", got[1].Close.String())
	}
	if !bt.CurrentTime().Equal(baseTime.Add(time.Minute)) {
		t.Errorf("current time = %v, want %v", bt.CurrentTime(), baseTime.Add(time.Minute))
	}
}

func TestTickExhaustsMarketData(t *testing.T) {
	bt := newTestBacktest(t, threeBars(t))
	ticks := 0
	for bt.Tick() {
		ticks++
	}
	if ticks != 3 {
		t.Errorf("got %d ticks, want 3", ticks)
	}
	if bt.Tick() {
		t.Error("tick after exhaustion returned true")
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() ([]broker.Operation, string) {
		ctx := context.Background()
		bt := newTestBacktest(t, threeBars(t))
		acc := bt.Account()
		bt.Tick()
		if _, err := acc.PostOrder(ctx, broker.OrderSpec{
			FIGI: testInstrument.FIGI, Direction: broker.DirectionBuy,
			Type: broker.OrderTypeMarket, QuantityLots: 2,
		}); err != nil {
			t.Fatalf("PostOrder failed: %v", err)
		}
		for bt.Tick() {
		}
		ops, _ := acc.GetOperations(ctx, broker.OperationsFilter{})
		return ops, bt.Capital().String()
	}

	opsA, capA := run()
	opsB, capB := run()
	if capA != capB {
		t.Errorf("capital differs across runs: %q vs %q", capA, capB)
	}
	if len(opsA) != len(opsB) {
		t.Fatalf("operation counts differ: %d vs %d", len(opsA), len(opsB))
	}
	for i := range opsA {
		if opsA[i].Type != opsB[i].Type ||
			opsA[i].Payment != opsB[i].Payment ||
			!opsA[i].Time.Equal(opsB[i].Time) {
			t.Errorf("operation %d differs: %+v vs %+v", i, opsA[i], opsB[i])
		}
	}
}

func TestUnequalSeriesLengths(t *testing.T) {
	short := model.Instrument{
		FIGI:           "BBG004730RP0",
		Ticker:         "GAZP",
		ClassCode:      "TQBR",
		Name:           "Gazprom",
		Lot:            1,
		Currency:       "rub",
		InstrumentType: "share",
	}
	shortBars := []model.Candle{
		bar(t, 0, "49.50", "50.50", "49.00", "50"),
		bar(t, 1, "50.00", "52.50", "49.80", "52"),
	}

	ctx := context.Background()
	bt := New(Config{
		InitialCapital: model.QuotationFromInt(100000),
		Currency:       "rub",
		CommissionRate: decimal.RequireFromString("0.003"),
	}, instruments.NewRegistry([]model.Instrument{testInstrument, short}), nil)
	bt.AddCandles(testInstrument.FIGI, threeBars(t))
	bt.AddCandles(short.FIGI, shortBars)
	acc := bt.Account()

	if !bt.Tick() {
		t.Fatal("first tick failed")
	}
	if _, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI: short.FIGI, Direction: broker.DirectionBuy,
		Type: broker.OrderTypeMarket, QuantityLots: 1,
	}); err != nil {
		t.Fatalf("PostOrder short buy failed: %v", err)
	}

	// Second tick reveals the short instrument's final bar and fills its
	// order at the previous close.
	if !bt.Tick() {
		t.Fatal("second tick failed")
	}
	if _, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI: testInstrument.FIGI, Direction: broker.DirectionBuy,
		Type: broker.OrderTypeMarket, QuantityLots: 1,
	}); err != nil {
		t.Fatalf("PostOrder long buy failed: %v", err)
	}

	// Third tick: only the longer series still advances.
	if !bt.Tick() {
		t.Fatal("third tick failed before the longer series was exhausted")
	}
	if bt.Tick() {
		t.Fatal("tick succeeded with every series exhausted")
	}

	// The exhausted series stays pinned to its final bar.
	cur, ok := bt.CurrentCandle(short.FIGI)
	if !ok {
		t.Fatal("current candle undefined after series exhaustion")
	}
	if got := cur.Close.String(); got != "52" {
		t.Errorf("pinned close = %q, want 52", got)
	}
	if !bt.CurrentTime().Equal(baseTime.Add(2 * time.Minute)) {
		t.Errorf("current time = %v, want latest revealed bar", bt.CurrentTime())
	}

	ops, _ := acc.GetOperations(ctx, broker.OperationsFilter{})
	if len(ops) != 4 {
		t.Fatalf("got %d operations, want 4", len(ops))
	}
	if got := ops[0].Payment.String(); got != "-50 rub" {
		t.Errorf("short trade payment = %q, want -50 rub", got)
	}
	if got := ops[2].Payment.String(); got != "-1236.5 rub" {
		t.Errorf("long trade payment = %q, want -1236.5 rub", got)
	}

	// Valuation must include the exhausted instrument at its final close:
	// 98709.6405 cash + 52 short + 1237 long.
	pf, err := acc.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("GetPortfolio failed: %v", err)
	}
	if got := pf.TotalAmountCurrencies.String(); got != "98709.6405 rub" {
		t.Errorf("cash = %q, want 98709.6405 rub", got)
	}
	if got := pf.TotalAmountShares.String(); got != "1289 rub" {
		t.Errorf("shares value = %q, want 1289 rub", got)
	}
	if got := bt.Capital().String(); got != "99998.6405 rub" {
		t.Errorf("capital = %q, want 99998.6405 rub", got)
	}
}

func TestOrderOnExhaustedSeriesStaysPending(t *testing.T) {
	short := model.Instrument{
		FIGI: "BBG004730RP0", Ticker: "GAZP", ClassCode: "TQBR",
		Name: "Gazprom", Lot: 1, Currency: "rub", InstrumentType: "share",
	}
	shortBars := []model.Candle{
		bar(t, 0, "49.50", "50.50", "49.00", "50"),
	}

	ctx := context.Background()
	bt := New(Config{
		InitialCapital: model.QuotationFromInt(100000),
		Currency:       "rub",
		CommissionRate: decimal.RequireFromString("0.003"),
	}, instruments.NewRegistry([]model.Instrument{testInstrument, short}), nil)
	bt.AddCandles(testInstrument.FIGI, threeBars(t))
	bt.AddCandles(short.FIGI, shortBars)
	acc := bt.Account()

	bt.Tick()
	order, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI: short.FIGI, Direction: broker.DirectionBuy,
		Type: broker.OrderTypeMarket, QuantityLots: 1,
	})
	if err != nil {
		t.Fatalf("PostOrder failed: %v", err)
	}

	// The single-bar series never reveals another bar, so the order is
	// never matched against the pinned final bar.
	for bt.Tick() {
	}

	state, err := acc.GetOrderState(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("GetOrderState failed: %v", err)
	}
	if state.Status != broker.OrderStatusNew {
		t.Errorf("status = %q, want new", state.Status)
	}
	if ops, _ := acc.GetOperations(ctx, broker.OperationsFilter{}); len(ops) != 0 {
		t.Errorf("got %d operations, want 0", len(ops))
	}
}

func TestOperationsFilterByTypeAndTime(t *testing.T) {
	ctx := context.Background()
	bt := newTestBacktest(t, threeBars(t))
	acc := bt.Account()
	bt.Tick()
	if _, err := acc.PostOrder(ctx, broker.OrderSpec{
		FIGI: testInstrument.FIGI, Direction: broker.DirectionBuy,
		Type: broker.OrderTypeMarket, QuantityLots: 1,
	}); err != nil {
		t.Fatalf("PostOrder failed: %v", err)
	}
	for bt.Tick() {
	}

	ops, _ := acc.GetOperations(ctx, broker.OperationsFilter{FIGI: testInstrument.FIGI})
	if len(ops) != 2 {
		t.Errorf("figi filter matched %d operations, want 2", len(ops))
	}
	ops, _ = acc.GetOperations(ctx, broker.OperationsFilter{FIGI: "OTHER"})
	if len(ops) != 0 {
		t.Errorf("foreign figi matched %d operations, want 0", len(ops))
	}
	ops, _ = acc.GetOperations(ctx, broker.OperationsFilter{
		From: baseTime.Add(2 * time.Minute),
	})
	if len(ops) != 0 {
		t.Errorf("time filter matched %d operations, want 0", len(ops))
	}
}
