package model

import "time"

// CandleInterval identifies the bar width of a candle series.
type CandleInterval string

// Supported candle intervals.
const (
	Interval1Min  CandleInterval = "1min"
	Interval5Min  CandleInterval = "5min"
	Interval15Min CandleInterval = "15min"
	IntervalHour  CandleInterval = "hour"
	IntervalDay   CandleInterval = "day"
)

// Candle is one OHLCV price record for a fixed time interval.
// Immutable once fetched or cached.
type Candle struct {
	Open     Quotation `json:"open"`
	High     Quotation `json:"high"`
	Low      Quotation `json:"low"`
	Close    Quotation `json:"close"`
	Volume   int64     `json:"volume"`
	Time     time.Time `json:"time"`
	Complete bool      `json:"is_complete"`
}

// Instrument holds the metadata needed to trade one instrument.
type Instrument struct {
	FIGI           string `json:"figi"`
	Ticker         string `json:"ticker"`
	ClassCode      string `json:"class_code"`
	Name           string `json:"name"`
	Lot            int64  `json:"lot"`      // shares per lot
	Currency       string `json:"currency"` // settlement currency
	InstrumentType string `json:"instrument_type"`
}
