package xrpl

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// XRPAmount is a quantity of XRP expressed in drops.
type XRPAmount int64

const DropsPerXRP XRPAmount = 1_000_000

func NewXRPAmount(drops int64) XRPAmount {
	return XRPAmount(drops)
}

func (x XRPAmount) Drops() int64 {
	return int64(x)
}

// DecimalXRP converts drops to XRP. Display only; never re-quantized for
// further arithmetic.
func (x XRPAmount) DecimalXRP() float64 {
	return float64(x) / float64(DropsPerXRP)
}

func (x XRPAmount) Add(other XRPAmount) XRPAmount {
	return x + other
}

func (x XRPAmount) Sub(other XRPAmount) XRPAmount {
	return x - other
}

func (x XRPAmount) IsPositive() bool {
	return x > 0
}

func (x XRPAmount) IsZero() bool {
	return x == 0
}

// XRP renders the amount in XRP with the shortest exact decimal form,
// e.g. 12 drops -> "0.000012", -500000 drops -> "-0.5".
func (x XRPAmount) XRP() string {
	return strconv.FormatFloat(x.DecimalXRP(), 'f', -1, 64)
}

func (x XRPAmount) String() string {
	return strconv.FormatInt(int64(x), 10)
}

// UnmarshalJSON accepts the two encodings rippled uses for drop values:
// a decimal string ("12") or a bare number (12).
func (x *XRPAmount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		drops, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid drops value %q: %w", s, err)
		}
		*x = XRPAmount(drops)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid drops value %s", string(data))
	}
	*x = XRPAmount(n)
	return nil
}

// IssuedAmount is a non-XRP amount: a decimal value of some currency code
// issued by a specific account.
type IssuedAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
}

// Amount is the tagged union rippled uses for monetary fields: either native
// XRP (encoded upstream as a bare drops string/number) or an issued currency
// (encoded as a {value, currency, issuer} object). Exactly one arm is set.
type Amount struct {
	Drops  XRPAmount
	Issued *IssuedAmount
}

func XRP(drops int64) Amount {
	return Amount{Drops: XRPAmount(drops)}
}

func Issued(value, currency, issuer string) Amount {
	return Amount{Issued: &IssuedAmount{Value: value, Currency: currency, Issuer: issuer}}
}

// IsXRP reports which arm of the union is set.
func (a Amount) IsXRP() bool {
	return a.Issued == nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var issued IssuedAmount
		if err := json.Unmarshal(data, &issued); err != nil {
			return fmt.Errorf("invalid issued amount: %w", err)
		}
		a.Issued = &issued
		a.Drops = 0
		return nil
	}
	a.Issued = nil
	return a.Drops.UnmarshalJSON(data)
}

// String renders the amount the way the bot quotes it in explanations:
// "1.5 XRP" for native amounts, "100 USD/rIssuer..." for issued ones.
func (a Amount) String() string {
	if a.IsXRP() {
		return a.Drops.XRP() + " XRP"
	}
	return fmt.Sprintf("%s %s/%s", a.Issued.Value, a.Issued.Currency, a.Issued.Issuer)
}
