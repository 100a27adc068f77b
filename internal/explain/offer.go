package explain

import (
	"fmt"
	"strconv"

	"github.com/LeJamon/xrpl-bot/internal/names"
	"github.com/LeJamon/xrpl-bot/internal/xrpl"
)

func (e *Explainer) offerCreate(tx *xrpl.TransactionRecord) []string {
	lines := []string{"", "**`" + tx.Account + "`** placed an offer:"}

	if len(tx.OrderbookChanges) > 0 {
		lines = append(lines, "")
		lines = append(lines, orderbookTable(tx.OrderbookChanges)...)
	} else {
		lines = append(lines,
			takerLine("TakerGets", tx.TakerGets),
			takerLine("TakerPays", tx.TakerPays),
		)
	}

	return append(lines, "")
}

func (e *Explainer) offerCancel(tx *xrpl.TransactionRecord) []string {
	lines := []string{
		"",
		fmt.Sprintf("**`%s`** cancelled offer `#%s`.", tx.Account, strconv.FormatUint(uint64(tx.OfferSequence), 10)),
	}

	if len(tx.OrderbookChanges) > 0 {
		lines = append(lines, "")
		lines = append(lines, orderbookTable(tx.OrderbookChanges)...)
	}

	return append(lines, "")
}

// takerLine renders a TakerGets/TakerPays amount, branching on the union:
// a bare drops value is native XRP, an object is an issued currency.
func takerLine(label string, a *xrpl.Amount) string {
	if a == nil {
		return "`" + label + "`: *unknown*"
	}
	if a.IsXRP() {
		return fmt.Sprintf("`%s`: **`%s` XRP**", label, a.Drops.XRP())
	}
	return fmt.Sprintf("`%s`: **`%s` %s/%s**", label, a.Issued.Value, a.Issued.Currency, a.Issued.Issuer)
}

// orderbookTable renders the pre-computed per-account orderbook changes
// supplied by richer fetch paths.
func orderbookTable(changes []xrpl.OrderbookChange) []string {
	lines := []string{
		"| Account | Direction | Quantity | Price | Status | Rate |",
		"| :--- | :--- | ---: | ---: | :--- | ---: |",
	}
	for _, ch := range changes {
		lines = append(lines, fmt.Sprintf("| `%s` | %s | `%s` | `%s` | %s | `%s` |",
			names.Ellipsify(ch.Account), ch.Direction, ch.Quantity.String(),
			ch.Price.String(), ch.Status, ch.Rate))
	}
	return lines
}
