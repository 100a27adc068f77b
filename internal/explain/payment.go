package explain

import (
	"fmt"
	"strconv"

	"github.com/LeJamon/xrpl-bot/internal/names"
	"github.com/LeJamon/xrpl-bot/internal/xrpl"
)

// balanceRow is one balance-changing AccountRoot mutation, in metadata
// order.
type balanceRow struct {
	account string
	before  xrpl.XRPAmount
	after   xrpl.XRPAmount
	diff    xrpl.XRPAmount
}

func balanceRows(tx *xrpl.TransactionRecord) []balanceRow {
	var rows []balanceRow
	for _, n := range tx.AffectedNodes {
		if n.Kind != xrpl.NodeModified || n.LedgerEntryType != "AccountRoot" {
			continue
		}
		diff, ok := n.BalanceChange()
		if !ok {
			continue
		}
		before, _ := n.PreviousBalance()
		after, _ := n.FinalBalance()
		rows = append(rows, balanceRow{account: n.Account(), before: before, after: after, diff: diff})
	}
	return rows
}

// payment renders the transfer narrative and the balance-change table.
//
// Node order is positional by policy: row 0 is framed as the sender's debit,
// row 1 as the receiver's credit. That mirrors how rippled orders payment
// metadata for simple two-party transfers; rows past the first two are
// rendered without a framing note.
func (e *Explainer) payment(tx *xrpl.TransactionRecord) []string {
	narrative := fmt.Sprintf("Account **`%s`** sent %s to **`%s`**",
		tx.Account, amountMarkdown(tx.DeliveredAmount), tx.Destination)
	if tx.DestinationTag != nil {
		narrative += fmt.Sprintf(" (destination tag: %s)", strconv.FormatUint(uint64(*tx.DestinationTag), 10))
	}

	lines := []string{"", narrative, ""}

	rows := balanceRows(tx)
	if len(rows) == 0 {
		return append(lines, "")
	}

	lines = append(lines,
		"| Account | XRP Balance Before | XRP Balance After | Difference | Explanation |",
		"| :--- | ---: | ---: | ---: | :--- |",
	)

	for i, row := range rows {
		var explanation string
		switch i {
		case 0:
			explanation = fmt.Sprintf("`%s` sent to **`%s`** + `%s` fee",
				row.diff.XRP(), names.Ellipsify(tx.Destination), tx.FeeDrops.XRP())
		case 1:
			explanation = fmt.Sprintf("`%s` received from **`%s`**",
				row.diff.XRP(), names.Ellipsify(tx.Account))
		}

		lines = append(lines, fmt.Sprintf("| `%s` | `%s` | `%s` | `%s` | %s |",
			names.Ellipsify(row.account), row.before.XRP(), row.after.XRP(),
			signedXRP(row.diff), explanation))
	}

	lines = append(lines,
		fmt.Sprintf("| | | | **`%s`** | (the fee that was burned) |", tx.FeeDrops.XRP()),
		"",
	)
	return lines
}
