package explain

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/LeJamon/xrpl-bot/internal/xrpl"
)

// accountDelete reconciles the deleted AccountRoot: starting balance, minus
// fee, minus the remainder delivered to the destination, leaves the account
// at zero.
func (e *Explainer) accountDelete(tx *xrpl.TransactionRecord) []string {
	deleted, ok := tx.FindNode(xrpl.NodeDeleted, "AccountRoot")
	if !ok {
		return e.partial(tx)
	}

	start, ok := deleted.PreviousBalance()
	if !ok {
		start, _ = deleted.FinalBalance()
	}

	var delivered xrpl.XRPAmount
	if tx.DeliveredAmount != nil && tx.DeliveredAmount.IsXRP() {
		delivered = tx.DeliveredAmount.Drops
	}
	remaining := start.Sub(tx.FeeDrops).Sub(delivered)

	return []string{
		"",
		fmt.Sprintf("Account **`%s`** was deleted; its remaining **`%s`** XRP was sent to **`%s`**.",
			tx.Account, delivered.XRP(), tx.Destination),
		"",
		"| | XRP |",
		"| :--- | ---: |",
		fmt.Sprintf("| Starting Balance | `%s` |", start.XRP()),
		fmt.Sprintf("| Fee | `%s` |", signedXRP(-tx.FeeDrops)),
		fmt.Sprintf("| Delivered to Destination | `%s` |", signedXRP(-delivered)),
		fmt.Sprintf("| **Resulting Balance** | **`%s`** |", remaining.XRP()),
		"",
	}
}

// accountRootBookkeeping holds fields that change on every transaction and
// carry no settings information.
var accountRootBookkeeping = map[string]bool{
	"Balance":           true,
	"Sequence":          true,
	"PreviousTxnID":     true,
	"PreviousTxnLgrSeq": true,
	"OwnerCount":        true,
}

// accountSet renders a table of the settings fields the transaction changed.
// The table may legitimately be empty.
func (e *Explainer) accountSet(tx *xrpl.TransactionRecord) []string {
	lines := []string{
		"",
		fmt.Sprintf("Account **`%s`** updated its settings:", tx.Account),
		"",
		"| Field | Previous | New |",
		"| :--- | :--- | :--- |",
	}

	node, ok := tx.FindModifiedAccountRoot(tx.Account)
	if !ok {
		return append(lines, "")
	}

	keys := make([]string, 0, len(node.PreviousFields))
	for key := range node.PreviousFields {
		if !accountRootBookkeeping[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("| %s | `%s` | `%s` |",
			key, fieldValue(node.PreviousFields[key]), fieldValue(node.FinalFields[key])))
	}

	return append(lines, "")
}

// fieldValue renders a decoded JSON field value without float exponent
// notation.
func fieldValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
