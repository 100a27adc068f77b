// Package explain renders deterministic markdown explanations of XRPL
// transactions: a general details table, a type-specific narrative, and the
// raw transaction JSON.
package explain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/LeJamon/xrpl-bot/internal/names"
	"github.com/LeJamon/xrpl-bot/internal/xrpl"
)

// NameResolver supplies friendly display labels for ledger addresses. An
// empty result means "no label"; it is always safe to concatenate.
type NameResolver interface {
	Resolve(address string) string
}

// Explainer builds markdown explanations from normalized transaction
// records. It holds no mutable state; one instance serves all requests.
type Explainer struct {
	names NameResolver
	log   *slog.Logger
}

// New creates an Explainer with the given resolver. A nil logger falls back
// to slog.Default.
func New(resolver NameResolver, log *slog.Logger) *Explainer {
	if log == nil {
		log = slog.Default()
	}
	return &Explainer{names: resolver, log: log}
}

// ErrorComment is the fixed body posted when a transaction cannot be
// fetched. Nothing else is ever appended to it.
func (e *Explainer) ErrorComment() string {
	return "# Internal Error - Transaction Details\n" +
		"The transaction could not be returned at this time."
}

// Assemble produces the full comment body for a fetched transaction: title,
// explorer-linked hash, general details, type-specific explanation and the
// raw JSON dump. The output is a pure function of the record.
func (e *Explainer) Assemble(hash string, tx *xrpl.TransactionRecord) string {
	lines := []string{
		"# Transaction Details",
		fmt.Sprintf("**Hash:** [%s](%s%s)", hash, names.ExplorerBaseURL, hash),
	}
	lines = append(lines, e.GeneralDetails(tx)...)
	lines = append(lines, e.Explain(tx)...)
	lines = append(lines,
		"## Transaction JSON",
		"``` js ",
		prettyJSON(tx.Raw),
		"```",
	)
	return strings.Join(lines, "\n")
}

// GeneralDetails renders the type-independent property table.
func (e *Explainer) GeneralDetails(tx *xrpl.TransactionRecord) []string {
	initiator := linkToExplorer(tx.Account)
	if resolved := e.names.Resolve(tx.Account); resolved != "" {
		initiator += " " + resolved
	}

	return []string{
		"| Property | Value |",
		"| :--- | :--- |",
		"| Type | " + string(tx.TransactionType) + " |",
		"| Initiated By | " + initiator + " |",
		"| Sequence | " + strconv.FormatUint(uint64(tx.Sequence), 10) + " |",
		"| XRPL fee | " + tx.FeeDrops.XRP() + " XRP |",
		"| Date | " + xrpl.FormatRippleTime(tx.DateRaw) + " |",
		"| Validated | *" + strconv.FormatBool(tx.Validated) + "* |",
		"",
	}
}

// Explain routes the record to its type-specific builder. Dispatch is total:
// every enumerated type maps to exactly one builder, and anything without a
// dedicated builder, including unknown type strings, gets the unsupported
// disclaimer. A builder panic loses only this section, never the rest of the
// comment.
func (e *Explainer) Explain(tx *xrpl.TransactionRecord) (lines []string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("explanation builder failed",
				"transaction_type", tx.TransactionType, "panic", r)
			lines = nil
		}
	}()

	switch tx.TransactionType {
	case xrpl.TxPayment:
		return e.payment(tx)
	case xrpl.TxOfferCreate:
		return e.offerCreate(tx)
	case xrpl.TxOfferCancel:
		return e.offerCancel(tx)
	case xrpl.TxEscrowCreate:
		return e.escrowCreate(tx)
	case xrpl.TxEscrowFinish:
		return e.escrowFinish(tx)
	case xrpl.TxAccountDelete:
		return e.accountDelete(tx)
	case xrpl.TxAccountSet:
		return e.accountSet(tx)
	default:
		return e.unsupported(tx)
	}
}

func (e *Explainer) unsupported(tx *xrpl.TransactionRecord) []string {
	return []string{
		"",
		"The transaction type of **`" + string(tx.TransactionType) + "`** is not currently supported for a detailed explanation.",
		"",
	}
}

// partial is the graceful degradation for builders that cannot find the
// metadata nodes they need.
func (e *Explainer) partial(tx *xrpl.TransactionRecord) []string {
	e.log.Warn("transaction metadata is missing expected nodes",
		"transaction_type", tx.TransactionType, "hash", tx.Hash)
	return []string{
		"",
		"The details of this **`" + string(tx.TransactionType) + "`** transaction could not be read from its metadata.",
		"",
	}
}

func linkToExplorer(id string) string {
	return "[" + id + "](" + names.ExplorerBaseURL + id + ")"
}

func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// signedXRP renders a drops delta with an explicit sign on increases, the
// way the balance tables show differences.
func signedXRP(drops xrpl.XRPAmount) string {
	if drops.IsPositive() {
		return "+" + drops.XRP()
	}
	return drops.XRP()
}

func amountMarkdown(a *xrpl.Amount) string {
	if a == nil {
		return "an unknown amount"
	}
	if a.IsXRP() {
		return "**`" + a.Drops.XRP() + "`** XRP"
	}
	return fmt.Sprintf("**`%s` %s/%s**", a.Issued.Value, a.Issued.Currency, a.Issued.Issuer)
}
