package explain

import (
	"fmt"

	"github.com/LeJamon/xrpl-bot/internal/names"
	"github.com/LeJamon/xrpl-bot/internal/xrpl"
)

// escrowCreate reads the escrow terms out of the created Escrow node and
// reconciles the owner's balance: start, minus escrowed amount, minus fee,
// equals result.
func (e *Explainer) escrowCreate(tx *xrpl.TransactionRecord) []string {
	escrow, ok := tx.FindNode(xrpl.NodeCreated, "Escrow")
	if !ok {
		return e.partial(tx)
	}

	owner, _ := xrpl.StringField(escrow.NewFields, "Account")
	destination, _ := xrpl.StringField(escrow.NewFields, "Destination")
	amount, _ := xrpl.DropsField(escrow.NewFields, "Amount")

	narrative := fmt.Sprintf("Account **`%s`** escrowed **`%s`** XRP for **`%s`**",
		owner, amount.XRP(), destination)
	if finishAfter, ok := xrpl.Uint32Field(escrow.NewFields, "FinishAfter"); ok {
		narrative += fmt.Sprintf(", releasable after %s", xrpl.FormatRippleTime(int64(finishAfter)))
	}
	narrative += "."

	lines := []string{"", narrative, ""}

	if acct, ok := tx.FindModifiedAccountRoot(owner); ok {
		before, _ := acct.PreviousBalance()
		after, _ := acct.FinalBalance()
		lines = append(lines,
			"| | XRP |",
			"| :--- | ---: |",
			fmt.Sprintf("| Starting Balance | `%s` |", before.XRP()),
			fmt.Sprintf("| Escrow Amount | `%s` |", signedXRP(-amount)),
			fmt.Sprintf("| Fee | `%s` |", signedXRP(-tx.FeeDrops)),
			fmt.Sprintf("| **Resulting Balance** | **`%s`** |", after.XRP()),
			"",
		)
	}

	lines = append(lines, signerList(tx.Signers)...)
	return lines
}

// escrowFinish reconciles the escrow owner's balance after release. The fee
// line appears only when the finisher is also the owner; a third-party
// finisher pays the fee from its own account, which this table does not
// cover.
func (e *Explainer) escrowFinish(tx *xrpl.TransactionRecord) []string {
	escrow, ok := tx.FindNode(xrpl.NodeDeleted, "Escrow")
	if !ok {
		return e.partial(tx)
	}

	owner := escrow.Account()
	amount, _ := xrpl.DropsField(escrow.FinalFields, "Amount")
	destination, _ := xrpl.StringField(escrow.FinalFields, "Destination")

	lines := []string{
		"",
		fmt.Sprintf("Account **`%s`** finished the escrow placed by **`%s`**, releasing **`%s`** XRP to **`%s`**.",
			tx.Account, owner, amount.XRP(), destination),
		"",
	}

	acct, ok := tx.FindModifiedAccountRoot(owner)
	if !ok {
		return append(lines, "")
	}

	before, _ := acct.PreviousBalance()
	after, _ := acct.FinalBalance()

	lines = append(lines,
		"| | XRP |",
		"| :--- | ---: |",
		fmt.Sprintf("| Starting Balance | `%s` |", before.XRP()),
		fmt.Sprintf("| Escrow Release | `%s` |", signedXRP(amount)),
	)
	if tx.Account == owner {
		lines = append(lines, fmt.Sprintf("| Fee | `%s` |", signedXRP(-tx.FeeDrops)))
	}
	lines = append(lines,
		fmt.Sprintf("| **Resulting Balance** | **`%s`** |", after.XRP()),
		"",
	)
	return lines
}

func signerList(signers []string) []string {
	if len(signers) == 0 {
		return nil
	}
	lines := []string{"Signed by:"}
	for _, s := range signers {
		lines = append(lines, "- `"+names.Ellipsify(s)+"`")
	}
	return append(lines, "")
}
