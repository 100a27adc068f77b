package explain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeJamon/xrpl-bot/internal/xrpl"
)

const (
	escrowOwner = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	escrowDest  = "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"
)

func escrowCreateRecord() *xrpl.TransactionRecord {
	return &xrpl.TransactionRecord{
		TransactionType: xrpl.TxEscrowCreate,
		Account:         escrowOwner,
		FeeDrops:        12,
		AffectedNodes: []xrpl.AffectedNode{
			{
				Kind:            xrpl.NodeCreated,
				LedgerEntryType: "Escrow",
				NewFields: map[string]any{
					"Account":     escrowOwner,
					"Destination": escrowDest,
					"Amount":      "20000000",
					"FinishAfter": float64(631152000),
				},
			},
			modifiedAccountRoot(escrowOwner, "100000000", "79999988"),
		},
	}
}

func TestEscrowCreateExplanation(t *testing.T) {
	e := newTestExplainer()
	body := strings.Join(e.Explain(escrowCreateRecord()), "\n")

	assert.Contains(t, body, "Account **`"+escrowOwner+"`** escrowed **`20`** XRP for **`"+escrowDest+"`**, releasable after 2020-01-01T00:00:00Z.")
	assert.Contains(t, body, "| Starting Balance | `100` |")
	assert.Contains(t, body, "| Escrow Amount | `-20` |")
	assert.Contains(t, body, "| Fee | `-0.000012` |")
	assert.Contains(t, body, "| **Resulting Balance** | **`79.999988`** |")
}

func TestEscrowCreateSigners(t *testing.T) {
	e := newTestExplainer()
	tx := escrowCreateRecord()
	tx.Signers = []string{escrowOwner, escrowDest}

	body := strings.Join(e.Explain(tx), "\n")
	assert.Contains(t, body, "Signed by:")
	assert.Contains(t, body, "- `rHb..yTh`")
	assert.Contains(t, body, "- `rPT..AYe`")
}

func TestEscrowCreateMissingNode(t *testing.T) {
	e := newTestExplainer()
	tx := &xrpl.TransactionRecord{TransactionType: xrpl.TxEscrowCreate, Account: escrowOwner}

	body := strings.Join(e.Explain(tx), "\n")
	assert.Contains(t, body, "could not be read from its metadata")
}

func escrowFinishRecord(finisher string) *xrpl.TransactionRecord {
	return &xrpl.TransactionRecord{
		TransactionType: xrpl.TxEscrowFinish,
		Account:         finisher,
		FeeDrops:        12,
		AffectedNodes: []xrpl.AffectedNode{
			{
				Kind:            xrpl.NodeDeleted,
				LedgerEntryType: "Escrow",
				FinalFields: map[string]any{
					"Account":     escrowOwner,
					"Destination": escrowDest,
					"Amount":      "20000000",
				},
			},
			modifiedAccountRoot(escrowOwner, "80000000", "99999988"),
		},
	}
}

func TestEscrowFinishByOwner(t *testing.T) {
	e := newTestExplainer()
	body := strings.Join(e.Explain(escrowFinishRecord(escrowOwner)), "\n")

	assert.Contains(t, body, "releasing **`20`** XRP to **`"+escrowDest+"`**")
	assert.Contains(t, body, "| Starting Balance | `80` |")
	assert.Contains(t, body, "| Escrow Release | `+20` |")
	assert.Contains(t, body, "| Fee | `-0.000012` |")
	assert.Contains(t, body, "| **Resulting Balance** | **`99.999988`** |")
}

func TestEscrowFinishByThirdParty(t *testing.T) {
	e := newTestExplainer()
	body := strings.Join(e.Explain(escrowFinishRecord(escrowDest)), "\n")

	// The finisher pays the fee from its own account, so the owner's
	// reconciliation carries no fee line.
	assert.NotContains(t, body, "| Fee |")
	assert.Contains(t, body, "| Escrow Release | `+20` |")
}

func TestEscrowFinishMissingNode(t *testing.T) {
	e := newTestExplainer()
	tx := &xrpl.TransactionRecord{TransactionType: xrpl.TxEscrowFinish, Account: escrowOwner}

	body := strings.Join(e.Explain(tx), "\n")
	assert.Contains(t, body, "could not be read from its metadata")
}
