package xrpl

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// TxType identifies an XRPL transaction type. The set below is the closed
// enumeration the explainer dispatches over; anything else falls through to
// the unsupported path.
type TxType string

const (
	TxAccountDelete        TxType = "AccountDelete"
	TxAccountSet           TxType = "AccountSet"
	TxCheckCancel          TxType = "CheckCancel"
	TxCheckCash            TxType = "CheckCash"
	TxCheckCreate          TxType = "CheckCreate"
	TxDepositPreauth       TxType = "DepositPreauth"
	TxEscrowCancel         TxType = "EscrowCancel"
	TxEscrowCreate         TxType = "EscrowCreate"
	TxEscrowFinish         TxType = "EscrowFinish"
	TxOfferCancel          TxType = "OfferCancel"
	TxOfferCreate          TxType = "OfferCreate"
	TxPayment              TxType = "Payment"
	TxPaymentChannelClaim  TxType = "PaymentChannelClaim"
	TxPaymentChannelCreate TxType = "PaymentChannelCreate"
	TxPaymentChannelFund   TxType = "PaymentChannelFund"
	TxSetRegularKey        TxType = "SetRegularKey"
	TxSignerListSet        TxType = "SignerListSet"
	TxTrustSet             TxType = "TrustSet"
)

// AllTxTypes lists the closed enumeration in rippled's canonical order.
var AllTxTypes = []TxType{
	TxAccountDelete, TxAccountSet,
	TxCheckCancel, TxCheckCash, TxCheckCreate,
	TxDepositPreauth,
	TxEscrowCancel, TxEscrowCreate, TxEscrowFinish,
	TxOfferCancel, TxOfferCreate,
	TxPayment,
	TxPaymentChannelClaim, TxPaymentChannelCreate, TxPaymentChannelFund,
	TxSetRegularKey, TxSignerListSet, TxTrustSet,
}

// Known reports whether t is part of the fixed enumeration.
func (t TxType) Known() bool {
	for _, known := range AllTxTypes {
		if t == known {
			return true
		}
	}
	return false
}

// NodeKind tags an affected node as a creation, mutation or deletion of a
// ledger entry.
type NodeKind string

const (
	NodeCreated  NodeKind = "CreatedNode"
	NodeModified NodeKind = "ModifiedNode"
	NodeDeleted  NodeKind = "DeletedNode"
)

// AffectedNode is one ledger-entry mutation from transaction metadata,
// normalized across the three upstream wrapper shapes.
type AffectedNode struct {
	Kind            NodeKind
	LedgerEntryType string
	NewFields       map[string]any
	FinalFields     map[string]any
	PreviousFields  map[string]any
}

// Account returns the entry's owning account, preferring FinalFields since
// CreatedNode carries it in NewFields instead.
func (n AffectedNode) Account() string {
	if v, ok := stringField(n.FinalFields, "Account"); ok {
		return v
	}
	v, _ := stringField(n.NewFields, "Account")
	return v
}

// FinalBalance returns the entry's XRP balance after the transaction.
func (n AffectedNode) FinalBalance() (XRPAmount, bool) {
	return dropsField(n.FinalFields, "Balance")
}

// PreviousBalance returns the entry's XRP balance before the transaction.
func (n AffectedNode) PreviousBalance() (XRPAmount, bool) {
	return dropsField(n.PreviousFields, "Balance")
}

// BalanceChange reports the node's balance delta in drops. The second return
// is false when the node carries no before/after balance pair.
func (n AffectedNode) BalanceChange() (XRPAmount, bool) {
	final, okFinal := n.FinalBalance()
	prev, okPrev := n.PreviousBalance()
	if !okFinal || !okPrev {
		return 0, false
	}
	return final.Sub(prev), true
}

// OrderbookChange is one pre-computed effect of an offer transaction on the
// resting order book, supplied by richer fetch paths than the plain tx call.
type OrderbookChange struct {
	Account   string
	Direction string
	Quantity  Amount
	Price     Amount
	Status    string
	Rate      string
}

// TransactionRecord is the normalized transaction shape the explanation
// engine operates on. It is built once from fetched data and never mutated.
type TransactionRecord struct {
	Hash             string
	TransactionType  TxType
	Account          string
	Destination      string
	DestinationTag   *uint32
	Sequence         uint32
	OfferSequence    uint32
	FeeDrops         XRPAmount
	DateRaw          int64
	Validated        bool
	DeliveredAmount  *Amount
	TakerGets        *Amount
	TakerPays        *Amount
	AffectedNodes    []AffectedNode
	Signers          []string
	OrderbookChanges []OrderbookChange

	// Raw is the original response JSON, kept verbatim for the dump block.
	Raw json.RawMessage
}

// FindNode returns the first affected node matching kind and ledger entry
// type, mirroring how the explainer locates Escrow and AccountRoot entries.
func (tx *TransactionRecord) FindNode(kind NodeKind, entryType string) (AffectedNode, bool) {
	for _, n := range tx.AffectedNodes {
		if n.Kind == kind && n.LedgerEntryType == entryType {
			return n, true
		}
	}
	return AffectedNode{}, false
}

// FindModifiedAccountRoot returns the modified AccountRoot node owned by the
// given account.
func (tx *TransactionRecord) FindModifiedAccountRoot(account string) (AffectedNode, bool) {
	for _, n := range tx.AffectedNodes {
		if n.Kind == NodeModified && n.LedgerEntryType == "AccountRoot" && n.Account() == account {
			return n, true
		}
	}
	return AffectedNode{}, false
}

type rawSigner struct {
	Signer struct {
		Account string `json:"Account"`
	} `json:"Signer"`
}

type rawNode struct {
	LedgerEntryType string         `json:"LedgerEntryType"`
	NewFields       map[string]any `json:"NewFields"`
	FinalFields     map[string]any `json:"FinalFields"`
	PreviousFields  map[string]any `json:"PreviousFields"`
}

type rawAffectedNode struct {
	Created  *rawNode `json:"CreatedNode"`
	Modified *rawNode `json:"ModifiedNode"`
	Deleted  *rawNode `json:"DeletedNode"`
}

type rawMeta struct {
	AffectedNodes     []rawAffectedNode `json:"AffectedNodes"`
	DeliveredAmount   *Amount           `json:"delivered_amount"`
	TransactionResult string            `json:"TransactionResult"`
}

type rawTransaction struct {
	Hash            string      `json:"hash"`
	TransactionType string      `json:"TransactionType"`
	Account         string      `json:"Account"`
	Destination     string      `json:"Destination"`
	DestinationTag  *uint32     `json:"DestinationTag"`
	Sequence        uint32      `json:"Sequence"`
	OfferSequence   uint32      `json:"OfferSequence"`
	Fee             XRPAmount   `json:"Fee"`
	Date            int64       `json:"date"`
	Validated       bool        `json:"validated"`
	TakerGets       *Amount     `json:"TakerGets"`
	TakerPays       *Amount     `json:"TakerPays"`
	Signers         []rawSigner `json:"Signers"`
	Meta            *rawMeta    `json:"meta"`
}

// ParseTransaction normalizes a raw tx-method result into a
// TransactionRecord, decoding delivered_amount into its union form and
// flattening the per-kind affected-node wrappers.
func ParseTransaction(raw json.RawMessage) (*TransactionRecord, error) {
	var rt rawTransaction
	if err := json.Unmarshal(raw, &rt); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	if rt.TransactionType == "" {
		return nil, fmt.Errorf("transaction is missing TransactionType")
	}

	tx := &TransactionRecord{
		Hash:            rt.Hash,
		TransactionType: TxType(rt.TransactionType),
		Account:         rt.Account,
		Destination:     rt.Destination,
		DestinationTag:  rt.DestinationTag,
		Sequence:        rt.Sequence,
		OfferSequence:   rt.OfferSequence,
		FeeDrops:        rt.Fee,
		DateRaw:         rt.Date,
		Validated:       rt.Validated,
		TakerGets:       rt.TakerGets,
		TakerPays:       rt.TakerPays,
		Raw:             raw,
	}

	for _, s := range rt.Signers {
		tx.Signers = append(tx.Signers, s.Signer.Account)
	}

	if rt.Meta != nil {
		tx.DeliveredAmount = rt.Meta.DeliveredAmount
		for _, wrapped := range rt.Meta.AffectedNodes {
			switch {
			case wrapped.Created != nil:
				tx.AffectedNodes = append(tx.AffectedNodes, newAffectedNode(NodeCreated, wrapped.Created))
			case wrapped.Modified != nil:
				tx.AffectedNodes = append(tx.AffectedNodes, newAffectedNode(NodeModified, wrapped.Modified))
			case wrapped.Deleted != nil:
				tx.AffectedNodes = append(tx.AffectedNodes, newAffectedNode(NodeDeleted, wrapped.Deleted))
			}
		}
	}

	return tx, nil
}

func newAffectedNode(kind NodeKind, n *rawNode) AffectedNode {
	return AffectedNode{
		Kind:            kind,
		LedgerEntryType: n.LedgerEntryType,
		NewFields:       n.NewFields,
		FinalFields:     n.FinalFields,
		PreviousFields:  n.PreviousFields,
	}
}

func stringField(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key].(string)
	return v, ok
}

// dropsField reads a drops-denominated field that upstream encodes as either
// a decimal string or a number.
func dropsField(m map[string]any, key string) (XRPAmount, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case string:
		drops, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return XRPAmount(drops), true
	case float64:
		return XRPAmount(int64(v)), true
	default:
		return 0, false
	}
}

// DropsField exposes dropsField for builders that read typed drop values out
// of escrow and account-root field maps.
func DropsField(m map[string]any, key string) (XRPAmount, bool) {
	return dropsField(m, key)
}

// StringField exposes stringField for builders reading address and currency
// fields out of node field maps.
func StringField(m map[string]any, key string) (string, bool) {
	return stringField(m, key)
}

// Uint32Field reads an integer field such as FinishAfter out of a node field
// map.
func Uint32Field(m map[string]any, key string) (uint32, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m[key].(float64)
	if !ok {
		return 0, false
	}
	return uint32(v), true
}
