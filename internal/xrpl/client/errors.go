package client

import (
	"errors"
	"fmt"
)

// ErrBadHash is returned for lookups that do not carry a well-formed
// 64-character hex transaction hash.
var ErrBadHash = errors.New("transaction hash must be 64 uppercase hex characters")

// FetchError wraps any failure to retrieve a transaction, whether a
// transport problem or an error response such as txnNotFound. The bot
// surfaces every FetchError as the same fixed comment, so the detail here is
// for logs only.
type FetchError struct {
	Hash string
	Code string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("fetch %s: %s: %v", e.Hash, e.Code, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Hash, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
