package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "E08D6E9754025BA2534A78707605E0601F03ACE063687A0CA1BDDACFCD1698C7"

// newTxServer runs a minimal websocket endpoint that answers a single tx
// command per connection with the supplied response body.
func newTxServer(t *testing.T, dials *atomic.Int64, respond func(hash string) map[string]any) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		if dials != nil {
			dials.Add(1)
		}

		var req map[string]any
		require.NoError(t, conn.ReadJSON(&req))
		require.Equal(t, "tx", req["command"])

		hash, _ := req["transaction"].(string)
		require.NoError(t, conn.WriteJSON(respond(hash)))
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func successResponse(hash string) map[string]any {
	result := map[string]any{
		"Account":         "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
		"TransactionType": "Payment",
		"Fee":             "12",
		"Sequence":        float64(5),
		"hash":            hash,
		"validated":       true,
	}
	return map[string]any{"id": 1, "status": "success", "type": "response", "result": result}
}

func TestClientTx(t *testing.T) {
	srv := newTxServer(t, nil, successResponse)
	defer srv.Close()

	c, err := New(Config{Endpoint: wsURL(srv)})
	require.NoError(t, err)

	tx, err := c.Tx(context.Background(), testHash)
	require.NoError(t, err)
	assert.Equal(t, testHash, tx.Hash)
	assert.Equal(t, int64(12), tx.FeeDrops.Drops())
	assert.True(t, tx.Validated)
}

func TestClientTxCachesValidated(t *testing.T) {
	var dials atomic.Int64
	srv := newTxServer(t, &dials, successResponse)
	defer srv.Close()

	c, err := New(Config{Endpoint: wsURL(srv)})
	require.NoError(t, err)

	_, err = c.Tx(context.Background(), testHash)
	require.NoError(t, err)
	_, err = c.Tx(context.Background(), testHash)
	require.NoError(t, err)

	assert.Equal(t, int64(1), dials.Load())
}

func TestClientTxNotFound(t *testing.T) {
	srv := newTxServer(t, nil, func(hash string) map[string]any {
		return map[string]any{
			"id":            1,
			"status":        "error",
			"error":         "txnNotFound",
			"error_message": "Transaction not found.",
		}
	})
	defer srv.Close()

	c, err := New(Config{Endpoint: wsURL(srv)})
	require.NoError(t, err)

	_, err = c.Tx(context.Background(), testHash)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "txnNotFound", fetchErr.Code)
}

func TestClientTxDialFailure(t *testing.T) {
	c, err := New(Config{Endpoint: "ws://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = c.Tx(context.Background(), testHash)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestClientTxBadHash(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)

	_, err = c.Tx(context.Background(), "not-a-hash")
	assert.ErrorIs(t, err, ErrBadHash)
}

func TestValidHash(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid", testHash, true},
		{"too short", testHash[:63], false},
		{"lower case", strings.ToLower(testHash), false},
		{"non hex", strings.Repeat("Z", 64), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidHash(tt.in))
		})
	}
}

func TestParsedResponseDecodeError(t *testing.T) {
	srv := newTxServer(t, nil, func(hash string) map[string]any {
		// Success envelope with a result the normalizer rejects.
		return map[string]any{"id": 1, "status": "success", "result": map[string]any{"hash": hash}}
	})
	defer srv.Close()

	c, err := New(Config{Endpoint: wsURL(srv)})
	require.NoError(t, err)

	_, err = c.Tx(context.Background(), testHash)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestTxRequestShape(t *testing.T) {
	data, err := json.Marshal(txRequest{ID: 1, Command: "tx", Transaction: testHash})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"command":"tx","transaction":"`+testHash+`","binary":false}`, string(data))
}
