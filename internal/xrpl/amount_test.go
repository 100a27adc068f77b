package xrpl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXRPAmountDecimalXRP(t *testing.T) {
	tests := []struct {
		name  string
		drops int64
		want  float64
	}{
		{"one XRP", 1_000_000, 1},
		{"fee burn", 12, 0.000012},
		{"negative preserves sign", -500_000, -0.5},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewXRPAmount(tt.drops).DecimalXRP())
		})
	}
}

func TestXRPAmountLinearity(t *testing.T) {
	a := NewXRPAmount(1_234_567)
	b := NewXRPAmount(-765_432)
	assert.Equal(t, a.DecimalXRP()+b.DecimalXRP(), a.Add(b).DecimalXRP())
}

func TestXRPAmountXRPFormat(t *testing.T) {
	assert.Equal(t, "0.000012", NewXRPAmount(12).XRP())
	assert.Equal(t, "-0.5", NewXRPAmount(-500_000).XRP())
	assert.Equal(t, "1", NewXRPAmount(1_000_000).XRP())
	assert.Equal(t, "5", NewXRPAmount(5_000_000).XRP())
}

func TestXRPAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int64
		wantErr bool
	}{
		{"string drops", `"12"`, 12, false},
		{"numeric drops", `5000000`, 5_000_000, false},
		{"negative string", `"-1"`, -1, false},
		{"garbage", `"abc"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var x XRPAmount
			err := json.Unmarshal([]byte(tt.data), &x)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, x.Drops())
		})
	}
}

func TestAmountUnmarshalJSON(t *testing.T) {
	t.Run("bare drops string is XRP", func(t *testing.T) {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(`"5000000"`), &a))
		assert.True(t, a.IsXRP())
		assert.Equal(t, int64(5_000_000), a.Drops.Drops())
	})

	t.Run("object is issued currency", func(t *testing.T) {
		var a Amount
		data := `{"value":"100","currency":"USD","issuer":"rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"}`
		require.NoError(t, json.Unmarshal([]byte(data), &a))
		require.False(t, a.IsXRP())
		assert.Equal(t, "100", a.Issued.Value)
		assert.Equal(t, "USD", a.Issued.Currency)
		assert.Equal(t, "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B", a.Issued.Issuer)
	})
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "5 XRP", XRP(5_000_000).String())
	assert.Equal(t, "100 USD/rIssuer", Issued("100", "USD", "rIssuer").String())
}
