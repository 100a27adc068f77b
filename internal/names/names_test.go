package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const fixtureData = `[
  {"account": "rVerified", "name": "Bitstamp", "desc": "exchange", "verified": true},
  {"account": "rNoDesc", "name": "Ripple", "verified": true},
  {"account": "rUnverified", "name": "Sketchy", "verified": false},
  {"account": "rNamelessButVerified", "name": "", "verified": true}
]`

func TestResolve(t *testing.T) {
	r := NewRegistryFromData([]byte(fixtureData))

	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"verified with desc", "rVerified", "[Bitstamp (exchange)](https://bithomp.com/explorer/rVerified)"},
		{"verified without desc", "rNoDesc", "[Ripple](https://bithomp.com/explorer/rNoDesc)"},
		{"unverified", "rUnverified", ""},
		{"null name", "rNamelessButVerified", ""},
		{"absent", "rUnknownAccount", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.address))
		})
	}
}

func TestResolveEmbeddedDataset(t *testing.T) {
	r := NewRegistry()
	assert.NotEmpty(t, r.Resolve("rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"))
	assert.Empty(t, r.Resolve("rDoesNotExistAnywhere"))
}

func TestResolveBrokenDataset(t *testing.T) {
	r := NewRegistryFromData([]byte("not json"))
	assert.Empty(t, r.Resolve("rVerified"))
}

func TestEllipsify(t *testing.T) {
	assert.Equal(t, "rHb..yTh", Ellipsify("rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"))
	assert.Equal(t, "rabc", Ellipsify("rabc"))
	assert.Equal(t, "", Ellipsify(""))
}
