// Package names maps XRPL addresses to friendly display labels from a
// static, process-lifetime dataset.
package names

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

// ExplorerBaseURL is where address and transaction links point.
const ExplorerBaseURL = "https://bithomp.com/explorer/"

//go:embed accounts.json
var accountsJSON []byte

// Entry is one record of the static account-name dataset. Unverified entries
// exist in the dataset but are never rendered.
type Entry struct {
	Account  string `json:"account"`
	Name     string `json:"name"`
	Desc     string `json:"desc,omitempty"`
	Verified bool   `json:"verified"`
}

// Registry resolves addresses against the dataset. The lookup map is built
// lazily on first use and is read-only afterwards, so concurrent resolution
// is safe.
type Registry struct {
	once      sync.Once
	data      []byte
	byAccount map[string]Entry
}

// NewRegistry returns a Registry backed by the embedded dataset.
func NewRegistry() *Registry {
	return &Registry{data: accountsJSON}
}

// NewRegistryFromData returns a Registry backed by a caller-supplied dataset,
// used by tests to run against fixtures.
func NewRegistryFromData(data []byte) *Registry {
	return &Registry{data: data}
}

func (r *Registry) build() {
	r.byAccount = make(map[string]Entry)

	var entries []Entry
	if err := json.Unmarshal(r.data, &entries); err != nil {
		// A broken dataset degrades to empty display names everywhere.
		return
	}
	for _, e := range entries {
		if e.Account == "" {
			continue
		}
		r.byAccount[e.Account] = e
	}
}

// Resolve returns a markdown link "[name (desc)](explorer-url/address)" for a
// verified, named address, or "" otherwise. Callers concatenate the result
// into surrounding markdown regardless, so empty is always safe.
func (r *Registry) Resolve(address string) string {
	r.once.Do(r.build)

	entry, ok := r.byAccount[address]
	if !ok || !entry.Verified || entry.Name == "" {
		return ""
	}

	label := entry.Name
	if entry.Desc != "" {
		label = fmt.Sprintf("%s (%s)", entry.Name, entry.Desc)
	}
	return fmt.Sprintf("[%s](%s%s)", label, ExplorerBaseURL, address)
}

// Ellipsify compacts an address to its first and last three characters for
// mid-sentence references, e.g. "rHb9CJ...tyTh" -> "rHb..yTh".
func Ellipsify(address string) string {
	if len(address) <= 6 {
		return address
	}
	return address[:3] + ".." + address[len(address)-3:]
}
