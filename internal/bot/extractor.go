// Package bot drives the mention-to-comment pipeline: extract a transaction
// hash from issue text, fetch the transaction, render the explanation and
// post it back.
package bot

import "regexp"

// BotLogin is the identity the bot comments under. Comments authored by this
// login are never evaluated.
const BotLogin = "xrpl-bot[bot]"

// mentionHashPattern requires the mention and the hash to be adjacent: the
// mention token, whitespace, then exactly 64 characters of [0-9A-Z]. The
// mention is case-insensitive; the hash is not.
var mentionHashPattern = regexp.MustCompile(`(?i:@xrpl-bot)\s+([0-9A-Z]{64})`)

// ExtractHash scans free-form comment text for a bot mention followed by a
// transaction hash. A mention without a hash, a hash without a mention, or
// the two apart from each other are all "no match" and must result in no
// action at all.
func ExtractHash(body string) (string, bool) {
	m := mentionHashPattern.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}
