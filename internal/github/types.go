// Package github is the thin GitHub surface: webhook payload decoding,
// delivery signature verification and the issue-comment poster.
package github

// User is the authoring identity of an issue or comment.
type User struct {
	Login string `json:"login"`
}

// Repository identifies the repository a webhook delivery concerns.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    User   `json:"owner"`
}

// Issue is the subset of the issues payload the bot reads.
type Issue struct {
	Number int    `json:"number"`
	Body   string `json:"body"`
	User   User   `json:"user"`
}

// Comment is the subset of the issue-comment payload the bot reads.
type Comment struct {
	Body string `json:"body"`
	User User   `json:"user"`
}

// IssuesEvent is the payload of an "issues" delivery.
type IssuesEvent struct {
	Action     string     `json:"action"`
	Issue      Issue      `json:"issue"`
	Repository Repository `json:"repository"`
}

// IssueCommentEvent is the payload of an "issue_comment" delivery.
type IssueCommentEvent struct {
	Action     string     `json:"action"`
	Issue      Issue      `json:"issue"`
	Comment    Comment    `json:"comment"`
	Repository Repository `json:"repository"`
}
