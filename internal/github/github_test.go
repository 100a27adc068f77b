package github

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestValidSignature(t *testing.T) {
	body := []byte(`{"action":"created"}`)
	const secret = "hunter2"

	assert.True(t, ValidSignature(body, signBody(body, secret), secret))
	assert.False(t, ValidSignature(body, signBody(body, "wrong"), secret))
	assert.False(t, ValidSignature(body, "sha1=deadbeef", secret))
	assert.False(t, ValidSignature(body, "", secret))
	assert.False(t, ValidSignature([]byte("tampered"), signBody(body, secret), secret))
}

func TestPostComment(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("token123", srv.URL)
	err := c.PostComment(context.Background(), "octo", "ledger-notes", 7, "hello **world**")
	require.NoError(t, err)

	assert.Equal(t, "/repos/octo/ledger-notes/issues/7/comments", gotPath)
	assert.Equal(t, "Bearer token123", gotAuth)
	assert.JSONEq(t, `{"body":"hello **world**"}`, gotBody)
}

func TestPostCommentFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("bad", srv.URL)
	err := c.PostComment(context.Background(), "octo", "ledger-notes", 7, "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestIssueCommentEventDecoding(t *testing.T) {
	payload := `{
	  "action": "created",
	  "issue": {"number": 7, "body": "original body", "user": {"login": "alice"}},
	  "comment": {"body": "@xrpl-bot HASH", "user": {"login": "bob"}},
	  "repository": {"name": "ledger-notes", "full_name": "octo/ledger-notes", "owner": {"login": "octo"}}
	}`

	var ev IssueCommentEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &ev))
	assert.Equal(t, "created", ev.Action)
	assert.Equal(t, 7, ev.Issue.Number)
	assert.Equal(t, "bob", ev.Comment.User.Login)
	assert.Equal(t, "octo", ev.Repository.Owner.Login)
}
