package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LeJamon/xrpl-bot/internal/explain"
	"github.com/LeJamon/xrpl-bot/internal/xrpl"
)

// Fetcher retrieves a normalized transaction record by hash.
type Fetcher interface {
	Tx(ctx context.Context, hash string) (*xrpl.TransactionRecord, error)
}

// Poster publishes a comment on an issue thread.
type Poster interface {
	PostComment(ctx context.Context, owner, repo string, number int, body string) error
}

// EventStore remembers which webhook deliveries have been handled so
// redeliveries do not double-post. Implementations may be nil-safe no-ops.
type EventStore interface {
	Seen(id string) (bool, error)
	MarkSeen(id string) error
}

// AuditRecord is one posted explanation, kept for the audit log.
type AuditRecord struct {
	DeliveryID string
	Repo       string
	Issue      int
	TxHash     string
	TxType     string
	PostedAt   time.Time
}

// AuditLog records posted comments.
type AuditLog interface {
	Record(ctx context.Context, rec AuditRecord) error
}

// Event is one incoming trigger: a new issue body or a new issue comment.
type Event struct {
	DeliveryID string
	Owner      string
	Repo       string
	Issue      int
	Author     string
	Body       string
}

// Pipeline wires the collaborators together. Each event is processed
// independently; the only shared state is read-only.
type Pipeline struct {
	fetcher   Fetcher
	poster    Poster
	explainer *explain.Explainer
	events    EventStore
	audit     AuditLog
	botLogin  string
	log       *slog.Logger
}

// Option configures optional pipeline collaborators.
type Option func(*Pipeline)

// WithEventStore enables delivery deduplication.
func WithEventStore(store EventStore) Option {
	return func(p *Pipeline) { p.events = store }
}

// WithAuditLog enables the posted-comment audit trail.
func WithAuditLog(log AuditLog) Option {
	return func(p *Pipeline) { p.audit = log }
}

// WithBotLogin overrides the self-comment filter identity.
func WithBotLogin(login string) Option {
	return func(p *Pipeline) { p.botLogin = login }
}

// NewPipeline creates a Pipeline. A nil logger falls back to slog.Default.
func NewPipeline(fetcher Fetcher, poster Poster, explainer *explain.Explainer, log *slog.Logger, opts ...Option) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	p := &Pipeline{
		fetcher:   fetcher,
		poster:    poster,
		explainer: explainer,
		botLogin:  BotLogin,
		log:       log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle processes one event end to end. No-match and self-authored events
// are silent no-ops. A fetch failure still posts: the fixed error comment is
// the user-visible outcome, never a handler failure. Only a posting failure
// is returned to the caller.
func (p *Pipeline) Handle(ctx context.Context, ev Event) error {
	if ev.Author == p.botLogin {
		return nil
	}

	hash, ok := ExtractHash(ev.Body)
	if !ok {
		return nil
	}

	if p.events != nil && ev.DeliveryID != "" {
		seen, err := p.events.Seen(ev.DeliveryID)
		if err != nil {
			p.log.Warn("event store lookup failed", "delivery_id", ev.DeliveryID, "error", err)
		} else if seen {
			p.log.Info("skipping redelivered event", "delivery_id", ev.DeliveryID)
			return nil
		}
	}

	log := p.log.With("delivery_id", ev.DeliveryID, "repo", ev.Owner+"/"+ev.Repo, "issue", ev.Issue, "hash", hash)

	var body string
	var txType string
	tx, err := p.fetcher.Tx(ctx, hash)
	if err != nil {
		log.Warn("transaction fetch failed", "error", err)
		body = p.explainer.ErrorComment()
	} else {
		body = p.explainer.Assemble(hash, tx)
		txType = string(tx.TransactionType)
	}

	if err := p.poster.PostComment(ctx, ev.Owner, ev.Repo, ev.Issue, body); err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}
	log.Info("posted explanation", "transaction_type", txType)

	if p.events != nil && ev.DeliveryID != "" {
		if err := p.events.MarkSeen(ev.DeliveryID); err != nil {
			p.log.Warn("failed to mark event as seen", "delivery_id", ev.DeliveryID, "error", err)
		}
	}

	if p.audit != nil {
		rec := AuditRecord{
			DeliveryID: ev.DeliveryID,
			Repo:       ev.Owner + "/" + ev.Repo,
			Issue:      ev.Issue,
			TxHash:     hash,
			TxType:     txType,
			PostedAt:   time.Now().UTC(),
		}
		if err := p.audit.Record(ctx, rec); err != nil {
			p.log.Warn("failed to write audit record", "delivery_id", ev.DeliveryID, "error", err)
		}
	}

	return nil
}
