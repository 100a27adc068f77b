// Package server exposes the bot's HTTP surface: the GitHub webhook
// endpoint and a health check.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LeJamon/xrpl-bot/internal/bot"
	"github.com/LeJamon/xrpl-bot/internal/github"
)

const maxPayloadBytes = 1 << 20

// Handler processes one extracted webhook event.
type Handler interface {
	Handle(ctx context.Context, ev bot.Event) error
}

// Server routes webhook deliveries into the pipeline.
type Server struct {
	engine  *gin.Engine
	handler Handler
	secret  string
	log     *slog.Logger
}

// New creates a Server. An empty secret disables signature verification,
// which is only sensible for local testing.
func New(handler Handler, secret string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:  gin.New(),
		handler: handler,
		secret:  secret,
		log:     log,
	}
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/webhook", s.handleWebhook)
}

// Engine exposes the underlying handler for mounting on an http.Server.
func (s *Server) Engine() http.Handler {
	return s.engine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "xrpl-bot"})
}

// handleWebhook verifies, decodes and dispatches one GitHub delivery. The
// response is 202 once the delivery has been accepted for processing;
// deliveries the bot has nothing to say about still get a 2xx so GitHub
// does not retry them.
func (s *Server) handleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	if s.secret != "" {
		sig := c.GetHeader("X-Hub-Signature-256")
		if !github.ValidSignature(payload, sig, s.secret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	}

	ev, ok := s.extractEvent(c.GetHeader("X-GitHub-Event"), c.GetHeader("X-GitHub-Delivery"), payload)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := s.handler.Handle(c.Request.Context(), ev); err != nil {
		s.log.Error("webhook handling failed", "delivery_id", ev.DeliveryID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// extractEvent maps the two supported delivery kinds onto a pipeline event.
func (s *Server) extractEvent(eventType, deliveryID string, payload []byte) (bot.Event, bool) {
	switch eventType {
	case "issues":
		var ev github.IssuesEvent
		if err := json.Unmarshal(payload, &ev); err != nil || ev.Action != "opened" {
			return bot.Event{}, false
		}
		return bot.Event{
			DeliveryID: deliveryID,
			Owner:      ev.Repository.Owner.Login,
			Repo:       ev.Repository.Name,
			Issue:      ev.Issue.Number,
			Author:     ev.Issue.User.Login,
			Body:       ev.Issue.Body,
		}, true

	case "issue_comment":
		var ev github.IssueCommentEvent
		if err := json.Unmarshal(payload, &ev); err != nil || ev.Action != "created" {
			return bot.Event{}, false
		}
		return bot.Event{
			DeliveryID: deliveryID,
			Owner:      ev.Repository.Owner.Login,
			Repo:       ev.Repository.Name,
			Issue:      ev.Issue.Number,
			Author:     ev.Comment.User.Login,
			Body:       ev.Comment.Body,
		}, true

	default:
		return bot.Event{}, false
	}
}
