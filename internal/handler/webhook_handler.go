package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"hackpay/config"
	"hackpay/internal/models"
	"hackpay/internal/reconcile"
	"hackpay/internal/repository"
	"hackpay/pkg/razorpay"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// webhookEnvelope is the Razorpay event wrapper. Exactly one of
// payload.payment and payload.payout carries an entity.
type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity *razorpay.PaymentEntity `json:"entity"`
		} `json:"payment"`
		Payout *struct {
			Entity *razorpay.PayoutEntity `json:"entity"`
		} `json:"payout"`
	} `json:"payload"`
}

type WebhookHandler struct {
	engine    *reconcile.Engine
	auditRepo *repository.AuditLogRepository
	cfg       *config.Config
	log       zerolog.Logger
}

func NewWebhookHandler(engine *reconcile.Engine, auditRepo *repository.AuditLogRepository, cfg *config.Config, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{engine: engine, auditRepo: auditRepo, cfg: cfg, log: log}
}

// readVerified captures the raw request bytes and checks the Razorpay
// signature over them. The bytes must be hashed before any parsing;
// re-serializing a parsed body would break the HMAC.
func (h *WebhookHandler) readVerified(c *gin.Context) ([]byte, bool) {
	if h.cfg.Razorpay.WebhookSecret == "" {
		// Fail closed: unverifiable input is never accepted.
		h.log.Error().Msg("webhook secret not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "server configuration error"})
		return nil, false
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid body"})
		return nil, false
	}
	sig := c.GetHeader("X-Razorpay-Signature")
	if !razorpay.VerifyWebhookSignature(body, sig, h.cfg.Razorpay.WebhookSecret) {
		h.log.Warn().Str("ip", c.ClientIP()).Msg("invalid webhook signature")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid signature"})
		return nil, false
	}
	return body, true
}

// HandlePayment ingests payment.* events.
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	body, ok := h.readVerified(c)
	if !ok {
		return
	}
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid json"})
		return
	}
	if env.Payload.Payment == nil || env.Payload.Payment.Entity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "no payment entity"})
		return
	}
	entity := *env.Payload.Payment.Entity
	if entity.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "no order id"})
		return
	}

	outcome, err := h.engine.HandlePaymentEvent(env.Event, entity)
	if err != nil {
		if err == reconcile.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "transaction not found"})
			return
		}
		h.log.Error().Err(err).Str("event", env.Event).Str("order_id", entity.OrderID).Msg("webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "webhook processing failed"})
		return
	}
	if outcome == reconcile.OutcomeApplied {
		h.audit(c, "payment_"+env.Event, "transaction", entity.OrderID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// HandlePayout ingests payout.* events.
func (h *WebhookHandler) HandlePayout(c *gin.Context) {
	body, ok := h.readVerified(c)
	if !ok {
		return
	}
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid json"})
		return
	}
	if env.Payload.Payout == nil || env.Payload.Payout.Entity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "no payout entity"})
		return
	}
	entity := *env.Payload.Payout.Entity
	if entity.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "no payout id"})
		return
	}

	outcome, err := h.engine.HandlePayoutEvent(env.Event, entity)
	if err != nil {
		if err == reconcile.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "payout not found"})
			return
		}
		h.log.Error().Err(err).Str("event", env.Event).Str("payout_id", entity.ID).Msg("webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "webhook processing failed"})
		return
	}
	if outcome == reconcile.OutcomeApplied {
		h.audit(c, env.Event, "payout", entity.ID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *WebhookHandler) audit(c *gin.Context, action, resource, resourceID string) {
	if h.auditRepo == nil {
		return
	}
	_ = h.auditRepo.Create(&models.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
}
