// Package handler contains the worker's Pub/Sub push handlers.
package handler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"parcel/config"
	deliverycontext "parcel/internal/delivery/context"
	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
	"parcel/internal/domain/service"
	"parcel/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PushHandler records published order lifecycle transitions into the
// audit trail the admin dashboard reads.
type PushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	events         repository.OrderEventRepository
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Events repository.OrderEventRepository
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only verify push auth for the real broker outside development
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == pubsub.ProviderGoogle &&
		params.Config.Env.Env != "develop"

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		events:         params.Events,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse order event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}
	if event.OrderID == "" {
		h.logger.Warn("[Worker] Dropping order event without an order id")

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(&pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	record := &entity.OrderEvent{
		MessageID:  messageKey(&pushMsg, &event),
		OrderID:    event.OrderID,
		CustomerID: event.CustomerID,
		DriverID:   event.DriverID,
		From:       event.From,
		To:         event.To,
		OccurredAt: event.OccurredAt,
	}

	if err := h.events.RecordEvent(ctx, record); err != nil {
		reqLogger.Error("[Worker] Failed to record order event",
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)

		// 503 triggers a Pub/Sub redelivery; RecordEvent is
		// idempotent on the message id so retries are safe.
		return c.NoContent(http.StatusServiceUnavailable)
	}

	reqLogger.Info("[Worker] Order event recorded",
		slog.String("order_id", event.OrderID),
		slog.String("to", string(event.To)),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, the
// event payload, or generates a new one.
func (h *PushHandler) extractRequestID(pushMsg *PubSubMessage, event *service.OrderEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}

	return uuid.New().String()
}

// messageKey picks the audit document key: the broker message id when
// present, otherwise a deterministic key from the event itself so the
// local publisher stays idempotent too.
func messageKey(pushMsg *PubSubMessage, event *service.OrderEvent) string {
	if pushMsg.Message.MessageID != "" {
		return pushMsg.Message.MessageID
	}

	return fmt.Sprintf("%s-%s-%d", event.OrderID, event.To, event.OccurredAt.UnixMilli())
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the push endpoint URL itself.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
