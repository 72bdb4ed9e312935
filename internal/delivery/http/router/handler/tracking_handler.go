package handler

import (
	"log/slog"
	"net/http"
	"time"

	"parcel/config"
	"parcel/internal/delivery/http/middleware"
	"parcel/internal/delivery/http/response"
	"parcel/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
)

// TrackingHandler holds dependencies for live driver tracking: REST
// endpoints for the driver's fixes and a websocket stream for the
// customer's map screen.
type TrackingHandler struct {
	tracking     usecase.TrackingUsecase
	logger       *slog.Logger
	pollInterval time.Duration
	upgrader     websocket.Upgrader
}

// NewTrackingHandler is the constructor for TrackingHandler, injected by Fx.
func NewTrackingHandler(tracking usecase.TrackingUsecase, cfg *config.Config, logger *slog.Logger) *TrackingHandler {
	return &TrackingHandler{
		tracking:     tracking,
		logger:       logger,
		pollInterval: cfg.Tracking.PollInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The mobile apps carry no Origin header worth checking;
			// auth happens on the token before the upgrade.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// UpdateLocation records the calling driver's GPS fix for an order.
func (h *TrackingHandler) UpdateLocation(c echo.Context) error {
	var input *usecase.UpdateLocationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}
	input.DriverID = middleware.CallerID(c)
	if err := c.Validate(input); err != nil {
		return err
	}

	if err := h.tracking.UpdateLocation(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Location updated")
}

// GetLocation returns the latest fix for an order.
func (h *TrackingHandler) GetLocation(c echo.Context) error {
	loc, err := h.tracking.GetLocation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loc, "")
}

// StreamLocation upgrades to a websocket and pushes the driver's
// position to the customer's map screen. The realtime store has no
// server-side listeners in the admin SDK, so the stream polls at the
// configured interval and only writes when the fix changes.
func (h *TrackingHandler) StreamLocation(c echo.Context) error {
	orderID := c.Param("id")

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "websocket upgrade failed")
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	// Read pump: the client sends nothing we care about, but reading
	// is what surfaces the close frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request().Context()
	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	var lastTimestamp int64
	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			loc, err := h.tracking.GetLocation(ctx, orderID)
			if err != nil {
				h.logger.Warn("location poll failed",
					slog.String("order_id", orderID),
					slog.Any("error", err),
				)

				continue
			}
			if loc == nil || loc.Timestamp == lastTimestamp {
				continue
			}
			lastTimestamp = loc.Timestamp

			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(loc); err != nil {
				return nil
			}
		}
	}
}
