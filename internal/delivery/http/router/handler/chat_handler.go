package handler

import (
	"net/http"
	"strconv"
	"time"

	"parcel/internal/delivery/http/middleware"
	"parcel/internal/delivery/http/response"
	"parcel/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChatHandler holds dependencies for chat handlers.
type ChatHandler struct {
	chats usecase.ChatUsecase
}

// NewChatHandler is the constructor for ChatHandler, injected by Fx.
func NewChatHandler(chats usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{chats: chats}
}

type openRoomInput struct {
	ParticipantID string `json:"participant_id" validate:"required"`
	OrderID       string `json:"order_id,omitempty"`
}

// OpenRoom ensures the conversation with another user exists.
func (h *ChatHandler) OpenRoom(c echo.Context) error {
	var input openRoomInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid room input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	room, err := h.chats.OpenRoom(c.Request().Context(), middleware.CallerID(c), input.ParticipantID, input.OrderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, room, "")
}

// ListRooms returns the caller's conversations.
func (h *ChatHandler) ListRooms(c echo.Context) error {
	rooms, err := h.chats.ListRooms(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rooms, "")
}

// SendMessage appends a message to the conversation with the
// recipient.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var input *usecase.SendMessageInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}
	input.SenderID = middleware.CallerID(c)
	if err := c.Validate(input); err != nil {
		return err
	}

	msg, err := h.chats.SendMessage(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, msg, "Message sent")
}

// ListMessages returns a room's messages, optionally bounded below by
// the since query parameter (epoch milliseconds).
func (h *ChatHandler) ListMessages(c echo.Context) error {
	var since time.Time
	if raw := c.QueryParam("since"); raw != "" {
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "since must be epoch milliseconds")
		}
		since = time.UnixMilli(millis)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	msgs, err := h.chats.ListMessages(c.Request().Context(), c.Param("roomId"), middleware.CallerID(c), since, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, msgs, "")
}

// MarkRead flags the other side's messages in the room as read.
func (h *ChatHandler) MarkRead(c echo.Context) error {
	if err := h.chats.MarkRead(c.Request().Context(), c.Param("roomId"), middleware.CallerID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Messages marked read")
}
