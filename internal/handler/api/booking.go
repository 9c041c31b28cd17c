package api

import (
	"errors"
	"log/slog"
	"net/http"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/domain/user"
	reqdto "coworkhub/internal/handler/dto/request"
	resdto "coworkhub/internal/handler/dto/response"
	"coworkhub/internal/handler/httperr"
	"coworkhub/internal/handler/middleware"
	"coworkhub/internal/infra"
	"coworkhub/internal/pkg/errs"
	"coworkhub/internal/usecase/commands"
	"coworkhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qrys queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: cmds,
		queries:  qrys,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commands.Create(c.Request.Context(), req.ToInput(), userID, idempotencyKey)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBookingView(result.Booking))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	actorRole, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actorID, actorRole, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Booking belongs to another user",
			})
		case errors.Is(err, queries.ErrBookingNotFound) || isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	var after *queries.Cursor
	if q.Cursor != "" {
		cur, err := queries.DecodeCursor(q.Cursor)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid cursor",
			})
			return
		}
		after = cur
	}

	items, next, err := h.queries.ListByUser(c.Request.Context(), userID, after, q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingList(items, next))
}

func (h *BookingHandler) ModifyBooking(c *gin.Context) {
	id, actorID, actorRole, ok := h.bookingActor(c)
	if !ok {
		return
	}

	var req reqdto.ModifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.commands.Modify(c.Request.Context(), id, req.ToInput(), actorID, actorRole); err != nil {
		h.writeCommandError(c, err)
		return
	}

	view, err := h.queries.GetByIDSystem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, actorID, actorRole, ok := h.bookingActor(c)
	if !ok {
		return
	}

	if err := h.commands.Cancel(c.Request.Context(), id, actorID, actorRole); err != nil {
		h.writeCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) CheckIn(c *gin.Context) {
	id, actorID, _, ok := h.bookingActor(c)
	if !ok {
		return
	}

	if err := h.commands.CheckIn(c.Request.Context(), id, actorID); err != nil {
		h.writeCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) CheckOut(c *gin.Context) {
	id, actorID, _, ok := h.bookingActor(c)
	if !ok {
		return
	}

	if err := h.commands.CheckOut(c.Request.Context(), id, actorID); err != nil {
		h.writeCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.commands.Confirm(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) RejectBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.commands.Reject(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.commands.Complete(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) bookingActor(c *gin.Context) (uuid.UUID, uuid.UUID, user.Role, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return uuid.Nil, uuid.Nil, "", false
	}

	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, uuid.Nil, "", false
	}
	actorRole, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, uuid.Nil, "", false
	}

	return id, actorID, actorRole, true
}

func (h *BookingHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSpaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Space not found",
		})
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrBookingNotOwned):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Booking belongs to another user",
		})
	case errors.Is(err, commands.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Requested window conflicts with an existing booking",
		})
	case errors.Is(err, commands.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Duplicate booking request with different parameters",
		})
	case errors.Is(err, commands.ErrIdempotencyInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking request is currently being processed",
		})
	case errors.Is(err, booking.ErrIneligibleTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Booking is not eligible for this operation",
		})
	case errors.Is(err, commands.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Booking validation failed",
			"detail": validationDetail(err),
		})
	default:
		slog.Error("unhandled booking command error", "stack", errs.ExtractStackLines(err, 10))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func validationDetail(err error) string {
	for _, sentinel := range []error{
		booking.ErrStartInPast,
		booking.ErrEndBeforeStart,
		booking.ErrDurationExceeded,
		booking.ErrDurationTooShort,
		booking.ErrParticipantCountInvalid,
		booking.ErrAdvanceNoticeInsufficient,
		booking.ErrInvalidWindow,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "invalid booking parameters"
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errors.New("Idempotency-Key header is required")
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}

func isNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}
