package api

import (
	"errors"
	"net/http"

	"coworkhub/internal/domain/booking"
	reqdto "coworkhub/internal/handler/dto/request"
	resdto "coworkhub/internal/handler/dto/response"
	"coworkhub/internal/handler/httperr"
	"coworkhub/internal/infra"
	"coworkhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SpaceHandler struct {
	queries        queries.SpaceQueries
	bookingQueries queries.BookingQueries
}

func NewSpaceHandler(spaceQueries queries.SpaceQueries, bookingQueries queries.BookingQueries) *SpaceHandler {
	return &SpaceHandler{
		queries:        spaceQueries,
		bookingQueries: bookingQueries,
	}
}

func (h *SpaceHandler) ListSpaces(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpaceList(views))
}

func (h *SpaceHandler) GetSpace(c *gin.Context) {
	id, ok := h.spaceID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeSpaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpaceView(view))
}

func (h *SpaceHandler) GetAvailability(c *gin.Context) {
	id, window, ok := h.spaceWindow(c)
	if !ok {
		return
	}

	view, err := h.queries.Availability(c.Request.Context(), id, window)
	if err != nil {
		h.writeSpaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

func (h *SpaceHandler) GetUtilization(c *gin.Context) {
	id, window, ok := h.spaceWindow(c)
	if !ok {
		return
	}

	view, err := h.queries.Utilization(c.Request.Context(), id, window)
	if err != nil {
		h.writeSpaceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUtilizationView(view))
}

func (h *SpaceHandler) ListSpaceBookings(c *gin.Context) {
	id, ok := h.spaceID(c)
	if !ok {
		return
	}

	var q reqdto.SpaceWindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters: from and to are required",
		})
		return
	}

	items, err := h.bookingQueries.ListForSpace(c.Request.Context(), id, q.From, q.To)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(items, nil))
}

func (h *SpaceHandler) spaceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid space ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *SpaceHandler) spaceWindow(c *gin.Context) (uuid.UUID, booking.Window, bool) {
	id, ok := h.spaceID(c)
	if !ok {
		return uuid.Nil, booking.Window{}, false
	}

	var q reqdto.SpaceWindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters: from and to are required",
		})
		return uuid.Nil, booking.Window{}, false
	}

	window, err := booking.NewWindow(q.From, q.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "from must be before to",
		})
		return uuid.Nil, booking.Window{}, false
	}

	return id, window, true
}

func (h *SpaceHandler) writeSpaceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrSpaceNotFound) || infra.IsKind(err, infra.KindNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Space not found",
		})
	case errors.Is(err, queries.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid window",
		})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
