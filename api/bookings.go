package api

import (
	"net/http"

	"github.com/Domenick1991/staybooking/internal/auth"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service  booking.BookingUseCase
	validate StructValidator
}

func NewBookingHandler(service booking.BookingUseCase, validate StructValidator) *BookingHandler {
	return &BookingHandler{service: service, validate: validate}
}

// Register mounts the booking routes. The user id of the status listing
// shares the ":id" segment name because gin requires one wildcard name per
// position.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", RequireRoles(domain.RoleManager, domain.RoleCustomer), h.create)
	router.GET("/my", h.listMine)
	router.GET("/:id", h.get)
	router.GET("/:id/:status", RequireRoles(domain.RoleManager), h.listByUserAndStatus)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *BookingHandler) create(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if !bindJSON(c, h.validate, &req) {
		return
	}

	userID := req.UserID
	if userID == 0 || !p.HasRole(domain.RoleManager) {
		userID = p.ID
	}

	b, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		AccommodationID: req.AccommodationID,
		UserID:          userID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(*b))
}

func (h *BookingHandler) get(c *gin.Context) {
	b, _, ok := h.owned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*b))
}

func (h *BookingHandler) listMine(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	list, err := h.service.ListByUser(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

func (h *BookingHandler) listByUserAndStatus(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.service.ListByUserAndStatus(c.Request.Context(), userID, c.Param("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

func (h *BookingHandler) update(c *gin.Context) {
	current, p, ok := h.owned(c)
	if !ok {
		return
	}
	var req updateBookingRequest
	if !bindJSON(c, h.validate, &req) {
		return
	}

	input := booking.UpdateBookingInput{
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		AccommodationID: req.AccommodationID,
		UserID:          req.UserID,
	}
	if req.UserID != nil && *req.UserID != p.ID && !p.HasRole(domain.RoleManager) {
		writeError(c, domain.ErrForbidden)
		return
	}
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		input.Status = &status
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), current.ID, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*b))
}

func (h *BookingHandler) delete(c *gin.Context) {
	b, _, ok := h.owned(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBooking(c.Request.Context(), b.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// owned loads the booking named by the path and checks the caller may
// touch it.
func (h *BookingHandler) owned(c *gin.Context) (*domain.Booking, auth.Principal, bool) {
	p, ok := mustPrincipal(c)
	if !ok {
		return nil, p, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil, p, false
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, p, false
	}
	if !canAccess(p, b.UserID) {
		writeError(c, domain.ErrForbidden)
		return nil, p, false
	}
	return b, p, true
}
