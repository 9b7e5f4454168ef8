package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/booking"
	"github.com/Domenick1991/staybooking/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service  payment.PaymentUseCase
	bookings booking.BookingUseCase
}

func NewPaymentHandler(service payment.PaymentUseCase, bookings booking.BookingUseCase) *PaymentHandler {
	return &PaymentHandler{service: service, bookings: bookings}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("", RequireRoles(domain.RoleCustomer), h.create)
	router.GET("", h.listMine)
	router.GET("/:id", h.get)
}

// RegisterCallbacks mounts the provider redirect targets. They carry no
// bearer token, the checkout session id identifies the payment.
func (h *PaymentHandler) RegisterCallbacks(router *gin.RouterGroup) {
	router.GET("/success", h.success)
	router.GET("/cancel", h.cancel)
}

// create answers with the hosted checkout URL as plain text.
func (h *PaymentHandler) create(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(c.Query("bookingId"), 10, 64)
	if err != nil || bookingID <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid bookingId"})
		return
	}

	b, err := h.bookings.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !canAccess(p, b.UserID) {
		writeError(c, domain.ErrForbidden)
		return
	}

	pay, err := h.service.CreatePayment(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, pay.SessionURL)
}

func (h *PaymentHandler) listMine(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	list, err := h.service.ListByUser(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]paymentResponse, 0, len(list))
	for _, pay := range list {
		out = append(out, toPaymentResponse(pay))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) get(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	pay, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !p.HasRole(domain.RoleManager) {
		b, err := h.bookings.GetByID(c.Request.Context(), pay.BookingID)
		if err != nil {
			writeError(c, err)
			return
		}
		if b.UserID != p.ID {
			writeError(c, domain.ErrForbidden)
			return
		}
	}
	c.JSON(http.StatusOK, toPaymentResponse(*pay))
}

func (h *PaymentHandler) success(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}
	pay, err := h.service.HandleSuccess(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(*pay))
}

func (h *PaymentHandler) cancel(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}
	pay, err := h.service.HandleCancel(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(*pay))
}

func sessionParam(c *gin.Context) (string, bool) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return "", false
	}
	return sessionID, true
}
