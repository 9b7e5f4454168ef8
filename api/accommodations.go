package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/accommodation"
	"github.com/gin-gonic/gin"
)

type AccommodationHandler struct {
	service  accommodation.AccommodationUseCase
	validate StructValidator
}

func NewAccommodationHandler(service accommodation.AccommodationUseCase, validate StructValidator) *AccommodationHandler {
	return &AccommodationHandler{service: service, validate: validate}
}

func (h *AccommodationHandler) Register(router *gin.RouterGroup) {
	manager := RequireRoles(domain.RoleManager)
	anyone := RequireRoles(domain.RoleManager, domain.RoleCustomer)

	router.POST("", manager, h.create)
	router.GET("", anyone, h.list)
	router.GET("/:id", anyone, h.get)
	router.PUT("/:id", manager, h.update)
	router.DELETE("/:id", manager, h.delete)
}

func (h *AccommodationHandler) create(c *gin.Context) {
	var req accommodationRequest
	if !bindJSON(c, h.validate, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccommodationResponse(*a))
}

func (h *AccommodationHandler) list(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		badRequest(c, errors.New("page must be an integer"))
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(accommodation.DefaultPageSize)))
	if err != nil {
		badRequest(c, errors.New("size must be an integer"))
		return
	}

	list, err := h.service.List(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]accommodationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccommodationResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AccommodationHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccommodationResponse(*a))
}

func (h *AccommodationHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req accommodationRequest
	if !bindJSON(c, h.validate, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccommodationResponse(*a))
}

func (h *AccommodationHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
