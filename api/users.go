package api

import (
	"net/http"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/user"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service  user.UserUseCase
	validate StructValidator
}

func NewUserHandler(service user.UserUseCase, validate StructValidator) *UserHandler {
	return &UserHandler{service: service, validate: validate}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("/me", h.me)
	router.PATCH("/me", h.updateProfile)
	router.PUT("/:id/role", RequireRoles(domain.RoleManager), h.updateRoles)
}

// RegisterAuth mounts the unauthenticated registration and login routes.
func (h *UserHandler) RegisterAuth(router *gin.RouterGroup) {
	router.POST("/registration", h.register)
	router.POST("/login", h.login)
}

func (h *UserHandler) register(c *gin.Context) {
	var req registrationRequest
	if !bindJSON(c, h.validate, &req) {
		return
	}

	u, err := h.service.Register(c.Request.Context(), user.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(*u))
}

func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, h.validate, &req) {
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token})
}

func (h *UserHandler) me(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	u, err := h.service.CurrentUser(c.Request.Context(), p.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*u))
}

func (h *UserHandler) updateProfile(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req profileRequest
	if !bindJSON(c, h.validate, &req) {
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), p.Email, user.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*u))
}

func (h *UserHandler) updateRoles(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateRolesRequest
	if !bindJSON(c, h.validate, &req) {
		return
	}

	roles := make([]domain.RoleName, 0, len(req.Roles))
	for _, r := range req.Roles {
		name, err := domain.ParseRoleName(r)
		if err != nil {
			writeError(c, err)
			return
		}
		roles = append(roles, name)
	}

	u, err := h.service.UpdateRoles(c.Request.Context(), id, roles)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*u))
}
