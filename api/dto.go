package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/staybooking/internal/auth"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StructValidator checks `validate` tags on decoded request bodies.
type StructValidator interface {
	Struct(s interface{}) error
}

type accommodationRequest struct {
	Type         string          `json:"type" validate:"required,oneof=HOUSE APARTMENT CONDO VACATION_HOME"`
	Location     string          `json:"location" validate:"required"`
	Size         string          `json:"size" validate:"required"`
	Amenities    []string        `json:"amenities"`
	DailyRate    decimal.Decimal `json:"dailyRate" validate:"gt=0"`
	Availability int             `json:"availability" validate:"gte=0"`
}

func (r accommodationRequest) toDomain() domain.Accommodation {
	return domain.Accommodation{
		Type:         domain.AccommodationType(r.Type),
		Location:     r.Location,
		Size:         r.Size,
		Amenities:    r.Amenities,
		DailyRate:    r.DailyRate,
		Availability: r.Availability,
	}
}

type accommodationResponse struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	Location     string          `json:"location"`
	Size         string          `json:"size"`
	Amenities    []string        `json:"amenities"`
	DailyRate    decimal.Decimal `json:"dailyRate"`
	Availability int             `json:"availability"`
}

func toAccommodationResponse(a domain.Accommodation) accommodationResponse {
	amenities := a.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return accommodationResponse{
		ID:           a.ID,
		Type:         string(a.Type),
		Location:     a.Location,
		Size:         a.Size,
		Amenities:    amenities,
		DailyRate:    a.DailyRate,
		Availability: a.Availability,
	}
}

type createBookingRequest struct {
	CheckInDate     domain.Date `json:"checkInDate" validate:"required,future"`
	CheckOutDate    domain.Date `json:"checkOutDate" validate:"required,future,gtfield=CheckInDate"`
	AccommodationID int64       `json:"accommodationId" validate:"required,gt=0"`
	UserID          int64       `json:"userId" validate:"omitempty,gt=0"`
}

// updateBookingRequest is a partial update: absent fields are kept.
type updateBookingRequest struct {
	CheckInDate     *domain.Date `json:"checkInDate" validate:"omitempty,future"`
	CheckOutDate    *domain.Date `json:"checkOutDate" validate:"omitempty,future"`
	AccommodationID *int64       `json:"accommodationId" validate:"omitempty,gt=0"`
	UserID          *int64       `json:"userId" validate:"omitempty,gt=0"`
	Status          *string      `json:"status"`
}

type bookingResponse struct {
	ID              int64       `json:"id"`
	CheckInDate     domain.Date `json:"checkInDate"`
	CheckOutDate    domain.Date `json:"checkOutDate"`
	AccommodationID int64       `json:"accommodationId"`
	UserID          int64       `json:"userId"`
	Status          string      `json:"status"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		CheckInDate:     b.CheckInDate,
		CheckOutDate:    b.CheckOutDate,
		AccommodationID: b.AccommodationID,
		UserID:          b.UserID,
		Status:          string(b.Status),
	}
}

func toBookingResponses(list []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResponse(b))
	}
	return out
}

type paymentResponse struct {
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	BookingID   int64           `json:"bookingId"`
	SessionID   string          `json:"sessionId"`
	SessionURL  string          `json:"sessionUrl"`
	AmountToPay decimal.Decimal `json:"amountToPay"`
}

func toPaymentResponse(p domain.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		Status:      string(p.Status),
		BookingID:   p.BookingID,
		SessionID:   p.SessionID,
		SessionURL:  p.SessionURL,
		AmountToPay: p.Amount,
	}
}

type registrationRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=32"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type profileRequest struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Password       string `json:"password" validate:"required,min=8,max=32"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
}

type updateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,required"`
}

type userResponse struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

func toUserResponse(u domain.User) userResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, name := range u.RoleNames() {
		roles = append(roles, string(name))
	}
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     roles,
	}
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, v StructValidator, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return false
	}
	if err := v.Struct(req); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func mustPrincipal(c *gin.Context) (auth.Principal, bool) {
	p, ok := principalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	}
	return p, ok
}
