package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func paymentRouter(svc *MockPaymentUseCase, bookings *MockBookingUseCase) *gin.Engine {
	h := NewPaymentHandler(svc, bookings)
	r := asPrincipal(&customer, "/payments", h.Register)
	h.RegisterCallbacks(r.Group("/payments"))
	return r
}

func pendingPayment() *domain.Payment {
	return &domain.Payment{
		ID:         8,
		Status:     domain.PaymentStatusPending,
		BookingID:  10,
		SessionID:  "cs_test_1",
		SessionURL: "https://checkout.stripe.com/c/pay/cs_test_1",
		Amount:     decimal.NewFromInt(1107),
	}
}

func TestPaymentHandler_create(t *testing.T) {
	svc, bookings := &MockPaymentUseCase{}, &MockBookingUseCase{}
	bookings.On("GetByID", mock.Anything, int64(10)).Return(storedBooking(), nil).Once()
	svc.On("CreatePayment", mock.Anything, int64(10)).Return(pendingPayment(), nil).Once()

	w := do(paymentRouter(svc, bookings), http.MethodPost, "/payments?bookingId=10", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", w.Body.String())
	svc.AssertExpectations(t)
}

func TestPaymentHandler_createForeignBooking(t *testing.T) {
	svc, bookings := &MockPaymentUseCase{}, &MockBookingUseCase{}
	foreign := storedBooking()
	foreign.UserID = 77
	bookings.On("GetByID", mock.Anything, int64(10)).Return(foreign, nil).Once()

	w := do(paymentRouter(svc, bookings), http.MethodPost, "/payments?bookingId=10", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
}

func TestPaymentHandler_createProviderFailure(t *testing.T) {
	svc, bookings := &MockPaymentUseCase{}, &MockBookingUseCase{}
	bookings.On("GetByID", mock.Anything, int64(10)).Return(storedBooking(), nil).Once()
	svc.On("CreatePayment", mock.Anything, int64(10)).
		Return(nil, errors.Join(domain.ErrPaymentProvider, errors.New("stripe timeout"))).Once()

	w := do(paymentRouter(svc, bookings), http.MethodPost, "/payments?bookingId=10", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPaymentHandler_createMissingBookingID(t *testing.T) {
	w := do(paymentRouter(&MockPaymentUseCase{}, &MockBookingUseCase{}), http.MethodPost, "/payments", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_listMine(t *testing.T) {
	svc := &MockPaymentUseCase{}
	svc.On("ListByUser", mock.Anything, customer.ID).Return([]domain.Payment{*pendingPayment()}, nil).Once()

	w := do(paymentRouter(svc, &MockBookingUseCase{}), http.MethodGet, "/payments", "")

	require.Equal(t, http.StatusOK, w.Code)
	var response []paymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.True(t, response[0].AmountToPay.Equal(decimal.NewFromInt(1107)))
}

func TestPaymentHandler_getChecksOwnership(t *testing.T) {
	svc, bookings := &MockPaymentUseCase{}, &MockBookingUseCase{}
	foreign := storedBooking()
	foreign.UserID = 77
	svc.On("GetByID", mock.Anything, int64(8)).Return(pendingPayment(), nil).Once()
	bookings.On("GetByID", mock.Anything, int64(10)).Return(foreign, nil).Once()

	w := do(paymentRouter(svc, bookings), http.MethodGet, "/payments/8", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPaymentHandler_callbacks(t *testing.T) {
	svc := &MockPaymentUseCase{}
	paid := pendingPayment()
	paid.Status = domain.PaymentStatusPaid
	cancelled := pendingPayment()
	cancelled.Status = domain.PaymentStatusCancelled

	svc.On("HandleSuccess", mock.Anything, "cs_test_1").Return(paid, nil).Once()
	svc.On("HandleCancel", mock.Anything, "cs_test_1").Return(cancelled, nil).Once()
	r := paymentRouter(svc, &MockBookingUseCase{})

	w := do(r, http.MethodGet, "/payments/success?sessionId=cs_test_1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"PAID"`)

	w = do(r, http.MethodGet, "/payments/cancel?sessionId=cs_test_1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"CANCELLED"`)
}

func TestPaymentHandler_callbackErrors(t *testing.T) {
	svc := &MockPaymentUseCase{}
	svc.On("HandleSuccess", mock.Anything, "missing").Return(nil, domain.ErrNotFound).Once()
	svc.On("HandleCancel", mock.Anything, "done").Return(nil, domain.ErrPaymentFinalized).Once()
	r := paymentRouter(svc, &MockBookingUseCase{})

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/payments/success?sessionId=missing", "").Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodGet, "/payments/cancel?sessionId=done", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/payments/success", "").Code)
}
