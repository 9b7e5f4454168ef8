package stripe

import (
	"context"
	"fmt"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/payment"
	stripego "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// SessionAPI is the part of the Stripe checkout session client we call.
type SessionAPI interface {
	New(params *stripego.CheckoutSessionParams) (*stripego.CheckoutSession, error)
	Get(id string, params *stripego.CheckoutSessionParams) (*stripego.CheckoutSession, error)
}

// Client creates hosted checkout sessions through Stripe.
type Client struct {
	sessions SessionAPI
	currency string
}

func NewClient(apiKey, currency string) *Client {
	api := &client.API{}
	api.Init(apiKey, nil)
	return NewClientWithAPI(api.CheckoutSessions, currency)
}

func NewClientWithAPI(sessions SessionAPI, currency string) *Client {
	return &Client{sessions: sessions, currency: currency}
}

func (c *Client) CreateSession(ctx context.Context, req payment.CheckoutRequest) (*payment.Session, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(req.SuccessURL),
		CancelURL:  stripego.String(req.CancelURL),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				Quantity: stripego.Int64(1),
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripego.String(c.currency),
					UnitAmount: stripego.Int64(req.Amount.Shift(2).Round(0).IntPart()),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripego.String(req.Title),
					},
				},
			},
		},
	}
	params.Context = ctx

	s, err := c.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create stripe session: %v", domain.ErrPaymentProvider, err)
	}
	return toSession(s), nil
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx

	s, err := c.sessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve stripe session %s: %v", domain.ErrPaymentProvider, sessionID, err)
	}
	return toSession(s), nil
}

func toSession(s *stripego.CheckoutSession) *payment.Session {
	return &payment.Session{
		ID:   s.ID,
		URL:  s.URL,
		Paid: s.PaymentStatus == stripego.CheckoutSessionPaymentStatusPaid,
	}
}

var _ payment.Gateway = (*Client)(nil)
