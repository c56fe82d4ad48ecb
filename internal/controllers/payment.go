package controllers

import (
	"context"
	"fmt"
	"math"

	"github.com/gofiber/fiber/v3"

	"cyco-backend/internal/mail"
	"cyco-backend/internal/middleware"
	"cyco-backend/internal/models"
	"cyco-backend/internal/payments"
)

// PaymentStore covers the append-only payments collection.
type PaymentStore interface {
	Insert(ctx context.Context, p *models.Payment) error
	ListAll(ctx context.Context) ([]models.Payment, error)
}

type PaymentHandler struct {
	payments     PaymentStore
	intents      payments.IntentCreator
	mailer       mail.Sender
	alertAddress string
}

func NewPaymentHandler(store PaymentStore, intents payments.IntentCreator, mailer mail.Sender, alertAddress string) *PaymentHandler {
	return &PaymentHandler{
		payments:     store,
		intents:      intents,
		mailer:       mailer,
		alertAddress: alertAddress,
	}
}

// CreateIntent handles POST /create-payment-intent. Price arrives in dollars
// and goes to the processor in cents.
func (h *PaymentHandler) CreateIntent(c fiber.Ctx) error {
	var req PaymentIntentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "price must be greater than zero")
	}

	amountCents := int64(math.Round(req.Price * 100))
	clientSecret, err := h.intents.CreateIntent(c.Context(), amountCents)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeUpstream, "payment processor unavailable")
	}

	return c.JSON(PaymentIntentResponse{ClientSecret: clientSecret})
}

// Record handles POST /payments. The payment is persisted first; the receipt
// and admin alert are fire-and-forget, so a mail outage never fails the
// confirmation.
func (h *PaymentHandler) Record(c fiber.Ctx) error {
	var payment models.Payment
	if err := c.Bind().JSON(&payment); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if payment.Email == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "payer email is required")
	}

	if err := h.payments.Insert(c.Context(), &payment); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to record payment")
	}

	go h.notify(payment)

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{Message: "Payment recorded"})
}

func (h *PaymentHandler) notify(payment models.Payment) {
	if h.mailer == nil {
		return
	}

	receipt := fmt.Sprintf("<p>Thanks for your payment of $%.2f.</p><p>Transaction: %s</p>",
		payment.Amount, payment.TransactionID)
	if err := h.mailer.Send(payment.Email, "Your CYCO payment receipt", receipt); err != nil {
		middleware.Logger.Error().Err(err).Str("to", payment.Email).Msg("receipt email failed")
	}

	if h.alertAddress == "" {
		return
	}
	alert := fmt.Sprintf("<p>Payment of $%.2f received from %s (transaction %s).</p>",
		payment.Amount, payment.Email, payment.TransactionID)
	if err := h.mailer.Send(h.alertAddress, "New payment received", alert); err != nil {
		middleware.Logger.Error().Err(err).Msg("admin alert email failed")
	}
}

// MonthlyRevenue handles GET /monthly-revenue.
func (h *PaymentHandler) MonthlyRevenue(c fiber.Ctx) error {
	all, err := h.payments.ListAll(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to aggregate revenue")
	}
	return c.JSON(GroupMonthlyRevenue(all))
}
