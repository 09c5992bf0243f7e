package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chainvoice/backend/internal/entity"
)

// @title Crypto Invoicing API
// @version 1.0
// @description Invoicing backend for cryptocurrency payments: operators issue invoices to recipient wallets, recipients report on-chain payments against them.
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Api-Key

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/handler.go -package=mocks

type Service interface {
	CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error)
	InvoicesByRecipient(ctx context.Context, recipientAddress string) ([]entity.Invoice, error)
	PendingInvoices(ctx context.Context) ([]entity.Invoice, error)
	CompletedInvoices(ctx context.Context) ([]entity.Invoice, error)
	RecordPayment(ctx context.Context, invoiceID int64, rawAmount, senderAddress, txHash string) (entity.Invoice, int64, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s: s,
	}
}

type CreateInvoiceRequest struct {
	RecipientAddress  string `json:"recipientAddress"`
	CollectionAddress string `json:"collectionAddress,omitempty"` // Defaults to the operator wallet.
	CompanyName       string `json:"companyName"`
	Cryptocurrency    string `json:"cryptocurrency"`
	DueDate           string `json:"dueDate"`
	Description       string `json:"description"`
	CompanyEmail      string `json:"companyEmail"`
	InvoiceCategory   string `json:"invoiceCategory"`
	PaymentDue        string `json:"paymentDue"`
}

type InvoiceEntity struct {
	ID                int64     `json:"id"`
	RecipientAddress  string    `json:"recipientAddress"`
	CollectionAddress string    `json:"collectionAddress"`
	CompanyName       string    `json:"companyName"`
	Cryptocurrency    string    `json:"cryptocurrency"`
	DueDate           time.Time `json:"dueDate"`
	Description       string    `json:"description"`
	CompanyEmail      string    `json:"companyEmail"`
	InvoiceCategory   string    `json:"invoiceCategory"`
	PaymentDue        string    `json:"paymentDue"`
	IsPending         bool      `json:"isPending"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CreateInvoice creates an invoice addressed to a recipient wallet
// @Summary Create invoice
// @Description Creates a pending invoice and emails a notification to the company contact
// @Tags invoices
// @Accept json
// @Produce json
// @Param CreateInvoiceRequest body CreateInvoiceRequest true "Invoice creation request"
// @Success 201 {object} InvoiceEntity
// @Failure 400 {object} ErrorResponse "Invalid JSON or missing fields"
// @Failure 500 {object} ErrorResponse "Failed to create invoice or send notification"
// @Router /invoices [post]
// @Security ApiKeyAuth
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid due date")
		return
	}

	inv := entity.Invoice{
		RecipientAddress:  req.RecipientAddress,
		CollectionAddress: req.CollectionAddress,
		CompanyName:       req.CompanyName,
		Cryptocurrency:    req.Cryptocurrency,
		DueDate:           dueDate,
		Description:       req.Description,
		CompanyEmail:      req.CompanyEmail,
		Category:          req.InvoiceCategory,
		PaymentDue:        req.PaymentDue,
	}

	inv, err = h.s.CreateInvoice(ctx, inv)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "all invoice fields are required")
		case errors.Is(err, entity.ErrNotificationFailed):
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to send email")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to create invoice")
		}

		return
	}

	SendJSON(ctx, w, http.StatusCreated, invoiceToAPI(inv))
}

// InvoicesByRecipient lists invoices addressed to a wallet
// @Summary List invoices by recipient
// @Description Returns all invoices whose recipient address matches, case-insensitively
// @Tags invoices
// @Produce json
// @Param recipientAddress path string true "Recipient wallet address"
// @Success 200 {array} InvoiceEntity
// @Failure 400 {object} ErrorResponse "Missing recipient address"
// @Failure 500 {object} ErrorResponse "Failed to fetch invoices"
// @Router /user/{recipientAddress}/invoices [get]
func (h *Handler) InvoicesByRecipient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recipientAddress := chi.URLParam(r, "recipientAddress")
	if recipientAddress == "" {
		SendJSONErr(ctx, w, http.StatusBadRequest, nil, "recipientAddress is required")
		return
	}

	invoices, err := h.s.InvoicesByRecipient(ctx, recipientAddress)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to fetch invoices")
		return
	}

	SendJSON(ctx, w, http.StatusOK, invoicesToAPI(invoices))
}

// PendingInvoices lists invoices with a positive remaining balance
// @Summary List pending invoices
// @Tags invoices
// @Produce json
// @Success 200 {array} InvoiceEntity
// @Failure 500 {object} ErrorResponse "Failed to fetch invoices"
// @Router /invoices/pending [get]
func (h *Handler) PendingInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoices, err := h.s.PendingInvoices(ctx)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to fetch invoices")
		return
	}

	SendJSON(ctx, w, http.StatusOK, invoicesToAPI(invoices))
}

// CompletedInvoices lists fully settled invoices
// @Summary List completed invoices
// @Tags invoices
// @Produce json
// @Success 200 {array} InvoiceEntity
// @Failure 500 {object} ErrorResponse "Failed to fetch invoices"
// @Router /invoices/completed [get]
func (h *Handler) CompletedInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoices, err := h.s.CompletedInvoices(ctx)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to fetch invoices")
		return
	}

	SendJSON(ctx, w, http.StatusOK, invoicesToAPI(invoices))
}

type RecordPaymentRequest struct {
	AmountPaid    string `json:"amountPaid"`
	WalletAddress string `json:"walletAddress"`
	TxHash        string `json:"txHash"`
}

type RecordPaymentResponse struct {
	Invoice   InvoiceEntity `json:"invoice"`
	PaymentID int64         `json:"paymentId"`
}

// RecordPayment applies a reported on-chain payment to an invoice
// @Summary Record payment
// @Description Validates the amount against the remaining balance, decrements it and appends a payment record, atomically
// @Tags payments
// @Accept json
// @Produce json
// @Param invoiceID path int true "Invoice ID"
// @Param RecordPaymentRequest body RecordPaymentRequest true "Payment report"
// @Success 200 {object} RecordPaymentResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or overpayment"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to record payment"
// @Router /invoices/{invoiceID}/payment [put]
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoiceID, err := strconv.ParseInt(chi.URLParam(r, "invoiceID"), 10, 64)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invoiceID must be an integer")
		return
	}

	var req RecordPaymentRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	inv, paymentID, err := h.s.RecordPayment(ctx, invoiceID, req.AmountPaid, req.WalletAddress, req.TxHash)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "invoice not found")
		case errors.Is(err, entity.ErrInvalidAmount):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid payment amount")
		case errors.Is(err, entity.ErrOverpayment):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "amount exceeds remaining balance")
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "wallet address and tx hash are required")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to record payment")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, RecordPaymentResponse{
		Invoice:   invoiceToAPI(inv),
		PaymentID: paymentID,
	})
}

// Health - returns service health status.
// @Summary Health check
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("OK\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "service is not healthy")
		return
	}
}

func parseDueDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}

	// Date-only input from the admin form.
	return time.Parse("2006-01-02", s)
}

func invoiceToAPI(inv entity.Invoice) InvoiceEntity {
	return InvoiceEntity{
		ID:                inv.ID,
		RecipientAddress:  inv.RecipientAddress,
		CollectionAddress: inv.CollectionAddress,
		CompanyName:       inv.CompanyName,
		Cryptocurrency:    inv.Cryptocurrency,
		DueDate:           inv.DueDate,
		Description:       inv.Description,
		CompanyEmail:      inv.CompanyEmail,
		InvoiceCategory:   inv.Category,
		PaymentDue:        inv.PaymentDue,
		IsPending:         inv.IsPending,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

func invoicesToAPI(invoices []entity.Invoice) []InvoiceEntity {
	res := make([]InvoiceEntity, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, invoiceToAPI(inv))
	}

	return res
}
