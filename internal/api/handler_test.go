package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chainvoice/backend/internal/api"
	"github.com/chainvoice/backend/internal/entity"
	"github.com/chainvoice/backend/internal/mocks"
)

type testAPI struct {
	server  *httptest.Server
	service *mocks.MockService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	serviceMock := mocks.NewMockService(ctrl)

	h := api.NewHandler(serviceMock)
	mw := api.NewMiddleware(false, "")

	server := httptest.NewServer(api.NewRouter(h, mw))
	t.Cleanup(server.Close)

	return &testAPI{
		server:  server,
		service: serviceMock,
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	var respBody bytes.Buffer
	_, err = respBody.ReadFrom(resp.Body)
	require.NoError(t, err)

	return resp, respBody.Bytes()
}

func TestHandler_CreateInvoice(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	dueDate := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	a.service.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, inv entity.Invoice) (entity.Invoice, error) {
			require.Equal(t, "0xAbC123", inv.RecipientAddress)
			require.Equal(t, "100.5", inv.PaymentDue)
			require.True(t, dueDate.Equal(inv.DueDate))

			inv.ID = 1
			inv.IsPending = true

			return inv, nil
		})

	resp, body := a.do(t, http.MethodPost, "/api/invoices", api.CreateInvoiceRequest{
		RecipientAddress: "0xAbC123",
		CompanyName:      "Acme Corp",
		Cryptocurrency:   "Ethereum",
		DueDate:          "2024-07-01",
		Description:      "Consulting services",
		CompanyEmail:     "billing@acme.example",
		InvoiceCategory:  "Services",
		PaymentDue:       "100.5",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got api.InvoiceEntity
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, int64(1), got.ID)
	require.True(t, got.IsPending)
	require.Equal(t, "100.5", got.PaymentDue)
}

func TestHandler_CreateInvoice_missingFields(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.service.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		Return(entity.Invoice{}, fmt.Errorf("%w: description is required", entity.ErrInvalidArgument))

	resp, _ := a.do(t, http.MethodPost, "/api/invoices", api.CreateInvoiceRequest{
		RecipientAddress: "0xAbC123",
		DueDate:          "2024-07-01",
		PaymentDue:       "100.5",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_CreateInvoice_invalidDueDate(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	resp, _ := a.do(t, http.MethodPost, "/api/invoices", api.CreateInvoiceRequest{
		RecipientAddress: "0xAbC123",
		DueDate:          "next tuesday",
		PaymentDue:       "100.5",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_CreateInvoice_notificationFailed(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.service.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		Return(entity.Invoice{}, fmt.Errorf("%w: smtp unavailable", entity.ErrNotificationFailed))

	resp, _ := a.do(t, http.MethodPost, "/api/invoices", api.CreateInvoiceRequest{
		RecipientAddress: "0xAbC123",
		CompanyName:      "Acme Corp",
		Cryptocurrency:   "Ethereum",
		DueDate:          "2024-07-01",
		Description:      "Consulting services",
		CompanyEmail:     "billing@acme.example",
		InvoiceCategory:  "Services",
		PaymentDue:       "100.5",
	})

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandler_InvoicesByRecipient(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	invoices := []entity.Invoice{
		{ID: 1, RecipientAddress: "0xAbC123", PaymentDue: "100.5", IsPending: true},
		{ID: 2, RecipientAddress: "0xabc123", PaymentDue: "0.00000"},
	}

	a.service.EXPECT().InvoicesByRecipient(gomock.Any(), "0xabc123").Return(invoices, nil)

	resp, body := a.do(t, http.MethodGet, "/api/user/0xabc123/invoices", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []api.InvoiceEntity
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].ID)
}

func TestHandler_InvoicesByRecipient_empty(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.service.EXPECT().InvoicesByRecipient(gomock.Any(), "0xnobody").Return([]entity.Invoice{}, nil)

	resp, body := a.do(t, http.MethodGet, "/api/user/0xnobody/invoices", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `[]`, string(body))
}

func TestHandler_PendingAndCompletedInvoices(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.service.EXPECT().PendingInvoices(gomock.Any()).
		Return([]entity.Invoice{{ID: 1, PaymentDue: "10", IsPending: true}}, nil)
	a.service.EXPECT().CompletedInvoices(gomock.Any()).
		Return([]entity.Invoice{{ID: 2, PaymentDue: "0.00000"}}, nil)

	resp, body := a.do(t, http.MethodGet, "/api/invoices/pending", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pending []api.InvoiceEntity
	require.NoError(t, json.Unmarshal(body, &pending))
	require.Len(t, pending, 1)
	require.True(t, pending[0].IsPending)

	resp, body = a.do(t, http.MethodGet, "/api/invoices/completed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var completed []api.InvoiceEntity
	require.NoError(t, json.Unmarshal(body, &completed))
	require.Len(t, completed, 1)
	require.False(t, completed[0].IsPending)
}

func TestHandler_RecordPayment(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	updated := entity.Invoice{ID: 42, PaymentDue: "40.00000", IsPending: true}

	a.service.EXPECT().
		RecordPayment(gomock.Any(), int64(42), "60", "0xsender", "0xhash").
		Return(updated, int64(7), nil)

	resp, body := a.do(t, http.MethodPut, "/api/invoices/42/payment", api.RecordPaymentRequest{
		AmountPaid:    "60",
		WalletAddress: "0xsender",
		TxHash:        "0xhash",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.RecordPaymentResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, int64(7), got.PaymentID)
	require.Equal(t, "40.00000", got.Invoice.PaymentDue)
	require.True(t, got.Invoice.IsPending)
}

func TestHandler_RecordPayment_errors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "invoice not found",
			err:      fmt.Errorf("apply payment: %w", entity.ErrNotFound),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "invalid amount",
			err:      fmt.Errorf("%w: amount \"abc\" is not a number", entity.ErrInvalidAmount),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "overpayment",
			err:      fmt.Errorf("%w: amount 1000 exceeds remaining balance 40", entity.ErrOverpayment),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing sender",
			err:      fmt.Errorf("%w: sender wallet address is required", entity.ErrInvalidArgument),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "storage failure",
			err:      fmt.Errorf("apply payment: connection refused"),
			wantCode: http.StatusInternalServerError,
		},
	} {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAPI(t)

			a.service.EXPECT().
				RecordPayment(gomock.Any(), int64(1), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(entity.Invoice{}, int64(0), tt.err)

			resp, _ := a.do(t, http.MethodPut, "/api/invoices/1/payment", api.RecordPaymentRequest{
				AmountPaid:    "1",
				WalletAddress: "0xsender",
				TxHash:        "0xhash",
			})

			require.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestHandler_RecordPayment_badInvoiceID(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	resp, _ := a.do(t, http.MethodPut, "/api/invoices/abc/payment", api.RecordPaymentRequest{
		AmountPaid:    "1",
		WalletAddress: "0xsender",
		TxHash:        "0xhash",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	resp, body := a.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "OK", strings.TrimSpace(string(body)))
}

func TestMiddleware_APIKeyAuth(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	serviceMock := mocks.NewMockService(ctrl)

	h := api.NewHandler(serviceMock)
	mw := api.NewMiddleware(true, "secret")

	server := httptest.NewServer(api.NewRouter(h, mw))
	t.Cleanup(server.Close)

	// Without a key the admin surface is closed.
	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/invoices", strings.NewReader("{}"))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A wrong key is rejected too.
	req, err = http.NewRequest(http.MethodPost, server.URL+"/api/invoices", strings.NewReader("{}"))
	require.NoError(t, err)
	req.Header.Set("X-Api-Key", "nope")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
