package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chainvoice/backend/internal/entity"
	"github.com/chainvoice/backend/internal/mocks"
	"github.com/chainvoice/backend/internal/service"
)

const (
	testCollectionAddress = "0x8dF42792C9CfD917d1a9247Fef3Bc0a8e4e148f5"
	testBaseURL           = "http://localhost:3000"
)

func newInvoice() entity.Invoice {
	return entity.Invoice{
		RecipientAddress: "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01",
		CompanyName:      "Acme Corp",
		Cryptocurrency:   "Ethereum",
		DueDate:          time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Description:      "Consulting services",
		CompanyEmail:     "billing@acme.example",
		Category:         "Services",
		PaymentDue:       "100.00000",
	}
}

func TestService_CreateInvoice(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	mailer := mocks.NewMockMailer(ctrl)

	inv := newInvoice()

	repo.EXPECT().CreateInvoice(context.Background(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got entity.Invoice) (entity.Invoice, error) {
			require.True(t, got.IsPending)
			require.Equal(t, testCollectionAddress, got.CollectionAddress)
			require.False(t, got.CreatedAt.IsZero())

			got.ID = 42

			return got, nil
		})

	mailer.EXPECT().SendMessage(
		"Invoice Created",
		"An invoice has been created. View it here: http://localhost:3000/invoice/42",
		[]string{inv.CompanyEmail},
	).Return(nil)

	s := service.New(repo, mailer, nil, testCollectionAddress, testBaseURL)

	created, err := s.CreateInvoice(context.Background(), inv)
	require.NoError(t, err)
	require.Equal(t, int64(42), created.ID)
	require.True(t, created.IsPending)
}

func TestService_CreateInvoice_missingField(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	mailer := mocks.NewMockMailer(ctrl)

	inv := newInvoice()
	inv.CompanyEmail = ""

	s := service.New(repo, mailer, nil, testCollectionAddress, testBaseURL)

	_, err := s.CreateInvoice(context.Background(), inv)
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestService_CreateInvoice_mailerFails(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	mailer := mocks.NewMockMailer(ctrl)

	inv := newInvoice()

	repo.EXPECT().CreateInvoice(context.Background(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got entity.Invoice) (entity.Invoice, error) {
			got.ID = 7
			return got, nil
		})

	mailer.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("smtp unavailable"))

	s := service.New(repo, mailer, nil, testCollectionAddress, testBaseURL)

	_, err := s.CreateInvoice(context.Background(), inv)
	require.ErrorIs(t, err, entity.ErrNotificationFailed)
}

func TestService_RecordPayment(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	producer := mocks.NewMockProducer(ctrl)

	const (
		invoiceID = int64(42)
		sender    = "0x1111111111111111111111111111111111111111"
		txHash    = "0xdeadbeef"
	)

	updated := entity.Invoice{
		ID:                invoiceID,
		CollectionAddress: testCollectionAddress,
		PaymentDue:        "40.00000",
		IsPending:         true,
	}

	repo.EXPECT().ApplyPayment(
		context.Background(), invoiceID, decimal.RequireFromString("60"), sender, txHash, gomock.Any(),
	).Return(updated, int64(1), nil)

	producer.EXPECT().SendPaymentRecorded(
		context.Background(), invoiceID, int64(1),
		decimal.RequireFromString("60"), decimal.RequireFromString("40.00000"), false, txHash,
	)

	s := service.New(repo, nil, producer, testCollectionAddress, testBaseURL)

	inv, paymentID, err := s.RecordPayment(context.Background(), invoiceID, "60", sender, txHash)
	require.NoError(t, err)
	require.Equal(t, int64(1), paymentID)
	require.Equal(t, "40.00000", inv.PaymentDue)
	require.True(t, inv.IsPending)
}

func TestService_RecordPayment_invalidAmount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	s := service.New(repo, nil, nil, testCollectionAddress, testBaseURL)

	for _, amount := range []string{"", "abc", "12,5"} {
		_, _, err := s.RecordPayment(context.Background(), 1, amount, "0x1", "0xhash")
		require.ErrorIs(t, err, entity.ErrInvalidAmount, "amount %q", amount)
	}
}

func TestService_RecordPayment_nonPositiveAmount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	s := service.New(repo, nil, nil, testCollectionAddress, testBaseURL)

	for _, amount := range []string{"0", "-5"} {
		_, _, err := s.RecordPayment(context.Background(), 1, amount, "0x1", "0xhash")
		require.ErrorIs(t, err, entity.ErrInvalidAmount, "amount %q", amount)
	}
}

func TestService_RecordPayment_subScaleAmount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	s := service.New(repo, nil, nil, testCollectionAddress, testBaseURL)

	_, _, err := s.RecordPayment(context.Background(), 1, "99.999999", "0x1", "0xhash")
	require.ErrorIs(t, err, entity.ErrInvalidAmount)

	// Trailing zeros beyond the scale carry no extra precision.
	repo.EXPECT().ApplyPayment(
		context.Background(), int64(1), decimal.RequireFromString("1.000000"), "0x1", "0xhash", gomock.Any(),
	).Return(entity.Invoice{ID: 1, PaymentDue: "9.00000", IsPending: true}, int64(1), nil)

	producer := mocks.NewMockProducer(ctrl)
	producer.EXPECT().SendPaymentRecorded(
		gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
	)

	s = service.New(repo, nil, producer, testCollectionAddress, testBaseURL)

	_, _, err = s.RecordPayment(context.Background(), 1, "1.000000", "0x1", "0xhash")
	require.NoError(t, err)
}

func TestService_RecordPayment_missingSender(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	s := service.New(repo, nil, nil, testCollectionAddress, testBaseURL)

	_, _, err := s.RecordPayment(context.Background(), 1, "10", "", "0xhash")
	require.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, _, err = s.RecordPayment(context.Background(), 1, "10", "0x1", "")
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestService_RecordPayment_overpaymentPassedThrough(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	repo.EXPECT().ApplyPayment(
		context.Background(), int64(1), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
	).Return(entity.Invoice{}, int64(0), entity.ErrOverpayment)

	s := service.New(repo, nil, nil, testCollectionAddress, testBaseURL)

	_, _, err := s.RecordPayment(context.Background(), 1, "1000", "0x1", "0xhash")
	require.ErrorIs(t, err, entity.ErrOverpayment)
}

func TestService_AuditBalances(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	repo.EXPECT().DriftedInvoiceIDs(context.Background()).Return([]int64{3, 9}, nil)

	s := service.New(repo, nil, nil, testCollectionAddress, testBaseURL)

	err := s.AuditBalances(context.Background())
	require.NoError(t, err)
}
