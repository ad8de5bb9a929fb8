package service

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/property-service/internal/analyzer"
	"github.com/Dan9191/property-service/internal/config"
	"github.com/Dan9191/property-service/internal/integrations/webhook"
	"github.com/Dan9191/property-service/internal/middleware"
	"github.com/Dan9191/property-service/internal/models"
	"github.com/Dan9191/property-service/internal/report"
	"github.com/Dan9191/property-service/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	listings []models.Listing
	err      error
}

func (f fakeSource) Listings(context.Context) ([]models.Listing, error) {
	return f.listings, f.err
}

type fakeWebhook struct {
	sent []models.Address
	err  error
}

func (f *fakeWebhook) Send(_ context.Context, addr models.Address) (*webhook.Result, error) {
	f.sent = append(f.sent, addr)
	if f.err != nil {
		return &webhook.Result{Attempt: 3}, f.err
	}
	return &webhook.Result{Success: true, StatusCode: http.StatusOK, Attempt: 1}, nil
}

func (f *fakeWebhook) Ping(context.Context) *webhook.PingResult {
	return &webhook.PingResult{Success: true, StatusCode: http.StatusOK}
}

func testService(ext Integrations) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(nil, log, &config.Config{JWTSecret: "test-secret"}, ext)
}

func userContext(id int64) context.Context {
	return middleware.WithUserID(context.Background(), id)
}

func sampleRecord() models.PropertyRecord {
	return models.PropertyRecord{
		Address:           "123 Main St",
		Price:             500000,
		SquareFootage:     2000,
		NOI:               40000,
		GrossRentalIncome: 60000,
		OperatingExpenses: 15000,
		TotalDebtService:  25000,
		CashInvested:      100000,
		OccupiedUnits:     4,
		TotalUnits:        4,
	}
}

func TestEvaluate(t *testing.T) {
	s := testService(Integrations{})

	evaluation := s.Evaluate(sampleRecord())
	assert.InDelta(t, 20000, evaluation.Metrics.AnnualCashFlow, 1e-9)
	assert.InDelta(t, 1.6, evaluation.Metrics.DSCR, 1e-9)
	assert.Equal(t, 90, evaluation.Analysis.Score)
	assert.Equal(t, analyzer.RecommendStrong, evaluation.Analysis.Recommendation())

	noDebt := sampleRecord()
	noDebt.TotalDebtService = 0
	assert.True(t, math.IsInf(s.Evaluate(noDebt).Metrics.DSCR, 1))
}

func TestIssuedTokenPassesAuthMiddleware(t *testing.T) {
	s := testService(Integrations{})
	token, err := s.issueToken(42)
	require.NoError(t, err)

	var got int64
	h := middleware.AuthMiddleware(s.config)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = middleware.UserID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), got)
}

func TestRegisterValidatesCredentials(t *testing.T) {
	s := testService(Integrations{})

	_, err := s.Register(models.Credentials{Username: "ann", Email: "not-an-email", Password: "short"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Fields["email"])
	assert.Equal(t, "min=8", ve.Fields["password"])
}

func TestPropertyOperationsRequireUser(t *testing.T) {
	s := testService(Integrations{})

	_, err := s.CreateProperty(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = s.ListProperties(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCreatePropertyValidatesRecord(t *testing.T) {
	s := testService(Integrations{})

	record := sampleRecord()
	record.Address = ""
	record.Price = 0
	record.TotalUnits = 0

	_, err := s.CreateProperty(userContext(1), record)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "required", ve.Fields["address"])
	assert.Equal(t, "gt=0", ve.Fields["price"])
	assert.Equal(t, "gte=1", ve.Fields["total_units"])
}

func TestOptionalIntegrationsNotConfigured(t *testing.T) {
	s := testService(Integrations{})
	ctx := userContext(1)

	assert.ErrorIs(t, s.EmailReport(ctx, 1, "a@example.com", "pdf"), ErrNotConfigured)
	assert.ErrorIs(t, s.ExportToSheet(ctx, 1), ErrNotConfigured)
	_, err := s.SubmitAddress(ctx, models.Address{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = s.PingWebhook(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = s.SyncListings(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = s.Listings(ctx, ListingQuery{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSubmitAddress(t *testing.T) {
	hook := &fakeWebhook{}
	s := testService(Integrations{Webhook: hook})

	_, err := s.SubmitAddress(context.Background(), models.Address{City: "Austin"})
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.Empty(t, hook.sent)

	result, err := s.SubmitAddress(context.Background(), models.Address{
		AddressLine1: " 12 oak st ",
		City:         "austin",
		State:        "tx",
		ZipCode:      "78701",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, hook.sent, 1)
	assert.Equal(t, "12 oak st, Austin, TX 78701", hook.sent[0].FormattedAddress)
}

func TestSubmitAddressDeliveryFailure(t *testing.T) {
	hook := &fakeWebhook{err: webhook.ErrDeliveryFailed}
	s := testService(Integrations{Webhook: hook})

	result, err := s.SubmitAddress(context.Background(), models.Address{
		AddressLine1: "12 Oak St", City: "Austin", State: "TX", ZipCode: "78701",
	})
	assert.ErrorIs(t, err, webhook.ErrDeliveryFailed)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.Attempt)
}

func TestPingWebhook(t *testing.T) {
	s := testService(Integrations{Webhook: &fakeWebhook{}})
	result, err := s.PingWebhook(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestEmailReportRejectsBadAddress(t *testing.T) {
	s := testService(Integrations{Mailer: nopMailer{}})
	err := s.EmailReport(userContext(1), 1, "nobody", "pdf")
	assert.True(t, IsValidation(err))
}

type nopMailer struct{}

func (nopMailer) SendReport(string, report.Input, *report.Document) error { return nil }

func TestListingRecordNotFound(t *testing.T) {
	s := testService(Integrations{Listings: fakeSource{listings: testListings()}})

	record, err := s.ListingRecord(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "2 Elm St, Austin, TX 78701", record.Address)

	_, err = s.ListingRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListingsSourceFailureWithoutFallback(t *testing.T) {
	s := testService(Integrations{Listings: fakeSource{err: errors.New("quota exceeded")}})
	_, err := s.Listings(context.Background(), ListingQuery{})
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestSyncListingsHonorsCancel(t *testing.T) {
	s := testService(Integrations{Listings: fakeSource{listings: testListings()}})
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	n, err := s.SyncListings(ctx)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"total_units": "gte=1",
		"address":     "required",
		"price":       "gt=0",
	}}
	want := "invalid input: address (required), price (gt=0), total_units (gte=1)"
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, err.Error())
	}
}
