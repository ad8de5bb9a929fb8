package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dan9191/property-service/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSendRetriesUntilSuccess(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, Sign(body, "s3cret"), r.Header.Get("X-Signature"))

		var p Payload
		assert.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, "1 Main St", p.AddressLine1)
		assert.Equal(t, payloadSource, p.Source)

		if n < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("accepted"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, quietLogger(), WithSecret("s3cret"), WithBackoff(time.Millisecond))
	res, err := c.Send(context.Background(), models.Address{AddressLine1: "1 Main St"})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.Attempt)
	assert.Equal(t, "accepted", res.ResponseText)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, quietLogger(), WithBackoff(time.Millisecond), WithMaxRetries(2))
	res, err := c.Send(context.Background(), models.Address{})

	assert.True(t, errors.Is(err, ErrDeliveryFailed))
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.Attempt)
	assert.Equal(t, "All retry attempts failed", res.ResponseText)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSendUsesCustomHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, quietLogger(),
		WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}),
		WithMaxRetries(1))
	res, err := c.Send(context.Background(), models.Address{})

	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.ErrorContains(t, err, "request failed")
	assert.Equal(t, 1, res.Attempt)
}

func TestSendStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(srv.URL, quietLogger(), WithBackoff(time.Hour))
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	res, err := c.Send(ctx, models.Address{})
	assert.True(t, errors.Is(err, ErrDeliveryFailed))
	assert.Equal(t, 1, res.Attempt)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no workflow"))
	}))
	defer srv.Close()

	res := NewClient(srv.URL, quietLogger()).Ping(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "no workflow", res.ResponseText)

	down := NewClient("http://127.0.0.1:1/webhook", quietLogger()).Ping(context.Background())
	assert.False(t, down.Success)
	assert.NotEmpty(t, down.Error)
}

func TestValidate(t *testing.T) {
	check := Validate(models.Address{})
	assert.False(t, check.Valid)
	assert.Len(t, check.Errors, 4)

	check = Validate(models.Address{
		AddressLine1: "1 Main St", City: "Oakland", State: "California", ZipCode: "9461",
	})
	assert.True(t, check.Valid)
	assert.Contains(t, check.Warnings, "Missing recommended field: propertyType")
	assert.Contains(t, check.Warnings, "Missing recommended field: county")
	assert.Contains(t, check.Warnings, "ZIP code format may be invalid (expected: 12345 or 12345-6789)")
	assert.Contains(t, check.Warnings, "State should be 2-character abbreviation (e.g., CA, NY)")

	check = Validate(models.Address{
		AddressLine1: "1 Main St", City: "Oakland", State: "CA", ZipCode: "94612-1234",
		County: "Alameda", PropertyType: "Condo",
	})
	assert.True(t, check.Valid)
	assert.Empty(t, check.Warnings)
}

func TestFormat(t *testing.T) {
	out := Format(models.Address{
		AddressLine1: "  200 Grand Ave ",
		AddressLine2: " Unit 4",
		City:         "SAN francisco",
		State:        "ca",
		ZipCode:      "94102 ",
		County:       "san francisco county",
	})
	assert.Equal(t, "San Francisco", out.City)
	assert.Equal(t, "CA", out.State)
	assert.Equal(t, "San Francisco County", out.County)
	assert.Equal(t, "200 Grand Ave, Unit 4, San Francisco, CA 94102", out.FormattedAddress)

	assert.Equal(t, "1 A St, Davis, CA", Format(models.Address{AddressLine1: "1 A St", City: "davis", State: "ca"}).FormattedAddress)
}

func TestValidateURL(t *testing.T) {
	assert.True(t, ValidateURL("https://n8n.example.com/webhook/real-estate-address"))
	assert.False(t, ValidateURL("ftp://example.com/webhook"))
	assert.False(t, ValidateURL("https://example.com/hooks"))
	assert.False(t, ValidateURL(""))
}
