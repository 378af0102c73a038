package tallerclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/pkg/retry"
	"github.com/jhoicas/rectificadora-api/pkg/tallerclient"
)

type fakeClock struct {
	waits []time.Duration
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

var testPolicy = retry.Policy{Initial: 100 * time.Millisecond, Multiplier: 2, Max: time.Second, MaxRetries: 3}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func unavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Code: "UNAVAILABLE", Message: "base de datos no disponible"})
}

func TestFetchMotor_ReintentaFallasTransitorias(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/motores/7", r.URL.Path)
		if atomic.AddInt32(&calls, 1) <= 2 {
			unavailable(w)
			return
		}
		writeJSON(w, http.StatusOK, dto.MotorDetailResponse{Motor: dto.MotorResponse{ID: 7, NumeroSerie: "00007"}})
	}))
	defer srv.Close()

	clock := &fakeClock{}
	var observed []retry.State
	c := tallerclient.New(srv.URL, tallerclient.WithPolicy(testPolicy), tallerclient.WithClock(clock),
		tallerclient.WithRetryObserver(func(s retry.State) { observed = append(observed, s) }))

	m, err := c.FetchMotor(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "00007", m.Motor.NumeroSerie)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{200 * time.Millisecond, 400 * time.Millisecond}, clock.waits)
	require.Len(t, observed, 2)
	assert.Equal(t, retry.Retrying, observed[0].Phase)
}

func TestFetchMotor_NoEncontradoNoSeReintenta(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "motor no encontrado"})
	}))
	defer srv.Close()

	clock := &fakeClock{}
	c := tallerclient.New(srv.URL, tallerclient.WithPolicy(testPolicy), tallerclient.WithClock(clock))

	_, err := c.FetchMotor(context.Background(), 99)
	var apiErr *tallerclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Empty(t, clock.waits)
}

func TestFetchMotor_ReintentosAgotados(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		unavailable(w)
	}))
	defer srv.Close()

	c := tallerclient.New(srv.URL, tallerclient.WithPolicy(testPolicy), tallerclient.WithClock(&fakeClock{}))

	_, err := c.FetchMotor(context.Background(), 1)
	require.ErrorIs(t, err, retry.ErrExhausted)
	assert.EqualValues(t, testPolicy.MaxRetries+1, atomic.LoadInt32(&calls))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, tallerclient.IsTransient(&tallerclient.APIError{Status: 503}))
	assert.True(t, tallerclient.IsTransient(&tallerclient.APIError{Status: 500}))
	assert.False(t, tallerclient.IsTransient(&tallerclient.APIError{Status: 400}))
	assert.False(t, tallerclient.IsTransient(&tallerclient.APIError{Status: 409}))
	assert.False(t, tallerclient.IsTransient(context.Canceled))
	assert.False(t, tallerclient.IsTransient(nil))
}

func TestFetchMotor_ServidorCaidoEsTransitorio(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := tallerclient.New(url, tallerclient.WithPolicy(retry.Policy{Initial: time.Millisecond, MaxRetries: 1}),
		tallerclient.WithClock(&fakeClock{}))

	_, err := c.FetchMotor(context.Background(), 1)
	require.ErrorIs(t, err, retry.ErrExhausted)
}

func TestLogin_GuardaToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var in dto.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "taller", in.Usuario)
			writeJSON(w, http.StatusOK, dto.LoginResponse{Token: "tok-123", ExpiresIn: 3600})
		case "/api/motores":
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			assert.Equal(t, "En Proceso", r.URL.Query().Get("estado"))
			writeJSON(w, http.StatusOK, []dto.MotorResponse{{ID: 1}, {ID: 2}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := tallerclient.New(srv.URL)
	require.NoError(t, c.Login(context.Background(), "taller", "secreto"))

	list, err := c.ListMotores(context.Background(), "En Proceso")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAPIError_CuerpoNoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := tallerclient.New(srv.URL)
	_, err := c.Resumen(context.Background(), 1)
	var apiErr *tallerclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Code)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.True(t, tallerclient.IsTransient(err))
}

func newWork(desc, precio string) dto.CreateWorkEntryRequest {
	return dto.CreateWorkEntryRequest{Descripcion: desc, Precio: dto.NewAmount(decimal.RequireFromString(precio))}
}
