package tallerclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/pkg/tallerclient"
)

// workServer responde 503 mientras down sea verdadero y confirma el trabajo en caso contrario.
func workServer(t *testing.T, down *atomic.Bool, posts *int32) *httptest.Server {
	t.Helper()
	var seq int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(posts, 1)
		if down.Load() {
			unavailable(w)
			return
		}
		var in dto.CreateWorkEntryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Descripcion == "" {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "descripcion es obligatorio"})
			return
		}
		writeJSON(w, http.StatusCreated, dto.WorkEntryResponse{
			ID: atomic.AddInt64(&seq, 1), MotorID: 3, Descripcion: in.Descripcion,
			Precio: in.Precio.NullDecimal, Estado: "Pendiente", Confirmacion: "confirmed",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAddTrabajo_Confirmado(t *testing.T) {
	var down atomic.Bool
	var posts int32
	c := tallerclient.New(workServer(t, &down, &posts).URL)

	p, err := c.AddTrabajo(context.Background(), 3, newWork("Rectificar culata", "45000"))
	require.NoError(t, err)
	assert.Equal(t, tallerclient.StatusConfirmed, p.Status)
	require.NotNil(t, p.Confirmed)
	assert.EqualValues(t, 1, p.Confirmed.ID)
	assert.Empty(t, c.Pending().Speculative(3))
}

func TestAddTrabajo_PendienteHastaFlush(t *testing.T) {
	var down atomic.Bool
	var posts int32
	down.Store(true)
	c := tallerclient.New(workServer(t, &down, &posts).URL)

	p, err := c.AddTrabajo(context.Background(), 3, newWork("Cambiar anillos", "30000"))
	require.Error(t, err)
	assert.Equal(t, tallerclient.StatusSpeculative, p.Status)
	assert.Equal(t, 1, p.Sends)
	assert.Contains(t, p.LastError, "UNAVAILABLE")
	require.Len(t, c.Pending().Speculative(3), 1)

	down.Store(false)
	n, err := c.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, c.Pending().Speculative(0))
	confirmed := c.Pending().Confirmed(3)
	require.Len(t, confirmed, 1)
	assert.Equal(t, 2, confirmed[0].Sends)
	assert.Equal(t, "Cambiar anillos", confirmed[0].Confirmed.Descripcion)
}

func TestAddTrabajo_FallaTrasMaximoDeEnvios(t *testing.T) {
	var down atomic.Bool
	var posts int32
	down.Store(true)
	c := tallerclient.New(workServer(t, &down, &posts).URL, tallerclient.WithMaxSends(2))

	_, _ = c.AddTrabajo(context.Background(), 3, newWork("Pulir cigüeñal", "20000"))
	n, err := c.Flush(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	failed := c.Pending().Failed(3)
	require.Len(t, failed, 1)
	assert.Equal(t, 2, failed[0].Sends)
	assert.EqualValues(t, 2, atomic.LoadInt32(&posts))

	// Un flush posterior no reenvía los fallidos.
	_, _ = c.Flush(context.Background())
	assert.EqualValues(t, 2, atomic.LoadInt32(&posts))

	require.True(t, c.Pending().Retry(failed[0].LocalID))
	down.Store(false)
	n, err = c.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAddTrabajo_RechazoDeValidacionEsFallido(t *testing.T) {
	var down atomic.Bool
	var posts int32
	c := tallerclient.New(workServer(t, &down, &posts).URL)

	p, err := c.AddTrabajo(context.Background(), 3, dto.CreateWorkEntryRequest{})
	require.Error(t, err)
	assert.Equal(t, tallerclient.StatusFailed, p.Status)
	assert.Empty(t, c.Pending().Speculative(3))
}

func TestResumenProvisional_EnviaPendientes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/motores/3/trabajos":
			unavailable(w)
		case "/api/motores/3/resumen/preview":
			var in dto.PreviewSummaryRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			require.Len(t, in.Trabajos, 1)
			assert.Equal(t, "Cambiar anillos", in.Trabajos[0].Descripcion)
			assert.True(t, in.Trabajos[0].Precio.Decimal.Equal(decimal.NewFromInt(1500)))
			writeJSON(w, http.StatusOK, dto.SummaryResponse{Total: decimal.NewFromInt(2500), Base: "provisional", Pendientes: 1})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := tallerclient.New(srv.URL)
	_, _ = c.AddTrabajo(context.Background(), 3, newWork("Cambiar anillos", "1500"))
	_, _ = c.AddTrabajo(context.Background(), 4, newWork("Otro motor", "999"))

	s, err := c.ResumenProvisional(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "provisional", s.Base)
	assert.Equal(t, 1, s.Pendientes)
}
