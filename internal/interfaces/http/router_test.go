package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rectificadora-api/internal/application/auth"
	"github.com/jhoicas/rectificadora-api/internal/application/taller"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/excel"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/mail"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/memory"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/pdfstore"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/photo"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/whatsapp"
	apphttp "github.com/jhoicas/rectificadora-api/internal/interfaces/http"
	"github.com/jhoicas/rectificadora-api/pkg/config"
	"github.com/jhoicas/rectificadora-api/pkg/retry"
)

const testPassword = "clave-del-taller"

// newTestApp arma la API completa sobre el almacenamiento en memoria.
func newTestApp(t *testing.T, authEnabled bool) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := taller.Repos{
		Motors:    store.Motors(),
		Works:     store.WorkEntries(),
		Parts:     store.PartEntries(),
		Checklist: store.Checklist(),
	}
	agg := invoice.NewAggregator(invoice.DefaultCatalog(), invoice.DefaultTaxRate)
	fetcher := taller.NewMotorFetcher(repos.Motors, retry.DefaultPolicy, nil, nil)
	archive, err := pdfstore.New(t.TempDir(), 24*time.Hour, nil)
	require.NoError(t, err)
	mailer := mail.NewMailer(config.SMTPConfig{})

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	authUC := auth.NewAuthUseCase(
		auth.Credentials{Usuario: "taller", PasswordHash: string(hash)},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		MotorUC:     taller.NewMotorUseCase(repos, memory.NewTxRunner(store), fetcher, photo.NewProcessor(), agg),
		WorkUC:      taller.NewWorkUseCase(repos, fetcher),
		PartUC:      taller.NewPartUseCase(repos, fetcher),
		ChecklistUC: taller.NewChecklistUseCase(repos, fetcher, agg),
		SummaryUC:   taller.NewSummaryUseCase(repos, fetcher, agg),
		ExportUC: taller.NewExportUseCase(repos, fetcher, agg, pdf.NewMotorReportGenerator(), archive,
			whatsapp.NewLinker("57"), mailer, "Rectificadora Santofimio", nil),
		HistoryUC:   taller.NewHistoryUseCase(repos, agg, excel.NewHistoryExporter()),
		Mailer:      mailer,
		AuthEnabled: authEnabled,
		AnonUser:    "taller",
		JWTSecret:   testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func intake(t *testing.T, app *fiber.App, iva bool) {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/motores/entrada", map[string]any{
		"cliente":           "Juan Pérez",
		"marca":             "Chevrolet",
		"vehiculo":          "Luv 2000",
		"incluir_iva":       iva,
		"mecanico_telefono": "300 123 4567",
		"checklist": []map[string]any{
			{"seccion": "bielas", "componente": "Pistones", "presente": true},
			{"seccion": "bielas", "observaciones": "leve desgaste"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode(t, resp)
	assert.EqualValues(t, 2, out["checklist_filas"])
}

func TestMotores_IngresoYResumen(t *testing.T) {
	app := newTestApp(t, false)
	intake(t, app, true)

	resp := call(t, app, http.MethodPost, "/api/motores/1/trabajos", map[string]any{"descripcion": "Rectificar cigüeñal", "precio": 50000})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	work := decode(t, resp)
	assert.Equal(t, "confirmed", work["confirmacion"])
	assert.Equal(t, "taller", work["mecanico"], "sin mecánico se usa el usuario autenticado")

	resp = call(t, app, http.MethodPost, "/api/motores/1/trabajos", map[string]any{"descripcion": "Sin precio", "precio": "bad"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/motores/1/items", map[string]any{"cantidad": 2, "descripcion": "Anillos", "valor": "10000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resumen := decode(t, call(t, app, http.MethodGet, "/api/motores/1/resumen", nil))
	assert.Equal(t, "$83.300", resumen["total_texto"])
	assert.Equal(t, invoice.BaseConfirmado, resumen["base"])

	detail := decode(t, call(t, app, http.MethodGet, "/api/motores/1", nil))
	motor := detail["motor"].(map[string]any)
	assert.Equal(t, "00001", motor["numero_serie"])
	assert.Len(t, detail["trabajos"], 2)
	assert.Len(t, detail["items"], 1)
	assert.Len(t, detail["checklist"], 2)
}

func TestMotores_PreviewProvisional(t *testing.T) {
	app := newTestApp(t, false)
	intake(t, app, false)

	resp := call(t, app, http.MethodPost, "/api/motores/1/resumen/preview", map[string]any{
		"trabajos": []map[string]any{{"descripcion": "Pendiente", "precio": 1500}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode(t, resp)
	assert.Equal(t, invoice.BaseProvisional, out["base"])
	assert.EqualValues(t, 1, out["pendientes"])
	assert.Equal(t, "$1.500", out["total_texto"])

	// El preview no persiste nada.
	resumen := decode(t, call(t, app, http.MethodGet, "/api/motores/1/resumen", nil))
	assert.Equal(t, "$0", resumen["total_texto"])
}

func TestMotores_FinalizadoRechazaCambios(t *testing.T) {
	app := newTestApp(t, false)
	intake(t, app, false)

	resp := call(t, app, http.MethodPost, "/api/motores/1/salida", map[string]any{"observaciones": "entregado"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	motor := decode(t, resp)
	assert.Equal(t, "Finalizado", motor["estado"])
	assert.NotNil(t, motor["fecha_salida"])

	resp = call(t, app, http.MethodPost, "/api/motores/1/trabajos", map[string]any{"descripcion": "Tarde", "precio": 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode(t, resp)["code"])

	resp = call(t, app, http.MethodPost, "/api/motores/1/finalizar", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// El resumen sigue disponible.
	resp = call(t, app, http.MethodGet, "/api/motores/1/resumen", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestMotores_ErroresDeRuta(t *testing.T) {
	app := newTestApp(t, false)

	resp := call(t, app, http.MethodGet, "/api/motores/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, resp)["code"])

	resp = call(t, app, http.MethodGet, "/api/motores/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decode(t, resp)["code"])

	resp = call(t, app, http.MethodPost, "/api/motores/entrada", map[string]any{"marca": "Mazda"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode(t, resp)["code"])

	resp = call(t, app, http.MethodPost, "/api/motores/entrada", map[string]any{
		"cliente":   "Ana",
		"checklist": []map[string]any{{"seccion": "turbo", "componente": "Eje", "presente": true}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMotores_MedidaInvalida(t *testing.T) {
	app := newTestApp(t, false)
	intake(t, app, false)

	resp := call(t, app, http.MethodPut, "/api/motores/1", map[string]any{"medida_biela": "1.75"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode(t, resp)["code"])

	resp = call(t, app, http.MethodPut, "/api/motores/1", map[string]any{"medida_bloque": "1.75"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.75", decode(t, resp)["medida_bloque"])
}

func TestExportar_PDFYDescarga(t *testing.T) {
	app := newTestApp(t, false)
	intake(t, app, true)

	resp := call(t, app, http.MethodPost, "/api/motores/1/exportar", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin medidas no se exporta")
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/motores/1/exportar", map[string]any{"medida_bloque": "0.50", "medida_biela": "0.25"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode(t, resp)
	assert.Contains(t, out["whatsapp_url"], "https://wa.me/573001234567?text=")
	assert.Contains(t, out["mensaje"], "Bloque: 0.50")

	resp = call(t, app, http.MethodGet, out["url"].(string), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	// Las medidas quedaron guardadas.
	detail := decode(t, call(t, app, http.MethodGet, "/api/motores/1", nil))
	assert.Equal(t, "0.50", detail["motor"].(map[string]any)["medida_bloque"])

	resp = call(t, app, http.MethodGet, "/api/exportaciones/no_existe.pdf", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestExportar_CorreoDeshabilitado(t *testing.T) {
	app := newTestApp(t, false)
	intake(t, app, false)

	resp := call(t, app, http.MethodPost, "/api/motores/1/exportar/email", map[string]any{"para": "cliente@correo.co"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "FEATURE_DISABLED", decode(t, resp)["code"])
}

func TestHistorial_EliminadoYExcel(t *testing.T) {
	app := newTestApp(t, false)
	intake(t, app, false)
	intake(t, app, false)

	resp := call(t, app, http.MethodDelete, "/api/motores/2", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/motores/2", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/historial", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var hist []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hist))
	resp.Body.Close()
	require.Len(t, hist, 1)
	assert.Equal(t, taller.EstadoEliminado, hist[0]["estado"])

	resp = call(t, app, http.MethodGet, "/api/motores", nil)
	var activos []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&activos))
	resp.Body.Close()
	assert.Len(t, activos, 1)

	resp = call(t, app, http.MethodGet, "/api/historial/export.xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	resp.Body.Close()
}

func TestCatalogo(t *testing.T) {
	app := newTestApp(t, false)

	resp := call(t, app, http.MethodGet, "/api/checklist/catalogo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var catalog []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&catalog))
	resp.Body.Close()
	assert.Len(t, catalog, len(invoice.DefaultCatalog().Sections()))
}

func TestAuth_LoginYRutaProtegida(t *testing.T) {
	app := newTestApp(t, true)

	resp := call(t, app, http.MethodGet, "/api/motores", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", map[string]any{"usuario": "taller", "password": "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", map[string]any{"usuario": "taller", "password": testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode(t, resp)["token"].(string)

	resp = call(t, app, http.MethodGet, "/api/motores", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
