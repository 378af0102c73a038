// Package tallerclient es el cliente Go de la API de la rectificadora. Las
// lecturas de motores se reintentan con backoff y los trabajos nuevos se
// registran de forma optimista en una cola de pendientes.
package tallerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/pkg/retry"
)

// DefaultMaxSends intentos de envío de un trabajo pendiente antes de marcarlo fallido.
const DefaultMaxSends = 5

// APIError es una respuesta de error de la API ({"code","message"}).
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
}

// IsTransient indica si vale la pena reintentar: fallas de red, timeouts y 5xx.
// Los 4xx (validación, no encontrado, conflicto) nunca se reintentan.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 || apiErr.Status == http.StatusTooManyRequests
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.DeadlineExceeded)
}

// Client cliente HTTP de la API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	policy     retry.Policy
	clock      retry.Clock
	onRetry    func(retry.State)
	pending    *PendingQueue
}

// Option configura el cliente.
type Option func(*Client)

// WithToken fija el Bearer token.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// WithHTTPClient reemplaza el http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpClient = h } }

// WithPolicy reemplaza la política de reintentos.
func WithPolicy(p retry.Policy) Option { return func(c *Client) { c.policy = p } }

// WithClock reemplaza el reloj de los reintentos (pruebas).
func WithClock(clock retry.Clock) Option { return func(c *Client) { c.clock = clock } }

// WithRetryObserver recibe cada transición a Retrying (para mostrar "reintentando…").
func WithRetryObserver(fn func(retry.State)) Option { return func(c *Client) { c.onRetry = fn } }

// WithMaxSends fija el máximo de envíos por trabajo pendiente.
func WithMaxSends(n int) Option { return func(c *Client) { c.pending = NewPendingQueue(n) } }

// New construye el cliente. baseURL es la raíz del servidor (ej. http://localhost:5000).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		policy:     retry.DefaultPolicy,
		clock:      retry.SystemClock{},
		pending:    NewPendingQueue(DefaultMaxSends),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token devuelve el token actual (vacío si no hubo login).
func (c *Client) Token() string { return c.token }

// Pending devuelve la cola de trabajos pendientes.
func (c *Client) Pending() *PendingQueue { return c.pending }

// Login obtiene un token y lo guarda en el cliente.
func (c *Client) Login(ctx context.Context, usuario, password string) error {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Usuario: usuario, Password: password}, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// FetchMotor lee el motor completo reintentando las fallas transitorias con la
// máquina de estados de backoff. Un 404 se devuelve de inmediato.
func (c *Client) FetchMotor(ctx context.Context, id int64) (*dto.MotorDetailResponse, error) {
	var out dto.MotorDetailResponse
	err := retry.Do(ctx, c.policy, retry.Options{
		Clock:     c.clock,
		Retryable: IsTransient,
		OnRetry:   c.onRetry,
	}, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, fmt.Sprintf("/api/motores/%d", id), nil, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMotores lista los motores activos, opcionalmente por estado.
func (c *Client) ListMotores(ctx context.Context, estado string) ([]dto.MotorResponse, error) {
	path := "/api/motores"
	if estado != "" {
		path += "?estado=" + url.QueryEscape(estado)
	}
	var out []dto.MotorResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Resumen devuelve el resumen confirmado del motor.
func (c *Client) Resumen(ctx context.Context, motorID int64) (*dto.SummaryResponse, error) {
	var out dto.SummaryResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/motores/%d/resumen", motorID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResumenProvisional suma al resumen del servidor los trabajos aún pendientes
// en la cola local (base "provisional" si hay alguno).
func (c *Client) ResumenProvisional(ctx context.Context, motorID int64) (*dto.SummaryResponse, error) {
	in := dto.PreviewSummaryRequest{}
	for _, p := range c.pending.Speculative(motorID) {
		in.Trabajos = append(in.Trabajos, dto.PendingWorkEntry{Descripcion: p.Request.Descripcion, Precio: p.Request.Precio})
	}
	var out dto.SummaryResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/motores/%d/resumen/preview", motorID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Exportar genera el PDF en el servidor y devuelve el enlace de descarga y de WhatsApp.
func (c *Client) Exportar(ctx context.Context, motorID int64, in dto.ExportRequest) (*dto.ExportResponse, error) {
	var out dto.ExportResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/motores/%d/exportar", motorID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddTrabajo registra el trabajo como especulativo, lo envía y, si el servidor
// lo confirma, lo reemplaza por el registro confirmado. Una falla transitoria lo
// deja en la cola para Flush; una falla de validación lo marca fallido.
func (c *Client) AddTrabajo(ctx context.Context, motorID int64, in dto.CreateWorkEntryRequest) (*PendingWork, error) {
	p := c.pending.Add(motorID, in)
	err := c.send(ctx, p)
	return c.pending.Get(p.LocalID), err
}

// Flush reenvía los trabajos pendientes. Devuelve cuántos se confirmaron.
func (c *Client) Flush(ctx context.Context) (int, error) {
	confirmed := 0
	for _, p := range c.pending.Speculative(0) {
		if err := ctx.Err(); err != nil {
			return confirmed, err
		}
		if err := c.send(ctx, &p); err == nil {
			confirmed++
		}
	}
	return confirmed, nil
}

func (c *Client) send(ctx context.Context, p *PendingWork) error {
	var out dto.WorkEntryResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/motores/%d/trabajos", p.MotorID), p.Request, &out)
	if err != nil {
		c.pending.fail(p.LocalID, err, !IsTransient(err))
		return err
	}
	c.pending.confirm(p.LocalID, out)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("tallerclient: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("tallerclient: crear request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("tallerclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("tallerclient: leer respuesta: %w", err)
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var er dto.ErrorResponse
		if json.Unmarshal(raw, &er) == nil && er.Code != "" {
			apiErr.Code, apiErr.Message = er.Code, er.Message
		} else {
			apiErr.Code, apiErr.Message = http.StatusText(resp.StatusCode), strings.TrimSpace(string(raw))
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("tallerclient: parsear respuesta: %w", err)
	}
	return nil
}
