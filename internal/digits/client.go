// Package digits verifica credenciales delegadas contra el proveedor
// externo (Digits/Twitter). El servicio valida cabeceras y allow-list;
// aquí sólo vive la llamada HTTP y el parseo de la respuesta.
package digits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/praphull/authd/internal/observability/logger"
)

// Account es la identidad que devuelve el proveedor tras verificar
// las credenciales OAuth Echo.
type Account struct {
	// ID es id_str parseado; es la clave de vínculo con el usuario local.
	ID          int64
	PhoneNumber string
}

// ErrUnverified indica que el proveedor rechazó o no pudo confirmar
// las credenciales. Cubre errores de red, timeouts y status != 200.
var ErrUnverified = errors.New("digits: credentials not verified")

// Verifier llama al proveedor. Se define como interfaz para poder
// sustituirlo en tests del servicio.
type Verifier interface {
	Verify(ctx context.Context, apiURL, credentials string) (*Account, error)
}

// Client implementa Verifier sobre net/http.
type Client struct {
	httpClient *http.Client
}

// New construye el cliente con el timeout de verificación. El timeout
// acota toda la llamada; no hay reintentos.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// providerResponse es el cuerpo relevante de la respuesta del proveedor.
type providerResponse struct {
	IDStr       string `json:"id_str"`
	PhoneNumber string `json:"phone_number"`
}

// Verify reenvía las credenciales tal cual llegaron: el valor de la
// cabecera de autorización del cliente se pasa verbatim como
// Authorization hacia el proveedor (OAuth Echo).
func (c *Client) Verify(ctx context.Context, apiURL, credentials string) (*Account, error) {
	log := logger.From(ctx).With(logger.Component("digits"), logger.Op("Verify"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnverified, err)
	}
	req.Header.Set("Authorization", credentials)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("fallo de red contra el proveedor", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrUnverified, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnverified, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn("el proveedor rechazó las credenciales",
			logger.Status(resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnverified, resp.StatusCode)
	}

	var pr providerResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnverified, err)
	}
	id, err := strconv.ParseInt(pr.IDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: id_str inválido", ErrUnverified)
	}

	return &Account{ID: id, PhoneNumber: pr.PhoneNumber}, nil
}
