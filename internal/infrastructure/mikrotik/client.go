// Package mikrotik implementa el adaptador REST hacia el router MikroTik
// (RouterOS v7+). Expone los secrets PPP para la importación masiva y el
// habilitado/deshabilitado de suscriptores para el ciclo de cobranza.
package mikrotik

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/netbill-api/internal/application/billing"
	"github.com/jhoicas/netbill-api/pkg/config"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

var _ billing.ConnectivityToggler = (*Client)(nil)
var _ billing.SubscriberSource = (*Client)(nil)

// Client cliente REST del router con basic auth.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente con la configuración del router.
func NewClient(cfg config.RouterConfig, log *logger.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	transport := &http.Transport{}
	if cfg.InsecureTLS {
		// Los routers suelen venir con certificado autofirmado.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		log:        log,
	}
}

// secret representa un secret PPP tal como lo serializa RouterOS.
// Los booleanos llegan como strings "true"/"false".
type secret struct {
	ID           string `json:".id"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	Profile      string `json:"profile"`
	Service      string `json:"service"`
	Comment      string `json:"comment"`
	Disabled     string `json:"disabled"`
	LastCallerID string `json:"last-caller-id"`
}

// activeConn conexión PPP activa (solo interesa el .id para terminarla).
type activeConn struct {
	ID   string `json:".id"`
	Name string `json:"name"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("construir request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamar al router: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("router respondió %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decodificar respuesta: %w", err)
		}
	}
	return nil
}

// findSecret busca el secret PPP por username. Devuelve (nil, nil) si no existe.
func (c *Client) findSecret(ctx context.Context, username string) (*secret, error) {
	var secrets []secret
	path := "/rest/ppp/secret?name=" + url.QueryEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, &secrets); err != nil {
		return nil, err
	}
	if len(secrets) == 0 {
		return nil, nil
	}
	return &secrets[0], nil
}

// SetSubscriberEnabled habilita o deshabilita el secret PPP del suscriptor.
// Una sola tentativa, sin reintentos: cualquier falla se reporta como
// (false, motivo). Al deshabilitar, además termina la sesión activa para que
// el corte sea inmediato; esa terminación es best-effort y solo se loguea.
func (c *Client) SetSubscriberEnabled(ctx context.Context, username string, enabled bool) (bool, string) {
	found, err := c.findSecret(ctx, username)
	if err != nil {
		return false, fmt.Sprintf("no se pudo consultar el secret %q: %v", username, err)
	}
	if found == nil {
		return false, fmt.Sprintf("el secret %q no existe en el router", username)
	}

	disabled := "false"
	if !enabled {
		disabled = "true"
	}
	path := "/rest/ppp/secret/" + url.PathEscape(found.ID)
	if err := c.do(ctx, http.MethodPatch, path, map[string]string{"disabled": disabled}, nil); err != nil {
		return false, fmt.Sprintf("no se pudo actualizar el secret %q: %v", username, err)
	}

	if !enabled {
		if err := c.terminateActive(ctx, username); err != nil {
			// El secret ya quedó deshabilitado: la sesión caerá sola al reconectar.
			c.log.Warn().Err(err).Str("username", username).
				Msg("No se pudo terminar la sesión activa")
		}
	}

	action := "habilitado"
	if !enabled {
		action = "deshabilitado"
	}
	return true, fmt.Sprintf("suscriptor %q %s en el router", username, action)
}

// terminateActive corta la conexión PPP activa del suscriptor, si la hay.
func (c *Client) terminateActive(ctx context.Context, username string) error {
	var actives []activeConn
	path := "/rest/ppp/active?name=" + url.QueryEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, &actives); err != nil {
		return err
	}
	for _, conn := range actives {
		if err := c.do(ctx, http.MethodDelete, "/rest/ppp/active/"+url.PathEscape(conn.ID), nil, nil); err != nil {
			return err
		}
	}
	return nil
}

// ListSubscribers devuelve todos los secrets PPP del router (importación masiva).
func (c *Client) ListSubscribers(ctx context.Context) ([]billing.Subscriber, error) {
	var secrets []secret
	if err := c.do(ctx, http.MethodGet, "/rest/ppp/secret", nil, &secrets); err != nil {
		return nil, fmt.Errorf("listar secrets: %w", err)
	}
	out := make([]billing.Subscriber, 0, len(secrets))
	for _, s := range secrets {
		out = append(out, billing.Subscriber{
			SecretID:     s.ID,
			Username:     s.Name,
			Password:     s.Password,
			Profile:      s.Profile,
			Service:      s.Service,
			Comment:      s.Comment,
			LastCallerID: s.LastCallerID,
			Disabled:     s.Disabled == "true",
		})
	}
	return out, nil
}
