package mikrotik

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/netbill-api/pkg/config"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.RouterConfig{
		BaseURL:        srv.URL,
		Username:       "api",
		Password:       "secreto",
		TimeoutSeconds: 5,
	}, logger.Nop())
	return client, srv
}

// ──────────────────────────────────────────────────────────────────────────────
// SetSubscriberEnabled
// ──────────────────────────────────────────────────────────────────────────────

func TestSetSubscriberEnabled_DeshabilitaYTerminaSesion(t *testing.T) {
	var patched map[string]string
	var terminated []string

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/ppp/secret", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "secreto", pass)
		assert.Equal(t, "dhk.rahim", r.URL.Query().Get("name"))
		json.NewEncoder(w).Encode([]map[string]string{
			{".id": "*1A", "name": "dhk.rahim", "disabled": "false"},
		})
	})
	mux.HandleFunc("/rest/ppp/secret/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rest/ppp/secret/*1A", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/rest/ppp/active", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{".id": "*F0", "name": "dhk.rahim"},
		})
	})
	mux.HandleFunc("/rest/ppp/active/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		terminated = append(terminated, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	client, _ := newTestClient(t, mux)
	ok, msg := client.SetSubscriberEnabled(context.Background(), "dhk.rahim", false)
	require.True(t, ok, msg)
	assert.Contains(t, msg, "deshabilitado")
	assert.Equal(t, map[string]string{"disabled": "true"}, patched)
	assert.Equal(t, []string{"/rest/ppp/active/*F0"}, terminated)
}

func TestSetSubscriberEnabled_HabilitaSinTerminarSesion(t *testing.T) {
	activesConsultado := false

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/ppp/secret", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{".id": "*1A", "name": "dhk.rahim", "disabled": "true"},
		})
	})
	mux.HandleFunc("/rest/ppp/secret/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "false", body["disabled"])
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/rest/ppp/active", func(w http.ResponseWriter, r *http.Request) {
		activesConsultado = true
	})

	client, _ := newTestClient(t, mux)
	ok, msg := client.SetSubscriberEnabled(context.Background(), "dhk.rahim", true)
	require.True(t, ok, msg)
	assert.Contains(t, msg, "habilitado")
	assert.False(t, activesConsultado, "al habilitar no se tocan las sesiones activas")
}

func TestSetSubscriberEnabled_SecretInexistente(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/ppp/secret", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{})
	})

	client, _ := newTestClient(t, mux)
	ok, msg := client.SetSubscriberEnabled(context.Background(), "no.existe", false)
	assert.False(t, ok)
	assert.Contains(t, msg, "no existe en el router")
}

func TestSetSubscriberEnabled_PatchFallaReportaMotivo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/ppp/secret", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{".id": "*1A", "name": "dhk.rahim"},
		})
	})
	mux.HandleFunc("/rest/ppp/secret/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux)
	ok, msg := client.SetSubscriberEnabled(context.Background(), "dhk.rahim", false)
	assert.False(t, ok)
	assert.Contains(t, msg, "401")
}

func TestSetSubscriberEnabled_RouterInalcanzable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // el puerto queda muerto

	client := NewClient(config.RouterConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 1,
	}, logger.Nop())

	ok, msg := client.SetSubscriberEnabled(context.Background(), "dhk.rahim", false)
	assert.False(t, ok)
	assert.Contains(t, msg, "no se pudo consultar el secret")
}

func TestSetSubscriberEnabled_FallaAlTerminarSesionNoRevierte(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/ppp/secret", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{".id": "*1A", "name": "dhk.rahim"},
		})
	})
	mux.HandleFunc("/rest/ppp/secret/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/rest/ppp/active", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	})

	client, _ := newTestClient(t, mux)
	ok, _ := client.SetSubscriberEnabled(context.Background(), "dhk.rahim", false)
	assert.True(t, ok, "el secret quedó deshabilitado: la terminación es best-effort")
}

// ──────────────────────────────────────────────────────────────────────────────
// ListSubscribers
// ──────────────────────────────────────────────────────────────────────────────

func TestListSubscribers_MapeaSecrets(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/ppp/secret", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{
				".id":            "*1A",
				"name":           "dhk.rahim",
				"password":       "secreto",
				"profile":        "10Mbps_Home",
				"service":        "pppoe",
				"comment":        "Mirpur 10",
				"disabled":       "false",
				"last-caller-id": "AA:BB:CC:DD:EE:FF",
			},
			{".id": "*1B", "name": "ctg.karim", "disabled": "true"},
		})
	})

	client, _ := newTestClient(t, mux)
	subs, err := client.ListSubscribers(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)

	assert.Equal(t, "*1A", subs[0].SecretID)
	assert.Equal(t, "dhk.rahim", subs[0].Username)
	assert.Equal(t, "10Mbps_Home", subs[0].Profile)
	assert.Equal(t, "pppoe", subs[0].Service)
	assert.Equal(t, "Mirpur 10", subs[0].Comment)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", subs[0].LastCallerID)
	assert.False(t, subs[0].Disabled)
	assert.True(t, subs[1].Disabled, `"disabled" llega como string del router`)
}

func TestListSubscribers_ErrorHTTP(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/ppp/secret", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	client, _ := newTestClient(t, mux)
	_, err := client.ListSubscribers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
