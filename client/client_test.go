package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopfondos/coopfondos-api/client"
)

func newTestClient(t *testing.T, handler http.Handler) (*client.Client, *client.MemoryTokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := client.NewMemoryTokenStore()
	c, err := client.New(srv.URL, store)
	require.NoError(t, err)
	return c, store
}

// El token en memoria debe viajar como Bearer en cada petición.
func TestClient_InyectaBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":"u1","email":"a@b.co","name":"Ana","role":"admin","status":"active","createdAt":"2026-01-01T00:00:00Z"}}`))
	}))
	require.NoError(t, c.SetToken("tok-123"))

	user, err := c.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "Ana", user.Name)
}

// Sin token no debe enviarse header Authorization.
func TestClient_SinTokenNoEnviaAuthorization(t *testing.T) {
	var hasAuth bool
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))

	_, err := c.Cooperatives.List(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth, "sin sesión no debe viajar Authorization")
}

// Un error de la API con sobre {error} debe llegar como APIError con ese mensaje.
func TestClient_ErrorDelSobre(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"credenciales inválidas"}`))
	}))

	_, err := c.Auth.Login(context.Background(), "ana@coop.cl", "Password1")
	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "credenciales inválidas", apiErr.Message)
}

// Un error sin sobre parseable cae al mensaje genérico "HTTP error <status>".
func TestClient_ErrorSinSobre_UsaMensajeGenerico(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	require.NoError(t, c.SetToken("tok"))

	_, err := c.Auth.Me(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP error 502", apiErr.Message)
}

// Login exitoso debe persistir el token en el store en el mismo paso.
func TestClient_LoginPersisteToken(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"token":"jwt-abc","user":{"id":"u1","email":"a@b.co","name":"Ana","role":"admin","status":"active","createdAt":"2026-01-01T00:00:00Z"},"expiresIn":"480m"}}`))
	}))

	result, err := c.Auth.Login(context.Background(), "ana@coop.cl", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", result.Token)
	assert.Equal(t, "jwt-abc", c.Token())

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", persisted, "el token debe quedar persistido en el store")
}

// Logout limpia el token local aunque el servidor falle.
func TestClient_LogoutLimpiaTokenAunqueServerFalle(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"error interno del servidor"}`))
	}))
	require.NoError(t, c.SetToken("tok"))

	err := c.Auth.Logout(context.Background())
	assert.Error(t, err, "el error del servidor se propaga")
	assert.Empty(t, c.Token(), "el token en memoria debe quedar limpio")

	persisted, _ := store.Load()
	assert.Empty(t, persisted, "el token persistido debe quedar limpio")
}

// Una exportación responde binario: se infiere por Content-Type y se
// devuelve como Blob con el nombre del Content-Disposition.
func TestClient_ExportDevuelveBlob(t *testing.T) {
	content := []byte{0x50, 0x4b, 0x03, 0x04} // firma ZIP de un XLSX
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="balance-general-2026-08.xlsx"`)
		w.Write(content)
	}))
	require.NoError(t, c.SetToken("tok"))

	blob, err := c.Financial.Export(context.Background(), "balance-sheet", client.ReportQuery{Year: 2026, Month: 8}, "")
	require.NoError(t, err)
	assert.Equal(t, "balance-general-2026-08.xlsx", blob.FileName)
	assert.Equal(t, content, blob.Content)
	assert.Contains(t, blob.ContentType, "spreadsheetml")
}

// Si el endpoint de export responde JSON es un error y debe parsearse como tal.
func TestClient_ExportConErrorJSON(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"no hay datos para el período"}`))
	}))
	require.NoError(t, c.SetToken("tok"))

	_, err := c.Financial.Export(context.Background(), "ratios", client.ReportQuery{}, "")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no hay datos para el período", apiErr.Message)
}

// Los montos del balance se parsean como decimal sin perder precisión.
func TestClient_BalanceSheetParseaDecimales(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"entries":[{"id":"e1","accountCode":"1.1","accountName":"Caja","category":"asset","initialDebit":"0","initialCredit":"0","periodDebit":"1234.56","periodCredit":"0","finalDebit":"1234.56","finalCredit":"0"}],"summary":{"totalAssets":"1234.56","totalLiabilities":"1000.00","totalEquity":"234.56","isBalanced":true}}}`))
	}))
	require.NoError(t, c.SetToken("tok"))

	sheet, err := c.Financial.BalanceSheet(context.Background(), client.ReportQuery{Year: 2026, Month: 8})
	require.NoError(t, err)
	require.Len(t, sheet.Entries, 1)
	assert.Equal(t, "1234.56", sheet.Entries[0].FinalDebit.StringFixed(2))
	assert.True(t, sheet.Summary.IsBalanced)
	assert.Equal(t, "234.56", sheet.Summary.TotalEquity.StringFixed(2))
}

// La validación local corta antes de tocar la red.
func TestClient_UploadRechazaTxtSinLlamarRed(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.Upload.Import(context.Background(), "balance-sheet", client.UploadInput{
		FileName: "datos.txt",
		Content:  []byte("a;b;c"),
		Year:     2026,
		Month:    8,
	})
	require.Error(t, err)
	assert.False(t, called, "un archivo rechazado localmente no debe generar petición")
}
