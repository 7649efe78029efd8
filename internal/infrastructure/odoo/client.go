// Package odoo implementa la verificación de conexión contra un servidor Odoo
// vía XML-RPC (endpoint /xmlrpc/2/common, método authenticate).
package odoo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Client cliente XML-RPC mínimo para probar credenciales Odoo.
type Client struct {
	httpClient *http.Client
}

// NewClient construye el cliente con timeout propio (la UI espera respuesta).
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// TestConnection autentica contra Odoo y devuelve si la conexión es válida
// junto con un mensaje legible para el usuario.
func (c *Client) TestConnection(ctx context.Context, url, database, username, apiKey string) (bool, string) {
	payload, err := buildAuthenticateCall(database, username, apiKey)
	if err != nil {
		return false, "no se pudo construir la petición XML-RPC"
	}

	endpoint := strings.TrimRight(url, "/") + "/xmlrpc/2/common"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, "URL de Odoo inválida"
	}
	req.Header.Set("Content-Type", "text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, "no se pudo conectar con el servidor Odoo"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("el servidor Odoo respondió HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, "no se pudo leer la respuesta del servidor Odoo"
	}
	return parseAuthenticateResponse(body)
}

// buildAuthenticateCall arma el methodCall de authenticate:
// params = [db, username, apiKey, {}].
func buildAuthenticateCall(database, username, apiKey string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)

	call := doc.CreateElement("methodCall")
	call.CreateElement("methodName").SetText("authenticate")
	params := call.CreateElement("params")

	addString := func(s string) {
		params.CreateElement("param").
			CreateElement("value").
			CreateElement("string").SetText(s)
	}
	addString(database)
	addString(username)
	addString(apiKey)
	// Cuarto parámetro: struct vacío de opciones
	params.CreateElement("param").
		CreateElement("value").
		CreateElement("struct")

	return doc.WriteToBytes()
}

// parseAuthenticateResponse interpreta la respuesta: un <int> con el uid si las
// credenciales son válidas, <boolean>0</boolean> si no, o un <fault> si la base
// de datos no existe.
func parseAuthenticateResponse(body []byte) (bool, string) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return false, "respuesta XML-RPC inválida del servidor Odoo"
	}

	if fault := doc.FindElement("//fault"); fault != nil {
		if msg := fault.FindElement(".//member[name='faultString']/value/string"); msg != nil {
			first := strings.SplitN(strings.TrimSpace(msg.Text()), "\n", 2)[0]
			return false, "error de Odoo: " + first
		}
		return false, "el servidor Odoo devolvió un error"
	}

	if uid := doc.FindElement("//params/param/value/int"); uid != nil {
		return true, "conexión exitosa (uid " + strings.TrimSpace(uid.Text()) + ")"
	}
	if uid := doc.FindElement("//params/param/value/i4"); uid != nil {
		return true, "conexión exitosa (uid " + strings.TrimSpace(uid.Text()) + ")"
	}
	if b := doc.FindElement("//params/param/value/boolean"); b != nil && strings.TrimSpace(b.Text()) == "0" {
		return false, "credenciales de Odoo inválidas"
	}
	return false, "respuesta inesperada del servidor Odoo"
}
