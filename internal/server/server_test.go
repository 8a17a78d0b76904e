package server_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/fattura-processor/internal/server"
)

func newTestServer() *server.Server {
	config := &server.Config{
		Address: ":8080",
		Debug:   true,
	}
	return server.NewServer(config)
}

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<p:FatturaElettronica xmlns:p="http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2">
	<FatturaElettronicaHeader>
		<CedentePrestatore>
			<DatiAnagrafici>
				<Anagrafica><Denominazione>Fornitore Spa</Denominazione></Anagrafica>
				<CodiceFiscale>01234567890</CodiceFiscale>
			</DatiAnagrafici>
		</CedentePrestatore>
	</FatturaElettronicaHeader>
	<FatturaElettronicaBody>
		<DatiGenerali>
			<DatiGeneraliDocumento>
				<TipoDocumento>TD01</TipoDocumento>
				<Numero>42</Numero>
				<Data>2023-05-17</Data>
				<ImportoTotaleDocumento>122,00</ImportoTotaleDocumento>
			</DatiGeneraliDocumento>
		</DatiGenerali>
		<DatiBeniServizi>
			<DettaglioLinee>
				<NumeroLinea>1</NumeroLinea>
				<Descrizione>Consulenza</Descrizione>
				<PrezzoTotale>122,00</PrezzoTotale>
			</DettaglioLinee>
		</DatiBeniServizi>
	</FatturaElettronicaBody>
</p:FatturaElettronica>`

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestProcessXMLEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process/xml", bytes.NewReader([]byte(sampleXML)))
	req.Header.Set("Content-Type", "application/xml")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ProcessResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	require.NotNil(t, response.Invoice)
	document := response.Invoice["document"].(map[string]interface{})
	assert.Equal(t, "42", document["number"])
	assert.Equal(t, "TD01", document["type"])
	assert.Equal(t, 122.0, document["total_amount"])

	require.NotNil(t, response.Metrics)
	assert.Equal(t, 1, response.Metrics.LineItemCount)
	assert.Equal(t, 122.0, response.Metrics.TotalGrossAmount)
}

func TestProcessXMLEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process/xml", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessXMLEndpoint_InvalidXML(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process/xml", bytes.NewReader([]byte("<open><unclosed>")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "xml_parse_error", response.Error)
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestProcessUploadEndpoint(t *testing.T) {
	srv := newTestServer()

	body, contentType := multipartBody(t, map[string][]byte{
		"fattura.xml": []byte(sampleXML),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.BatchResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, 1, response.Summary.Files)
	assert.Equal(t, 1, response.Summary.Succeeded)
	assert.Equal(t, 0, response.Summary.Failed)
	require.Len(t, response.Invoices, 1)
	require.Len(t, response.Metrics, 1)
	assert.Equal(t, 1, response.Metrics[0].Metrics.LineItemCount)
}

func TestProcessUploadEndpoint_MixedOutcomes(t *testing.T) {
	srv := newTestServer()

	body, contentType := multipartBody(t, map[string][]byte{
		"good.xml": []byte(sampleXML),
		"bad.xml":  []byte("<open><unclosed>"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.BatchResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, 2, response.Summary.Files)
	assert.Equal(t, 1, response.Summary.Succeeded)
	assert.Equal(t, 1, response.Summary.Failed)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "bad.xml", filepath.Base(response.Errors[0].File))
	assert.Equal(t, 1, response.Tally["xml_parse_error"])
}

func TestProcessUploadEndpoint_ZipArchive(t *testing.T) {
	srv := newTestServer()

	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	entry, err := zw.Create("inner.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte(sampleXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	body, contentType := multipartBody(t, map[string][]byte{
		"batch.zip": archive.Bytes(),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.BatchResponse
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, 1, response.Summary.Succeeded)
	require.Len(t, response.Invoices, 1)
}

func TestProcessUploadEndpoint_NoFiles(t *testing.T) {
	srv := newTestServer()

	body, contentType := multipartBody(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Benchmark tests

func BenchmarkProcessXML(b *testing.B) {
	srv := newTestServer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/process/xml", bytes.NewReader([]byte(sampleXML)))
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
	}
}

func BenchmarkHealth(b *testing.B) {
	srv := newTestServer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
	}
}
