package processor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/fattura-processor/internal/model"
	"github.com/rezonia/fattura-processor/internal/processor"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validInvoice = `<FatturaElettronica>
	<FatturaElettronicaHeader>
		<CedentePrestatore>
			<DatiAnagrafici>
				<Anagrafica><Denominazione>Acme Srl</Denominazione></Anagrafica>
			</DatiAnagrafici>
		</CedentePrestatore>
	</FatturaElettronicaHeader>
	<FatturaElettronicaBody>
		<DatiGenerali>
			<DatiGeneraliDocumento>
				<Numero>1</Numero>
				<ImportoTotaleDocumento>21,00</ImportoTotaleDocumento>
			</DatiGeneraliDocumento>
		</DatiGenerali>
		<DatiBeniServizi>
			<DettaglioLinee>
				<NumeroLinea>1</NumeroLinea>
				<Quantita>2,00</Quantita>
				<PrezzoUnitario>10,50</PrezzoUnitario>
				<PrezzoTotale>21,00</PrezzoTotale>
				<AliquotaIVA>22,00</AliquotaIVA>
			</DettaglioLinee>
		</DatiBeniServizi>
	</FatturaElettronicaBody>
</FatturaElettronica>`

func TestDriver_Success(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.xml", validInvoice)

	d := processor.NewDriver(nil)
	result := d.ProcessFile(ctx, path)

	require.True(t, result.Success())
	require.NotNil(t, result.Record)
	require.NotNil(t, result.Metrics)
	assert.Equal(t, "Acme Srl", result.Record.Header.Supplier.Name)
	assert.Equal(t, 21.0, result.Record.Document.TotalAmount)
	assert.Equal(t, 21.0, result.Record.LineItems[0].TotalPrice)
	assert.Equal(t, 1, result.Metrics.LineItemCount)
}

func TestDriver_FileNotFound(t *testing.T) {
	ctx := context.Background()
	d := processor.NewDriver(nil)

	result := d.ProcessFile(ctx, filepath.Join(t.TempDir(), "missing.xml"))
	require.False(t, result.Success())
	assert.Equal(t, model.KindFileNotFound, result.Err.Kind)
}

func TestDriver_EmptyFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.xml", "")

	d := processor.NewDriver(nil)
	result := d.ProcessFile(ctx, path)

	require.False(t, result.Success())
	assert.Equal(t, model.KindEmptyFile, result.Err.Kind)
	assert.NotEmpty(t, result.Err.Detail)
}

func TestDriver_MalformedXML(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.xml", "<Fattura><Unclosed></Fattura>")

	d := processor.NewDriver(nil)
	result := d.ProcessFile(ctx, path)

	require.False(t, result.Success())
	assert.Equal(t, model.KindMalformedXML, result.Err.Kind)
}

func TestDriver_ProcessBytes(t *testing.T) {
	ctx := context.Background()
	d := processor.NewDriver(nil)

	result := d.ProcessBytes(ctx, "upload.xml", []byte(validInvoice))
	require.True(t, result.Success())
	assert.Equal(t, "upload.xml", result.File)

	empty := d.ProcessBytes(ctx, "empty.xml", nil)
	require.False(t, empty.Success())
	assert.Equal(t, model.KindEmptyFile, empty.Err.Kind)
}

func TestDriver_BatchTally(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	files := []string{
		writeFile(t, dir, "ok1.xml", validInvoice),
		writeFile(t, dir, "ok2.xml", validInvoice),
		writeFile(t, dir, "empty.xml", ""),
		writeFile(t, dir, "bad.xml", "<oops"),
		filepath.Join(dir, "missing.xml"),
	}

	d := processor.NewDriver(nil)
	report := d.ProcessBatch(ctx, files)

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 3, report.Failed)

	// Empty files counted separately from malformed XML
	assert.Equal(t, 1, report.Tally[model.KindEmptyFile])
	assert.Equal(t, 1, report.Tally[model.KindMalformedXML])
	assert.Equal(t, 1, report.Tally[model.KindFileNotFound])

	// Results stay in input order regardless of completion order
	require.Len(t, report.Results, len(files))
	for i, res := range report.Results {
		assert.Equal(t, files[i], res.File)
	}
	assert.Len(t, report.Successes(), 2)
	assert.Len(t, report.Failures(), 3)
}

func TestDriver_BatchEmptyInput(t *testing.T) {
	d := processor.NewDriver(nil)
	report := d.ProcessBatch(context.Background(), nil)

	assert.Zero(t, report.Succeeded)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.Results)
}

func TestTally_Merge(t *testing.T) {
	a := processor.Tally{model.KindEmptyFile: 1, model.KindMalformedXML: 2}
	b := processor.Tally{model.KindEmptyFile: 3}

	a.Merge(b)
	assert.Equal(t, 4, a[model.KindEmptyFile])
	assert.Equal(t, 2, a[model.KindMalformedXML])
}
