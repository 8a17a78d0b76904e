package processor_test

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/fattura-processor/internal/config"
	"github.com/rezonia/fattura-processor/internal/processor"
)

func loadDocument(t *testing.T, content string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(content))
	return doc
}

const bareInvoice = `<FatturaElettronica>
	<FatturaElettronicaBody>
		<DatiGenerali>
			<DatiGeneraliDocumento>
				<Numero>42</Numero>
				<Data>2024-03-15</Data>
				<ImportoTotaleDocumento>100,00</ImportoTotaleDocumento>
			</DatiGeneraliDocumento>
		</DatiGenerali>
		<DatiBeniServizi>
			<DettaglioLinee>
				<NumeroLinea>1</NumeroLinea>
				<PrezzoTotale>60,00</PrezzoTotale>
			</DettaglioLinee>
			<DettaglioLinee>
				<NumeroLinea>2</NumeroLinea>
				<PrezzoTotale>40,00</PrezzoTotale>
				<AliquotaIVA>10,00</AliquotaIVA>
			</DettaglioLinee>
		</DatiBeniServizi>
	</FatturaElettronicaBody>
</FatturaElettronica>`

func TestPipeline_NormalizesCurrencyAndVAT(t *testing.T) {
	p := processor.NewPipeline(nil)

	record, metrics, err := p.Run(loadDocument(t, bareInvoice))
	require.NoError(t, err)
	require.NotNil(t, metrics)

	// Missing currency becomes the configured default
	assert.Equal(t, "EUR", record.Document.Currency)

	// Absent VAT rate becomes the default, explicit rates survive
	require.Len(t, record.LineItems, 2)
	assert.Equal(t, 22.0, record.LineItems[0].VATRate)
	assert.Equal(t, 10.0, record.LineItems[1].VATRate)
}

func TestPipeline_CustomDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultCurrency = "USD"
	cfg.DefaultVATRate = 4.0
	p := processor.NewPipeline(cfg)

	record, _, err := p.Run(loadDocument(t, bareInvoice))
	require.NoError(t, err)
	assert.Equal(t, "USD", record.Document.Currency)
	assert.Equal(t, 4.0, record.LineItems[0].VATRate)
}

func TestPipeline_DeclaredCurrencyWins(t *testing.T) {
	doc := strings.Replace(bareInvoice,
		"<Numero>42</Numero>",
		"<Numero>42</Numero><Divisa>GBP</Divisa>", 1)

	p := processor.NewPipeline(nil)
	record, _, err := p.Run(loadDocument(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "GBP", record.Document.Currency)
}

func TestPipeline_DateOutputFormat(t *testing.T) {
	cfg := config.Default()
	cfg.DateFormat = "02/01/2006"
	p := processor.NewPipeline(cfg)

	record, _, err := p.Run(loadDocument(t, bareInvoice))
	require.NoError(t, err)
	assert.Equal(t, "15/03/2024", record.Document.Date)
}

func TestPipeline_NonISODatePassesThrough(t *testing.T) {
	doc := strings.Replace(bareInvoice, "2024-03-15", "15 marzo 2024", 1)

	p := processor.NewPipeline(nil)
	record, _, err := p.Run(loadDocument(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "15 marzo 2024", record.Document.Date)
}

func TestPipeline_Metrics(t *testing.T) {
	p := processor.NewPipeline(nil)

	_, metrics, err := p.Run(loadDocument(t, bareInvoice))
	require.NoError(t, err)

	assert.Equal(t, 2, metrics.LineItemCount)
	assert.Equal(t, 100.0, metrics.TotalGrossAmount)
	assert.False(t, metrics.TaxSummaryPresent)
}

func TestPipeline_MetricsTaxSummaryPresent(t *testing.T) {
	doc := strings.Replace(bareInvoice,
		"</DatiBeniServizi>",
		"<DatiRiepilogo><AliquotaIVA>22,00</AliquotaIVA></DatiRiepilogo></DatiBeniServizi>", 1)

	p := processor.NewPipeline(nil)
	_, metrics, err := p.Run(loadDocument(t, doc))
	require.NoError(t, err)
	assert.True(t, metrics.TaxSummaryPresent)
}
