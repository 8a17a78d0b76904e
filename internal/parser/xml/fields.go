package xml

// fieldPath is an ordered sequence of local tag names interpreted by the
// Locator. Keeping every schema mapping in this one table makes the FatturaPA
// field coverage auditable in a single place instead of scattering path
// strings across the extractors.
type fieldPath []string

// Section roots, resolved anywhere under the document root.
var (
	pathSupplier = fieldPath{"FatturaElettronicaHeader", "CedentePrestatore"}
	pathCustomer = fieldPath{"FatturaElettronicaHeader", "CessionarioCommittente"}
	pathDocument = fieldPath{"FatturaElettronicaBody", "DatiGenerali", "DatiGeneraliDocumento"}
	pathPayment  = fieldPath{"DatiPagamento"}
)

// Repeated elements, collected in document order wherever they appear.
const (
	tagLineItem = "DettaglioLinee"
	tagTaxLine  = "DatiRiepilogo"
)

// Party fields, relative to a party element.
var (
	pathPartyName       = fieldPath{"Anagrafica", "Denominazione"}
	pathPartyGivenName  = fieldPath{"Anagrafica", "Nome"}
	pathPartyFamilyName = fieldPath{"Anagrafica", "Cognome"}
	pathPartyFiscalCode = fieldPath{"CodiceFiscale"}
	pathPartyVATNumber  = fieldPath{"IdFiscaleIVA", "IdCodice"}
	pathPartyStreet     = fieldPath{"Sede", "Indirizzo"}
	pathPartyPostalCode = fieldPath{"Sede", "CAP"}
	pathPartyCity       = fieldPath{"Sede", "Comune"}
	pathPartyProvince   = fieldPath{"Sede", "Provincia"}
	pathPartyCountry    = fieldPath{"Sede", "Nazione"}
)

// Document header fields, relative to DatiGeneraliDocumento.
var (
	pathDocType     = fieldPath{"TipoDocumento"}
	pathDocNumber   = fieldPath{"Numero"}
	pathDocDate     = fieldPath{"Data"}
	pathDocCurrency = fieldPath{"Divisa"}
	pathDocTotal    = fieldPath{"ImportoTotaleDocumento"}
)

// Line item fields, relative to DettaglioLinee.
var (
	pathLineNumber      = fieldPath{"NumeroLinea"}
	pathLineDescription = fieldPath{"Descrizione"}
	pathLineQuantity    = fieldPath{"Quantita"}
	pathLineUnitPrice   = fieldPath{"PrezzoUnitario"}
	pathLineTotalPrice  = fieldPath{"PrezzoTotale"}
	pathLineVATRate     = fieldPath{"AliquotaIVA"}
	pathLineVATNature   = fieldPath{"Natura"}
)

// Payment fields, relative to DatiPagamento.
var (
	pathPaymentMethod = fieldPath{"DettaglioPagamento", "ModalitaPagamento"}
	pathPaymentTerms  = fieldPath{"CondizioniPagamento"}
	pathPaymentIBAN   = fieldPath{"DettaglioPagamento", "IBAN"}
)

// Tax summary fields, relative to DatiRiepilogo.
var (
	pathTaxRate    = fieldPath{"AliquotaIVA"}
	pathTaxTaxable = fieldPath{"ImponibileImporto"}
	pathTaxAmount  = fieldPath{"Imposta"}
)
