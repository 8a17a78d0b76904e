package xml

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/fattura-processor/internal/model"
)

// extractor composes the locator and coercers into one semantic sub-record
// per invoice section. Missing optional sections yield empty sub-records,
// never errors; only a document that failed to parse at all escalates.
type extractor struct {
	loc *Locator
}

func (e *extractor) header(root *etree.Element) model.Header {
	return model.Header{
		Supplier: e.party(e.loc.FindAnywhere(root, pathSupplier...)),
		Customer: e.party(e.loc.FindAnywhere(root, pathCustomer...)),
	}
}

// party extracts an identity block. The company denomination wins; when it is
// absent the given and family names are joined with a single space. Field
// lookup uses anywhere-mode within the party element because producers place
// Anagrafica either directly under the party or nested in DatiAnagrafici.
// The address sub-object is always populated here, pruning happens at
// assembly.
func (e *extractor) party(elem *etree.Element) model.Party {
	name := e.loc.TextAnywhere(elem, pathPartyName...)
	if name == "" {
		given := e.loc.TextAnywhere(elem, pathPartyGivenName...)
		family := e.loc.TextAnywhere(elem, pathPartyFamilyName...)
		name = strings.TrimSpace(given + " " + family)
	}
	return model.Party{
		Name:       name,
		FiscalCode: e.loc.TextAnywhere(elem, pathPartyFiscalCode...),
		VATNumber:  e.loc.TextAnywhere(elem, pathPartyVATNumber...),
		Address: model.Address{
			Street:     e.loc.TextAnywhere(elem, pathPartyStreet...),
			PostalCode: e.loc.TextAnywhere(elem, pathPartyPostalCode...),
			City:       e.loc.TextAnywhere(elem, pathPartyCity...),
			Province:   e.loc.TextAnywhere(elem, pathPartyProvince...),
			Country:    e.loc.TextAnywhere(elem, pathPartyCountry...),
		},
	}
}

func (e *extractor) document(root *etree.Element) model.Document {
	elem := e.loc.FindAnywhere(root, pathDocument...)
	return model.Document{
		Type:        e.loc.Text(elem, pathDocType...),
		Number:      e.loc.Text(elem, pathDocNumber...),
		Date:        ParseDate(e.loc.Text(elem, pathDocDate...)),
		Currency:    e.loc.Text(elem, pathDocCurrency...),
		TotalAmount: ParseFloat(e.loc.Text(elem, pathDocTotal...)),
	}
}

// lineItems collects every detail line anywhere in the document, in document
// order. Line numbers pass through exactly as declared.
func (e *extractor) lineItems(root *etree.Element) []model.LineItem {
	var items []model.LineItem
	for _, line := range e.loc.FindAll(root, tagLineItem) {
		items = append(items, model.LineItem{
			LineNumber:  ParseInt(e.loc.Text(line, pathLineNumber...)),
			Description: e.loc.Text(line, pathLineDescription...),
			Quantity:    ParseFloat(e.loc.Text(line, pathLineQuantity...)),
			UnitPrice:   ParseFloat(e.loc.Text(line, pathLineUnitPrice...)),
			TotalPrice:  ParseFloat(e.loc.Text(line, pathLineTotalPrice...)),
			VATRate:     ParseFloat(e.loc.Text(line, pathLineVATRate...)),
			VATNature:   e.loc.Text(line, pathLineVATNature...),
		})
	}
	return items
}

// payment extracts the first payment block, if any.
func (e *extractor) payment(root *etree.Element) model.Payment {
	elem := e.loc.FindAnywhere(root, pathPayment...)
	return model.Payment{
		Method: e.loc.Text(elem, pathPaymentMethod...),
		Terms:  e.loc.Text(elem, pathPaymentTerms...),
		IBAN:   e.loc.Text(elem, pathPaymentIBAN...),
	}
}

// taxSummary collects every VAT summary bucket in document order, no dedup,
// no sort.
func (e *extractor) taxSummary(root *etree.Element) []model.TaxLine {
	var lines []model.TaxLine
	for _, riep := range e.loc.FindAll(root, tagTaxLine) {
		lines = append(lines, model.TaxLine{
			Rate:    ParseFloat(e.loc.Text(riep, pathTaxRate...)),
			Taxable: ParseFloat(e.loc.Text(riep, pathTaxTaxable...)),
			Amount:  ParseFloat(e.loc.Text(riep, pathTaxAmount...)),
		})
	}
	return lines
}
