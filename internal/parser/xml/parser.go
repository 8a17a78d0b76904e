// Package xml extracts structured invoice data from Fattura Elettronica
// documents. Field lookup tolerates any namespace prefix, a missing
// namespace, and absent optional sections; see Locator.
package xml

import (
	"context"
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/rezonia/fattura-processor/internal/model"
)

// Parser turns one XML document into a raw (unnormalized, unpruned)
// InvoiceRecord.
type Parser struct{}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{}
}

// Load parses the raw XML. An error here means the content is not
// well-formed XML.
func (p *Parser) Load(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("XML parsing failed: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("XML parsing failed: document has no root element")
	}
	return doc, nil
}

// Extract runs every section extractor against a loaded document. Missing
// fields and sections produce empty values; Extract errors only when the
// document is structurally unusable.
func (p *Parser) Extract(doc *etree.Document) (*model.InvoiceRecord, error) {
	root := doc.Root()
	if root == nil {
		return nil, model.NewExtractionError("document", "no root element", nil)
	}

	e := &extractor{loc: NewLocator(root)}
	return &model.InvoiceRecord{
		Header:     e.header(root),
		Document:   e.document(root),
		LineItems:  e.lineItems(root),
		Payment:    e.payment(root),
		TaxSummary: e.taxSummary(root),
	}, nil
}

// Parse is Load followed by Extract.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*model.InvoiceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := p.Load(r)
	if err != nil {
		return nil, err
	}
	return p.Extract(doc)
}
