// Package invoicexml interpreta facturas de compra de proveedores (XML estilo NF-e:
// infNFe/ide, infNFe/emit, infNFe/det/prod) y calcula un digest canónico del documento.
package invoicexml

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/ports"
)

var _ ports.InvoiceParser = (*Parser)(nil)

// Formatos de fecha aceptados en ide/dhEmi (o ide/dEmi).
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Parser implementa ports.InvoiceParser con etree.
type Parser struct{}

// NewParser construye el parser.
func NewParser() *Parser { return &Parser{} }

// Parse extrae cabecera y líneas. El digest es SHA-256 (hex) del XML canónico (C14N):
// cambios de espacios, orden de atributos o codificación no alteran el resultado.
func (p *Parser) Parse(data []byte) (*dto.ParsedInvoice, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("invoicexml: parsear XML: %w", err)
	}
	inf := doc.FindElement("//infNFe")
	if inf == nil {
		return nil, fmt.Errorf("invoicexml: no se encontró infNFe")
	}

	inv := &dto.ParsedInvoice{
		Number:   childText(inf, "ide/nNF"),
		Supplier: childText(inf, "emit/xNome"),
	}
	if inv.Number == "" {
		return nil, fmt.Errorf("invoicexml: ide/nNF vacío")
	}
	issued := childText(inf, "ide/dhEmi")
	if issued == "" {
		issued = childText(inf, "ide/dEmi")
	}
	at, err := parseDate(issued)
	if err != nil {
		return nil, err
	}
	inv.IssuedAt = at

	for i, det := range inf.FindElements("det") {
		prod := det.FindElement("prod")
		if prod == nil {
			return nil, fmt.Errorf("invoicexml: det %d sin prod", i+1)
		}
		qty, err := decimal.NewFromString(childText(prod, "qCom"))
		if err != nil {
			return nil, fmt.Errorf("invoicexml: det %d qCom: %w", i+1, err)
		}
		unitValue := decimal.Zero
		if v := childText(prod, "vUnCom"); v != "" {
			if unitValue, err = decimal.NewFromString(v); err != nil {
				return nil, fmt.Errorf("invoicexml: det %d vUnCom: %w", i+1, err)
			}
		}
		inv.Lines = append(inv.Lines, dto.ParsedInvoiceLine{
			Code:        childText(prod, "cProd"),
			Name:        childText(prod, "xProd"),
			UnitMeasure: strings.ToUpper(childText(prod, "uCom")),
			Quantity:    qty,
			UnitValue:   unitValue,
		})
	}

	digest, err := canonicalDigest(data)
	if err != nil {
		return nil, err
	}
	inv.Digest = digest
	return inv, nil
}

func childText(el *etree.Element, path string) string {
	c := el.FindElement(path)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invoicexml: fecha de emisión inválida %q", s)
}

// charsetReader acepta documentos ISO-8859-1 además de UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "utf-8", "utf8", "":
		return input, nil
	}
	return nil, fmt.Errorf("invoicexml: charset no soportado %q", charset)
}

func canonicalDigest(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	dec.CharsetReader = charsetReader
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("invoicexml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
