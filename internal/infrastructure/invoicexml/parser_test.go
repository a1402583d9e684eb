package invoicexml

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sampleInvoice = `<nfeProc versao="4.00"><NFe><infNFe Id="NFe001" versao="4.00">
  <ide><nNF>4711</nNF><dhEmi>2026-03-01T10:30:00-03:00</dhEmi></ide>
  <emit><xNome>Ferretería Central</xNome></emit>
  <det nItem="1"><prod><cProd>GUANTE</cProd><xProd>Guante de nitrilo</xProd><uCom>par</uCom><qCom>12.0000</qCom><vUnCom>2500.50</vUnCom></prod></det>
  <det nItem="2"><prod><cProd>CASCO</cProd><xProd>Casco</xProd><uCom>UN</uCom><qCom>3</qCom></prod></det>
</infNFe></NFe></nfeProc>`

func TestParse_CabeceraYLineas(t *testing.T) {
	inv, err := NewParser().Parse([]byte(sampleInvoice))
	require.NoError(t, err)

	assert.Equal(t, "4711", inv.Number)
	assert.Equal(t, "Ferretería Central", inv.Supplier)
	assert.Equal(t, 2026, inv.IssuedAt.Year())
	require.Len(t, inv.Lines, 2)

	first := inv.Lines[0]
	assert.Equal(t, "GUANTE", first.Code)
	assert.Equal(t, "PAR", first.UnitMeasure)
	assert.True(t, first.Quantity.Equal(decimal.NewFromInt(12)))
	assert.True(t, first.UnitValue.Equal(decimal.RequireFromString("2500.5")))

	assert.True(t, inv.Lines[1].UnitValue.IsZero(), "sin vUnCom el valor es cero")
	assert.Len(t, inv.Digest, 64)
}

// El digest ignora orden de atributos, tipo de comillas y forma de los elementos vacíos.
func TestParse_DigestCanonico(t *testing.T) {
	a := `<nfe><infNFe Id="X" versao="4.00"><ide><nNF>1</nNF><dEmi>2026-01-02</dEmi></ide><obs></obs>` +
		`<det><prod><cProd>A</cProd><qCom>1</qCom></prod></det></infNFe></nfe>`
	b := `<nfe><infNFe versao='4.00' Id='X'><ide><nNF>1</nNF><dEmi>2026-01-02</dEmi></ide><obs/>` +
		`<det><prod><cProd>A</cProd><qCom>1</qCom></prod></det></infNFe></nfe>`
	c := `<nfe><infNFe Id="X" versao="4.00"><ide><nNF>2</nNF><dEmi>2026-01-02</dEmi></ide><obs></obs>` +
		`<det><prod><cProd>A</cProd><qCom>1</qCom></prod></det></infNFe></nfe>`

	p := NewParser()
	ia, err := p.Parse([]byte(a))
	require.NoError(t, err)
	ib, err := p.Parse([]byte(b))
	require.NoError(t, err)
	ic, err := p.Parse([]byte(c))
	require.NoError(t, err)

	assert.Equal(t, ia.Digest, ib.Digest)
	assert.NotEqual(t, ia.Digest, ic.Digest)
}

func TestParse_ISO88591(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>` +
		`<nfe><infNFe><ide><nNF>9</nNF><dEmi>2026-01-02</dEmi></ide><emit><xNome>Panadería Ñandú</xNome></emit>` +
		`<det><prod><cProd>PAN</cProd><xProd>Pan</xProd><qCom>2</qCom></prod></det></infNFe></nfe>`
	latin1, err := charmap.ISO8859_1.NewEncoder().String(doc)
	require.NoError(t, err)

	inv, err := NewParser().Parse([]byte(latin1))
	require.NoError(t, err)
	assert.Equal(t, "Panadería Ñandú", inv.Supplier)
}

func TestParse_Errores(t *testing.T) {
	cases := map[string]string{
		"xml roto":       `<nfe><infNFe>`,
		"sin infNFe":     `<nfe><otro/></nfe>`,
		"sin número":     `<nfe><infNFe><ide><dEmi>2026-01-02</dEmi></ide></infNFe></nfe>`,
		"fecha inválida": `<nfe><infNFe><ide><nNF>1</nNF><dEmi>02/01/2026</dEmi></ide></infNFe></nfe>`,
		"cantidad mala": `<nfe><infNFe><ide><nNF>1</nNF><dEmi>2026-01-02</dEmi></ide>` +
			`<det><prod><cProd>A</cProd><qCom>uno</qCom></prod></det></infNFe></nfe>`,
		"det sin prod": `<nfe><infNFe><ide><nNF>1</nNF><dEmi>2026-01-02</dEmi></ide><det/></infNFe></nfe>`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewParser().Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}
