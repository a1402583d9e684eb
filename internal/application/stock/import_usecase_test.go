package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/testutil/memstore"
)

type fakeParser struct {
	inv *dto.ParsedInvoice
	err error
}

func (p fakeParser) Parse([]byte) (*dto.ParsedInvoice, error) { return p.inv, p.err }

func invoice(digest string, lines ...dto.ParsedInvoiceLine) *dto.ParsedInvoice {
	return &dto.ParsedInvoice{
		Number:   "F-100",
		Supplier: "Ferretería Central",
		IssuedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Digest:   digest,
		Lines:    lines,
	}
}

func TestImport_CreaYIncrementaProductos(t *testing.T) {
	s := memstore.New()
	existing := s.SeedProduct("GUANTE", dec("10"))
	uc := stock.NewImportEntryUseCase(s, fakeParser{inv: invoice("d1",
		dto.ParsedInvoiceLine{Code: "GUANTE", Name: "Guante", UnitMeasure: "PAR", Quantity: dec("10"), UnitValue: dec("2000")},
		dto.ParsedInvoiceLine{Code: "CASCO", Name: "Casco", UnitMeasure: "UN", Quantity: dec("4"), UnitValue: dec("35000")},
	)}, nil)

	out, err := uc.Import(context.Background(), actorID, []byte("<xml/>"))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Lines)
	assert.Equal(t, 1, out.CreatedProducts)
	assert.Equal(t, "d1", out.Digest)

	g := s.Product(existing.ID)
	assert.True(t, g.Quantity.Equal(dec("20")))
	// (10*1000 + 10*2000) / 20
	assert.True(t, g.UnitValue.Equal(dec("1500")), "valor ponderado: %s", g.UnitValue)

	casco, err := s.Products().GetByCode(context.Background(), "CASCO")
	require.NoError(t, err)
	assert.True(t, casco.Quantity.Equal(dec("4")))
	assert.True(t, casco.Active)
}

// Reimportar la misma factura se rechaza y no vuelve a sumar stock.
func TestImport_FacturaDuplicadaRevierte(t *testing.T) {
	s := memstore.New()
	p := s.SeedProduct("BOTA", dec("2"))
	uc := stock.NewImportEntryUseCase(s, fakeParser{inv: invoice("mismo-digest",
		dto.ParsedInvoiceLine{Code: "BOTA", Quantity: dec("3")},
		dto.ParsedInvoiceLine{Code: "NUEVO", Quantity: dec("1")},
	)}, nil)

	_, err := uc.Import(context.Background(), actorID, []byte("<xml/>"))
	require.NoError(t, err)
	assert.True(t, s.Product(p.ID).Quantity.Equal(dec("5")))

	_, err = uc.Import(context.Background(), actorID, []byte("<xml/>"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.True(t, s.Product(p.ID).Quantity.Equal(dec("5")), "la entrada duplicada no suma stock")

	nuevo, err := s.Products().GetByCode(context.Background(), "NUEVO")
	require.NoError(t, err)
	assert.True(t, nuevo.Quantity.Equal(dec("1")))
}

// Sin valor unitario en la línea se conserva el valor actual del producto.
func TestImport_SinValorConservaValorActual(t *testing.T) {
	s := memstore.New()
	p := s.SeedProduct("PILAS", dec("5"))
	uc := stock.NewImportEntryUseCase(s, fakeParser{inv: invoice("d2",
		dto.ParsedInvoiceLine{Code: "PILAS", Quantity: dec("5")},
	)}, nil)

	_, err := uc.Import(context.Background(), actorID, []byte("<xml/>"))
	require.NoError(t, err)
	got := s.Product(p.ID)
	assert.True(t, got.Quantity.Equal(dec("10")))
	assert.True(t, got.UnitValue.Equal(dec("1000")))
}

func TestImport_EntradasInvalidas(t *testing.T) {
	s := memstore.New()

	cases := []struct {
		name   string
		parser fakeParser
		data   []byte
	}{
		{"cuerpo vacío", fakeParser{inv: invoice("x")}, nil},
		{"xml ilegible", fakeParser{err: errors.New("eof inesperado")}, []byte("<")},
		{"sin líneas", fakeParser{inv: invoice("x")}, []byte("<xml/>")},
		{"cantidad cero", fakeParser{inv: invoice("x", dto.ParsedInvoiceLine{Code: "A", Quantity: dec("0")})}, []byte("<xml/>")},
		{"sin código", fakeParser{inv: invoice("x", dto.ParsedInvoiceLine{Quantity: dec("1")})}, []byte("<xml/>")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := stock.NewImportEntryUseCase(s, tc.parser, nil)
			_, err := uc.Import(context.Background(), actorID, tc.data)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
