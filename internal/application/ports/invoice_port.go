package ports

import (
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
)

// InvoiceParser define el puerto de entrada de facturas de compra (XML del proveedor).
// El adaptador devuelve las líneas ya normalizadas y un Digest estable del documento
// canónico: dos envíos del mismo XML producen el mismo Digest aunque cambie el formato.
type InvoiceParser interface {
	Parse(data []byte) (*dto.ParsedInvoice, error)
}
