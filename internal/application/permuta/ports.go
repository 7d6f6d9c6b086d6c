package permuta

import (
	"context"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// ReceiptData datos que se imprimen en el comprobante de una permuta.
type ReceiptData struct {
	Permuta    *entity.Permuta
	Owner      *entity.User // puede ser nil si el usuario ya no existe
	FromSector *entity.Sector
	ToSector   *entity.Sector
}

// ReceiptGenerator genera el comprobante PDF de una permuta.
type ReceiptGenerator interface {
	PermutaReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
