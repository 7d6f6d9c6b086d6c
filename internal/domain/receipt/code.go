// Package receipt: código de verificación del comprobante de permuta.
// Algoritmo: SHA-384 sobre una concatenación en orden fijo, sin separadores.
package receipt

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// ShortLen longitud del código abreviado que se imprime en el comprobante.
const ShortLen = 16

// CodeParams datos que entran en el código, en el orden de concatenación.
type CodeParams struct {
	NumPer string // "PERM" + id con 8 dígitos
	FecPer string // fecha de creación YYYY-MM-DD (UTC)
	UserID string
	FromID int64
	ToID   int64
	Status string
	FecCom string // fecha de completado YYYY-MM-DD o "" si no aplica
	Emisor string // nombre de la aplicación que emite el comprobante
}

// ParamsFor arma los parámetros a partir de la permuta.
func ParamsFor(p *entity.Permuta, emisor string) *CodeParams {
	if p == nil {
		return nil
	}
	params := &CodeParams{
		NumPer: fmt.Sprintf("PERM%08d", p.ID),
		FecPer: day(p.CreatedAt),
		UserID: p.UserID,
		FromID: p.FromSectorID,
		ToID:   p.ToSectorID,
		Status: string(p.Status),
		Emisor: emisor,
	}
	if p.CompletedAt != nil {
		params.FecCom = day(*p.CompletedAt)
	}
	return params
}

// Calculate genera el código (hash hexadecimal de 96 caracteres).
// Fórmula: NumPer + FecPer + UserID + FromID + ToID + Status + FecCom + Emisor.
func Calculate(p *CodeParams) (string, error) {
	if p == nil {
		return "", fmt.Errorf("receipt: CodeParams es obligatorio")
	}
	if strings.TrimSpace(p.NumPer) == "" {
		return "", fmt.Errorf("receipt: NumPer es obligatorio")
	}
	if p.FecPer == "" {
		return "", fmt.Errorf("receipt: FecPer es obligatorio (YYYY-MM-DD)")
	}
	if p.UserID == "" {
		return "", fmt.Errorf("receipt: UserID es obligatorio")
	}
	if p.Emisor == "" {
		return "", fmt.Errorf("receipt: Emisor es obligatorio")
	}

	cadena := p.NumPer +
		p.FecPer +
		p.UserID +
		fmt.Sprintf("%d", p.FromID) +
		fmt.Sprintf("%d", p.ToID) +
		p.Status +
		p.FecCom +
		p.Emisor

	hash := sha512.Sum384([]byte(cadena))
	return hex.EncodeToString(hash[:]), nil
}

// Short abrevia el código para mostrarlo junto al QR.
func Short(code string) string {
	if len(code) <= ShortLen {
		return strings.ToUpper(code)
	}
	return strings.ToUpper(code[:ShortLen])
}

func day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
