package usecase

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Obra-api/internal/domain"
)

// maxReceiptBytes tamaño máximo del comprobante decodificado.
const maxReceiptBytes = 5 << 20

var receiptTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// receiptImage imagen decodificada de un data URL.
type receiptImage struct {
	ContentType string
	Ext         string
	Body        []byte
}

// parseReceipt decodifica "data:image/<tipo>;base64,<datos>".
func parseReceipt(dataURL string) (*receiptImage, error) {
	invalid := func(msg string) error { return domain.InvalidField("receipt", msg) }

	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURL), "data:")
	if !ok {
		return nil, invalid("se espera un data URL de imagen")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, invalid("data URL sin contenido")
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, invalid("el comprobante debe ir en base64")
	}
	contentType = strings.ToLower(contentType)
	ext, ok := receiptTypes[contentType]
	if !ok {
		return nil, invalid("tipo de imagen no soportado")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxReceiptBytes+3 {
		return nil, invalid("comprobante demasiado grande")
	}
	body, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, invalid("base64 inválido")
	}
	if len(body) == 0 || len(body) > maxReceiptBytes {
		return nil, invalid("tamaño de comprobante inválido")
	}
	return &receiptImage{ContentType: contentType, Ext: ext, Body: body}, nil
}

// receiptKey clave del objeto: <organizationID>/material-invoice/<unix-ms>-<aleatorio>.<ext>.
func receiptKey(organizationID string, now time.Time, ext string) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%s/material-invoice/%d-%s.%s", organizationID, now.UnixMilli(), random, ext)
}

// ownedBy informa si la clave pertenece a la organización.
func ownedBy(key, organizationID string) bool {
	return strings.HasPrefix(key, organizationID+"/")
}
