package ports

import "context"

// ReceiptStore puerto de salida hacia el almacenamiento de objetos de los comprobantes.
// Las claves siempre empiezan por el organization_id del Scope que las generó.
type ReceiptStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	// PresignGet devuelve una URL temporal de lectura.
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
