package tenant

import "github.com/jhoicas/Obra-api/internal/domain/rbac"

// Context identidad del llamante reconstruida en cada petición desde un token
// verificado. No se persiste; vive lo que dura la petición.
type Context struct {
	UserID         string
	Email          string
	Role           rbac.Role
	OrganizationID string
}

// Scope ámbito de ejecución de una operación sobre datos de un tenant.
// Solo lo produce el Gate (a partir de un Context verificado) o Bootstrap
// (alta de organización); nunca se arma con datos que envía el cliente.
type Scope struct {
	organizationID string
	userID         string
}

// OrganizationID devuelve el tenant al que se restringe toda consulta.
func (s Scope) OrganizationID() string { return s.organizationID }

// UserID devuelve el usuario que ejecuta la operación (vacío en bootstrap).
func (s Scope) UserID() string { return s.userID }

// IsZero informa si el scope no fue emitido por el Gate ni por Bootstrap.
func (s Scope) IsZero() bool { return s.organizationID == "" }

// Bootstrap crea el scope de una organización recién creada dentro de la
// transacción de alta, donde aún no existe ningún token que la referencie.
func Bootstrap(organizationID string) Scope {
	return Scope{organizationID: organizationID}
}
