package tenant

import (
	"strings"

	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
)

// Decision resultado terminal del Gate.
type Decision string

const (
	DecisionRejected   Decision = "rejected"
	DecisionForbidden  Decision = "forbidden"
	DecisionAuthorized Decision = "authorized"
)

// DecisionRecorder recibe cada decisión (métricas). Puede ser nil.
type DecisionRecorder interface {
	RecordDecision(required rbac.Permission, d Decision)
}

// Gate aplica la autorización antes de cualquier acceso a datos.
// No guarda estado entre peticiones ni cachea decisiones.
type Gate struct {
	recorder DecisionRecorder
}

// NewGate construye el Gate; recorder es opcional.
func NewGate(recorder DecisionRecorder) *Gate {
	return &Gate{recorder: recorder}
}

// Authorize recibe el resultado de Resolve (ctx, resolveErr) y los permisos
// que declara la operación. Falla cerrado en ambos estados terminales:
// Rejected (Unauthenticated) y Forbidden. Si autoriza, el Scope lleva el
// organization_id del contexto verificado.
func (g *Gate) Authorize(tc Context, resolveErr error, required rbac.Permission, also ...rbac.Permission) (Scope, error) {
	if resolveErr != nil || tc.OrganizationID == "" {
		g.record(required, DecisionRejected)
		if resolveErr == nil {
			resolveErr = domain.Unauthenticated("contexto de tenant ausente", nil)
		}
		return Scope{}, resolveErr
	}
	if !rbac.IsAuthorized(tc.Role, required, also...) {
		g.record(required, DecisionForbidden)
		missing := rbac.Missing(tc.Role, required, also...)
		names := make([]string, 0, len(missing))
		for _, p := range missing {
			names = append(names, string(p))
		}
		return Scope{}, domain.Forbidden("permisos insuficientes: " + strings.Join(names, ", "))
	}
	g.record(required, DecisionAuthorized)
	return Scope{organizationID: tc.OrganizationID, userID: tc.UserID}, nil
}

func (g *Gate) record(p rbac.Permission, d Decision) {
	if g.recorder != nil {
		g.recorder.RecordDecision(p, d)
	}
}
