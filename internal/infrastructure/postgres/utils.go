package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// uniqueMessages mensaje público por constraint único (ver schema.sql).
var uniqueMessages = map[string]string{
	"organizations_code_key":      "ya existe una organización con ese código",
	"users_email_org_key":         "ya existe un usuario con ese email en la organización",
	"projects_name_org_key":       "ya existe una obra con ese nombre",
	"vendors_name_org_key":        "ya existe un proveedor con ese nombre",
	"material_types_slug_org_key": "ya existe un tipo de material con ese nombre",
}

// referenceFields campo del cuerpo que corresponde a cada FK compuesta.
var referenceFields = map[string]string{
	"materials_project_fk":       "project_id",
	"materials_vendor_fk":        "vendor_id",
	"materials_material_type_fk": "material_type_id",
	"expenses_project_fk":        "project_id",
	"expenses_vendor_fk":         "vendor_id",
	"expenses_created_by_fk":     "created_by",
}

// checkFields campo afectado por cada CHECK.
var checkFields = map[string]string{
	"organizations_code_format": "code",
	"projects_status_check":     "status",
	"expenses_scope_check":      "scope",
	"expenses_project_required": "project_id",
}

// numericFields columna NUMERIC de cada entidad, por la última palabra de op.
var numericFields = map[string]string{
	"project":  "value",
	"material": "quantity",
	"expense":  "amount",
}

// dependentNames tabla hija que bloquea el borrado, por FK.
var dependentNames = map[string]string{
	"materials_project_fk":       "materiales",
	"materials_vendor_fk":        "materiales",
	"materials_material_type_fk": "materiales",
	"expenses_project_fk":        "gastos",
	"expenses_vendor_fk":         "gastos",
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeCheckViolation
}

func isNumericOutOfRange(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeNumericOutOfRange
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// writeError traduce errores de INSERT/UPDATE: 23505 → Conflict; 23503, 23514 y 22003
// → campo inválido (referencia inexistente, valor fuera de dominio o de rango).
func writeError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		msg, ok := uniqueMessages[constraintName(err)]
		if !ok {
			msg = "registro duplicado"
		}
		return domain.ConflictWith(msg, err)
	case isForeignKeyViolation(err) && strings.HasSuffix(constraintName(err), "_organization_id_fkey"):
		// token vigente de una organización ya borrada
		return &domain.Error{Kind: domain.ErrNotFound, Message: "organización no encontrada", Cause: err}
	case isForeignKeyViolation(err):
		field, ok := referenceFields[constraintName(err)]
		if !ok {
			field = "reference"
		}
		return &domain.Error{
			Kind:    domain.ErrValidation,
			Message: "referencia inexistente",
			Fields:  []domain.FieldError{{Field: field, Message: "no existe en la organización"}},
			Cause:   err,
		}
	case isCheckViolation(err):
		field, ok := checkFields[constraintName(err)]
		if !ok {
			field = "body"
		}
		return &domain.Error{
			Kind:    domain.ErrValidation,
			Message: "valor no permitido",
			Fields:  []domain.FieldError{{Field: field, Message: "valor no permitido"}},
			Cause:   err,
		}
	case isNumericOutOfRange(err):
		field, ok := numericFields[op[strings.LastIndexByte(op, ' ')+1:]]
		if !ok {
			field = "body"
		}
		return &domain.Error{
			Kind:    domain.ErrValidation,
			Message: "valor fuera de rango",
			Fields:  []domain.FieldError{{Field: field, Message: "excede el máximo permitido"}},
			Cause:   err,
		}
	}
	return wrap(op, err)
}

// deleteError traduce 23503 en DELETE: hay filas hijas que referencian la fila.
func deleteError(op, entity string, err error) error {
	if isForeignKeyViolation(err) {
		dep, ok := dependentNames[constraintName(err)]
		if !ok {
			dep = "otros registros"
		}
		return domain.ConflictWith(entity+" tiene "+dep+" asociados", err)
	}
	return wrap(op, err)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// likePattern arma el patrón ILIKE de una búsqueda; vacío si no hay búsqueda.
func likePattern(search string) string {
	search = strings.TrimSpace(search)
	if search == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

// thinLimit tope de filas en listados para selectores.
const thinLimit = 500

var errZeroScope = errors.New("scope de tenant vacío")

// orgID extrae la organización del Scope; un Scope vacío nunca llega a la base.
func orgID(scope tenant.Scope) (string, error) {
	if scope.IsZero() {
		return "", errZeroScope
	}
	return scope.OrganizationID(), nil
}

// pageTotal total del listado. Con offset más allá de la última fila no vuelve
// ninguna fila que traiga count(*) OVER(), y el total se cuenta aparte.
func pageTotal(ctx context.Context, q Querier, rows, total, offset int, countQuery string, args ...any) (int, error) {
	if rows > 0 || offset == 0 {
		return total, nil
	}
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// dependent tabla hija que referencia a la fila que se quiere borrar.
type dependent struct {
	table  string
	column string
	label  string
}

// checkDependents pre-chequeo de borrado; la FK sigue siendo la garantía.
func checkDependents(ctx context.Context, q Querier, organizationID, id, entityLabel string, deps ...dependent) error {
	for _, d := range deps {
		query := `SELECT EXISTS (SELECT 1 FROM ` + d.table + ` WHERE ` + d.column + ` = $1 AND organization_id = $2)`
		var exists bool
		if err := q.QueryRow(ctx, query, id, organizationID).Scan(&exists); err != nil {
			return fmt.Errorf("check %s: %w", d.table, err)
		}
		if exists {
			return domain.Conflict(entityLabel + " tiene " + d.label + " asociados")
		}
	}
	return nil
}

// queryOptions ejecuta una consulta (id, nombre) para listados /thin.
func queryOptions(ctx context.Context, q Querier, op, query string, args ...any) ([]repository.Option, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]repository.Option, 0)
	for rows.Next() {
		var o repository.Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
