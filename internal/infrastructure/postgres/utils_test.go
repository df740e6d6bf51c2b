package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pgErr(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestWriteError_Unico(t *testing.T) {
	err := writeError("insert vendor", pgErr(codeUniqueViolation, "vendors_name_org_key"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "ya existe un proveedor con ese nombre", domain.Message(err))

	err = writeError("insert x", pgErr(codeUniqueViolation, "desconocido"))
	assert.Equal(t, "registro duplicado", domain.Message(err))
}

func TestWriteError_ReferenciaDeOtraOrganizacion(t *testing.T) {
	err := writeError("insert material", pgErr(codeForeignKeyViolation, "materials_vendor_fk"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	fields := domain.Fields(err)
	if assert.Len(t, fields, 1) {
		assert.Equal(t, "vendor_id", fields[0].Field)
	}
}

func TestWriteError_Check(t *testing.T) {
	err := writeError("insert expense", pgErr(codeCheckViolation, "expenses_project_required"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "project_id", domain.Fields(err)[0].Field)
}

func TestWriteError_OtrosSeEnvuelven(t *testing.T) {
	cause := errors.New("conn reset")
	err := writeError("update project", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "update project: conn reset", err.Error())
	assert.ErrorIs(t, domain.KindOf(err), domain.ErrInternal)
}

func TestDeleteError(t *testing.T) {
	err := deleteError("delete project", "la obra", pgErr(codeForeignKeyViolation, "expenses_project_fk"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "la obra tiene gastos asociados", domain.Message(err))

	cause := errors.New("timeout")
	assert.ErrorIs(t, deleteError("delete project", "la obra", cause), cause)
}

func TestLikePattern(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"   ":      "",
		"torre":    "%torre%",
		" 50% ":    `%50\%%`,
		"a_b":      `%a\_b%`,
		`c:\obras`: `%c:\\obras%`,
	}
	for in, want := range cases {
		assert.Equal(t, want, likePattern(in), "entrada %q", in)
	}
}

func TestWriteError_OrganizacionBorrada(t *testing.T) {
	err := writeError("insert project", pgErr(codeForeignKeyViolation, "projects_organization_id_fkey"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "organización no encontrada", domain.Message(err))
}

func TestWriteError_NumeroFueraDeRango(t *testing.T) {
	cases := map[string]string{
		"insert expense":  "amount",
		"update material": "quantity",
		"insert project":  "value",
		"insert vendor":   "body",
	}
	for op, field := range cases {
		err := writeError(op, pgErr(codeNumericOutOfRange, ""))
		assert.ErrorIs(t, err, domain.ErrValidation, op)
		assert.NotErrorIs(t, domain.KindOf(err), domain.ErrInternal, op)
		if assert.Len(t, domain.Fields(err), 1, op) {
			assert.Equal(t, field, domain.Fields(err)[0].Field, op)
		}
	}
}

// countingQuerier responde n a cualquier count(*).
type countingQuerier struct {
	recordingQuerier
	n int
}

func (q *countingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.stmts = append(q.stmts, statement{sql, args})
	return countRow(q.n)
}

type countRow int

func (r countRow) Scan(dest ...any) error {
	*dest[0].(*int) = int(r)
	return nil
}

func TestPageTotal(t *testing.T) {
	ctx := context.Background()
	q := &countingQuerier{n: 42}

	total, err := pageTotal(ctx, q, 20, 42, 40, "SELECT count(*) FROM vendors WHERE organization_id = $1", scopedOrg)
	require.NoError(t, err)
	assert.Equal(t, 42, total)

	total, err = pageTotal(ctx, q, 0, 0, 0, "SELECT count(*) FROM vendors WHERE organization_id = $1", scopedOrg)
	require.NoError(t, err)
	assert.Zero(t, total, "sin offset, ninguna fila significa cero")
	assert.Empty(t, q.stmts)

	// offset pasado el final: se cuenta aparte con los mismos filtros
	total, err = pageTotal(ctx, q, 0, 0, 100, "SELECT count(*) FROM vendors WHERE organization_id = $1", scopedOrg)
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	require.Len(t, q.stmts, 1)
	assert.Equal(t, []any{scopedOrg}, q.stmts[0].args)
}
