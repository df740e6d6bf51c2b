package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// checkID un id que no es UUID no puede existir: se responde igual que a uno ausente.
func checkID(id, notFound string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NotFound(notFound)
	}
	return nil
}

// checkRefID valida un id de referencia del cuerpo.
func checkRefID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.InvalidField(field, "id inválido")
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.InvalidField(field, "fecha inválida, formato AAAA-MM-DD")
	}
	return t, nil
}

// parseOptionalDate nil o "" → nil.
func parseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func dateRange(fromField, from, toField, to string) (repository.DateRange, error) {
	var r repository.DateRange
	var err error
	if r.From, err = parseOptionalDate(fromField, &from); err != nil {
		return r, err
	}
	if r.To, err = parseOptionalDate(toField, &to); err != nil {
		return r, err
	}
	return r, nil
}

func formatDate(t time.Time) string { return t.Format(dto.DateLayout) }

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func toPage(p dto.PageRequest) repository.Page {
	p.DefaultPage()
	return repository.Page{Limit: p.Limit, Offset: p.Offset}
}

func pageResponse(p repository.Page, total int) dto.PageResponse {
	return dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total}
}

func toOptions(list []repository.Option) []dto.OptionResponse {
	out := make([]dto.OptionResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.OptionResponse{ID: o.ID, Name: o.Name})
	}
	return out
}

// optionalString normaliza: nil o "" (tras trim) → nil.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// fitsNumeric informa si d cabe en una columna NUMERIC(precision, scale) tras redondear.
func fitsNumeric(d decimal.Decimal, precision, scale int32) bool {
	return d.Round(scale).Abs().LessThan(decimal.New(1, precision-scale))
}
