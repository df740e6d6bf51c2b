package repository

import "time"

// Page límite y desplazamiento de un listado.
type Page struct {
	Limit  int
	Offset int
}

// ListFilter búsqueda simple por texto más paginación.
type ListFilter struct {
	Search string
	Page
}

// DateRange rango cerrado opcional; un extremo nil no restringe.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Option fila reducida para selectores (/thin).
type Option struct {
	ID   string
	Name string
}
