// pkg/loader/lookup.go
package loader

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/eciem/practicas-etl/pkg/store"
)

// Natural-key to surrogate-key resolution. A miss (ok == false with nil
// error) is a normal nullable outcome, never escalated to an error.

func lookupID(ctx context.Context, q store.Querier, query string, arg interface{}) (int64, bool, error) {
	var id int64
	err := sqlx.GetContext(ctx, q, &id, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// LookupRubro resolves a rubric surrogate key by name.
func LookupRubro(ctx context.Context, q store.Querier, name string) (int64, bool, error) {
	return lookupID(ctx, q,
		"SELECT id_rubro FROM public.rubro WHERE nombrerubro = $1", name)
}

// LookupEmpresa resolves an organization surrogate key by name.
func LookupEmpresa(ctx context.Context, q store.Querier, name string) (int64, bool, error) {
	return lookupID(ctx, q,
		"SELECT id_empresa FROM public.empresa WHERE nombre = $1", name)
}

// LookupCarrera resolves a career surrogate key by canonical name.
func LookupCarrera(ctx context.Context, q store.Querier, name string) (int64, bool, error) {
	return lookupID(ctx, q,
		"SELECT id_carrera FROM public.carrera WHERE nombrecarrera = $1", name)
}

// LookupEstudiante resolves a student surrogate key by RUT.
func LookupEstudiante(ctx context.Context, q store.Querier, rut string) (int64, bool, error) {
	return lookupID(ctx, q,
		"SELECT id_estudiante FROM public.estudiante WHERE rut_alumno = $1", rut)
}

// LookupTiempo resolves a time surrogate key by its calendar date
// (YYYY-MM-DD).
func LookupTiempo(ctx context.Context, q store.Querier, date string) (int64, bool, error) {
	return lookupID(ctx, q,
		"SELECT id_tiempo FROM public.tiempo WHERE fechacompleta = $1", date)
}

// LookupPractica resolves a practice surrogate key by the snapshot row index
// it was created from.
func LookupPractica(ctx context.Context, q store.Querier, filaOrigen int) (int64, bool, error) {
	return lookupID(ctx, q,
		"SELECT id_practica FROM public.practica WHERE fila_origen = $1", filaOrigen)
}
