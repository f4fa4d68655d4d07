// pkg/loader/dimensions.go
package loader

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/career"
	"github.com/eciem/practicas-etl/pkg/cleaner"
	"github.com/eciem/practicas-etl/pkg/model"
	"github.com/eciem/practicas-etl/pkg/store"
)

// DimensionLoader populates the dimension tables from the cleaned main
// snapshot, in dependency order, and leaves the store ready for natural-key
// lookups by the fact loader.
//
// Insert policy: dimensions with a natural key (rubro, empresa, carrera,
// estudiante, tiempo) are insert-if-absent; conflicting inserts are silently
// ignored. A failed insert for one row is logged and skipped; the loader
// proceeds to the next row.
type DimensionLoader struct {
	logger *zap.Logger
}

// DimensionCounts summarizes rows inserted per dimension during one pass.
type DimensionCounts struct {
	Rubros      int
	Empresas    int
	Carreras    int
	Estudiantes int
	Tiempos     int
	Practicas   int
}

// NewDimensionLoader creates a dimension loader
func NewDimensionLoader(logger *zap.Logger) (*DimensionLoader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &DimensionLoader{logger: logger}, nil
}

// LoadAll populates every dimension from the cleaned main snapshot. Order
// matters: rubro before empresa (FK dependency), carrera before practica.
func (l *DimensionLoader) LoadAll(ctx context.Context, q store.Querier, t *model.Table) DimensionCounts {
	counts := DimensionCounts{
		Rubros:      l.LoadRubros(ctx, q, t),
		Empresas:    l.LoadEmpresas(ctx, q, t),
		Carreras:    l.LoadCarreras(ctx, q),
		Estudiantes: l.LoadEstudiantes(ctx, q, t),
		Tiempos:     l.LoadTiempos(ctx, q, t),
		Practicas:   l.LoadPracticas(ctx, q, t),
	}

	l.logger.Info("All dimensions loaded",
		zap.Int("rubros", counts.Rubros),
		zap.Int("empresas", counts.Empresas),
		zap.Int("carreras", counts.Carreras),
		zap.Int("estudiantes", counts.Estudiantes),
		zap.Int("tiempos", counts.Tiempos),
		zap.Int("practicas", counts.Practicas))

	return counts
}

// LoadRubros creates one rubric per distinct economic-activity value.
func (l *DimensionLoader) LoadRubros(ctx context.Context, q store.Querier, t *model.Table) int {
	l.logger.Info("Loading dimension rubro")

	inserted := 0
	seen := make(map[string]bool)
	for _, rec := range t.Records {
		name, ok := rec.Get("act_econo_empresa")
		if !ok || seen[name] {
			continue
		}
		seen[name] = true

		_, err := q.ExecContext(ctx,
			"INSERT INTO public.rubro (nombrerubro) VALUES ($1) ON CONFLICT (nombrerubro) DO NOTHING",
			name)
		if err != nil {
			l.logger.Warn("Skipping rubro row",
				zap.String("rubro", name),
				zap.Error(err))
			continue
		}
		inserted++
	}

	l.logger.Info("Dimension rubro loaded", zap.Int("rubros", inserted))
	return inserted
}

// LoadEmpresas creates one organization per distinct name, resolving the
// rubric dependency before each insert. A missing rubric yields a null
// foreign key, not a failure.
func (l *DimensionLoader) LoadEmpresas(ctx context.Context, q store.Querier, t *model.Table) int {
	l.logger.Info("Loading dimension empresa")

	inserted := 0
	seen := make(map[string]bool)
	for _, rec := range t.Records {
		name, ok := rec.Get("nomb_empr_prac")
		if !ok || seen[name] {
			continue
		}
		seen[name] = true

		var idRubro interface{}
		if rubro, ok := rec.Get("act_econo_empresa"); ok {
			id, found, err := LookupRubro(ctx, q, rubro)
			if err != nil {
				l.logger.Warn("Rubro lookup failed",
					zap.String("rubro", rubro),
					zap.Error(err))
			} else if found {
				idRubro = id
			}
		}

		_, err := q.ExecContext(ctx, `
			INSERT INTO public.empresa (nombre, direccion, ciudad, taranto, id_rubro)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (nombre) DO NOTHING`,
			name,
			nullableString(rec, "dir_empr_prac"),
			nullableString(rec, "ciudad_emp_prac"),
			nullableString(rec, "nat_empresa"),
			idRubro)
		if err != nil {
			l.logger.Warn("Skipping empresa row",
				zap.String("empresa", name),
				zap.Error(err))
			continue
		}
		inserted++
	}

	l.logger.Info("Dimension empresa loaded", zap.Int("empresas", inserted))
	return inserted
}

// LoadCarreras creates the closed set of official careers.
func (l *DimensionLoader) LoadCarreras(ctx context.Context, q store.Querier) int {
	l.logger.Info("Loading dimension carrera")

	inserted := 0
	for _, name := range career.Canonicals() {
		_, err := q.ExecContext(ctx, `
			INSERT INTO public.carrera (nombrecarrera, escuela)
			VALUES ($1, $2)
			ON CONFLICT (nombrecarrera) DO NOTHING`,
			name, career.School)
		if err != nil {
			l.logger.Warn("Skipping carrera row",
				zap.String("carrera", name),
				zap.Error(err))
			continue
		}
		inserted++
	}

	l.logger.Info("Dimension carrera loaded", zap.Int("carreras", inserted))
	return inserted
}

// LoadEstudiantes creates one student per record carrying a RUT. An existing
// student with the same RUT is never updated by a later pass.
func (l *DimensionLoader) LoadEstudiantes(ctx context.Context, q store.Querier, t *model.Table) int {
	l.logger.Info("Loading dimension estudiante")

	inserted := 0
	for _, rec := range t.Records {
		rut, ok := rec.Get("rut_alum")
		if !ok {
			continue
		}

		_, err := q.ExecContext(ctx, `
			INSERT INTO public.estudiante
				(nombre, apellido, correo, telefono, rut_alumno, matricula, anoingreso, nivelestudio)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (rut_alumno) DO NOTHING`,
			nullableString(rec, "nomb_alum"),
			nullableString(rec, "apell_alum"),
			nullableString(rec, "email_alum"),
			nullableString(rec, "cel_alum"),
			rut,
			nullableString(rec, "mat_alum"),
			safeInt(rec["ano_ingreso_alum"]),
			nullableString(rec, "niv_estudio_alum"))
		if err != nil {
			l.logger.Warn("Skipping estudiante row",
				zap.String("rut", rut),
				zap.Error(err))
			continue
		}
		inserted++
	}

	l.logger.Info("Dimension estudiante loaded", zap.Int("estudiantes", inserted))
	return inserted
}

// LoadTiempos creates one tiempo row per distinct date seen in the practice
// start and end date columns, with derived calendar attributes.
func (l *DimensionLoader) LoadTiempos(ctx context.Context, q store.Querier, t *model.Table) int {
	l.logger.Info("Loading dimension tiempo")

	inserted := 0
	seen := make(map[string]bool)
	for _, rec := range t.Records {
		for _, col := range []string{"fech_ini_prac", "fech_fin_prac"} {
			value, ok := rec.Get(col)
			if !ok || seen[value] {
				continue
			}
			seen[value] = true

			date, ok := cleaner.ParseDate(value)
			if !ok {
				continue
			}
			period := DeriveTimePeriod(date)

			_, err := q.ExecContext(ctx, `
				INSERT INTO public.tiempo (anno, mes, trimestre, semestre, fechacompleta)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (fechacompleta) DO NOTHING`,
				period.Year, period.Month, period.Quarter, period.Semester, value)
			if err != nil {
				l.logger.Warn("Skipping tiempo row",
					zap.String("fecha", value),
					zap.Error(err))
				continue
			}
			inserted++
		}
	}

	l.logger.Info("Dimension tiempo loaded", zap.Int("fechas", inserted))
	return inserted
}

// LoadPracticas creates one practice per source record. Each row carries
// fila_origen, the record's snapshot row index, which is the stable link the
// fact loader resolves practices through.
func (l *DimensionLoader) LoadPracticas(ctx context.Context, q store.Querier, t *model.Table) int {
	l.logger.Info("Loading dimension practica")

	inserted := 0
	mapped := 0
	for i, rec := range t.Records {
		var idCarrera interface{}
		if rawCareer, ok := rec.Get("carr_alum"); ok {
			canonical := career.Canonical(rawCareer)
			if strings.ToUpper(rawCareer) != canonical {
				mapped++
			}

			id, found, err := LookupCarrera(ctx, q, canonical)
			if err != nil {
				l.logger.Warn("Carrera lookup failed",
					zap.String("carrera", canonical),
					zap.Error(err))
			} else if found {
				idCarrera = id
			}
		}

		var hours interface{}
		start, startOK := parseRecordDate(rec, "fech_ini_prac")
		end, endOK := parseRecordDate(rec, "fech_fin_prac")
		if startOK && endOK {
			days := int(end.Sub(start).Hours() / 24)
			if days > 0 {
				hours = days * 8
			}
		}

		_, err := q.ExecContext(ctx, `
			INSERT INTO public.practica
				(modalidad, id_carrera, horaspractica, estatus, estadoproceso, fechainicio, fechafin, fila_origen)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			nullableString(rec, "como_practi_profesional"),
			idCarrera,
			hours,
			nullableString(rec, "proces_terminado"),
			nullableString(rec, "proces_terminado"),
			nullableString(rec, "fech_ini_prac"),
			nullableString(rec, "fech_fin_prac"),
			i)
		if err != nil {
			if store.IsUniqueViolation(err) {
				l.logger.Warn("Duplicate source row index, skipping practica",
					zap.Int("fila", i))
			} else {
				l.logger.Warn("Skipping practica row",
					zap.Int("fila", i),
					zap.Error(err))
			}
			continue
		}
		inserted++
	}

	l.logger.Info("Dimension practica loaded",
		zap.Int("practicas", inserted),
		zap.Int("carreras_mapeadas", mapped))
	return inserted
}

// parseRecordDate reads and parses a date column from a record.
func parseRecordDate(rec model.Record, col string) (time.Time, bool) {
	value, ok := rec.Get(col)
	if !ok {
		return time.Time{}, false
	}
	return cleaner.ParseDate(value)
}
