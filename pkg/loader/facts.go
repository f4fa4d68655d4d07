// pkg/loader/facts.go
package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/comments"
	"github.com/eciem/practicas-etl/pkg/model"
	"github.com/eciem/practicas-etl/pkg/store"
)

// FactLoader builds the hechos table: one fact per source record with a
// valid RUT, each linked to a dedicated evaluacion_empresa row. Evaluations
// are strictly 1:1 with facts and never shared, even though the schema would
// permit reuse.
type FactLoader struct {
	logger *zap.Logger
}

// FactResult summarizes one fact-loading pass.
type FactResult struct {
	Inserted    int
	Skipped     int
	Evaluations int
}

// Constant placeholder for the rotation-tracking FK, which is not modeled
// separately.
const rotacionPlaceholder = 1

// NewFactLoader creates a fact loader
func NewFactLoader(logger *zap.Logger) (*FactLoader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &FactLoader{logger: logger}, nil
}

// Load walks the cleaned main snapshot record by record. Person and practice
// resolution are required; organization and time degrade to null foreign
// keys. One record's failure never aborts the batch.
func (l *FactLoader) Load(ctx context.Context, q store.Querier, main, evaluations *model.Table) FactResult {
	l.logger.Info("Loading fact table")

	var result FactResult
	for i, rec := range main.Records {
		rut, ok := rec.Get("rut_alum")
		if !ok {
			l.logger.Warn("Skipping fact without RUT", zap.Int("fila", i))
			result.Skipped++
			continue
		}

		idEstudiante, foundEst, err := LookupEstudiante(ctx, q, rut)
		if err != nil {
			l.logger.Warn("Estudiante lookup failed",
				zap.Int("fila", i), zap.Error(err))
			result.Skipped++
			continue
		}

		idPractica, foundPract, err := LookupPractica(ctx, q, i)
		if err != nil {
			l.logger.Warn("Practica lookup failed",
				zap.Int("fila", i), zap.Error(err))
			result.Skipped++
			continue
		}

		var idEmpresa interface{}
		if name, ok := rec.Get("nomb_empr_prac"); ok {
			id, found, err := LookupEmpresa(ctx, q, name)
			if err != nil {
				l.logger.Warn("Empresa lookup failed",
					zap.String("empresa", name), zap.Error(err))
			} else {
				idEmpresa = nullableID(id, found)
			}
		}

		var idTiempo interface{}
		if date, ok := rec.Get("fech_ini_prac"); ok {
			id, found, err := LookupTiempo(ctx, q, date)
			if err != nil {
				l.logger.Warn("Tiempo lookup failed",
					zap.String("fecha", date), zap.Error(err))
			} else {
				idTiempo = nullableID(id, found)
			}
		}

		idEvaluacion, err := l.createEvaluation(ctx, q, i, evaluations)
		if err != nil {
			l.logger.Warn("Evaluacion insert failed",
				zap.Int("fila", i), zap.Error(err))
			result.Skipped++
			continue
		}
		result.Evaluations++

		if !foundEst || !foundPract {
			l.logger.Warn("Skipping fact with unresolved required keys",
				zap.Int("fila", i),
				zap.Bool("estudiante", foundEst),
				zap.Bool("practica", foundPract))
			result.Skipped++
			continue
		}

		_, err = q.ExecContext(ctx, `
			INSERT INTO public.hechos
				(id_estudiante, id_practica, id_empresa, id_tiempo, id_evaluacionempresa, id_rotacionempresa)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			idEstudiante, idPractica, idEmpresa, idTiempo, idEvaluacion, rotacionPlaceholder)
		if err != nil {
			l.logger.Warn("Skipping fact row",
				zap.Int("fila", i), zap.Error(err))
			result.Skipped++
			continue
		}
		result.Inserted++
	}

	l.logger.Info("Fact table loaded",
		zap.Int("hechos", result.Inserted),
		zap.Int("omitidos", result.Skipped),
		zap.Int("evaluaciones", result.Evaluations))

	return result
}

// createEvaluation inserts the dedicated evaluacion_empresa row for the fact
// at the given snapshot row index and returns its surrogate key.
func (l *FactLoader) createEvaluation(ctx context.Context, q store.Querier, index int, evaluations *model.Table) (int64, error) {
	comment := commentForIndex(index, evaluations)

	var id int64
	err := sqlx.GetContext(ctx, q, &id, `
		INSERT INTO public.evaluacion_empresa (comentario)
		VALUES ($1)
		RETURNING id_evaluacionempresa`,
		comment)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// commentForIndex picks the synthesized comment for a fact by its snapshot
// row index. The evaluation snapshot is index-aligned with the main
// snapshot; rows past its end, and rows without real commentary, fall back
// to a generic per-record text.
func commentForIndex(index int, evaluations *model.Table) string {
	if evaluations != nil && index < evaluations.Len() {
		comment, ok := evaluations.Records[index].Get(comments.CommentColumn)
		if ok && comment != comments.NoCommentSentinel {
			return fmt.Sprintf("Evaluación %d: %s", index+1, truncateRunes(comment, 200))
		}
	}
	return fmt.Sprintf("Evaluación profesional %d - Práctica estudiantil", index+1)
}
