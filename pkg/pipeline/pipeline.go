// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/cleaner"
	"github.com/eciem/practicas-etl/pkg/comments"
	"github.com/eciem/practicas-etl/pkg/config"
	"github.com/eciem/practicas-etl/pkg/extractor"
	"github.com/eciem/practicas-etl/pkg/loader"
	"github.com/eciem/practicas-etl/pkg/model"
	"github.com/eciem/practicas-etl/pkg/snapshot"
	"github.com/eciem/practicas-etl/pkg/store"
)

// Source table holding the main internship records; the dimension and fact
// loaders consume this snapshot.
const mainTable = "alumn_pract"

// Source table holding the supervisor evaluations the comment extractor
// scans.
const evaluationTable = "alumn_pract_eva_jef"

// Snapshot written with the evaluation records plus their synthesized
// comment column, kept on disk for inspection.
const enrichedSnapshot = "alumnos_con_comentarios_reales"

// Pipeline runs the full extract-clean-snapshot-load sequence. Execution is
// single-threaded and sequential; each run gets a fresh UUID carried through
// the logs.
type Pipeline struct {
	cfg       *config.Config
	logger    *zap.Logger
	client    *extractor.Client
	cleaner   *cleaner.RecordCleaner
	snapshots *snapshot.Store
	comments  *comments.Extractor
	runID     string
}

// tableSummary is the per-table outcome reported at the end of extraction.
type tableSummary struct {
	table     string
	rows      int
	rutColumn string
	failed    bool
}

// New assembles a pipeline from configuration
func New(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	client, err := extractor.NewClient(cfg.API, logger.Named("extractor"))
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	recordCleaner, err := cleaner.NewRecordCleaner(logger.Named("cleaner"))
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaner: %w", err)
	}

	snapshots, err := snapshot.NewStore(cfg.DataDir, logger.Named("snapshot"))
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot store: %w", err)
	}

	commentExtractor, err := comments.NewExtractor(logger.Named("comments"))
	if err != nil {
		return nil, fmt.Errorf("failed to create comment extractor: %w", err)
	}

	return &Pipeline{
		cfg:       cfg,
		logger:    logger.Named("pipeline"),
		client:    client,
		cleaner:   recordCleaner,
		snapshots: snapshots,
		comments:  commentExtractor,
		runID:     uuid.New().String(),
	}, nil
}

// Run executes the full pipeline: extraction of every source table, then the
// star-schema load. An extraction failure aborts only the affected table; a
// DDL failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("Pipeline run starting", zap.String("run_id", p.runID))

	summaries := p.extractAll(ctx)

	p.logger.Info("Extraction phase complete")
	for _, s := range summaries {
		if s.failed {
			p.logger.Warn("Table failed extraction", zap.String("table", s.table))
			continue
		}
		rut := s.rutColumn
		if rut == "" {
			rut = "(no)"
		}
		p.logger.Info("Extraction summary",
			zap.String("table", s.table),
			zap.Int("rows", s.rows),
			zap.String("rut_column", rut))
	}

	if err := p.load(ctx); err != nil {
		return err
	}

	p.logger.Info("Pipeline run complete", zap.String("run_id", p.runID))
	return nil
}

// extractAll downloads, cleans, and snapshots every configured source table.
// Tables are independent: one table's failure never affects the others.
func (p *Pipeline) extractAll(ctx context.Context) []tableSummary {
	summaries := make([]tableSummary, 0, len(p.cfg.Tables))

	for _, table := range p.cfg.Tables {
		t, err := p.client.ExtractTable(ctx, table)
		if err != nil {
			p.logger.Error("Extraction failed",
				zap.String("table", table),
				zap.Error(err))
			summaries = append(summaries, tableSummary{table: table, failed: true})
			continue
		}

		if t.Empty() {
			p.logger.Warn("Table has no rows", zap.String("table", table))
		}

		t = p.cleaner.Clean(t)

		if err := p.snapshots.Write(table, t); err != nil {
			p.logger.Error("Snapshot write failed",
				zap.String("table", table),
				zap.Error(err))
			summaries = append(summaries, tableSummary{table: table, failed: true})
			continue
		}

		rutColumn := model.DetectRUTColumn(t.Columns)
		if rutColumn == "" {
			p.logger.Warn("No RUT column detected",
				zap.String("table", table),
				zap.Strings("columns", t.Columns))
		}

		summaries = append(summaries, tableSummary{
			table:     table,
			rows:      t.Len(),
			rutColumn: rutColumn,
		})
	}

	return summaries
}

// load connects to the store, rebuilds the schema, and populates dimensions
// and facts from the snapshots.
func (p *Pipeline) load(ctx context.Context) error {
	st, err := store.Connect(ctx, p.cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer st.Close()

	if err := st.ResetSchema(ctx); err != nil {
		return fmt.Errorf("failed to rebuild schema: %w", err)
	}

	main, err := p.snapshots.Read(mainTable)
	if err != nil {
		p.logger.Error("Main snapshot unavailable, nothing to load",
			zap.String("table", mainTable),
			zap.Error(err))
		return nil
	}

	evaluations := p.enrichEvaluations()

	dims, err := loader.NewDimensionLoader(p.logger.Named("dimensions"))
	if err != nil {
		return err
	}
	counts := dims.LoadAll(ctx, st.DB(), main)

	facts, err := loader.NewFactLoader(p.logger.Named("facts"))
	if err != nil {
		return err
	}
	result := facts.Load(ctx, st.DB(), main, evaluations)

	p.logger.Info("Load phase complete",
		zap.String("run_id", p.runID),
		zap.Int("rubros", counts.Rubros),
		zap.Int("empresas", counts.Empresas),
		zap.Int("carreras", counts.Carreras),
		zap.Int("estudiantes", counts.Estudiantes),
		zap.Int("tiempos", counts.Tiempos),
		zap.Int("practicas", counts.Practicas),
		zap.Int("hechos", result.Inserted),
		zap.Int("hechos_omitidos", result.Skipped),
		zap.Int("evaluaciones", result.Evaluations))

	return nil
}

// enrichEvaluations reads the evaluation snapshot, synthesizes the comment
// column, and writes the enriched copy back for inspection. A missing or
// unreadable snapshot degrades to generic fact comments.
func (p *Pipeline) enrichEvaluations() *model.Table {
	t, err := p.snapshots.Read(evaluationTable)
	if err != nil {
		p.logger.Warn("Evaluation snapshot unavailable, facts get generic comments",
			zap.String("table", evaluationTable),
			zap.Error(err))
		return nil
	}

	t = p.comments.Enrich(t)

	if err := p.snapshots.Write(enrichedSnapshot, t); err != nil {
		p.logger.Warn("Could not write enriched evaluation snapshot",
			zap.Error(err))
	}

	return t
}
