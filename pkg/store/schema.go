// pkg/store/schema.go
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// coreTables lists every table of the dimensional model, in drop order.
var coreTables = []string{
	"hechos",
	"practica",
	"empresa",
	"estudiante",
	"carrera",
	"rubro",
	"tiempo",
	"evaluacion_empresa",
}

// createStatements holds the CREATE TABLE statements in dependency order.
// empresa.nombre carries a uniqueness constraint so reruns resolve to the
// same row instead of duplicating organizations, and practica.fila_origen
// records the snapshot row index each practice came from so facts link to
// their practice explicitly rather than by insertion order.
var createStatements = []struct {
	table string
	ddl   string
}{
	{"rubro", `
		CREATE TABLE public.rubro (
			id_rubro SERIAL PRIMARY KEY,
			nombrerubro VARCHAR(255) NOT NULL UNIQUE
		)`},
	{"empresa", `
		CREATE TABLE public.empresa (
			id_empresa SERIAL PRIMARY KEY,
			nombre VARCHAR(255) NOT NULL UNIQUE,
			direccion TEXT,
			ciudad VARCHAR(100),
			taranto VARCHAR(100),
			disposicionrecibir BOOLEAN DEFAULT TRUE,
			id_rubro INTEGER REFERENCES public.rubro(id_rubro)
		)`},
	{"carrera", `
		CREATE TABLE public.carrera (
			id_carrera SERIAL PRIMARY KEY,
			nombrecarrera VARCHAR(255) NOT NULL UNIQUE,
			escuela VARCHAR(255)
		)`},
	{"estudiante", `
		CREATE TABLE public.estudiante (
			id_estudiante SERIAL PRIMARY KEY,
			nombre VARCHAR(255) NOT NULL,
			apellido VARCHAR(255),
			correo VARCHAR(255),
			telefono VARCHAR(50),
			rut_alumno VARCHAR(20) UNIQUE,
			matricula VARCHAR(50),
			anoingreso INTEGER,
			nivelestudio VARCHAR(100)
		)`},
	{"tiempo", `
		CREATE TABLE public.tiempo (
			id_tiempo SERIAL PRIMARY KEY,
			anno INTEGER NOT NULL,
			mes INTEGER NOT NULL,
			trimestre INTEGER NOT NULL,
			semestre INTEGER NOT NULL,
			fechacompleta DATE UNIQUE
		)`},
	{"evaluacion_empresa", `
		CREATE TABLE public.evaluacion_empresa (
			id_evaluacionempresa SERIAL PRIMARY KEY,
			comentario TEXT,
			fecha_evaluacion DATE DEFAULT CURRENT_DATE
		)`},
	{"practica", `
		CREATE TABLE public.practica (
			id_practica SERIAL PRIMARY KEY,
			modalidad VARCHAR(100),
			id_carrera INTEGER REFERENCES public.carrera(id_carrera),
			horaspractica INTEGER,
			estatus VARCHAR(50),
			estadoproceso VARCHAR(100),
			fechainicio DATE,
			fechafin DATE,
			fila_origen INTEGER UNIQUE
		)`},
	{"hechos", `
		CREATE TABLE public.hechos (
			id_hechos SERIAL PRIMARY KEY,
			id_estudiante INTEGER REFERENCES public.estudiante(id_estudiante),
			id_practica INTEGER REFERENCES public.practica(id_practica),
			id_empresa INTEGER REFERENCES public.empresa(id_empresa),
			id_tiempo INTEGER REFERENCES public.tiempo(id_tiempo),
			id_evaluacionempresa INTEGER REFERENCES public.evaluacion_empresa(id_evaluacionempresa),
			id_rotacionempresa INTEGER,
			fecharegistro TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
}

// ResetSchema drops every core table and recreates the dimensional model.
// The pipeline is a full-refresh load, so the drop is unconditional. A drop
// failure is logged and skipped; a create failure is fatal to the run.
func (s *Store) ResetSchema(ctx context.Context) error {
	s.logger.Info("Dropping existing tables")
	for _, table := range coreTables {
		_, err := s.db.ExecContext(ctx,
			fmt.Sprintf("DROP TABLE IF EXISTS public.%s CASCADE", table))
		if err != nil {
			s.logger.Warn("Could not drop table",
				zap.String("table", table),
				zap.Error(err))
			continue
		}
		s.logger.Info("Dropped table", zap.String("table", table))
	}

	s.logger.Info("Creating dimensional model tables")
	for _, stmt := range createStatements {
		if _, err := s.db.ExecContext(ctx, stmt.ddl); err != nil {
			return &StoreError{Op: "create table", Table: stmt.table, Err: err}
		}
		s.logger.Info("Created table", zap.String("table", stmt.table))
	}

	return nil
}
