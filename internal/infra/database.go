package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection and applies the idempotent schema
// patches. TranslateError is on so repositories see gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated instead of raw driver errors.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// Schema is owned by migrations/; AutoMigrate is never run.
	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that must hold on every deployed
// database, including ones created before the constraint existed. Each
// statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// one active plan per (tenant, camion, tipo); backs the Conflict on a second active plan
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'planes_mantenimiento')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_planes_activo_tipo') THEN
		    CREATE UNIQUE INDEX uq_planes_activo_tipo
		        ON planes_mantenimiento (tenant_id, camion_id, tipo)
		        WHERE activo;
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'camiones')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_camiones_tenant_placa') THEN
		    CREATE UNIQUE INDEX uq_camiones_tenant_placa ON camiones (tenant_id, placa);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'choferes')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_choferes_tenant_documento') THEN
		    CREATE UNIQUE INDEX uq_choferes_tenant_documento ON choferes (tenant_id, documento);
		  END IF;
		END $$`,
		// monthly aggregation scans completed freights by date
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'fletes')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_fletes_completados_fecha') THEN
		    CREATE INDEX idx_fletes_completados_fecha
		        ON fletes (tenant_id, fecha)
		        WHERE estado = 'COMPLETADO';
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies every *.up.sql file in dir in lexical order, then the
// schema patches. Used by integration tests against a fresh container.
func RunMigrations(db *gorm.DB, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}
		if err := db.Exec(string(b)).Error; err != nil {
			return fmt.Errorf("migration %s: %w", filepath.Base(f), err)
		}
	}
	return applySchemaPatches(db)
}
