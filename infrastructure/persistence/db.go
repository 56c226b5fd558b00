// Package persistence provides database storage implementations.
package persistence

import (
	"fmt"
	"strings"

	"github.com/easelhq/easel/internal/database"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto migration for all catalog models.
// Migration order matters: the join tables reference episodes, colors, and
// subject_matters, so the parents must exist first.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return postMigrate(db)
}

// postMigrate normalizes FK constraints on PostgreSQL. Older dumps of this
// schema (loaded from the original MySQL DDL) carry unnamed FKs without an
// explicit delete policy; replace them with the RESTRICT constraints the
// models declare. Idempotent: safe to run on every startup.
func postMigrate(db database.Database) error {
	if !db.IsPostgres() {
		return nil
	}

	gdb := db.GORM()

	constraints := []struct {
		table      string
		old        []string
		name       string
		definition string
	}{
		{
			table:      "episode_colors",
			old:        []string{"episode_colors_episode_id_fkey"},
			name:       "fk_episode_colors_episode",
			definition: "FOREIGN KEY (episode_id) REFERENCES episodes(id) ON DELETE RESTRICT",
		},
		{
			table:      "episode_colors",
			old:        []string{"episode_colors_color_id_fkey"},
			name:       "fk_episode_colors_color",
			definition: "FOREIGN KEY (color_id) REFERENCES colors(id) ON DELETE RESTRICT",
		},
		{
			table:      "episode_subject_matters",
			old:        []string{"episode_subject_matters_episode_id_fkey"},
			name:       "fk_episode_subject_matters_episode",
			definition: "FOREIGN KEY (episode_id) REFERENCES episodes(id) ON DELETE RESTRICT",
		},
		{
			table:      "episode_subject_matters",
			old:        []string{"episode_subject_matters_subject_matter_id_fkey"},
			name:       "fk_episode_subject_matters_subject_matter",
			definition: "FOREIGN KEY (subject_matter_id) REFERENCES subject_matters(id) ON DELETE RESTRICT",
		},
	}

	for _, c := range constraints {
		for _, old := range c.old {
			if err := gdb.Exec(fmt.Sprintf(
				`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`, c.table, old,
			)).Error; err != nil {
				return fmt.Errorf("drop old constraint %s.%s: %w", c.table, old, err)
			}
		}
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`, c.table, c.name,
		)).Error; err != nil {
			return fmt.Errorf("drop constraint %s.%s: %w", c.table, c.name, err)
		}
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s ADD CONSTRAINT %s %s`, c.table, c.name, c.definition,
		)).Error; err != nil {
			return fmt.Errorf("create constraint %s.%s: %w", c.table, c.name, err)
		}
	}

	return nil
}

// allModels returns every GORM model that AutoMigrate manages.
func allModels() []interface{} {
	return []interface{}{
		&EpisodeModel{},
		&ColorModel{},
		&SubjectMatterModel{},
		&EpisodeColorModel{},
		&EpisodeSubjectMatterModel{},
	}
}

// ValidateSchema verifies every GORM model field has a corresponding column
// in the database. Returns an error listing any missing columns.
func ValidateSchema(db database.Database) error {
	gdb := db.GORM()
	migrator := gdb.Migrator()

	var missing []string
	for _, model := range allModels() {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("parse model schema: %w", err)
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return fmt.Errorf("get column types for %s: %w", stmt.Table, err)
		}

		actual := make(map[string]bool, len(columnTypes))
		for _, ct := range columnTypes {
			actual[ct.Name()] = true
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" || field.DBName == "-" {
				continue
			}
			if !actual[field.DBName] {
				missing = append(missing, stmt.Table+"."+field.DBName)
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("schema validation failed — missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
