package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All returns every persisted model in dependency order (referenced tables first)
func All() []interface{} {
	return []interface{}{
		&Derivation{},
		&AssignedProfessional{},
		&Closing{},
		&SocialCase{},
		&InterventionPlan{},
		&AuditLog{},
	}
}

// foreignKeys are added explicitly since the models carry no back-references.
// The assistance -> derivation key comes from the Professionals association.
var foreignKeys = []struct {
	table, name, column, refTable string
}{
	{"social_case", "fk_social_case_derivation", "derivation_id", "social_case_derivation"},
	{"social_case", "fk_social_case_closing", "closing_id", "social_case_close"},
	{"intervention_plan", "fk_intervention_plan_social_case", "social_case_id", "social_case"},
}

// Migrate creates or alters the tables and, on postgres, the foreign keys
func Migrate(tx *gorm.DB) error {
	if err := tx.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if tx.Dialector.Name() != "postgres" {
		return nil
	}

	for _, fk := range foreignKeys {
		var exists int64
		if err := tx.Raw(
			"SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_name = ? AND table_name = ?",
			fk.name, fk.table,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("failed to inspect constraint %s: %w", fk.name, err)
		}
		if exists > 0 {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE %q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q ("id")`,
			fk.table, fk.name, fk.column, fk.refTable)
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

// Rollback drops every table created by Migrate, dependents first
func Rollback(tx *gorm.DB) error {
	all := All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := tx.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
