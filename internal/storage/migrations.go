// Embedded-file schema migrations.
//
// Migration SQL files live under migrations/<driver>/ and are named
// NNNN_name.up.sql or NNNN_name.down.sql. The current schema version is
// tracked in the sqlite user_version pragma; runMigrations applies every
// pending up migration in version order.
package storage

import (
	"embed"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

//go:embed migrations/**/*.sql
var migrationsFS embed.FS

var reMigrationFilename = regexp.MustCompile(`^(?P<Version>\d{4})\_(?P<Name>[^.]+)\.(?P<Direction>(up|down))\.sql$`)

// SchemaMigration represents a single database migration
type SchemaMigration struct {
	Version int
	Name    string
	Up      bool
	SQL     string
}

func loadMigrations(driver string) ([]SchemaMigration, error) {
	dirPath := "migrations/" + driver

	entries, err := migrationsFS.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var migrations []SchemaMigration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		migration, err := parseMigrationFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, migration)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// parseMigrationFile parses a migration filename and reads its content
func parseMigrationFile(path string) (SchemaMigration, error) {
	filename := filepath.Base(path)
	if !reMigrationFilename.MatchString(filename) {
		return SchemaMigration{}, fmt.Errorf("invalid migration filename: %s", filename)
	}

	filenameParts := reMigrationFilename.FindStringSubmatch(filename)

	sql, err := migrationsFS.ReadFile(path)
	if err != nil {
		return SchemaMigration{}, fmt.Errorf("failed to read migration file: %w", err)
	}

	version, _ := strconv.Atoi(filenameParts[reMigrationFilename.SubexpIndex("Version")])
	return SchemaMigration{
		Version: version,
		Name:    filenameParts[reMigrationFilename.SubexpIndex("Name")],
		Up:      filenameParts[reMigrationFilename.SubexpIndex("Direction")] == "up",
		SQL:     string(sql),
	}, nil
}

// runMigrations brings the schema up to the latest embedded version.
func (p *SQLProvider) runMigrations(driver string) error {
	migrations, err := loadMigrations(driver)
	if err != nil {
		return err
	}

	var current int
	if err := p.db.Get(&current, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if !migration.Up || migration.Version <= current {
			continue
		}

		p.logger.Info("Applying migration", "version", migration.Version, "name", migration.Name)

		if _, err := p.db.Exec(migration.SQL); err != nil {
			return fmt.Errorf("migration %04d_%s failed: %w", migration.Version, migration.Name, err)
		}

		// PRAGMA does not support placeholders
		if _, err := p.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}

		current = migration.Version
	}

	return nil
}
