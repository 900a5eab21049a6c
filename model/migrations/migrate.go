// Package migrations owns the relational schema. MySQL and Postgres run the
// versioned SQL under sql/<dialect> through golang-migrate; sqlite (tests and
// local runs) uses gorm AutoMigrate over the same entities.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	entity "catalog.GO/model/entity"
	catalogEntity "catalog.GO/model/entity/catalog"
	inventoryEntity "catalog.GO/model/entity/inventory"
)

//go:embed sql
var sqlFS embed.FS

// Models lists every persisted entity, parents first.
func Models() []interface{} {
	return []interface{}{
		&catalogEntity.Product{},
		&catalogEntity.ProductVariation{},
		&catalogEntity.Attribute{},
		&catalogEntity.AttributeOption{},
		&catalogEntity.VariationAttributeValue{},
		&catalogEntity.ConfigurableOption{},
		&catalogEntity.ConfigurableOptionValue{},
		&catalogEntity.ConfigurationRule{},
		&inventoryEntity.Warehouse{},
		&inventoryEntity.InventoryRecord{},
		&entity.APIToken{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Up applies all pending migrations for the connection's dialect.
func Up(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		return AutoMigrate(db)
	}
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back n migrations.
func Down(db *gorm.DB, n int) error {
	if db.Dialector.Name() == "sqlite" {
		return db.Migrator().DropTable(reversed(Models())...)
	}
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Steps(-n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the applied schema version and whether it is dirty.
func Version(db *gorm.DB) (uint, bool, error) {
	if db.Dialector.Name() == "sqlite" {
		return 0, false, nil
	}
	m, err := newMigrator(db)
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func newMigrator(db *gorm.DB) (*migrate.Migrate, error) {
	dialect := db.Dialector.Name()
	src, err := iofs.New(sqlFS, "sql/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("migration source %s: %w", dialect, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	switch dialect {
	case "mysql":
		drv, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
		if err != nil {
			return nil, err
		}
		return migrate.NewWithInstance("iofs", src, "mysql", drv)
	case "postgres":
		drv, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
		if err != nil {
			return nil, err
		}
		return migrate.NewWithInstance("iofs", src, "postgres", drv)
	}
	return nil, fmt.Errorf("no migrations for dialect %q", dialect)
}

func reversed(in []interface{}) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
