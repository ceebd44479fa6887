package initializers

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"

	"github.com/PrayNoel/migrations"
)

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(db *sql.DB) error {
	Log.Info("running database migrations")

	source, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, _ := m.Version()
	Log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("migrations completed")
	return nil
}
