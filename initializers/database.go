package initializers

import (
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var DB *goqu.Database

func ConnectDB() *sql.DB {
	db, err := sql.Open("postgres", Config.DatabaseURL)
	if err != nil {
		Log.WithError(err).Fatal("failed to open database")
	}

	err = db.Ping()
	if err != nil {
		Log.WithError(err).Fatal("failed to reach database")
	}

	DB = goqu.New("postgres", db)
	if Log.IsLevelEnabled(logrus.DebugLevel) {
		DB.Logger(Log.WithField("component", "goqu"))
	}

	return db
}
