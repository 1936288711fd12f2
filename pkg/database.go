package toymc

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx"
)

// The run catalog keeps one row per completed run so any output file
// can be regenerated later from its seed and configuration.

type RunRecord struct {
	RunNumber int     `db:"RunNumber"`
	Seed      int64   `db:"Seed"`
	DurationS float64 `db:"DurationS"`
	StartS    float64 `db:"StartS"`
	NumEvents int     `db:"NumEvents"`
	FileOut   string  `db:"FileOut"`
}

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// NextRunNumber returns one past the highest run number in the
// catalog.
func NextRunNumber(db *sqlx.DB) (int, error) {
	var runNumber int
	query := "SELECT COALESCE(MAX(RunNumber), 0) + 1 FROM ToyMCRuns"
	if err := db.Get(&runNumber, query); err != nil {
		return 0, fmt.Errorf("error querying run catalog: %w", err)
	}
	return runNumber, nil
}

// RecordRun inserts the metadata of a completed run into the catalog.
func RecordRun(db *sqlx.DB, record RunRecord) error {
	query := `INSERT INTO ToyMCRuns (RunNumber, Seed, DurationS, StartS, NumEvents, FileOut)
		VALUES (:RunNumber, :Seed, :DurationS, :StartS, :NumEvents, :FileOut)`
	if _, err := db.NamedExec(query, record); err != nil {
		return fmt.Errorf("error recording run %d: %w", record.RunNumber, err)
	}
	logger.Info(fmt.Sprintf("recorded run %d in catalog", record.RunNumber), "database")
	return nil
}
