package main

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

/*
trajectory log. one row per mass per frame, written and never read back by
the simulator.

a frame of n masses is one transaction of n inserts through a prepared
statement. sqlite allows a single writer, so there is one database worker.
*/

const schema = `
CREATE TABLE IF NOT EXISTS masses (
	frame   INTEGER,
	idx     INTEGER, -- creation order, 0 based
	x       REAL,
	y       REAL,
	vx      REAL,
	vy      REAL,
	ax      REAL,
	ay      REAL,
	mass    REAL,
	pending INTEGER,
	tag     TEXT);
`

const indices = `
CREATE INDEX IF NOT EXISTS idx_frame ON masses (frame, idx);
`

const columns = 11

// insert statement using the driver's placeholder style.
func insertFor(driver string) string {
	ph := make([]string, columns)
	for i := range ph {
		if driver == "postgres" {
			ph[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ph[i] = "?"
		}
	}
	return "INSERT INTO masses VALUES (" + strings.Join(ph, ", ") + ");"
}

// opens dsn with driver and creates the table. a bare sqlite file name is
// opened with journaling and syncing off.
func opendb(driver, dsn string) (*sql.DB, error) {
	if driver == "sqlite3" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn + "?_journal_mode=OFF&_synchronous=OFF"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", driver)
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// runs create table and index statements on db.
func createTables(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "creating table")
	}
	if _, err := db.Exec(indices); err != nil {
		return errors.Wrap(err, "creating index")
	}
	return nil
}

// writes every frame from ch. a frame that fails is rolled back and logged,
// and the worker keeps draining ch.
func frameToDatabase(db *sql.DB, driver string, wg *sync.WaitGroup, ch chan *frameJob, logger kitlog.Logger) {
	defer wg.Done()

	stmt, err := db.Prepare(insertFor(driver))
	if err != nil {
		level.Error(logger).Log("msg", "preparing insert", "err", err)
		for range ch {
		}
		return
	}
	defer stmt.Close()

	rows := 0
	for job := range ch {
		if err := writeFrame(db, stmt, job); err != nil {
			level.Error(logger).Log("msg", "writing frame", "frame", job.Frame, "err", err)
			continue
		}
		rows += len(job.Masses)
	}
	level.Info(logger).Log("msg", "recorded", "rows", rows)
}

// inserts one frame in a transaction.
func writeFrame(db *sql.DB, stmt *sql.Stmt, job *frameJob) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	txStmt := tx.Stmt(stmt)
	for i, m := range job.Masses {
		pending := 0
		if m.Pending {
			pending = 1
		}
		_, err = txStmt.Exec(
			job.Frame,
			i,
			m.Position[0],
			m.Position[1],
			m.Velocity[0],
			m.Velocity[1],
			m.Acceleration[0],
			m.Acceleration[1],
			m.Mass,
			pending,
			m.Tag.String())
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "inserting mass %d", i)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}
