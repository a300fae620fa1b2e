package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"event-signup/data/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// SqlRepo implements Repo on Postgres. Column order in the migrations
// matches record field order, which is what lets the generic scan helpers
// use SELECT *.
type SqlRepo struct {
	DB *sql.DB
}

func (sr *SqlRepo) Connection() *sql.DB {
	return sr.DB
}

func (sr *SqlRepo) RunMigrations(dbName string) error {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("failed to get current file path")
	}

	dir := filepath.Dir(filename)
	migrationsDir := filepath.Join(dir, "../migrations")
	// Convert backslashes to forward slashes for Windows compatibility
	migrationsDir = strings.ReplaceAll(migrationsDir, "\\", "/")

	log.Printf("Resolved migrations directory: %s", migrationsDir)

	driver, err := pgx.WithInstance(sr.DB, &pgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, dbName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Println("Migrations complete")
	return nil
}

func (sr *SqlRepo) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	a := &models.Account{}
	row := sr.DB.QueryRowContext(ctx, "SELECT * FROM accounts WHERE username = $1", username)

	if err := models.ScanRowToRecord(a, row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting account: %v", err)
	}
	return a, nil
}

// PutAccount upserts by username, the accounts collection key.
func (sr *SqlRepo) PutAccount(ctx context.Context, a *models.Account) error {
	if err := models.ValidateRecord(a); err != nil {
		return err
	}

	columns := models.GetColumnNames(a, true)
	updates := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == "username" {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (username) DO UPDATE SET %s",
		a.CollectionName(),
		strings.Join(columns, ", "),
		placeholders(len(columns)),
		strings.Join(updates, ", "))

	stmt, err := sr.DB.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing query: %v", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, models.GetValsFromRecord(a)...); err != nil {
		return fmt.Errorf("error executing query: %v", err)
	}
	return nil
}

func (sr *SqlRepo) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}

	e := &models.Event{}
	row := sr.DB.QueryRowContext(ctx, "SELECT * FROM events WHERE id = $1", numericID)

	if err := models.ScanRowToRecord(e, row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting event: %v", err)
	}
	return e, nil
}

// PutEvent inserts the event and lets the id sequence assign its key, or
// updates in place when the event already has one.
func (sr *SqlRepo) PutEvent(ctx context.Context, e *models.Event) error {
	if err := models.ValidateRecord(e); err != nil {
		return err
	}

	if e.ID == "" {
		return sr.insertEvent(ctx, e)
	}
	return sr.updateEvent(ctx, e)
}

func (sr *SqlRepo) insertEvent(ctx context.Context, e *models.Event) error {
	vals := models.GetValsFromRecord(e)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		e.CollectionName(),
		strings.Join(models.GetColumnNames(e, true), ", "),
		placeholders(len(vals)))

	stmt, err := sr.DB.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing query: %v", err)
	}
	defer stmt.Close()

	var id int64
	if err := stmt.QueryRowContext(ctx, vals...).Scan(&id); err != nil {
		return fmt.Errorf("error executing query: %v", err)
	}

	e.SetKey(strconv.FormatInt(id, 10))
	return nil
}

func (sr *SqlRepo) updateEvent(ctx context.Context, e *models.Event) error {
	columns := models.GetColumnNames(e, true)

	setClause := make([]string, len(columns))
	for i, c := range columns {
		setClause[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		e.CollectionName(),
		strings.Join(setClause, ", "),
		len(columns)+1)

	numericID, err := strconv.ParseInt(e.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q: %v", e.ID, err)
	}

	vals := append(models.GetValsFromRecord(e), numericID)
	if _, err := sr.DB.ExecContext(ctx, query, vals...); err != nil {
		return fmt.Errorf("error executing query: %v", err)
	}
	return nil
}

func (sr *SqlRepo) DeleteEvent(ctx context.Context, id string) error {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}

	res, err := sr.DB.ExecContext(ctx, "DELETE FROM events WHERE id = $1", numericID)
	if err != nil {
		return fmt.Errorf("error deleting record: %v", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (sr *SqlRepo) ListEvents(ctx context.Context) ([]models.Event, error) {
	return sr.queryEvents(ctx, "SELECT * FROM events ORDER BY id")
}

// ilikeEscaper quotes the LIKE pattern metacharacters, so a search for
// "50%" matches that literal substring instead of acting as a wildcard.
var ilikeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (sr *SqlRepo) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	return sr.queryEvents(ctx,
		"SELECT * FROM events WHERE name ILIKE '%' || $1 || '%' ORDER BY id",
		ilikeEscaper.Replace(query))
}

func (sr *SqlRepo) EventsByOrganizer(ctx context.Context, username string) ([]models.Event, error) {
	return sr.queryEvents(ctx, "SELECT * FROM events WHERE organizer = $1 ORDER BY id", username)
}

func (sr *SqlRepo) UpcomingEvents(ctx context.Context, from time.Time) ([]models.Event, error) {
	return sr.queryEvents(ctx,
		"SELECT * FROM events WHERE event_date >= $1 ORDER BY id", from.Format("2006-01-02"))
}

func (sr *SqlRepo) queryEvents(ctx context.Context, query string, args ...interface{}) ([]models.Event, error) {
	rows, err := sr.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %v", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e := &models.Event{}
		if err := models.ScanRowsToRecord(e, rows); err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := 1; i <= n; i++ {
		ph[i-1] = fmt.Sprintf("$%d", i)
	}
	return strings.Join(ph, ", ")
}
