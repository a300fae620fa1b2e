package models

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator"
)

// Record is implemented by every entity the storage layer persists. Records
// are keyed by string: accounts by username, events by their assigned id.
type Record interface {
	CollectionName() string
	Key() string
	SetKey(key string)
}

// go-playground/validator suggests using a single instance of the validator,
// shared across every record kind.
var validate = validator.New()

// ErrInvalidRecord marks a record that failed its schema tags. Callers can
// match on it with errors.Is to tell a bad record apart from a storage fault.
var ErrInvalidRecord = errors.New("invalid record")

// ValidateRecord validates a record's struct tags. The storage backends call
// it on every put and after every decode, so malformed records are rejected
// at the boundary instead of silently accepted.
func ValidateRecord(record interface{}) error {
	r, ok := record.(Record)
	if !ok {
		return fmt.Errorf("expected record, got %T", record)
	}

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRecord, r.CollectionName(), err)
	}
	return nil
}

// GetValsFromRecord returns the field values of a record as a slice of
// interfaces, in the order of the record's column names. It is used for
// extracting values from the record and writing them to the database.
// Validation of the record should be done before use.
func GetValsFromRecord(r Record) []interface{} {
	val := reflect.ValueOf(r)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()
	numFields := val.NumField()

	fieldMap := make(map[string]interface{})
	for i := 0; i < numFields; i++ {
		field := typ.Field(i)

		if field.Tag.Get("readOnly") == "true" {
			continue
		}

		dbTag := field.Tag.Get("db")
		fieldMap[dbTag] = val.Field(i).Interface()
	}

	columnNames := GetColumnNames(r, true)
	vals := make([]interface{}, len(columnNames))
	for i, cn := range columnNames {
		vals[i] = fieldMap[cn]
	}

	return vals
}

// ScanRowToRecord scans a single SQL row into a given record. It takes a
// record and passes a slice of pointers to the record's fields to the
// sql.Row's Scan method. It returns an error if the scan fails or the record
// is not a pointer.
func ScanRowToRecord(r Record, row *sql.Row) error {
	fieldPtrs, err := fieldPointers(r)
	if err != nil {
		return err
	}
	return row.Scan(fieldPtrs...)
}

// ScanRowsToRecord scans the current row of a sql.Rows into a given record.
// The caller drives rows.Next.
func ScanRowsToRecord(r Record, rows *sql.Rows) error {
	fieldPtrs, err := fieldPointers(r)
	if err != nil {
		return err
	}
	return rows.Scan(fieldPtrs...)
}

func fieldPointers(r Record) ([]interface{}, error) {
	val := reflect.ValueOf(r)
	if val.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("expected pointer to record, got %T", r)
	}
	val = val.Elem()
	typ := val.Type()

	fieldPtrs := make([]interface{}, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		fieldPtrs[i] = val.Field(i).Addr().Interface()
	}
	return fieldPtrs, nil
}

// GetColumnNames returns the record's column names as a slice of strings, in
// struct field order. Ensure record fields are declared in the order their
// columns appear in the schema, each with a db tag.
func GetColumnNames(r Record, excludeReadOnlyFields bool) []string {
	val := reflect.ValueOf(r)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()
	var columnNames []string

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("db")

		if excludeReadOnlyFields && field.Tag.Get("readOnly") == "true" {
			continue
		}

		columnNames = append(columnNames, tag)
	}
	return columnNames
}
