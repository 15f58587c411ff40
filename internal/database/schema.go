package database

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/uptrace/bun"

	"github.com/Additional-Code/restaurants/pkg/record"
)

// ErrSchemaMismatch reports a record whose declared fields disagree with its
// ORM table definition.
var ErrSchemaMismatch = errors.New("record schema mismatch")

// CheckModels compares each model's declared fields with the table metadata
// bun derives from its struct tags.
func CheckModels(db *bun.DB, models ...record.Described) error {
	var errs []error
	for _, m := range models {
		typ := reflect.TypeOf(m)
		for typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		table := db.Table(typ)
		desc := m.Descriptor()

		columns := make([]string, 0, len(table.Fields))
		for _, f := range table.Fields {
			columns = append(columns, f.Name)
		}
		if diff := symmetricDiff(columns, desc.Columns, identity); diff != "" {
			errs = append(errs, fmt.Errorf("%w: %s columns: %s", ErrSchemaMismatch, table.Name, diff))
		}

		relations := make([]string, 0, len(table.Relations))
		for name := range table.Relations {
			relations = append(relations, name)
		}
		if diff := symmetricDiff(relations, desc.Relations, foldName); diff != "" {
			errs = append(errs, fmt.Errorf("%w: %s relations: %s", ErrSchemaMismatch, table.Name, diff))
		}
	}
	return errors.Join(errs...)
}

func identity(s string) string { return s }

// foldName lets Go field names ("Restaurants") match declared names ("restaurants").
func foldName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

func symmetricDiff(table, declared []string, norm func(string) string) string {
	seen := make(map[string]int, len(table))
	for _, n := range table {
		seen[norm(n)]++
	}
	for _, n := range declared {
		seen[norm(n)]--
	}

	var parts []string
	for n, c := range seen {
		switch {
		case c > 0:
			parts = append(parts, "undeclared "+n)
		case c < 0:
			parts = append(parts, "unknown "+n)
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
