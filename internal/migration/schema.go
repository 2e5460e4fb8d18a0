package migration

import (
	"fmt"
	"strings"
)

// Declarative schema objects. Declarations stay backend-agnostic; everything
// backend-specific happens in the render functions below, driven by the
// Backend capability gate.

type ColumnType int

const (
	TypeInteger ColumnType = iota
	TypeBigInteger
	TypeSmallInteger
	TypeTinyInteger
	TypeString
	TypeChar
	TypeText
	TypeBoolean
	TypeDecimal
	TypeJSON
	TypeTimestampTZ
	TypeEnum
)

type Column struct {
	Name          string
	Type          ColumnType
	Size          int    // varchar/char length
	Precision     int    // decimal precision
	Scale         int    // decimal scale
	Enum          string // enum type name when Type == TypeEnum
	NotNull       bool
	Unique        bool
	AutoIncrement bool
	Default       string // raw SQL default expression
}

type RefAction string

const (
	Cascade RefAction = "CASCADE"
)

type ForeignKey struct {
	Name       string
	Columns    []string
	RefTable   string
	RefColumns []string
	OnUpdate   RefAction
	OnDelete   RefAction
}

type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string // single auto-increment or a 2-5 column composite
	ForeignKeys []ForeignKey
	Indexes     []Index
}

type EnumType struct {
	Name   string
	Values []string
}

func (e EnumType) CreateSQL() string {
	quoted := make([]string, len(e.Values))
	for i, v := range e.Values {
		quoted[i] = "'" + v + "'"
	}
	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", e.Name, strings.Join(quoted, ", "))
}

func (e EnumType) DropSQL() string {
	return "DROP TYPE " + e.Name
}

func (t Table) CreateSQL(b Backend) string {
	defs := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		defs = append(defs, t.columnSQL(c, b))
	}
	// An auto-increment key is rendered inline on its column; only composite
	// keys get a table-level constraint.
	if len(t.PrimaryKey) > 1 || (len(t.PrimaryKey) == 1 && !t.autoIncrementKey()) {
		defs = append(defs, "PRIMARY KEY ("+strings.Join(t.PrimaryKey, ", ")+")")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, strings.Join(defs, ", "))
}

func (t Table) DropSQL() string {
	return "DROP TABLE " + t.Name
}

func (t Table) autoIncrementKey() bool {
	if len(t.PrimaryKey) != 1 {
		return false
	}
	for _, c := range t.Columns {
		if c.Name == t.PrimaryKey[0] {
			return c.AutoIncrement
		}
	}
	return false
}

func (t Table) columnSQL(c Column, b Backend) string {
	parts := []string{c.Name, columnTypeSQL(c, b)}

	if len(t.PrimaryKey) == 1 && t.PrimaryKey[0] == c.Name && c.AutoIncrement {
		if b.Name == "sqlite" {
			// sqlite only auto-increments an INTEGER PRIMARY KEY rowid alias.
			return c.Name + " INTEGER PRIMARY KEY AUTOINCREMENT"
		}
		parts = append(parts, "PRIMARY KEY")
	}
	if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if c.Unique {
		parts = append(parts, "UNIQUE")
	}
	if c.Default != "" {
		parts = append(parts, "DEFAULT "+c.Default)
	}
	return strings.Join(parts, " ")
}

func columnTypeSQL(c Column, b Backend) string {
	switch c.Type {
	case TypeInteger:
		if c.AutoIncrement && b.Name == "postgres" {
			return "serial"
		}
		return "integer"
	case TypeBigInteger:
		if c.AutoIncrement && b.Name == "postgres" {
			return "bigserial"
		}
		return "bigint"
	case TypeSmallInteger:
		return "smallint"
	case TypeTinyInteger:
		if b.Name == "postgres" {
			return "smallint"
		}
		return "tinyint"
	case TypeString:
		if c.Size > 0 {
			return fmt.Sprintf("varchar(%d)", c.Size)
		}
		return "varchar(255)"
	case TypeChar:
		return fmt.Sprintf("char(%d)", c.Size)
	case TypeText:
		return "text"
	case TypeBoolean:
		return "boolean"
	case TypeDecimal:
		return fmt.Sprintf("decimal(%d,%d)", c.Precision, c.Scale)
	case TypeJSON:
		if b.Name == "postgres" {
			return "jsonb"
		}
		return "text"
	case TypeTimestampTZ:
		if b.Name == "postgres" {
			return "timestamptz"
		}
		return "datetime"
	case TypeEnum:
		// Backends without native enum types store the textual identifier.
		if b.EnumTypes {
			return c.Enum
		}
		return "text"
	}
	panic(fmt.Sprintf("migration: unknown column type %d", c.Type))
}

// Constraint and index names are mixed-case (FK_*, IDX_*). Without quoting,
// postgres folds them to lowercase on disk, so the names are quoted to keep
// the catalog identical to the declarations.
func (f ForeignKey) CreateSQL(table string) string {
	return fmt.Sprintf(
		"ALTER TABLE %s ADD CONSTRAINT %q FOREIGN KEY (%s) REFERENCES %s (%s) ON UPDATE %s ON DELETE %s",
		table, f.Name,
		strings.Join(f.Columns, ", "),
		f.RefTable,
		strings.Join(f.RefColumns, ", "),
		f.OnUpdate, f.OnDelete,
	)
}

func (f ForeignKey) DropSQL(table string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %q", table, f.Name)
}

func (i Index) CreateSQL(table string) string {
	unique := ""
	if i.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX %q ON %s (%s)", unique, i.Name, table, strings.Join(i.Columns, ", "))
}

func (i Index) DropSQL(table string) string {
	return fmt.Sprintf("DROP INDEX %q", i.Name)
}
