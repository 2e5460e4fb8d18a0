package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Engine applies or reverses the whole schema in four ordered stages:
//
//	Up:   enum types -> tables -> foreign keys -> indexes
//	Down: foreign keys -> indexes -> tables -> enum types
//
// with every Down batch running in the reverse of its Up order. Stages that
// the active backend cannot support (native enum types, post-hoc foreign
// keys) are skipped via the capability gate instead of failing at runtime.
//
// Both directions run inside a single transaction. On backends with
// transactional DDL (postgres, sqlite) a failed stage rolls everything back;
// on backends without it the failure leaves partial state, which is a backend
// property and is why errors always name the stage and object that failed.
type Engine struct {
	db      *gorm.DB
	backend Backend
	enums   []EnumType
	tables  []Table
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		db:      db,
		backend: BackendFor(db.Dialector.Name()),
		enums:   Enums(),
		tables:  Tables(),
	}
}

func (e *Engine) Backend() Backend { return e.backend }

// Applied reports whether the schema is already installed, so callers can
// make startup migration idempotent.
func (e *Engine) Applied() bool {
	if len(e.tables) == 0 {
		return false
	}
	return e.db.Migrator().HasTable(e.tables[0].Name)
}

// Up creates every schema object.
func (e *Engine) Up(ctx context.Context) error {
	tables, err := sortTables(e.tables)
	if err != nil {
		return err
	}

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e.backend.EnumTypes {
			for _, en := range e.enums {
				if err := tx.Exec(en.CreateSQL()).Error; err != nil {
					return fmt.Errorf("create type %s: %w", en.Name, err)
				}
			}
		}

		for _, t := range tables {
			if err := tx.Exec(t.CreateSQL(e.backend)).Error; err != nil {
				return fmt.Errorf("create table %s: %w", t.Name, err)
			}
		}

		if e.backend.ForeignKeys {
			for _, t := range tables {
				for _, fk := range t.ForeignKeys {
					if err := tx.Exec(fk.CreateSQL(t.Name)).Error; err != nil {
						return fmt.Errorf("create foreign key %s: %w", fk.Name, err)
					}
				}
			}
		}

		for _, t := range tables {
			for _, idx := range t.Indexes {
				if err := tx.Exec(idx.CreateSQL(t.Name)).Error; err != nil {
					return fmt.Errorf("create index %s: %w", idx.Name, err)
				}
			}
		}

		return nil
	})
}

// Down drops every schema object, mirroring Up exactly.
func (e *Engine) Down(ctx context.Context) error {
	tables, err := sortTables(e.tables)
	if err != nil {
		return err
	}

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e.backend.ForeignKeys {
			for i := len(tables) - 1; i >= 0; i-- {
				t := tables[i]
				for j := len(t.ForeignKeys) - 1; j >= 0; j-- {
					fk := t.ForeignKeys[j]
					if err := tx.Exec(fk.DropSQL(t.Name)).Error; err != nil {
						return fmt.Errorf("drop foreign key %s: %w", fk.Name, err)
					}
				}
			}
		}

		for i := len(tables) - 1; i >= 0; i-- {
			t := tables[i]
			for j := len(t.Indexes) - 1; j >= 0; j-- {
				idx := t.Indexes[j]
				if err := tx.Exec(idx.DropSQL(t.Name)).Error; err != nil {
					return fmt.Errorf("drop index %s: %w", idx.Name, err)
				}
			}
		}

		for i := len(tables) - 1; i >= 0; i-- {
			if err := tx.Exec(tables[i].DropSQL()).Error; err != nil {
				return fmt.Errorf("drop table %s: %w", tables[i].Name, err)
			}
		}

		if e.backend.EnumTypes {
			for i := len(e.enums) - 1; i >= 0; i-- {
				if err := tx.Exec(e.enums[i].DropSQL()).Error; err != nil {
					return fmt.Errorf("drop type %s: %w", e.enums[i].Name, err)
				}
			}
		}

		return nil
	})
}

// sortTables orders tables so every foreign-key parent precedes its children,
// via a stable Kahn topological sort: among tables whose parents are all
// placed, declaration order wins. This replaces a hand-maintained creation
// list, so adding a table in the "wrong" slice position cannot dangle a
// reference.
func sortTables(tables []Table) ([]Table, error) {
	index := make(map[string]int, len(tables))
	for i, t := range tables {
		index[t.Name] = i
	}

	indegree := make([]int, len(tables))
	children := make([][]int, len(tables))
	for i, t := range tables {
		seen := map[int]bool{}
		for _, fk := range t.ForeignKeys {
			p, ok := index[fk.RefTable]
			if !ok {
				return nil, fmt.Errorf("table %s references undeclared table %s", t.Name, fk.RefTable)
			}
			if p == i || seen[p] {
				continue
			}
			seen[p] = true
			indegree[i]++
			children[p] = append(children[p], i)
		}
	}

	sorted := make([]Table, 0, len(tables))
	placed := make([]bool, len(tables))
	for len(sorted) < len(tables) {
		next := -1
		for i := range tables {
			if !placed[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			return nil, fmt.Errorf("foreign key cycle among remaining tables")
		}
		placed[next] = true
		sorted = append(sorted, tables[next])
		for _, c := range children[next] {
			indegree[c]--
		}
	}

	return sorted, nil
}
