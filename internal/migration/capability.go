package migration

// Backend is the capability gate: before the engine emits enum-type or
// foreign-key statements it consults the active backend's entry here.
// Backends without native enum types store enum values as text columns;
// backends that cannot add foreign-key constraints keep the relationship
// metadata declaration-side only, and cascades must be emulated by the
// repositories.
type Backend struct {
	Name        string
	EnumTypes   bool
	ForeignKeys bool
	// RowLocking reports SELECT ... FOR UPDATE support. sqlite serializes
	// writers at the database level instead, so the clause would be a syntax
	// error there.
	RowLocking bool
}

// BackendFor maps a gorm dialect name to its capabilities. Unknown backends
// are assumed to take standard DML/DDL but not postgres-style enum types.
func BackendFor(dialect string) Backend {
	switch dialect {
	case "postgres":
		return Backend{Name: "postgres", EnumTypes: true, ForeignKeys: true, RowLocking: true}
	case "sqlite":
		// sqlite has no ALTER TABLE ... ADD CONSTRAINT, so the foreign-key
		// stage is skipped entirely.
		return Backend{Name: "sqlite", EnumTypes: false, ForeignKeys: false, RowLocking: false}
	case "mysql":
		return Backend{Name: "mysql", EnumTypes: false, ForeignKeys: true, RowLocking: true}
	default:
		return Backend{Name: dialect, EnumTypes: false, ForeignKeys: true, RowLocking: true}
	}
}
