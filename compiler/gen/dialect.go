package gen

import "github.com/dave/jennifer/jen"

// RecordGenerator generates the code of one record.
// It is called once per record, possibly concurrently for different records.
type RecordGenerator interface {
	// Name returns the dialect name (e.g. "sql").
	Name() string
	// GenRecord generates the companion file of the record ({record}_gremlin.go).
	GenRecord(t *Type) *jen.File
}

// GeneratorHelper provides helper methods for dialect implementations.
// JenniferGenerator implements this interface, allowing dialect packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file in the package of the record,
	// with the standard header comment.
	NewFile(t *Type) *jen.File

	// GoType returns the Jennifer code for a field's Go type.
	GoType(f *Field) jen.Code

	// RuntimePkg returns the import path of the gremlin runtime package.
	RuntimePkg() string

	// SQLPkg returns the import path of the dialect/sql package.
	SQLPkg() string

	// Graph returns the record graph.
	Graph() *Graph
}
