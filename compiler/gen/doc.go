// Package gen turns loaded records into the model the code generators work
// from, and writes the generated companion files.
//
// # Pipeline
//
//	//gremlin:entity records (compiler/load)
//	        ↓
//	   Graph of Types (keys, insert/update fields, soft delete)
//	        ↓
//	   Shapes and query plans (Insertable, Updatable, Pk; SQL text)
//	        ↓
//	   RecordGenerator (compiler/gen/sql)
//	        ↓
//	   {record}_gremlin.go next to each record
//
// # Key Types
//
//   - Graph: the records of one run, checked for identifier collisions
//   - Type: a record with its table, fields and soft delete column
//   - Field: a record field with its column, cast and binding options
//   - Shape: the Insertable, Updatable or Pk struct derived from a Type
//   - InsertPlan, QueryPlan: the statements of a record and their parameters
//   - JenniferGenerator: renders every record in parallel and writes the
//     files once all of them rendered
//
// # Error Handling
//
//   - SchemaError: a record or field is declared wrongly
//   - ConfigError: an option has an invalid value
//   - GenerationError: rendering, formatting or writing a file failed
//   - ValidationError: a value failed a check
//
// NewGraph reports every invalid record of a run at once:
//
//	graph, err := gen.NewGraph(cfg, schemas...)
//	if gen.IsSchemaError(err) {
//		// fix the records
//	}
//
// # Configuration
//
//	cfg, err := gen.NewConfig(
//		gen.WithDialect(dialect.SQLite),
//		gen.WithWorkers(4),
//		gen.WithGenerator(sql.Generator()),
//	)
//
// Other options: WithHeader, WithSuffix, WithBuildFlags and WithHooks.
// Files are always written to the package directory of their record.
package gen
