// Package sql implements the SQL dialect code generator for gremlin.
//
// For every record of a graph it emits one file, {record}_gremlin.go, next
// to the record declaration. The file holds:
//
//   - the projection constant and the row scanner of the record
//   - Insertable{Record} with its Insert method
//   - Updatable{Record} with its Update method, when the record has
//     settable fields
//   - {Record}Pk with its Fetch and Delete methods
//   - Stream{Records}, returning an iter.Seq2 over all rows
//   - the ToPk, ToUpdatable and Delete methods of the record
//   - compile-time assertions that the shapes satisfy the gremlin contracts
//
// Statements are rendered at generation time, except the insert of records
// with default fields, which is assembled at call time by the dialect/sql
// InsertBuilder.
package sql
