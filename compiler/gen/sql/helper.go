package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gremlin/compiler/gen"
	"github.com/syssam/gremlin/dialect"
)

const (
	dialectPkg = "github.com/syssam/gremlin/dialect"
	pqPkg      = "github.com/lib/pq"
)

// opParams returns the parameters of every generated operation.
func opParams(h gen.GeneratorHelper) []jen.Code {
	return []jen.Code{
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("ex").Qual(h.SQLPkg(), "ExecQuerier"),
	}
}

// opArgs returns the arguments forwarding opParams.
func opArgs() []jen.Code {
	return []jen.Code{jen.Id("ctx"), jen.Id("ex")}
}

// recordPtr returns *Record.
func recordPtr(t *gen.Type) *jen.Statement {
	return jen.Op("*").Id(t.Name)
}

// bindValue returns the value bound for field f, read from v.
func bindValue(h gen.GeneratorHelper, v *jen.Statement, f *gen.Field) jen.Code {
	switch {
	case f.Array && f.Type.IsPointer():
		return jen.Qual(h.RuntimePkg(), "DerefArray").Call(v)
	case f.Array:
		return jen.Qual(pqPkg, "Array").Call(v)
	case f.Deref:
		return jen.Qual(h.RuntimePkg(), "Deref").Call(v)
	}
	return v
}

// bindArgs returns the argument list of a statement, read from the fields
// of the receiver recv. Statements without parameters get nil.
func bindArgs(h gen.GeneratorHelper, recv string, params []*gen.Field) jen.Code {
	if len(params) == 0 {
		return jen.Nil()
	}
	return jen.Index().Any().ValuesFunc(func(grp *jen.Group) {
		for _, f := range params {
			grp.Add(bindValue(h, jen.Id(recv).Dot(f.Name), f))
		}
	})
}

// scanDest returns the scan destination of field f of the record r.
func scanDest(h gen.GeneratorHelper, f *gen.Field) jen.Code {
	dest := jen.Op("&").Id("r").Dot(f.Name)
	switch {
	case f.Array && f.Type.IsPointer():
		return jen.Qual(h.RuntimePkg(), "NullArray").Call(dest)
	case f.Array:
		return jen.Qual(pqPkg, "Array").Call(dest)
	}
	return dest
}

// dialectName returns the dialect constant the record is rendered for.
func dialectName(t *gen.Type) jen.Code {
	if t.DialectName() == dialect.SQLite {
		return jen.Qual(dialectPkg, "SQLite")
	}
	return jen.Qual(dialectPkg, "Postgres")
}

// shapeStruct declares the struct of a shape.
func shapeStruct(h gen.GeneratorHelper, f *jen.File, s *gen.Shape) {
	f.Type().Id(s.Name).StructFunc(func(grp *jen.Group) {
		for _, sf := range s.Fields {
			typ := h.GoType(sf.Field)
			if sf.Wrapped {
				typ = jen.Qual(h.RuntimePkg(), "Defaultable").Types(typ)
			}
			grp.Id(sf.Name).Add(typ)
		}
	})
}

// constQuery declares the statement of an operation as a constant.
func constQuery(sql string) jen.Code {
	return jen.Const().Id("query").Op("=").Lit(sql)
}
