package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gremlin/compiler/gen"
)

// genCreate generates the insert shape and its Insert method.
func genCreate(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	s := t.InsertableShape()
	if s.Unit() {
		f.Commentf("%s inserts a row made of the column defaults of %s.", s.Name, t.Table)
	} else {
		f.Commentf("%s holds the values inserted into %s.", s.Name, t.Table)
	}
	shapeStruct(h, f, s)

	recv := s.Receiver()
	plan := t.InsertPlan()
	f.Comment("Insert inserts the row and returns it as stored.")
	f.Func().Params(jen.Id(recv).Op("*").Id(s.Name)).Id("Insert").Params(opParams(h)...).Params(recordPtr(t), jen.Error()).BlockFunc(func(grp *jen.Group) {
		if plan.Dynamic() {
			genDynamicInsert(h, grp, t, recv, plan)
			return
		}
		grp.Add(constQuery(plan.Static.SQL))
		grp.Return(queryOne(h, t, bindArgs(h, recv, plan.Static.Params)))
	})
}

// genDynamicInsert assembles the statement at call time: required columns
// are always set, optional columns only when they carry a value.
func genDynamicInsert(h gen.GeneratorHelper, grp *jen.Group, t *gen.Type, recv string, plan *gen.InsertPlan) {
	grp.Id("b").Op(":=").Qual(h.SQLPkg(), "Dialect").Call(dialectName(t)).
		Dot("Insert").Call(jen.Lit(plan.Table)).
		Dot("Returning").Call(jen.Id(t.ColumnsName()))
	for _, fd := range plan.Required {
		grp.Add(setColumn(fd, bindValue(h, jen.Id(recv).Dot(fd.Name), fd)))
	}
	for _, fd := range plan.Optional {
		grp.If(
			jen.List(jen.Id("v"), jen.Id("ok")).Op(":=").Id(recv).Dot(fd.Name).Dot("Get").Call(),
			jen.Id("ok"),
		).Block(
			setColumn(fd, bindValue(h, jen.Id("v"), fd)),
		)
	}
	grp.List(jen.Id("query"), jen.Id("args")).Op(":=").Id("b").Dot("Query").Call()
	grp.Return(queryOne(h, t, jen.Id("args")))
}

// setColumn returns b.Set(column, v), or b.SetCast for cast fields.
func setColumn(fd *gen.Field, v jen.Code) jen.Code {
	if fd.Cast != "" {
		return jen.Id("b").Dot("SetCast").Call(jen.Lit(fd.Column), jen.Lit(fd.Cast), v)
	}
	return jen.Id("b").Dot("Set").Call(jen.Lit(fd.Column), v)
}

// queryOne returns the call running query and scanning exactly one row.
func queryOne(h gen.GeneratorHelper, t *gen.Type, args jen.Code) jen.Code {
	return jen.Qual(h.RuntimePkg(), "QueryOne").Call(
		jen.Id("ctx"), jen.Id("ex"), jen.Lit(t.Label()), jen.Id("query"), args, jen.Id(t.ScanName()),
	)
}
