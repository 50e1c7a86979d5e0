package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gremlin/compiler/gen"
)

// genPk generates the key shape with its Fetch and Delete methods.
func genPk(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	s := t.PkShape()
	f.Commentf("%s is the key of a row of %s.", s.Name, t.Table)
	shapeStruct(h, f, s)
	genFetch(h, f, t, s)
	genDelete(h, f, t, s)
}

// genFetch generates the Fetch method of the key shape.
func genFetch(h gen.GeneratorHelper, f *jen.File, t *gen.Type, s *gen.Shape) {
	plan := t.FetchPlan()
	recv := s.Receiver()
	f.Comment("Fetch returns the row with the key, or nil if there is none.")
	f.Func().Params(jen.Id(recv).Op("*").Id(s.Name)).Id("Fetch").Params(opParams(h)...).Params(recordPtr(t), jen.Error()).Block(
		constQuery(plan.SQL),
		jen.Return(jen.Qual(h.RuntimePkg(), "QueryOptional").Call(
			jen.Id("ctx"), jen.Id("ex"), jen.Id("query"), bindArgs(h, recv, plan.Params), jen.Id(t.ScanName()),
		)),
	)
}

// genStream generates the function streaming every row of the table.
func genStream(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	plan := t.StreamPlan()
	name := t.StreamName()
	if t.SoftDelete != nil {
		f.Commentf("%s returns the rows of %s that are not soft deleted, in the order the database yields them.", name, t.Table)
	} else {
		f.Commentf("%s returns every row of %s, in the order the database yields them.", name, t.Table)
	}
	f.Comment("Each range over the sequence runs the query again.")
	f.Func().Id(name).Params(opParams(h)...).Qual("iter", "Seq2").Types(recordPtr(t), jen.Error()).Block(
		constQuery(plan.SQL),
		jen.Return(jen.Qual(h.RuntimePkg(), "Stream").Call(
			jen.Id("ctx"), jen.Id("ex"), jen.Id("query"), jen.Nil(), jen.Id(t.ScanName()),
		)),
	)
}
