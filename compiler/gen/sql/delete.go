package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gremlin/compiler/gen"
)

// genDelete generates the Delete method of the key shape.
func genDelete(h gen.GeneratorHelper, f *jen.File, t *gen.Type, s *gen.Shape) {
	plan := t.DeletePlan()
	recv := s.Receiver()
	if sd := t.SoftDelete; sd != nil {
		f.Commentf("Delete marks the row with the key as deleted by setting %s.", sd.Column)
	} else {
		f.Comment("Delete deletes the row with the key.")
	}
	f.Func().Params(jen.Id(recv).Op("*").Id(s.Name)).Id("Delete").Params(opParams(h)...).Error().Block(
		constQuery(plan.SQL),
		jen.Return(jen.Qual(h.RuntimePkg(), "Exec").Call(
			jen.Id("ctx"), jen.Id("ex"), jen.Id("query"), bindArgs(h, recv, plan.Params),
		)),
	)
}
