package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gremlin/compiler/gen"
)

// genUpdate generates the update shape and its Update method. Records
// without settable fields get neither.
func genUpdate(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	s, ok := t.UpdatableShape()
	if !ok {
		return
	}
	plan, _ := t.UpdatePlan()
	f.Commentf("%s holds the key of a row of %s and the values to store.", s.Name, t.Table)
	shapeStruct(h, f, s)

	recv := s.Receiver()
	f.Comment("Update updates the row and returns it as stored.")
	if t.SoftDelete != nil {
		f.Comment("A missing or soft deleted row is a *gremlin.NotFoundError.")
	} else {
		f.Comment("A missing row is a *gremlin.NotFoundError.")
	}
	f.Func().Params(jen.Id(recv).Op("*").Id(s.Name)).Id("Update").Params(opParams(h)...).Params(recordPtr(t), jen.Error()).Block(
		constQuery(plan.SQL),
		jen.Return(queryOne(h, t, bindArgs(h, recv, plan.Params))),
	)
}
