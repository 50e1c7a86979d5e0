package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gremlin/compiler/gen"
)

// genRecord generates the projection, the row scanner and the methods
// declared on the record itself.
func genRecord(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	f.Commentf("%s is the projection of %s, in field order.", t.ColumnsName(), t.Name)
	f.Const().Id(t.ColumnsName()).Op("=").Lit(t.Columns())

	f.Commentf("%s scans one row of %s.", t.ScanName(), t.ColumnsName())
	f.Func().Id(t.ScanName()).Params(
		jen.Id("s").Qual(h.RuntimePkg(), "Scanner"),
	).Params(recordPtr(t), jen.Error()).Block(
		jen.Id("r").Op(":=").Op("&").Id(t.Name).Values(),
		jen.If(
			jen.Err().Op(":=").Id("s").Dot("Scan").CallFunc(func(grp *jen.Group) {
				for _, fd := range t.Fields {
					grp.Add(scanDest(h, fd))
				}
			}),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Return(jen.Nil(), jen.Err()),
		),
		jen.Return(jen.Id("r"), jen.Nil()),
	)

	recv := t.Receiver()
	pk := t.PkShape()
	f.Comment("ToPk returns the key of the record.")
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id("ToPk").Params().Op("*").Id(pk.Name).Block(
		jen.Return(copyShape(recv, pk)),
	)

	if up, ok := t.UpdatableShape(); ok {
		f.Commentf("ToUpdatable returns the current values of the record as %s.", up.Name)
		f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id("ToUpdatable").Params().Op("*").Id(up.Name).Block(
			jen.Return(copyShape(recv, up)),
		)
	}

	f.Comment("Delete deletes the record by key. It is a shorthand for ToPk().Delete.")
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id("Delete").Params(opParams(h)...).Error().Block(
		jen.Return(jen.Id(recv).Dot("ToPk").Call().Dot("Delete").Call(opArgs()...)),
	)
}

// copyShape returns &Shape{F: recv.F, ...}.
func copyShape(recv string, s *gen.Shape) jen.Code {
	return jen.Op("&").Id(s.Name).Values(jen.DictFunc(func(d jen.Dict) {
		for _, sf := range s.Fields {
			d[jen.Id(sf.Name)] = jen.Id(recv).Dot(sf.Name)
		}
	}))
}

// genContracts asserts at compile time that the generated shapes satisfy the
// gremlin operation contracts.
func genContracts(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	rt := h.RuntimePkg()
	rec := jen.Id(t.Name)
	f.Var().DefsFunc(func(grp *jen.Group) {
		grp.Id("_").Qual(rt, "Inserter").Types(rec).Op("=").Parens(jen.Op("*").Id(t.InsertableName())).Parens(jen.Nil())
		if up, ok := t.UpdatableShape(); ok {
			grp.Id("_").Qual(rt, "Updater").Types(rec).Op("=").Parens(jen.Op("*").Id(up.Name)).Parens(jen.Nil())
		}
		grp.Id("_").Qual(rt, "Deleter").Op("=").Parens(jen.Op("*").Id(t.PkName())).Parens(jen.Nil())
		grp.Id("_").Qual(rt, "Deleter").Op("=").Parens(recordPtr(t)).Parens(jen.Nil())
		grp.Id("_").Qual(rt, "Fetcher").Types(rec).Op("=").Parens(jen.Op("*").Id(t.PkName())).Parens(jen.Nil())
		grp.Id("_").Qual(rt, "StreamFunc").Types(rec).Op("=").Id(t.StreamName())
	})
}
