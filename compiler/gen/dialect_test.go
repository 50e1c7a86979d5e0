package gen

import (
	"github.com/dave/jennifer/jen"
)

// stubDialect emits a file declaring the record's projection constant.
type stubDialect struct {
	helper GeneratorHelper
	// fail names records whose file is emitted with a syntax error.
	fail map[string]bool
}

func (d *stubDialect) Name() string { return "stub" }

func (d *stubDialect) GenRecord(t *Type) *jen.File {
	f := d.helper.NewFile(t)
	if d.fail[t.Name] {
		f.Id("func (")
		return f
	}
	f.Const().Id(t.ColumnsName()).Op("=").Lit(t.Columns())
	return f
}

var _ RecordGenerator = (*stubDialect)(nil)
