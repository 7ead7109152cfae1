package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/strata/compiler/schema"
	"github.com/syssam/strata/schema/field"
)

const header = "Code generated by strata. DO NOT EDIT."

// entityFile renders the per-table file: the entity struct, table and
// column constants, typed column handles, and the scan helper.
func (g *Generator) entityFile(t *schema.Table) *jen.File {
	f := jen.NewFile(g.cfg.Package)
	f.HeaderComment(header)
	name := t.EntityName()

	f.Commentf("%s is the model entity of the %s table.", name, t.Name)
	f.Type().Id(name).StructFunc(func(sg *jen.Group) {
		for _, c := range t.Columns {
			sg.Id(fieldName(c.Name)).Add(goType(c)).Tag(map[string]string{"json": c.Name})
		}
	})

	f.Commentf("%sTable holds the table name.", name)
	f.Const().Id(name + "Table").Op("=").Lit(t.Name)

	f.Commentf("Column names of the %s table.", t.Name)
	f.Const().DefsFunc(func(cg *jen.Group) {
		for _, c := range t.Columns {
			cg.Id(name + "Field" + fieldName(c.Name)).Op("=").Lit(c.Name)
		}
	})

	f.Commentf("%sColumns lists the columns in schema order.", name)
	f.Var().Id(name + "Columns").Op("=").Index().String().ValuesFunc(func(vg *jen.Group) {
		for _, c := range t.Columns {
			vg.Id(name + "Field" + fieldName(c.Name))
		}
	})

	f.Commentf("%sCols exposes typed column handles for building predicates.", name)
	f.Var().Id(name+"Cols").Op("=").StructFunc(func(sg *jen.Group) {
		for _, c := range t.Columns {
			sg.Id(fieldName(c.Name)).Op("*").Qual(sqlPkg, "Column")
		}
	}).Values(jen.DictFunc(func(d jen.Dict) {
		for _, c := range t.Columns {
			d[jen.Id(fieldName(c.Name))] = jen.Qual(sqlPkg, "Col").Call(
				jen.Id(name+"Table"), jen.Lit(c.Name), jen.Qual(fieldPkg, typeIdent(c.Type)),
			)
		}
	}))

	g.scanHelper(f, t, name)
	return f
}

// scanHelper renders Scan<Entity>, which reads one row in column order
// through the database/sql null scanner types.
func (g *Generator) scanHelper(f *jen.File, t *schema.Table, name string) {
	f.Commentf("Scan%s reads one row in %sColumns order.", name, name)
	f.Func().Id("Scan"+name).
		Params(jen.Id("rows").Qual(sqlPkg, "ColumnScanner")).
		Params(jen.Op("*").Id(name), jen.Error()).
		BlockFunc(func(bg *jen.Group) {
			bg.Var().DefsFunc(func(vg *jen.Group) {
				for _, c := range t.Columns {
					vg.Id(scanVar(c)).Add(scanType(c))
				}
			})
			bg.If(
				jen.Err().Op(":=").Id("rows").Dot("Scan").CallFunc(func(ag *jen.Group) {
					for _, c := range t.Columns {
						ag.Op("&").Id(scanVar(c))
					}
				}),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Nil(), jen.Err()))
			bg.Id("e").Op(":=").Op("&").Id(name).Values()
			for _, c := range t.Columns {
				assignColumn(bg, c)
			}
			bg.Return(jen.Id("e"), jen.Nil())
		})
}

func scanVar(c *schema.Column) string {
	return "v" + fieldName(c.Name)
}

func scanType(c *schema.Column) jen.Code {
	switch c.Type {
	case field.TypeBytes:
		return jen.Index().Byte()
	case field.TypeInvalid:
		return jen.Id("any")
	default:
		return jen.Qual(sqlPkg, c.Type.NullType())
	}
}

// nullValueField names the payload field of the database/sql null
// scanner type for t.
func nullValueField(t field.Type) string {
	switch t {
	case field.TypeInt:
		return "Int64"
	case field.TypeFloat:
		return "Float64"
	case field.TypeString:
		return "String"
	case field.TypeBool:
		return "Bool"
	case field.TypeTime:
		return "Time"
	default:
		return ""
	}
}

func assignColumn(bg *jen.Group, c *schema.Column) {
	target := jen.Id("e").Dot(fieldName(c.Name))
	switch {
	case c.Type == field.TypeBytes || c.Type == field.TypeInvalid:
		bg.Add(target).Op("=").Id(scanVar(c))
	case c.Nullable:
		bg.If(jen.Id(scanVar(c)).Dot("Valid")).Block(
			jen.Id("v").Op(":=").Id(scanVar(c)).Dot(nullValueField(c.Type)),
			jen.Add(target).Op("=").Op("&").Id("v"),
		)
	default:
		bg.Add(target).Op("=").Id(scanVar(c)).Dot(nullValueField(c.Type))
	}
}
