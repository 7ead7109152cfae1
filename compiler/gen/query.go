package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/strata/compiler/schema"
)

const dialectPkg = "github.com/syssam/strata/dialect"

// clientFile renders client.go: the Client type and one method per
// named query.
func (g *Generator) clientFile() *jen.File {
	f := jen.NewFile(g.cfg.Package)
	f.HeaderComment(header)

	f.Comment("Client runs the named queries against a driver.")
	f.Type().Id("Client").Struct(
		jen.Id("drv").Qual(dialectPkg, "Driver"),
	)

	f.Comment("NewClient returns a client backed by drv.")
	f.Func().Id("NewClient").
		Params(jen.Id("drv").Qual(dialectPkg, "Driver")).
		Op("*").Id("Client").
		Block(jen.Return(jen.Op("&").Id("Client").Values(jen.Dict{
			jen.Id("drv"): jen.Id("drv"),
		})))

	for _, q := range g.schema.Queries {
		g.queryMethod(f, q)
	}
	return f
}

// boundParam is one Go parameter derived from a query placeholder.
type boundParam struct {
	name string
	typ  jen.Code
}

// queryParams derives the parameter list of a query method. Each
// placeholder contributes one parameter; unnamed placeholders are
// numbered in order of appearance.
func queryParams(q *schema.NamedQuery) []boundParam {
	var params []boundParam
	n := 0
	for _, ph := range q.Placeholders() {
		n++
		name := paramName(ph.ParamName())
		if name == "" {
			name = fmt.Sprintf("arg%d", n)
		}
		var typ jen.Code
		switch p := ph.(type) {
		case schema.Positional:
			typ = jen.Id("any")
		case schema.ValueParam:
			typ = baseType(p.Type)
		case schema.InList:
			typ = jen.Index().Id("any")
		case schema.DynamicClause:
			if p.Kind == schema.ClausePredicate {
				typ = jen.Qual(sqlPkg, "Expr")
			} else {
				typ = jen.String()
			}
		}
		params = append(params, boundParam{name: name, typ: typ})
	}
	return params
}

// queryMethod renders one Client method. The literal SQL fragments are
// reproduced verbatim; placeholders bind the method parameters through
// the builder, so argument order follows placeholder order.
func (g *Generator) queryMethod(f *jen.File, q *schema.NamedQuery) {
	method := rules.Camelize(q.Label)
	params := queryParams(q)

	f.Commentf("%s runs the %s query.", method, q.Label)
	f.Func().Params(jen.Id("c").Op("*").Id("Client")).Id(method).
		ParamsFunc(func(pg *jen.Group) {
			pg.Id("ctx").Qual("context", "Context")
			for _, p := range params {
				pg.Id(p.name).Add(p.typ)
			}
		}).
		Params(jen.Op("*").Qual(sqlPkg, "Rows"), jen.Error()).
		BlockFunc(func(bg *jen.Group) {
			bg.Id("b").Op(":=").Qual(sqlPkg, "NewBuilder").Call()
			if g.cfg.TextTime {
				bg.Id("b").Dot("SetSerializer").Call(jen.Qual(fieldPkg, "TextTimeSerializer").Values())
			}
			i := 0
			for _, frag := range q.Fragments {
				switch fr := frag.(type) {
				case schema.LiteralSQL:
					bg.Id("b").Dot("WriteString").Call(jen.Lit(fr.Text))
					continue
				case schema.Positional:
					bg.Id("b").Dot("Arg").Call(jen.Id(params[i].name), jen.Qual(fieldPkg, "TypeInvalid"))
				case schema.ValueParam:
					bg.Id("b").Dot("Arg").Call(jen.Id(params[i].name), jen.Qual(fieldPkg, typeIdent(fr.Type)))
				case schema.InList:
					name := params[i].name
					bg.Id("b").Dot("WriteByte").Call(jen.LitRune('('))
					bg.For(
						jen.List(jen.Id("j"), jen.Id("v")).Op(":=").Range().Id(name),
					).Block(
						jen.If(jen.Id("j").Op(">").Lit(0)).Block(
							jen.Id("b").Dot("WriteString").Call(jen.Lit(", ")),
						),
						jen.Id("b").Dot("Arg").Call(jen.Id("v"), jen.Qual(fieldPkg, "TypeInvalid")),
					)
					bg.Id("b").Dot("WriteByte").Call(jen.LitRune(')'))
				case schema.DynamicClause:
					if fr.Kind == schema.ClausePredicate {
						bg.Qual(sqlPkg, "RenderInto").Call(jen.Id("b"), jen.Id(params[i].name))
					} else {
						bg.Id("b").Dot("WriteString").Call(jen.Id(params[i].name))
					}
				}
				i++
			}
			bg.List(jen.Id("query"), jen.Id("_")).Op(":=").Id("b").Dot("Query").Call()
			bg.List(jen.Id("args"), jen.Err()).Op(":=").Id("b").Dot("Args").Call()
			bg.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err()))
			bg.Var().Id("rows").Qual(sqlPkg, "Rows")
			bg.If(
				jen.Err().Op(":=").Id("c").Dot("drv").Dot("Query").Call(
					jen.Id("ctx"), jen.Id("query"), jen.Id("args"), jen.Op("&").Id("rows"),
				),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Nil(), jen.Err()))
			bg.Return(jen.Op("&").Id("rows"), jen.Nil())
		})
}
