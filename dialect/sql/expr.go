package sql

import (
	"github.com/syssam/strata/schema/field"
)

// Precedence ranks expression kinds. The emitter parenthesizes a
// sub-expression whenever its precedence is strictly lower than the
// precedence of its enclosing expression.
type Precedence int

const (
	PrecUnknown Precedence = -1
	PrecOr      Precedence = 10
	PrecAnd     Precedence = 11
	PrecEq      Precedence = 12
	PrecRel     Precedence = 13
	PrecBitwise Precedence = 14
	PrecAddSub  Precedence = 15
	PrecMulDiv  Precedence = 16
	PrecConcat  Precedence = 17
	PrecUnary   Precedence = 20
	PrecPostfix Precedence = 21
	PrecPrimary Precedence = 100
)

// Expr is a node of the typed expression algebra. Nodes are immutable
// after construction; rendering the same node twice yields byte-identical
// SQL.
type Expr interface {
	// Type returns the SQL storage type the expression evaluates to.
	Type() field.Type
	// Precedence returns the node's precedence rank.
	Precedence() Precedence
	// IsLiteral reports whether the node renders as an inline literal.
	IsLiteral() bool

	writeTo(b *Builder)
}

// emit writes e into b, wrapping it in parentheses when its precedence
// is strictly lower than the enclosing precedence.
func emit(b *Builder, e Expr, outer Precedence) {
	if r, ok := e.(*RawExpr); ok {
		// Raw fragments write their own parentheses.
		r.writeTo(b)
		return
	}
	if e.Precedence() < outer {
		b.WriteByte('(')
		e.writeTo(b)
		b.WriteByte(')')
		return
	}
	e.writeTo(b)
}

// Render renders e into SQL text plus its ordered parameter vector.
// The i-th "?" in the returned text corresponds to params[i].
func Render(e Expr) (string, []Param) {
	b := NewBuilder()
	emit(b, e, PrecUnknown)
	return b.Query()
}

// RenderInto renders e into an existing builder, so several expressions
// can share one parameter vector.
func RenderInto(b *Builder, e Expr) {
	emit(b, e, PrecUnknown)
}

// Value is a literal bound through a parameter slot.
type Value struct {
	v any
	t field.Type
}

// Bind returns a Value expression binding v with type t.
func Bind(v any, t field.Type) *Value {
	return &Value{v: v, t: t}
}

// Null returns an untyped NULL value. It compares against any type.
func Null() *Literal {
	return &Literal{text: "NULL", t: field.TypeInvalid}
}

func (v *Value) Type() field.Type       { return v.t }
func (v *Value) Precedence() Precedence { return PrecPrimary }
func (v *Value) IsLiteral() bool        { return false }

func (v *Value) writeTo(b *Builder) {
	b.WriteByte('?')
	b.args = append(b.args, Param{Value: v.v, Type: v.t})
}

// Literal is an inline literal carried verbatim in the SQL text.
// No parameter slot is allocated.
type Literal struct {
	text string
	t    field.Type
}

// Lit returns a Literal expression with the given rendering and type.
func Lit(text string, t field.Type) *Literal {
	return &Literal{text: text, t: t}
}

func (l *Literal) Type() field.Type       { return l.t }
func (l *Literal) Precedence() Precedence { return PrecPrimary }
func (l *Literal) IsLiteral() bool        { return true }

func (l *Literal) writeTo(b *Builder) {
	b.WriteString(l.text)
}

// Column references a table column.
type Column struct {
	table string
	name  string
	t     field.Type
}

// Col returns a Column expression. The table qualifier may be empty.
func Col(table, name string, t field.Type) *Column {
	return &Column{table: table, name: name, t: t}
}

// Name returns the unqualified column name.
func (c *Column) Name() string { return c.name }

func (c *Column) Type() field.Type       { return c.t }
func (c *Column) Precedence() Precedence { return PrecPrimary }
func (c *Column) IsLiteral() bool        { return false }

func (c *Column) writeTo(b *Builder) {
	if c.table != "" {
		b.Ident(c.table)
		b.WriteByte('.')
	}
	b.Ident(c.name)
}

// FuncCall renders name(arg1, arg2, ...).
type FuncCall struct {
	name string
	args []Expr
	t    field.Type
}

// Call returns a function-call expression with the given result type.
func Call(name string, t field.Type, args ...Expr) *FuncCall {
	return &FuncCall{name: name, args: args, t: t}
}

func (f *FuncCall) Type() field.Type       { return f.t }
func (f *FuncCall) Precedence() Precedence { return PrecPrimary }
func (f *FuncCall) IsLiteral() bool        { return false }

func (f *FuncCall) writeTo(b *Builder) {
	b.WriteString(f.name)
	b.WriteByte('(')
	for i, a := range f.args {
		if i > 0 {
			b.WriteString(", ")
		}
		// Arguments are delimited by commas, not precedence.
		emit(b, a, PrecUnknown)
	}
	b.WriteByte(')')
}

// Infix is a binary operator expression.
type Infix struct {
	left  Expr
	op    string
	right Expr
	prec  Precedence
	t     field.Type
}

// Op returns an infix expression with an explicit operator, precedence
// and result type. It is the escape hatch for operators without a typed
// constructor; no operand check is applied.
func Op(left Expr, op string, prec Precedence, t field.Type, right Expr) *Infix {
	return &Infix{left: left, op: op, right: right, prec: prec, t: t}
}

func (e *Infix) Type() field.Type       { return e.t }
func (e *Infix) Precedence() Precedence { return e.prec }
func (e *Infix) IsLiteral() bool        { return false }

func (e *Infix) writeTo(b *Builder) {
	emit(b, e.left, e.prec)
	b.WriteByte(' ')
	b.WriteString(e.op)
	b.WriteByte(' ')
	emit(b, e.right, e.prec)
}

// comparableTypes reports whether two operand types may be compared:
// identical types, or either side untyped (NULL).
func comparableTypes(l, r Expr) bool {
	lt, rt := l.Type(), r.Type()
	return lt == rt || lt == field.TypeInvalid || rt == field.TypeInvalid
}

func compare(l Expr, op string, prec Precedence, r Expr) (*Infix, error) {
	if !comparableTypes(l, r) {
		return nil, &TypeMismatchError{Op: op, Left: l.Type(), Right: r.Type()}
	}
	return &Infix{left: l, op: op, right: r, prec: prec, t: field.TypeBool}, nil
}

// EQ returns the comparison l = r. Both sides must share a type, or one
// side must be NULL.
func EQ(l, r Expr) (*Infix, error) { return compare(l, "=", PrecEq, r) }

// NEQ returns the comparison l != r.
func NEQ(l, r Expr) (*Infix, error) { return compare(l, "!=", PrecEq, r) }

// LT returns the comparison l < r.
func LT(l, r Expr) (*Infix, error) { return compare(l, "<", PrecRel, r) }

// LTE returns the comparison l <= r.
func LTE(l, r Expr) (*Infix, error) { return compare(l, "<=", PrecRel, r) }

// GT returns the comparison l > r.
func GT(l, r Expr) (*Infix, error) { return compare(l, ">", PrecRel, r) }

// GTE returns the comparison l >= r.
func GTE(l, r Expr) (*Infix, error) { return compare(l, ">=", PrecRel, r) }

func arith(l Expr, op string, prec Precedence, r Expr) (*Infix, error) {
	if !l.Type().Numeric() || !r.Type().Numeric() || l.Type() != r.Type() {
		return nil, &TypeMismatchError{Op: op, Left: l.Type(), Right: r.Type()}
	}
	return &Infix{left: l, op: op, right: r, prec: prec, t: l.Type()}, nil
}

// Add returns the arithmetic expression l + r. Operands must be numeric
// and of the same type.
func Add(l, r Expr) (*Infix, error) { return arith(l, "+", PrecAddSub, r) }

// Sub returns the arithmetic expression l - r.
func Sub(l, r Expr) (*Infix, error) { return arith(l, "-", PrecAddSub, r) }

// Mul returns the arithmetic expression l * r.
func Mul(l, r Expr) (*Infix, error) { return arith(l, "*", PrecMulDiv, r) }

// Div returns the arithmetic expression l / r.
func Div(l, r Expr) (*Infix, error) { return arith(l, "/", PrecMulDiv, r) }

// Concat returns the string concatenation l || r.
func Concat(l, r Expr) (*Infix, error) {
	if l.Type() != field.TypeString || r.Type() != field.TypeString {
		return nil, &TypeMismatchError{Op: "||", Left: l.Type(), Right: r.Type()}
	}
	return &Infix{left: l, op: "||", right: r, prec: PrecConcat, t: field.TypeString}, nil
}

// boolGroup joins boolean operands with AND or OR.
type boolGroup struct {
	op    string
	prec  Precedence
	exprs []Expr
}

func group(op string, prec Precedence, exprs []Expr) (Expr, error) {
	if len(exprs) == 0 {
		return nil, &TypeMismatchError{Op: op, Message: "requires at least one operand"}
	}
	for _, e := range exprs {
		if e.Type() != field.TypeBool {
			return nil, &TypeMismatchError{Op: op, Left: e.Type(), Right: field.TypeBool}
		}
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return &boolGroup{op: op, prec: prec, exprs: exprs}, nil
}

// And joins boolean expressions with AND. A single operand is returned
// unchanged.
func And(exprs ...Expr) (Expr, error) { return group("AND", PrecAnd, exprs) }

// Or joins boolean expressions with OR.
func Or(exprs ...Expr) (Expr, error) { return group("OR", PrecOr, exprs) }

func (g *boolGroup) Type() field.Type       { return field.TypeBool }
func (g *boolGroup) Precedence() Precedence { return g.prec }
func (g *boolGroup) IsLiteral() bool        { return false }

func (g *boolGroup) writeTo(b *Builder) {
	for i, e := range g.exprs {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(g.op)
			b.WriteByte(' ')
		}
		emit(b, e, g.prec)
	}
}

// unaryExpr is a prefix operator: NOT or unary minus.
type unaryExpr struct {
	op    string
	inner Expr
	t     field.Type
}

// Not negates a boolean expression.
func Not(e Expr) (Expr, error) {
	if e.Type() != field.TypeBool {
		return nil, &TypeMismatchError{Op: "NOT", Left: e.Type(), Right: field.TypeBool}
	}
	return &unaryExpr{op: "NOT ", inner: e, t: field.TypeBool}, nil
}

// Neg returns the arithmetic negation of a numeric expression.
func Neg(e Expr) (Expr, error) {
	if !e.Type().Numeric() {
		return nil, &TypeMismatchError{Op: "-", Left: e.Type()}
	}
	return &unaryExpr{op: "-", inner: e, t: e.Type()}, nil
}

func (u *unaryExpr) Type() field.Type       { return u.t }
func (u *unaryExpr) Precedence() Precedence { return PrecUnary }
func (u *unaryExpr) IsLiteral() bool        { return false }

func (u *unaryExpr) writeTo(b *Builder) {
	b.WriteString(u.op)
	emit(b, u.inner, PrecUnary)
}

// nullCheck renders IS NULL / IS NOT NULL.
type nullCheck struct {
	inner   Expr
	negated bool
}

// IsNull returns the postfix check e IS NULL.
func IsNull(e Expr) Expr { return &nullCheck{inner: e} }

// NotNull returns the postfix check e IS NOT NULL.
func NotNull(e Expr) Expr { return &nullCheck{inner: e, negated: true} }

func (n *nullCheck) Type() field.Type       { return field.TypeBool }
func (n *nullCheck) Precedence() Precedence { return PrecPostfix }
func (n *nullCheck) IsLiteral() bool        { return false }

func (n *nullCheck) writeTo(b *Builder) {
	emit(b, n.inner, PrecPostfix)
	if n.negated {
		b.WriteString(" IS NOT NULL")
	} else {
		b.WriteString(" IS NULL")
	}
}

// InExpr renders inner [NOT] IN (v1, v2, ...). Every element is bound
// through a parameter slot with the inner expression's type.
type InExpr struct {
	inner   Expr
	values  []*Value
	negated bool
}

// In returns the membership check e IN (vs...). An empty list renders
// IN (NULL), which evaluates to false for every row.
func In(e Expr, vs ...any) *InExpr {
	return inList(e, vs, false)
}

// NotIn returns the negated membership check e NOT IN (vs...). An empty
// list renders NOT IN (NULL), preserving the "true for every row"
// semantics of an empty exclusion.
func NotIn(e Expr, vs ...any) *InExpr {
	return inList(e, vs, true)
}

func inList(e Expr, vs []any, negated bool) *InExpr {
	in := &InExpr{inner: e, negated: negated}
	for _, v := range vs {
		in.values = append(in.values, Bind(v, e.Type()))
	}
	return in
}

func (in *InExpr) Type() field.Type       { return field.TypeBool }
func (in *InExpr) Precedence() Precedence { return PrecEq }
func (in *InExpr) IsLiteral() bool        { return false }

func (in *InExpr) writeTo(b *Builder) {
	emit(b, in.inner, PrecEq)
	if in.negated {
		b.WriteString(" NOT IN (")
	} else {
		b.WriteString(" IN (")
	}
	if len(in.values) == 0 {
		b.WriteString("NULL")
	}
	for i, v := range in.values {
		if i > 0 {
			b.WriteString(", ")
		}
		v.writeTo(b)
	}
	b.WriteByte(')')
}

// castExpr re-tags the inner expression with a new type. It is
// transparent: no CAST appears in the SQL, and the inner node's
// precedence shows through unchanged.
type castExpr struct {
	inner Expr
	t     field.Type
}

// Cast returns e viewed as type t. Rendering is unchanged.
func Cast(e Expr, t field.Type) Expr {
	return &castExpr{inner: e, t: t}
}

func (c *castExpr) Type() field.Type       { return c.t }
func (c *castExpr) Precedence() Precedence { return c.inner.Precedence() }
func (c *castExpr) IsLiteral() bool        { return c.inner.IsLiteral() }

func (c *castExpr) writeTo(b *Builder) {
	c.inner.writeTo(b)
}

// RawExpr is an opaque SQL fragment with its referenced parameters.
// Its precedence is unknown, so it is parenthesized in every composite
// position; it additionally always wraps itself.
type RawExpr struct {
	sql    string
	params []Param
	t      field.Type
}

// Raw returns an opaque expression rendering (sql) with the given bound
// parameters appended in order.
func Raw(sql string, t field.Type, params ...Param) *RawExpr {
	return &RawExpr{sql: sql, params: params, t: t}
}

func (r *RawExpr) Type() field.Type       { return r.t }
func (r *RawExpr) Precedence() Precedence { return PrecUnknown }
func (r *RawExpr) IsLiteral() bool        { return false }

func (r *RawExpr) writeTo(b *Builder) {
	b.WriteByte('(')
	b.WriteString(r.sql)
	b.WriteByte(')')
	b.args = append(b.args, r.params...)
}
