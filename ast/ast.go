// Package ast defines the typed abstract syntax tree produced by the
// parser and walked by the semantic analyzer and interpreter.
package ast

import "github.com/EricksonLOOP/craze/lexer"

// DataType is the closed set of types a Craze expression or declaration
// can carry. Invalid is used internally by the semantic analyzer to
// propagate a failed type computation; it must never appear on a node
// that came out of the parser.
type DataType string

const (
	Int     DataType = "int"
	Float   DataType = "float"
	String  DataType = "string"
	Bool    DataType = "bool"
	Void    DataType = "void"
	Invalid DataType = "invalid"
)

// Node is implemented by every AST node kind. Every node carries its
// originating source position so later stages can report diagnostics
// against it.
type Node interface {
	Pos() Position
}

// Position is the 1-based line/column of a node's first token.
type Position struct {
	Line   int
	Column int
}

func (p Position) Pos() Position { return p }

// Stmt is implemented by every statement-level node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression-level node.
type Expr interface {
	Node
	exprNode()
}

// Block is an ordered, owned list of statements. It is the body of a
// function, an if/else arm, a while loop, or a bare nested block.
type Block struct {
	Position
	Statements []Stmt
}

func (*Block) stmtNode() {}

// VarDecl declares a new variable with a required initializer:
// let NAME: TYPE = EXPR ;
type VarDecl struct {
	Position
	Name        string
	DeclaredType DataType
	Init        Expr
}

func (*VarDecl) stmtNode() {}

// Param is one formal parameter of a function declaration.
type Param struct {
	Position
	Name         string
	DeclaredType DataType
}

// FuncDecl declares a named function:
// fn NAME(PARAMS): RETURN_TYPE BLOCK
type FuncDecl struct {
	Position
	Name       string
	Params     []Param
	ReturnType DataType
	Body       *Block
}

func (*FuncDecl) stmtNode() {}

// If is a conditional statement with a required then-block and an
// optional else-block.
type If struct {
	Position
	Cond Expr
	Then *Block
	Else *Block // nil if there is no else clause
}

func (*If) stmtNode() {}

// While is a pre-tested loop.
type While struct {
	Position
	Cond Expr
	Body *Block
}

func (*While) stmtNode() {}

// Return optionally carries a value expression; Value is nil for a bare
// `return;`.
type Return struct {
	Position
	Value Expr
}

func (*Return) stmtNode() {}

// ExprStmt is an expression evaluated purely for its side effects.
type ExprStmt struct {
	Position
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

// BinaryExpr applies a binary operator to two operands. Operator is the
// originating token's type so the semantic analyzer and interpreter can
// switch on it directly.
type BinaryExpr struct {
	Position
	Operator lexer.TokenType
	Left     Expr
	Right    Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr applies a unary operator to a single operand. The only
// surface unary operator is arithmetic negation.
type UnaryExpr struct {
	Position
	Operator lexer.TokenType
	Operand  Expr
}

func (*UnaryExpr) exprNode() {}

// Assign overwrites the nearest enclosing binding for Target with the
// evaluated Value; the expression's own value is the assigned value.
type Assign struct {
	Position
	Target string
	Value  Expr
}

func (*Assign) exprNode() {}

// Call invokes a function or builtin by its unqualified name.
type Call struct {
	Position
	Callee string
	Args   []Expr
}

func (*Call) exprNode() {}

// Var references a variable by name.
type Var struct {
	Position
	Name string
}

func (*Var) exprNode() {}

// LiteralKind distinguishes which field of Literal carries the value.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BoolLiteral
)

// Literal is a constant value fixed at parse time. Its DataType is
// resolved at construction (the analyzer never writes back to nodes).
type Literal struct {
	Position
	Kind        LiteralKind
	IntValue    int64
	FloatValue  float64
	StringValue string
	BoolValue   bool
}

func (*Literal) exprNode() {}

// Type returns the primitive DataType a literal of this kind carries.
func (l *Literal) Type() DataType {
	switch l.Kind {
	case IntLiteral:
		return Int
	case FloatLiteral:
		return Float
	case StringLiteral:
		return String
	case BoolLiteral:
		return Bool
	default:
		return Invalid
	}
}

// Program is the synthetic top-level block the parser roots every parsed
// file at.
type Program struct {
	Statements []Stmt
}

// BadStmt stands in for a statement the parser could not make sense of
// after a syntax error, so that panic-mode recovery can keep building a
// tree instead of aborting. The analyzer and interpreter both skip over
// it silently — the parser has already reported its error.
type BadStmt struct {
	Position
	Err string
}

func (*BadStmt) stmtNode() {}

