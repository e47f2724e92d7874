package ast

// Приоритеты операторов Lua (чем больше, тем сильнее связывает).
// Левый и правый приоритеты различаются у правоассоциативных ".." и "^".
const (
	PrioOr         = 1
	PrioAnd        = 2
	PrioComparison = 3
	PrioBitOr      = 4
	PrioBitXor     = 5
	PrioBitAnd     = 6
	PrioShift      = 7
	PrioConcat     = 9
	PrioAdditive   = 10
	PrioMultiplic  = 11
	PrioUnary      = 12
	PrioPow        = 14
)

type binaryPriority struct{ left, right int }

var binaryPriorities = map[string]binaryPriority{
	"or":  {PrioOr, PrioOr},
	"and": {PrioAnd, PrioAnd},
	"<":   {PrioComparison, PrioComparison},
	">":   {PrioComparison, PrioComparison},
	"<=":  {PrioComparison, PrioComparison},
	">=":  {PrioComparison, PrioComparison},
	"~=":  {PrioComparison, PrioComparison},
	"==":  {PrioComparison, PrioComparison},
	"|":   {PrioBitOr, PrioBitOr},
	"~":   {PrioBitXor, PrioBitXor},
	"&":   {PrioBitAnd, PrioBitAnd},
	"<<":  {PrioShift, PrioShift},
	">>":  {PrioShift, PrioShift},
	"..":  {PrioConcat, PrioConcat - 1},
	"+":   {PrioAdditive, PrioAdditive},
	"-":   {PrioAdditive, PrioAdditive},
	"*":   {PrioMultiplic, PrioMultiplic},
	"/":   {PrioMultiplic, PrioMultiplic},
	"//":  {PrioMultiplic, PrioMultiplic},
	"%":   {PrioMultiplic, PrioMultiplic},
	"^":   {PrioPow, PrioPow - 1},
}

// BinaryPriority returns the left and right binding priority of a binary
// operator. Right-associative operators bind weaker on the right.
func BinaryPriority(op string) (left, right int, ok bool) {
	p, ok := binaryPriorities[op]
	return p.left, p.right, ok
}

// IsRightAssoc reports whether op groups right to left.
func IsRightAssoc(op string) bool {
	p, ok := binaryPriorities[op]
	return ok && p.right < p.left
}

// IsLogicalOp reports whether op builds a LogicalExpression.
func IsLogicalOp(op string) bool {
	return op == "and" || op == "or"
}
