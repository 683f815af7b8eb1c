package parser

import "rubysnap/internal/token"

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет. '**' и унарные операторы
// разбираются отдельно (parseUnary/parsePow).
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precEquality       = 3 // == !=
	precComparison     = 4 // < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / %
)

// binaryPrec возвращает приоритет оператора или -1
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1 // не бинарный оператор
	}
}

// opAssignOperator maps "+=" style tokens to the binary operator they apply.
func opAssignOperator(kind token.Kind) (string, bool) {
	switch kind {
	case token.PlusAssign:
		return "+", true
	case token.MinusAssign:
		return "-", true
	case token.StarAssign:
		return "*", true
	case token.SlashAssign:
		return "/", true
	default:
		return "", false
	}
}

// isArgStart - может ли токен начинать аргумент вызова без скобок.
func isArgStart(kind token.Kind) bool {
	switch kind {
	case token.Ident, token.Const, token.IVar,
		token.IntLit, token.FloatLit, token.StringLit, token.SymbolLit,
		token.KwNil, token.KwTrue, token.KwFalse, token.KwSelf,
		token.KwFile, token.KwLine,
		token.LBracket, token.LParen, token.ColonColon, token.Bang:
		return true
	default:
		return false
	}
}
