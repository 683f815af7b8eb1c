package token

var keywords = map[string]Kind{
	"def":      KwDef,
	"end":      KwEnd,
	"if":       KwIf,
	"elsif":    KwElsif,
	"else":     KwElse,
	"unless":   KwUnless,
	"while":    KwWhile,
	"until":    KwUntil,
	"return":   KwReturn,
	"nil":      KwNil,
	"true":     KwTrue,
	"false":    KwFalse,
	"self":     KwSelf,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
	"class":    KwClass,
	"module":   KwModule,
	"then":     KwThen,
	"do":       KwDo,
	"begin":    KwBegin,
	"__FILE__": KwFile,
	"__LINE__": KwLine,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
