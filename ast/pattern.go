package ast

type (
	// MatchCase is one case block of a match statement.
	MatchCase struct {
		Pattern Pattern `py:"pattern"`
		Guard   Expr    `py:"guard,optional"`
		Body    []Stmt  `py:"body"`
	}

	MatchValue struct {
		Loc
		Value Expr `py:"value"`
	}

	// MatchSingleton matches None, True or False.
	MatchSingleton struct {
		Loc
		Value ConstantValue `py:"value"`
	}

	MatchSequence struct {
		Loc
		Patterns []Pattern `py:"patterns"`
	}

	// MatchMapping matches a mapping; Rest names the **rest capture.
	MatchMapping struct {
		Loc
		Keys     []Expr    `py:"keys"`
		Patterns []Pattern `py:"patterns"`
		Rest     *string   `py:"rest"`
	}

	MatchClass struct {
		Loc
		Cls         Expr      `py:"cls"`
		Patterns    []Pattern `py:"patterns"`
		KwdAttrs    []string  `py:"kwd_attrs"`
		KwdPatterns []Pattern `py:"kwd_patterns"`
	}

	MatchStar struct {
		Loc
		Name *string `py:"name"`
	}

	// MatchAs is a capture or wildcard pattern; both fields nil means "_".
	MatchAs struct {
		Loc
		Pattern Pattern `py:"pattern,optional"`
		Name    *string `py:"name"`
	}

	MatchOr struct {
		Loc
		Patterns []Pattern `py:"patterns"`
	}
)
