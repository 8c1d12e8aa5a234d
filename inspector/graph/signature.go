package graph

import "strings"

// BuildSignature renders the function header the way inspect.signature prints it,
// prefixed with the name.
func (fn *Function) BuildSignature() string {
	builder := strings.Builder{}
	if fn.IsAsync {
		builder.WriteString("async ")
	}
	builder.WriteString(fn.Name)
	if len(fn.TypeParams) > 0 {
		builder.WriteString("[")
		for i, param := range fn.TypeParams {
			if i > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(param.String())
		}
		builder.WriteString("]")
	}
	builder.WriteString("(")
	var items []string
	for i, param := range fn.Parameters {
		if param.Kind == KeywordOnly && (i == 0 || fn.Parameters[i-1].Kind != VarPositional && fn.Parameters[i-1].Kind != KeywordOnly) {
			items = append(items, "*")
		}
		items = append(items, param.String())
		if param.Kind == PositionalOnly && (i+1 == len(fn.Parameters) || fn.Parameters[i+1].Kind != PositionalOnly) {
			items = append(items, "/")
		}
	}
	builder.WriteString(strings.Join(items, ", "))
	builder.WriteString(")")
	if len(fn.Results) > 0 {
		builder.WriteString(" -> ")
		builder.WriteString(fn.Results[0].Type)
	}
	return builder.String()
}

// String renders the parameter as written in a def statement.
func (param *Parameter) String() string {
	ret := param.Name
	switch param.Kind {
	case VarPositional:
		ret = "*" + ret
	case VarKeyword:
		ret = "**" + ret
	}
	if param.Type != "" {
		ret += ": " + param.Type
		if param.Default != "" {
			ret += " = " + param.Default
		}
		return ret
	}
	if param.Default != "" {
		ret += "=" + param.Default
	}
	return ret
}

// String renders the type parameter as written in brackets.
func (param *TypeParam) String() string {
	ret := param.Name
	switch param.Kind {
	case ParamSpec:
		ret = "**" + ret
	case TypeVarTuple:
		ret = "*" + ret
	}
	if param.Constraint != "" {
		ret += ": " + param.Constraint
	}
	if param.Default != "" {
		ret += " = " + param.Default
	}
	return ret
}
