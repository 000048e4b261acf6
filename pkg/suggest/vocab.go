package suggest

import "github.com/leapstack-labs/leapspl/pkg/token"

// Vocabulary returns the static entries offered for category c. Identifier
// and Numeric are filled from the field catalog and return nil.
func Vocabulary(c token.Category) []Entry {
	switch c {
	case token.Connector:
		return []Entry{
			logic("and", "AND", "match both sides"),
			logic("or", "OR", "match either side"),
			logic("not", "NOT", "exclude what follows"),
		}
	case token.To:
		return []Entry{{
			ID: "to", Label: "TO", Tag: TagKeyword, Category: c, Code: "TO",
			Description: "range separator",
			Syntax:      "[<from> TO <to>]",
			Example:     "status=[200 TO 299}",
		}}
	case token.Stats:
		return []Entry{{
			ID: "stats", Label: "stats", Tag: TagOperator, Category: c, Code: "stats",
			Description: "aggregate matching events",
			Syntax:      "stats <agg>(<field>|*) [as <alias>] [by <field>, ...]",
			Example:     "* | stats count(host) as hits by region",
		}}
	case token.As:
		return []Entry{{
			ID: "as", Label: "as", Tag: TagKeyword, Category: c, Code: "as",
			Description: "name the aggregate",
			Syntax:      "as <alias>",
			Example:     "stats avg(latency) as mean",
		}}
	case token.By:
		return []Entry{{
			ID: "by", Label: "by", Tag: TagKeyword, Category: c, Code: "by",
			Description: "group or order by fields",
			Syntax:      "by <field>, ...",
			Example:     "stats count(*) by host, region",
		}}
	case token.Sort:
		return []Entry{{
			ID: "sort", Label: "sort", Tag: TagOperator, Category: c, Code: "sort",
			Description: "order results",
			Syntax:      "sort by <field>[+|-], ...",
			Example:     "sort by hits-",
		}}
	case token.Limit:
		return []Entry{{
			ID: "limit", Label: "limit", Tag: TagOperator, Category: c, Code: "limit",
			Description: "cap the number of results",
			Syntax:      "limit <n>",
			Example:     "limit 10",
		}}
	case token.Fields:
		return []Entry{{
			ID: "fields", Label: "fields", Tag: TagOperator, Category: c, Code: "fields",
			Description: "restrict returned fields",
			Syntax:      "fields [<field>, ...]",
			Example:     "fields [host, status]",
		}}
	case token.Aggregation:
		return []Entry{
			aggregation("count", "count events"),
			aggregation("sum", "sum of values"),
			aggregation("avg", "mean of values"),
			aggregation("min", "smallest value"),
			aggregation("max", "largest value"),
		}
	case token.Numeric, token.Identifier:
		return nil
	case token.Asc:
		return []Entry{symbol(c, "asc", "+", "ascending order")}
	case token.Desc:
		return []Entry{symbol(c, "desc", "-", "descending order")}
	case token.Any:
		return []Entry{symbol(c, "any", "*", "any sequence of characters")}
	case token.One:
		return []Entry{symbol(c, "one", "?", "any single character")}
	case token.Whitespace:
		return []Entry{{ID: "whitespace", Label: " ", Tag: TagGeneral, Category: c, Description: "space", Code: " "}}
	case token.Assign:
		return []Entry{symbol(c, "assign", "=", "equals")}
	case token.Quote:
		return []Entry{symbol(c, "quote", `"`, "string delimiter")}
	case token.Slash:
		return []Entry{symbol(c, "slash", "/", "pattern delimiter")}
	case token.Pipe:
		return []Entry{symbol(c, "pipe", "|", "pipe into the next stage")}
	case token.LeftBracket:
		return []Entry{symbol(c, "left-bracket", "(", "open group")}
	case token.RightBracket:
		return []Entry{symbol(c, "right-bracket", ")", "close group")}
	case token.LeftSquareBracket:
		return []Entry{symbol(c, "left-square-bracket", "[", "inclusive lower bound or field list")}
	case token.RightSquareBracket:
		return []Entry{symbol(c, "right-square-bracket", "]", "inclusive upper bound or end of list")}
	case token.LeftBrace:
		return []Entry{symbol(c, "left-brace", "{", "exclusive lower bound")}
	case token.RightBrace:
		return []Entry{symbol(c, "right-brace", "}", "exclusive upper bound")}
	case token.Comma:
		return []Entry{symbol(c, "comma", ",", "separator")}
	case token.Invalid, token.NumCategories:
		return nil
	}
	return nil
}

func logic(id, label, desc string) Entry {
	return Entry{
		ID: id, Label: label, Tag: TagLogic, Category: token.Connector, Code: label,
		Description: desc,
		Syntax:      "<term> " + label + " <term>",
		Example:     "status=500 " + label + " host=web*",
	}
}

func aggregation(name, desc string) Entry {
	return Entry{
		ID: name, Label: name, Tag: TagFunction, Category: token.Aggregation, Code: name,
		Description: desc,
		Syntax:      name + "(<field>|*)",
		Example:     "stats " + name + "(bytes)",
	}
}

func symbol(c token.Category, id, glyph, desc string) Entry {
	return Entry{ID: id, Label: glyph, Tag: TagSymbol, Category: c, Description: desc, Code: glyph}
}

// Describe returns the documentation entry for a keyword literal such as
// "stats" or "AND", for hover text.
func Describe(c token.Category, literal string) (Entry, bool) {
	entries := Vocabulary(c)
	for _, e := range entries {
		if e.Code == literal {
			return e, true
		}
	}
	if c == token.To && len(entries) > 0 {
		return entries[0], true
	}
	return Entry{}, false
}
