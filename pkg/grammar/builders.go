package grammar

import "github.com/leapstack-labs/leapspl/pkg/token"

// Each builder takes the node that follows the construct once it is
// complete. Builders only wire edges; every child node is built inside a
// factory.

// root accepts search terms, a bare "*", a pipeline stage, and leading
// whitespace.
func root() Node {
	return node(
		term(pipeline(), token.NewSet(token.Stats, token.Sort, token.Limit, token.Fields)),
		searchAll(),
		stageHeads(),
		edge(token.Whitespace, root),
	)
}

// term is any single search term. Categories in h are offered after a
// fragment so partially typed keywords are still suggested.
func term(next Node, h token.Set) Node {
	return node(
		field(next, h),
		quoted(next),
		slashed(next),
		group(next),
	)
}

// field is a bare word, a wildcard pattern or a comparison "name=value".
func field(next Node, h token.Set) Node {
	return edge(token.Identifier, func() Node {
		return node(
			nextField(next),
			hints(h),
			edge(token.Identifier, nowhere),
			edge(token.Any, func() Node { return wildcard(next) }),
			edge(token.One, func() Node { return wildcard(next) }),
			edge(token.Assign, func() Node { return comparison(next) }),
		)
	})
}

// comparison is the right-hand side of "name=".
func comparison(next Node) Node {
	return node(
		interval(next),
		quoted(next),
		slashed(next),
		value(next),
	)
}

func value(next Node) Node {
	return node(
		edge(token.Identifier, func() Node { return valuePiece(next) }),
		edge(token.Numeric, func() Node { return valuePiece(next) }),
		edge(token.Any, func() Node { return wildcard(next) }),
		edge(token.One, func() Node { return wildcard(next) }),
	)
}

// valuePiece follows a word inside a value.
func valuePiece(next Node) Node {
	return node(
		nextField(next),
		edge(token.Identifier, nowhere),
		edge(token.Any, func() Node { return wildcard(next) }),
		edge(token.One, func() Node { return wildcard(next) }),
	)
}

// wildcard follows "*" or "?" inside a word.
func wildcard(next Node) Node {
	return node(
		nextField(next),
		edge(token.Identifier, func() Node { return valuePiece(next) }),
		edge(token.Numeric, func() Node { return valuePiece(next) }),
		edge(token.Any, func() Node { return wildcard(next) }),
		edge(token.One, func() Node { return wildcard(next) }),
	)
}

// nextField follows a complete term: whitespace opens another term or a
// connector, otherwise whatever follows the enclosing construct.
func nextField(next Node) Node {
	return node(
		edge(token.Whitespace, func() Node {
			return node(
				term(next, token.NewSet(token.Connector)),
				connector(next),
				next,
			)
		}),
		next,
	)
}

func connector(next Node) Node {
	return edge(token.Connector, func() Node {
		return edge(token.Whitespace, func() Node {
			return node(term(next, 0), connector(next))
		})
	})
}

func quoted(next Node) Node {
	return delimited(token.Quote, next)
}

func slashed(next Node) Node {
	return delimited(token.Slash, next)
}

// delimited is a literal enclosed in delim. Words and whitespace are
// offered inside it; any other token is accepted quietly.
func delimited(delim token.Category, next Node) Node {
	return edge(delim, func() Node { return literalBody(delim, next) })
}

func literalBody(delim token.Category, next Node) Node {
	body := func() Node { return literalBody(delim, next) }

	var n Node
	for _, c := range token.All() {
		n = n.Merge(quietEdge(c, body))
	}
	return n.Merge(
		edge(token.Identifier, body),
		edge(token.Whitespace, body),
		edge(delim, func() Node { return nextField(next) }),
	)
}

// group is a parenthesized sequence of terms. Groups nest and must balance
// before next is reachable.
func group(next Node) Node {
	return edge(token.LeftBracket, func() Node {
		inner := term(closeGroup(next), 0)
		return node(inner, edge(token.Whitespace, then(inner)))
	})
}

func closeGroup(next Node) Node {
	return edge(token.RightBracket, func() Node { return nextField(next) })
}

// interval is "[a TO b]" with "[" or "{" on either end.
func interval(next Node) Node {
	bounds := func() Node {
		return edge(token.Numeric, func() Node {
			return edge(token.Whitespace, func() Node {
				return edge(token.To, func() Node {
					return edge(token.Whitespace, func() Node {
						return edge(token.Numeric, func() Node {
							closed := func() Node { return nextField(next) }
							return node(
								edge(token.RightSquareBracket, closed),
								edge(token.RightBrace, closed),
							)
						})
					})
				})
			})
		})
	}
	return node(
		edge(token.LeftSquareBracket, bounds),
		edge(token.LeftBrace, bounds),
	)
}

// searchAll is the bare "*" query.
func searchAll() Node {
	return edge(token.Any, func() Node {
		return node(edge(token.Whitespace, pipeline), pipeline())
	})
}

// pipe is "|" with optional whitespace before next.
func pipe(next Node) Node {
	return edge(token.Pipe, func() Node {
		return node(edge(token.Whitespace, then(next)), next)
	})
}

// pipeline follows a search: the first stage may be stats.
func pipeline() Node {
	return pipe(stageHeads())
}

// afterStage follows a stage: further stages are commands only.
func afterStage() Node {
	return pipe(commands())
}

// stageEnd completes a stage, with optional whitespace before the pipe.
func stageEnd() Node {
	return node(edge(token.Whitespace, afterStage), afterStage())
}

func stageHeads() Node {
	return node(stats(), commands())
}

func commands() Node {
	return node(sortStage(), limitStage(), fieldsStage())
}

// stats is "stats agg(field|*) [as alias] [by f, ...]".
func stats() Node {
	return edge(token.Stats, func() Node {
		return edge(token.Whitespace, func() Node {
			return edge(token.Aggregation, func() Node {
				return edge(token.LeftBracket, func() Node {
					closed := func() Node {
						return edge(token.RightBracket, statsTail)
					}
					return node(
						edge(token.Identifier, func() Node {
							return node(closed(), edge(token.Identifier, nowhere))
						}),
						edge(token.Any, closed),
					)
				})
			})
		})
	})
}

func statsTail() Node {
	return node(
		edge(token.Whitespace, func() Node {
			return node(afterStage(), alias(), groupBy())
		}),
		afterStage(),
	)
}

func alias() Node {
	return edge(token.As, func() Node {
		return edge(token.Whitespace, func() Node {
			return edge(token.Identifier, func() Node {
				return node(
					edge(token.Whitespace, func() Node {
						return node(afterStage(), groupBy())
					}),
					afterStage(),
					edge(token.Identifier, nowhere),
				)
			})
		})
	})
}

func groupBy() Node {
	return edge(token.By, func() Node {
		return edge(token.Whitespace, func() Node {
			return fieldList(stageEnd())
		})
	})
}

// fieldList is "f1, f2, ..." followed by next.
func fieldList(next Node) Node {
	return edge(token.Identifier, func() Node {
		return node(
			next,
			edge(token.Comma, func() Node {
				return node(fieldList(next), edge(token.Whitespace, func() Node { return fieldList(next) }))
			}),
			edge(token.Identifier, nowhere),
		)
	})
}

// sortStage is "sort by f1[+|-], f2[+|-], ...".
func sortStage() Node {
	return edge(token.Sort, func() Node {
		return edge(token.Whitespace, func() Node {
			return edge(token.By, func() Node {
				return edge(token.Whitespace, sortList)
			})
		})
	})
}

func sortList() Node {
	return edge(token.Identifier, func() Node {
		return node(
			sortNext(),
			edge(token.Asc, sortNext),
			edge(token.Desc, sortNext),
			edge(token.Identifier, nowhere),
		)
	})
}

func sortNext() Node {
	return node(
		stageEnd(),
		edge(token.Comma, func() Node {
			return node(sortList(), edge(token.Whitespace, sortList))
		}),
	)
}

// limitStage is "limit n".
func limitStage() Node {
	return edge(token.Limit, func() Node {
		return edge(token.Whitespace, func() Node {
			return edge(token.Numeric, stageEnd)
		})
	})
}

// fieldsStage is "fields [f1, f2, ...]".
func fieldsStage() Node {
	return edge(token.Fields, func() Node {
		return edge(token.Whitespace, func() Node {
			return edge(token.LeftSquareBracket, func() Node {
				end := edge(token.RightSquareBracket, stageEnd)
				list := fieldList(node(end, edge(token.Whitespace, then(end))))
				return node(list, edge(token.Whitespace, then(list)))
			})
		})
	})
}
