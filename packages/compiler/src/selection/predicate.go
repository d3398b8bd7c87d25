package selection

import (
	"vgc-go/packages/compiler/src/expression"
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/util"
)

// AssembleSelectionPredicate renders a logical AND/OR/NOT tree over
// selection names as a boolean expression testing tuples against the named
// stores. Selections whose empty policy is "all" contribute an empty-store
// escape: the final expression passes everything while those stores are
// empty. Selections projecting time-unit fields lazily splice their
// normalization node into the data pipeline, as parent of insertAt or of the
// model's raw-data root when insertAt is InvalidNode.
func AssembleSelectionPredicate(m *model.UnitModel, tree *spec.LogicalOperand, insertAt model.NodeID) string {
	var emptyChecks []expression.Expr
	test := predicateExpr(m, tree, insertAt, &emptyChecks)
	if len(emptyChecks) == 0 {
		return test.Render()
	}
	prefix := expression.NewNot(expression.NewRaw(joinOr(emptyChecks)))
	return prefix.Render() + " || (" + test.Render() + ")"
}

func joinOr(checks []expression.Expr) string {
	out := ""
	for i, c := range checks {
		if i > 0 {
			out += " || "
		}
		out += c.Render()
	}
	return out
}

func predicateExpr(m *model.UnitModel, o *spec.LogicalOperand, insertAt model.NodeID, emptyChecks *[]expression.Expr) expression.Expr {
	switch {
	case o.Selection != "":
		return leafPredicate(m, o.Selection, insertAt, emptyChecks)
	case o.Not != nil:
		return expression.NewNot(predicateExpr(m, o.Not, insertAt, emptyChecks))
	case len(o.And) > 0:
		ops := make([]expression.Expr, len(o.And))
		for i, c := range o.And {
			ops[i] = predicateExpr(m, c, insertAt, emptyChecks)
		}
		return expression.NewAnd(ops...)
	case len(o.Or) > 0:
		ops := make([]expression.Expr, len(o.Or))
		for i, c := range o.Or {
			ops[i] = predicateExpr(m, c, insertAt, emptyChecks)
		}
		return expression.NewOr(ops...)
	}
	panic(util.Error("empty selection operand"))
}

func leafPredicate(m *model.UnitModel, name string, insertAt model.NodeID, emptyChecks *[]expression.Expr) expression.Expr {
	sel := Lookup(m, name)

	// A store with empty=none never contributes to the treat-empty-as-pass
	// prefix.
	if sel.Empty == spec.EmptyAll {
		*emptyChecks = append(*emptyChecks,
			expression.NewCall("length",
				expression.NewCall("data", expression.NewLiteral(sel.StoreName()))))
	}

	insertTimeUnitNode(m, sel, insertAt)

	args := []expression.Expr{
		expression.NewLiteral(sel.StoreName()),
		expression.NewRaw("datum"),
	}
	if sel.Resolve != spec.ResolveGlobal {
		args = append(args, expression.NewLiteral(sel.Resolve))
	}
	return expression.NewCall("vlSelectionTest", args...)
}

// insertTimeUnitNode splices the selection's shared time-unit normalization
// node into the pipeline the first time a time-unit projection is
// referenced. The node is created once per selection; every call site
// performs its own insertion check.
func insertTimeUnitNode(m *model.UnitModel, sel *model.SelectionComponent, insertAt model.NodeID) {
	if !sel.HasTimeUnit() {
		return
	}
	graph := m.DataGraph()
	if sel.TimeUnitNode == model.InvalidNode {
		var entries []model.TimeUnitEntry
		for _, p := range sel.Project {
			if p.TimeUnit != "" {
				entries = append(entries, model.TimeUnitEntry{Field: p.Field, TimeUnit: p.TimeUnit})
			}
		}
		sel.TimeUnitNode = graph.NewNode(model.NodeTimeUnit, entries)
	}
	if sel.Inserted {
		return
	}
	child := insertAt
	if child == model.InvalidNode {
		child = m.RawDataNode()
	}
	graph.InsertAsParentOf(child, sel.TimeUnitNode)
	sel.Inserted = true
}
