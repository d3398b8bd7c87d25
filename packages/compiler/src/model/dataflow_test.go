package model_test

import (
	"testing"

	"vgc-go/packages/compiler/src/model"
)

func TestDataFlowGraph(t *testing.T) {
	t.Run("should allocate parentless nodes", func(t *testing.T) {
		g := model.NewDataFlowGraph()
		raw := g.NewNode(model.NodeRaw, nil)
		if g.Parent(raw) != model.InvalidNode {
			t.Errorf("Expected no parent, got %v", g.Parent(raw))
		}
		if g.Kind(raw) != model.NodeRaw {
			t.Errorf("Expected raw kind, got %v", g.Kind(raw))
		}
	})

	t.Run("should splice a node between a child and its parent", func(t *testing.T) {
		g := model.NewDataFlowGraph()
		grandparent := g.NewNode(model.NodeRaw, nil)
		child := g.NewNode(model.NodeRaw, nil)
		g.InsertAsParentOf(child, grandparent)

		tu := g.NewNode(model.NodeTimeUnit, []model.TimeUnitEntry{{Field: "date", TimeUnit: "month"}})
		g.InsertAsParentOf(child, tu)

		if g.Parent(child) != tu {
			t.Errorf("Expected child to re-parent onto the inserted node, got %v", g.Parent(child))
		}
		if g.Parent(tu) != grandparent {
			t.Errorf("Expected the inserted node to take over the old edge, got %v", g.Parent(tu))
		}
		if len(g.TimeUnits(tu)) != 1 || g.TimeUnits(tu)[0].TimeUnit != "month" {
			t.Errorf("Expected the time-unit payload to survive, got %v", g.TimeUnits(tu))
		}
	})
}
