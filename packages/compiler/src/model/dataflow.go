package model

// NodeID is an index into a DataFlowGraph's node arena.
type NodeID int

// InvalidNode is the zero-value node reference.
const InvalidNode NodeID = -1

// NodeKind distinguishes pipeline node types.
type NodeKind int

const (
	// NodeRaw is a view's raw-data pipeline root.
	NodeRaw NodeKind = iota
	// NodeTimeUnit normalizes temporal fields before selection predicates
	// compare them against stored tuples.
	NodeTimeUnit
)

// TimeUnitEntry is one field normalization carried by a time-unit node.
type TimeUnitEntry struct {
	Field    string
	TimeUnit string
}

type dataFlowNode struct {
	kind      NodeKind
	parent    NodeID
	timeUnits []TimeUnitEntry
}

// DataFlowGraph is an arena-indexed DAG of pipeline nodes. Nodes reference
// their parent by index; splicing a node into the pipeline is an explicit
// graph edit rather than object surgery.
type DataFlowGraph struct {
	nodes []dataFlowNode
}

// NewDataFlowGraph creates an empty graph.
func NewDataFlowGraph() *DataFlowGraph {
	return &DataFlowGraph{}
}

// NewNode allocates a node with no parent.
func (g *DataFlowGraph) NewNode(kind NodeKind, timeUnits []TimeUnitEntry) NodeID {
	g.nodes = append(g.nodes, dataFlowNode{kind: kind, parent: InvalidNode, timeUnits: timeUnits})
	return NodeID(len(g.nodes) - 1)
}

// Kind returns a node's kind.
func (g *DataFlowGraph) Kind(id NodeID) NodeKind { return g.nodes[id].kind }

// Parent returns a node's parent, or InvalidNode.
func (g *DataFlowGraph) Parent(id NodeID) NodeID { return g.nodes[id].parent }

// TimeUnits returns the normalizations carried by a time-unit node.
func (g *DataFlowGraph) TimeUnits(id NodeID) []TimeUnitEntry { return g.nodes[id].timeUnits }

// Len returns the number of allocated nodes.
func (g *DataFlowGraph) Len() int { return len(g.nodes) }

// InsertAsParentOf splices `inserted` between `child` and its current
// parent: `inserted` takes over the child's old parent edge and the child
// re-parents onto `inserted`.
func (g *DataFlowGraph) InsertAsParentOf(child, inserted NodeID) {
	g.nodes[inserted].parent = g.nodes[child].parent
	g.nodes[child].parent = inserted
}
