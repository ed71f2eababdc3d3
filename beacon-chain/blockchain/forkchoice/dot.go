package forkchoice

import "github.com/emicklei/dot"

// DotGraph renders the current Child Index as a Graphviz dot graph, useful
// when debugging why find_head picked a particular branch. It is a
// diagnostic only -- nothing in the consensus-critical path depends on it.
func (e *Engine) DotGraph() string {
	g := dot.NewGraph(dot.Directed)

	e.children.mu.RLock()
	defer e.children.mu.RUnlock()

	nodes := make(map[BlockRoot]dot.Node)
	node := func(root BlockRoot) dot.Node {
		if n, ok := nodes[root]; ok {
			return n
		}
		n := g.Node(root.String())
		nodes[root] = n
		return n
	}

	for parent, siblings := range e.children.children {
		parentNode := node(parent)
		for child := range siblings {
			g.Edge(parentNode, node(child))
		}
	}

	return g.String()
}
