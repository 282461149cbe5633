// Package topology views a mine graph as an undirected network of nodes
// joined by sections, for connectivity checks and routing.
package topology

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/dominikbraun/graph"

	"mineview/internal/log"
	"mineview/internal/mine"
)

// weightScale turns section lengths into the integer edge weights the graph
// library works with (millimeter resolution).
const weightScale = 1000

// Network is the node/section graph of one mine.
type Network struct {
	mine *mine.Graph
	g    graph.Graph[string, mine.Node]

	dangling []string
	parallel []string
	loops    []string
}

// New builds the network. Sections with a missing endpoint, self-loops and
// parallel sections are recorded but do not become edges.
func New(m *mine.Graph) (*Network, error) {
	if m == nil {
		m = mine.NewGraph()
	}
	n := &Network{
		mine: m,
		g:    graph.New(func(node mine.Node) string { return node.ID }, graph.Weighted()),
	}

	for _, kv := range m.Nodes.Order {
		if err := n.g.AddVertex(kv.Value); err != nil {
			return nil, fmt.Errorf("failed to add node %q: %w", kv.Key, err)
		}
	}

	for _, kv := range m.Sections.Order {
		s := kv.Value
		start, end, ok := m.Endpoints(s)
		if !ok {
			n.dangling = append(n.dangling, s.ID)
			continue
		}
		if s.StartNodeID == s.EndNodeID {
			n.loops = append(n.loops, s.ID)
			continue
		}

		err := n.g.AddEdge(s.StartNodeID, s.EndNodeID,
			graph.EdgeWeight(weight(start, end)),
			graph.EdgeData(s.ID))
		switch {
		case errors.Is(err, graph.ErrEdgeAlreadyExists):
			n.parallel = append(n.parallel, s.ID)
		case err != nil:
			return nil, fmt.Errorf("failed to add section %q: %w", s.ID, err)
		}
	}

	log.Debug("topology built",
		"nodes", m.Nodes.Len(),
		"dangling", len(n.dangling),
		"parallel", len(n.parallel),
		"loops", len(n.loops))
	return n, nil
}

func weight(a, b mine.Node) int {
	return int(math.Round(distance(a, b) * weightScale))
}

func distance(a, b mine.Node) float64 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Summary describes the connectivity of the network.
type Summary struct {
	Nodes            int      `json:"nodes"`
	Edges            int      `json:"edges"`
	Components       int      `json:"components"`
	IsolatedNodes    []string `json:"isolatedNodes,omitempty"`
	DanglingSections []string `json:"danglingSections,omitempty"`
	ParallelSections []string `json:"parallelSections,omitempty"`
	SelfLoops        []string `json:"selfLoops,omitempty"`
	TotalLength      float64  `json:"totalLength"`
}

// Summary counts connected components and lists the nodes and sections
// that do not take part in the network.
func (n *Network) Summary() (Summary, error) {
	adjacency, err := n.g.AdjacencyMap()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read adjacency: %w", err)
	}

	sum := Summary{
		Nodes:            len(adjacency),
		DanglingSections: n.dangling,
		ParallelSections: n.parallel,
		SelfLoops:        n.loops,
	}

	seen := make(map[string]bool, len(adjacency))
	for _, kv := range n.mine.Nodes.Order {
		id := kv.Key
		if len(adjacency[id]) == 0 {
			sum.IsolatedNodes = append(sum.IsolatedNodes, id)
		}
		if seen[id] {
			continue
		}
		sum.Components++
		if err := graph.BFS(n.g, id, func(v string) bool {
			seen[v] = true
			return false
		}); err != nil {
			return Summary{}, fmt.Errorf("failed to walk from %q: %w", id, err)
		}
	}

	edges, err := n.g.Edges()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list edges: %w", err)
	}
	sum.Edges = len(edges)
	for _, kv := range n.mine.Sections.Order {
		if start, end, ok := n.mine.Endpoints(kv.Value); ok {
			sum.TotalLength += distance(start, end)
		}
	}
	return sum, nil
}

// Components returns the node ids of each connected component, largest
// first. Ids inside a component keep node order.
func (n *Network) Components() ([][]string, error) {
	index := make(map[string]int)
	var comps [][]string
	for _, kv := range n.mine.Nodes.Order {
		if _, ok := index[kv.Key]; ok {
			continue
		}
		c := len(comps)
		comps = append(comps, nil)
		if err := graph.BFS(n.g, kv.Key, func(v string) bool {
			index[v] = c
			return false
		}); err != nil {
			return nil, err
		}
	}
	for _, kv := range n.mine.Nodes.Order {
		c := index[kv.Key]
		comps[c] = append(comps[c], kv.Key)
	}
	sort.SliceStable(comps, func(i, j int) bool { return len(comps[i]) > len(comps[j]) })
	return comps, nil
}
