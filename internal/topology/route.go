package topology

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
)

var (
	ErrUnknownNode = errors.New("unknown node")
	ErrNoRoute     = errors.New("no route between nodes")
)

// Route is the shortest way through the tunnels between two nodes.
type Route struct {
	Nodes    []string `json:"nodes"`
	Sections []string `json:"sections"`
	Length   float64  `json:"length"`
}

// Route finds the shortest path by tunnel length.
func (n *Network) Route(from, to string) (Route, error) {
	for _, id := range []string{from, to} {
		if _, err := n.g.Vertex(id); err != nil {
			return Route{}, fmt.Errorf("%w %q", ErrUnknownNode, id)
		}
	}

	path, err := graph.ShortestPath(n.g, from, to)
	if errors.Is(err, graph.ErrTargetNotReachable) {
		return Route{}, fmt.Errorf("%w %q and %q", ErrNoRoute, from, to)
	}
	if err != nil {
		return Route{}, fmt.Errorf("failed to find route: %w", err)
	}

	r := Route{Nodes: path}
	for i := 1; i < len(path); i++ {
		edge, err := n.g.Edge(path[i-1], path[i])
		if err != nil {
			return Route{}, fmt.Errorf("route edge %s-%s: %w", path[i-1], path[i], err)
		}
		if id, ok := edge.Properties.Data.(string); ok {
			r.Sections = append(r.Sections, id)
		}
		r.Length += distance(edge.Source, edge.Target)
	}
	return r, nil
}
