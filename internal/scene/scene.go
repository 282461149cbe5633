// Package scene assembles the tunnel meshes of a mine graph into named
// groups, one per horizon and one per excavation.
//
// A Scene is an arena: it records which mesh handles each group owns and
// releases exactly those on teardown, so a rebuild never leaves geometry
// from the previous build behind.
package scene

import (
	"errors"
	"strings"
	"sync"

	"cogentcore.org/core/base/ordmap"

	"mineview/internal/geom"
	"mineview/internal/log"
	"mineview/internal/mine"
	"mineview/internal/tunnel"
)

// RootName is the name of the group that holds every mine group.
const RootName = "mineGroup"

const (
	horizonPrefix    = "Horizon_"
	excavationPrefix = "Excavation_"
)

// ErrNoNodes is returned when there is nothing to center the model on.
var ErrNoNodes = errors.New("mine graph has no nodes")

// HorizonGroupName is the stable group name for a horizon id.
func HorizonGroupName(id string) string {
	return horizonPrefix + id
}

// ExcavationGroupName is the stable group name for an excavation id.
func ExcavationGroupName(id string) string {
	return excavationPrefix + id
}

// ToRenderSpace re-centers a node and maps it into the renderer's frame,
// where the vertical axis is the source Z and the depth axis is the
// source Y.
func ToRenderSpace(n mine.Node, center geom.Vec3) geom.Vec3 {
	return geom.V3(n.X-center.X, n.Z-center.Z, n.Y-center.Y)
}

// GroupKind tells horizon groups from excavation groups.
type GroupKind int

const (
	KindHorizon GroupKind = iota
	KindExcavation
)

func (k GroupKind) String() string {
	if k == KindExcavation {
		return "excavation"
	}
	return "horizon"
}

// GroupInfo is the diagnostic summary of one horizon or excavation. The
// tallies never change what is drawn.
type GroupInfo struct {
	Name          string // group name, Horizon_<id> or Excavation_<id>
	Kind          GroupKind
	OwnerID       string
	Label         string // human name of the horizon or excavation
	Color         uint32
	SectionsTotal int
	SectionsValid int

	Altitude       float64 // horizons
	ExcavationType string  // excavations
}

// SectionsInvalid is the number of references that could not be drawn.
func (i GroupInfo) SectionsInvalid() int {
	return i.SectionsTotal - i.SectionsValid
}

// Handle identifies one mesh owned by the scene. Handles are never reused.
type Handle uint64

// Group is a named set of meshes.
type Group struct {
	Info    GroupInfo
	Handles []Handle
}

// Scene holds the meshes of the last build.
type Scene struct {
	mu     sync.RWMutex
	groups *ordmap.Map[string, *Group]
	meshes map[Handle]tunnel.Mesh
	next   Handle
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{
		groups: ordmap.New[string, *Group](),
		meshes: make(map[Handle]tunnel.Mesh),
	}
}

// Build discards every group from the previous build and emits one group
// per horizon, then one per excavation. It returns one GroupInfo per source
// element in that order.
//
// Horizons that share an id share one group; each still gets its own entry
// in the returned slice, and the group's tallies are the sum.
//
// The previous build is discarded even when g has no nodes, in which case
// Build returns ErrNoNodes and the scene stays empty. A graph with nodes but
// no sections still builds; its groups carry only invalid references.
func (s *Scene) Build(g *mine.Graph, center geom.Vec3) ([]GroupInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	if g == nil || g.Nodes.Len() == 0 {
		return nil, ErrNoNodes
	}

	infos := make([]GroupInfo, 0, len(g.Horizons)+g.Excavations.Len())
	for i, h := range g.Horizons {
		info := GroupInfo{
			Name:     HorizonGroupName(h.ID),
			Kind:     KindHorizon,
			OwnerID:  h.ID,
			Label:    h.Name,
			Color:    ColorFor(i),
			Altitude: h.Altitude,
		}
		// horizon lists are not filtered, an empty token is an invalid reference
		s.emit(g, center, &info, strings.Split(h.Sections, ","))
		infos = append(infos, info)
	}

	for i, kv := range g.Excavations.Order {
		e := kv.Value
		info := GroupInfo{
			Name:           ExcavationGroupName(e.ID),
			Kind:           KindExcavation,
			OwnerID:        e.ID,
			Label:          e.Name,
			Color:          ColorFor(i),
			ExcavationType: e.ExcavationType,
		}
		s.emit(g, center, &info, splitExcavationSections(e.Sections))
		infos = append(infos, info)
	}

	log.Debug("scene built", "groups", s.groups.Len(), "meshes", len(s.meshes))
	return infos, nil
}

// emit builds the tunnels of one group and fills in its tallies.
func (s *Scene) emit(g *mine.Graph, center geom.Vec3, info *GroupInfo, ids []string) {
	group, ok := s.groups.ValueByKeyTry(info.Name)
	if !ok {
		group = &Group{Info: *info}
		s.groups.Add(info.Name, group)
	}

	info.SectionsTotal = len(ids)
	for _, id := range ids {
		section, ok := g.Section(id)
		if !ok {
			continue
		}
		start, end, ok := g.Endpoints(section)
		if !ok {
			continue
		}
		info.SectionsValid++

		t := tunnel.Build(ToRenderSpace(start, center), ToRenderSpace(end, center), section.Thickness, info.Color)
		for _, m := range t.Meshes() {
			s.next++
			s.meshes[s.next] = m
			group.Handles = append(group.Handles, s.next)
		}
	}

	group.Info.SectionsTotal += info.SectionsTotal
	group.Info.SectionsValid += info.SectionsValid

	if info.SectionsInvalid() > 0 {
		log.Debug("skipped unresolved sections", "group", info.Name, "valid", info.SectionsValid, "invalid", info.SectionsInvalid())
	} else {
		log.Debug("group built", "group", info.Name, "valid", info.SectionsValid)
	}
}

// splitExcavationSections splits an excavation section list, trimming
// tokens and dropping empty ones.
func splitExcavationSections(list string) []string {
	var ids []string
	for _, token := range strings.Split(list, ",") {
		if token = strings.TrimSpace(token); token != "" {
			ids = append(ids, token)
		}
	}
	return ids
}

// Teardown releases one group and every mesh it owns. It reports whether
// the group existed.
func (s *Scene) Teardown(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teardown(name)
}

func (s *Scene) teardown(name string) bool {
	group, ok := s.groups.ValueByKeyTry(name)
	if !ok {
		return false
	}
	for _, h := range group.Handles {
		delete(s.meshes, h)
	}
	s.groups.DeleteKey(name)
	return true
}

// Clear releases every group.
func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Scene) clear() {
	for _, name := range s.groups.Keys() {
		s.teardown(name)
	}
}

// Group returns a copy of the named group.
func (s *Scene) Group(name string) (Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups.ValueByKeyTry(name)
	if !ok {
		return Group{}, false
	}
	return Group{Info: group.Info, Handles: append([]Handle(nil), group.Handles...)}, true
}

// Groups returns the group names in build order.
func (s *Scene) Groups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups.Keys()
}

// Mesh resolves a handle. Handles from a torn down group no longer resolve.
func (s *Scene) Mesh(h Handle) (tunnel.Mesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meshes[h]
	return m, ok
}

// MeshCount is the number of live meshes.
func (s *Scene) MeshCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meshes)
}
