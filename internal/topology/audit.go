package topology

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mineview/internal/mine"
)

// FindingKind classifies an audit finding.
type FindingKind string

const (
	FindingIsolatedNode      FindingKind = "isolated-node"
	FindingDanglingSection   FindingKind = "dangling-section"
	FindingParallelSection   FindingKind = "parallel-section"
	FindingSelfLoop          FindingKind = "self-loop"
	FindingZeroLength        FindingKind = "zero-length-section"
	FindingUnreferenced      FindingKind = "unreferenced-section"
	FindingInvalidGUID       FindingKind = "invalid-guid"
	FindingMalformedNumbers  FindingKind = "malformed-numbers"
	FindingDuplicateElements FindingKind = "duplicate-ids"
)

// Finding is one non-fatal problem with the loaded scheme.
type Finding struct {
	Kind   FindingKind `json:"kind"`
	ID     string      `json:"id,omitempty"`
	Detail string      `json:"detail"`
}

func (f Finding) String() string {
	if f.ID == "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
	}
	return fmt.Sprintf("%s %s: %s", f.Kind, f.ID, f.Detail)
}

// Audit lists everything in the scheme that loads but will not render or
// route the way its author likely meant.
func (n *Network) Audit() ([]Finding, error) {
	sum, err := n.Summary()
	if err != nil {
		return nil, err
	}
	m := n.mine

	var findings []Finding
	add := func(kind FindingKind, id, format string, args ...any) {
		findings = append(findings, Finding{Kind: kind, ID: id, Detail: fmt.Sprintf(format, args...)})
	}

	if d := m.Diagnostics.MalformedNumbers; d > 0 {
		add(FindingMalformedNumbers, "", "%d numeric fields replaced with defaults", d)
	}
	if d := m.Diagnostics.DuplicateIDs; d > 0 {
		add(FindingDuplicateElements, "", "%d elements overwrote an earlier one with the same id", d)
	}

	for _, id := range sum.IsolatedNodes {
		add(FindingIsolatedNode, id, "no drawable section ends here")
	}
	for _, id := range sum.DanglingSections {
		s, _ := m.Section(id)
		add(FindingDanglingSection, id, "endpoint missing (%s -> %s)", s.StartNodeID, s.EndNodeID)
	}
	for _, id := range sum.ParallelSections {
		add(FindingParallelSection, id, "duplicates another section between the same nodes")
	}
	for _, id := range sum.SelfLoops {
		add(FindingSelfLoop, id, "starts and ends at the same node")
	}

	referenced := referencedSections(m)
	for _, kv := range m.Sections.Order {
		s := kv.Value
		if start, end, ok := m.Endpoints(s); ok && s.StartNodeID != s.EndNodeID && distance(start, end) == 0 {
			add(FindingZeroLength, s.ID, "endpoints %s and %s coincide", s.StartNodeID, s.EndNodeID)
		}
		if !referenced[s.ID] {
			add(FindingUnreferenced, s.ID, "not listed by any horizon or excavation")
		}
	}

	checkGUID := func(kind, id, guid string) {
		if guid == "" {
			return
		}
		if _, err := uuid.Parse(guid); err != nil {
			add(FindingInvalidGUID, id, "%s guid %q: %v", kind, guid, err)
		}
	}
	for _, kv := range m.Nodes.Order {
		checkGUID("node", kv.Key, kv.Value.GUID)
	}
	for _, kv := range m.Sections.Order {
		checkGUID("section", kv.Key, kv.Value.GUID)
	}
	for _, kv := range m.Excavations.Order {
		checkGUID("excavation", kv.Key, kv.Value.GUID)
	}
	for _, h := range m.Horizons {
		checkGUID("horizon", h.ID, h.GUID)
	}

	return findings, nil
}

// referencedSections is the set of section ids named by any group. Tokens
// are trimmed here, this is about intent rather than what renders.
func referencedSections(m *mine.Graph) map[string]bool {
	refs := make(map[string]bool)
	mark := func(list string) {
		for _, token := range strings.Split(list, ",") {
			if token = strings.TrimSpace(token); token != "" {
				refs[token] = true
			}
		}
	}
	for _, h := range m.Horizons {
		mark(h.Sections)
	}
	for _, kv := range m.Excavations.Order {
		mark(kv.Value.Sections)
	}
	return refs
}
