package topic

import (
	"github.com/google/uuid"
	"github.com/heartmarshall/revisemaster-backend/internal/domain"
)

// BuildForest assembles a flat topic collection into a display forest.
// Pure transform over its input: no I/O, no mutation of the topics.
//
// Each topic attaches under its parent when the parent is part of the
// collection; otherwise it becomes a root. A parent filtered out of the
// collection (by a search, say) therefore shows its subtree at top
// level without touching the stored parent_id. Input order is preserved
// among siblings and among roots.
func BuildForest(topics []*domain.Topic) []*domain.TreeNode {
	nodes := make(map[uuid.UUID]*domain.TreeNode, len(topics))
	for _, t := range topics {
		nodes[t.ID] = &domain.TreeNode{Topic: t}
	}

	roots := make([]*domain.TreeNode, 0, len(topics))
	for _, t := range topics {
		node := nodes[t.ID]
		if t.ParentID == nil {
			roots = append(roots, node)
			continue
		}

		parent, ok := nodes[*t.ParentID]
		if !ok || createsCycle(nodes, t.ID, *t.ParentID) {
			// Absent parent, or a parent chain that loops back here.
			// The store prevents cycles, but a tree read must never
			// spin on corrupted data, so the topic is forced to root.
			roots = append(roots, node)
			continue
		}

		parent.Children = append(parent.Children, node)
	}

	return roots
}

// createsCycle reports whether attaching childID under parentID would
// close a loop, walking the parent chain at most once per node.
func createsCycle(nodes map[uuid.UUID]*domain.TreeNode, childID, parentID uuid.UUID) bool {
	seen := map[uuid.UUID]bool{childID: true}
	curID := parentID
	for {
		if seen[curID] {
			return true
		}
		seen[curID] = true

		cur, ok := nodes[curID]
		if !ok || cur.ParentID == nil {
			return false
		}
		curID = *cur.ParentID
	}
}
