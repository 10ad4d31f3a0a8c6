package service

import (
	"sort"

	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/models"
)

// BuildCommentTree assembles the flat comments of one post into a forest.
//
// Siblings and roots are ordered by created_at, then id. A comment whose
// parent is not in rows, or is itself, becomes a root flagged as orphan.
// Rows that no root reaches hang off a parent cycle: the earliest comment on
// that cycle is promoted to an orphan root and walked, so replies outside the
// cycle stay under their own parents.
// Every distinct id appears in the output exactly once; a repeated id keeps
// its first row.
func BuildCommentTree(rows []models.Comment) []*dto.CommentNode {
	nodes := make(map[int64]*dto.CommentNode, len(rows))
	ordered := make([]*dto.CommentNode, 0, len(rows))
	for i := range rows {
		if _, dup := nodes[rows[i].ID]; dup {
			continue
		}
		n := dto.FromModelToCommentNode(&rows[i])
		nodes[n.ID] = n
		ordered = append(ordered, n)
	}

	roots := make([]*dto.CommentNode, 0)
	children := make(map[int64][]*dto.CommentNode)
	for _, n := range ordered {
		switch {
		case n.ParentID == nil:
			roots = append(roots, n)
		case *n.ParentID == n.ID || nodes[*n.ParentID] == nil:
			n.Orphan = true
			roots = append(roots, n)
		default:
			children[*n.ParentID] = append(children[*n.ParentID], n)
		}
	}

	sortNodes(ordered)
	sortNodes(roots)
	for _, list := range children {
		sortNodes(list)
	}

	visited := make(map[int64]bool, len(ordered))
	walk := func(root *dto.CommentNode) {
		visited[root.ID] = true
		stack := []*dto.CommentNode{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, child := range children[n.ID] {
				if visited[child.ID] {
					continue
				}
				visited[child.ID] = true
				n.Replies = append(n.Replies, child)
				stack = append(stack, child)
			}
		}
	}

	for _, r := range roots {
		walk(r)
	}

	rank := make(map[int64]int, len(ordered))
	for i, n := range ordered {
		rank[n.ID] = i
	}

	promoted := false
	for _, n := range ordered {
		if visited[n.ID] {
			continue
		}
		head := cycleHead(n, nodes, rank)
		head.Orphan = true
		roots = append(roots, head)
		walk(head)
		promoted = true
	}
	if promoted {
		sortNodes(roots)
	}

	return roots
}

// cycleHead follows the parent chain of an unreached node until it repeats and
// returns the earliest node on the loop it ran into.
func cycleHead(start *dto.CommentNode, nodes map[int64]*dto.CommentNode, rank map[int64]int) *dto.CommentNode {
	seen := make(map[int64]bool)
	n := start
	for !seen[n.ID] {
		seen[n.ID] = true
		n = nodes[*n.ParentID]
	}

	head := n
	for m := nodes[*n.ParentID]; m != n; m = nodes[*m.ParentID] {
		if rank[m.ID] < rank[head.ID] {
			head = m
		}
	}
	return head
}

func sortNodes(list []*dto.CommentNode) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// FlattenCommentTree lists the ids of a forest in depth-first pre-order.
func FlattenCommentTree(forest []*dto.CommentNode) []int64 {
	var out []int64
	stack := make([]*dto.CommentNode, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, forest[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n.ID)
		for i := len(n.Replies) - 1; i >= 0; i-- {
			stack = append(stack, n.Replies[i])
		}
	}
	return out
}
