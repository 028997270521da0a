package walls

import (
	"sort"

	"floorplan/internal/planner/models"
)

// ============================================================
// Connectivity
// ============================================================

// DefaultConnectTolerance: допуск связности концов по умолчанию, мм.
const DefaultConnectTolerance = 5.0

// Connected сообщает, лежит ли какой-либо конец a в пределах tolerance от какого-либо конца b.
func Connected(a, b models.WallSegment, tolerance float64) bool {
	for _, pa := range a.Endpoints() {
		for _, pb := range b.Endpoints() {
			if pa.Dist(pb) <= tolerance {
				return true
			}
		}
	}
	return false
}

// FindGroups разбивает стены на компоненты связности (BFS в порядке входа).
// Каждая стена попадает ровно в одну группу.
func FindGroups(walls []models.WallSegment, tolerance float64) [][]models.WallSegment {
	if len(walls) == 0 {
		return nil
	}

	neighbors := pairwiseNeighbors(walls, tolerance)
	if len(walls) >= IndexThreshold {
		neighbors = indexedNeighbors(walls, tolerance)
	}

	return groupsFrom(walls, neighbors)
}

// GroupIDs: то же, что FindGroups, но отдает только идентификаторы.
func GroupIDs(walls []models.WallSegment, tolerance float64) [][]string {
	groups := FindGroups(walls, tolerance)
	out := make([][]string, len(groups))
	for i, g := range groups {
		ids := make([]string, len(g))
		for j, w := range g {
			ids[j] = w.ID
		}
		out[i] = ids
	}
	return out
}

type neighborFunc func(i int) []int

func pairwiseNeighbors(walls []models.WallSegment, tolerance float64) neighborFunc {
	return func(i int) []int {
		var out []int
		for j := range walls {
			if j != i && Connected(walls[i], walls[j], tolerance) {
				out = append(out, j)
			}
		}
		return out
	}
}

func indexedNeighbors(walls []models.WallSegment, tolerance float64) neighborFunc {
	idx := NewEndpointIndex(walls)
	return func(i int) []int {
		seen := make(map[int]bool)
		var out []int
		for _, p := range walls[i].Endpoints() {
			for _, j := range idx.Near(p, tolerance) {
				if j == i || seen[j] {
					continue
				}
				seen[j] = true
				out = append(out, j)
			}
		}
		sort.Ints(out)
		return out
	}
}

func groupsFrom(walls []models.WallSegment, neighbors neighborFunc) [][]models.WallSegment {
	visited := make([]bool, len(walls))
	var groups [][]models.WallSegment

	for start := range walls {
		if visited[start] {
			continue
		}

		visited[start] = true
		queue := []int{start}
		var group []models.WallSegment

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			group = append(group, walls[cur])

			for _, next := range neighbors(cur) {
				if visited[next] {
					continue
				}
				visited[next] = true
				queue = append(queue, next)
			}
		}

		groups = append(groups, group)
	}

	return groups
}
