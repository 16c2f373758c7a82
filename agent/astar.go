package agent

import (
	"container/heap"

	"github.com/beka-birhanu/vinom-agents/grid"
)

// planPath runs A* from start to goal over the known part of the model.
//
// Every edge costs 1 and the heuristic is the Manhattan distance, which is admissible and
// consistent on a 4-connected grid. Unknown cells are never expanded and obstacles block.
// Ties between equal f-scores are broken by heap order, so only the path length is stable.
// A nil plan means the goal is unreachable through known cells.
func planPath(model Model, start, goal grid.Position) []grid.Direction {
	if start == goal {
		return nil
	}

	open := make(priorityQueue, 0)
	heap.Init(&open)
	heap.Push(&open, &item{value: start, priority: start.Manhattan(goal)})

	gScore := map[grid.Position]int{start: 0}
	cameFrom := make(map[grid.Position]grid.Position)
	closed := make(map[grid.Position]struct{})

	for open.Len() > 0 {
		current := heap.Pop(&open).(*item).value
		if _, done := closed[current]; done {
			continue
		}
		if current == goal {
			return reconstruct(cameFrom, start, goal)
		}
		closed[current] = struct{}{}

		for _, d := range grid.Directions {
			neighbor := current.Step(d)
			if _, done := closed[neighbor]; done {
				continue
			}
			if !model.passable(neighbor) {
				continue
			}

			tentative := gScore[current] + 1
			if old, seen := gScore[neighbor]; seen && tentative >= old {
				continue
			}
			cameFrom[neighbor] = current
			gScore[neighbor] = tentative
			heap.Push(&open, &item{value: neighbor, priority: tentative + neighbor.Manhattan(goal)})
		}
	}

	return nil
}

// reconstruct walks cameFrom back from goal and converts each step into a direction.
func reconstruct(cameFrom map[grid.Position]grid.Position, start, goal grid.Position) []grid.Direction {
	var path []grid.Direction
	for current := goal; current != start; {
		prev := cameFrom[current]
		d, _ := grid.DirectionBetween(prev, current)
		path = append(path, d)
		current = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type item struct {
	value    grid.Position
	priority int // f-score
	index    int
}

// priorityQueue is a min-heap of items ordered by f-score.
type priorityQueue []*item

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	n := len(*pq)
	it := x.(*item)
	it.index = n
	*pq = append(*pq, it)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[0 : n-1]
	return it
}
