package nav

import (
	"container/heap"
	"math"
)

type cell struct {
	x int
	y int
}

// astar finds a 4-way path from start to goal. blocked cells are never
// entered; the start cell is always accepted. maxNodes bounds the number of
// expanded nodes.
func astar(start, goal cell, blocked []bool, gridW, gridH, maxNodes int) []cell {
	if !inside(start, gridW, gridH) || !inside(goal, gridW, gridH) {
		return nil
	}
	if blocked[goal.y*gridW+goal.x] {
		return nil
	}

	open := &openSet{}
	heap.Init(open)

	cameFrom := make([]int, gridW*gridH)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, gridW*gridH)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	closed := make([]bool, gridW*gridH)

	startIdx := start.y*gridW + start.x
	goalIdx := goal.y*gridW + goal.x
	gScore[startIdx] = 0
	heap.Push(open, &openItem{pos: start, f: heuristic(start, goal), g: 0})

	expanded := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.pos
		curIdx := cur.y*gridW + cur.x
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true

		if curIdx == goalIdx {
			return reconstructPath(cameFrom, gridW, startIdx, goalIdx)
		}
		expanded++
		if maxNodes > 0 && expanded >= maxNodes {
			return nil
		}

		for _, n := range neighbors(cur, gridW, gridH) {
			idx := n.y*gridW + n.x
			if blocked[idx] || closed[idx] {
				continue
			}
			tentativeG := gScore[curIdx] + 1
			if tentativeG < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentativeG
				heap.Push(open, &openItem{pos: n, f: tentativeG + heuristic(n, goal), g: tentativeG})
			}
		}
	}

	return nil
}

func inside(c cell, gridW, gridH int) bool {
	return c.x >= 0 && c.y >= 0 && c.x < gridW && c.y < gridH
}

func reconstructPath(cameFrom []int, gridW int, startIdx, goalIdx int) []cell {
	if startIdx == goalIdx {
		return []cell{{x: startIdx % gridW, y: startIdx / gridW}}
	}
	if cameFrom[goalIdx] == -1 {
		return nil
	}

	path := make([]cell, 0, 32)
	cur := goalIdx
	for cur != -1 {
		path = append(path, cell{x: cur % gridW, y: cur / gridW})
		if cur == startIdx {
			break
		}
		cur = cameFrom[cur]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func neighbors(p cell, gridW, gridH int) []cell {
	out := make([]cell, 0, 4)
	if p.x > 0 {
		out = append(out, cell{x: p.x - 1, y: p.y})
	}
	if p.x < gridW-1 {
		out = append(out, cell{x: p.x + 1, y: p.y})
	}
	if p.y > 0 {
		out = append(out, cell{x: p.x, y: p.y - 1})
	}
	if p.y < gridH-1 {
		out = append(out, cell{x: p.x, y: p.y + 1})
	}
	return out
}

func heuristic(a, b cell) float64 {
	return math.Abs(float64(a.x-b.x)) + math.Abs(float64(a.y-b.y))
}

type openItem struct {
	pos   cell
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
