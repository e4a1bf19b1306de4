package study

import (
	"fmt"
	"math"
	"sync"
)

// Mind-map geometry. The center node sits above the satellite circle, which
// is centered on (centerX, centerY); satellites are shifted left by half a
// node width so the node body is centered on its circle point.
const (
	maxMapPoints  = 12
	labelLimit    = 120
	minRadius     = 200
	radiusPerNode = 25

	centerNodeID = "center"
	centerX      = 400.0
	centerY      = 300.0
	centerNodeY  = 100.0
	nodeHalfW    = 140.0

	defaultMapTitle = "Summary Overview"
)

// MapNode is one node of a derived mind map. Label is display text capped
// at 120 characters; FullText keeps the untruncated point.
type MapNode struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	FullText string  `json:"fullText"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	IsCenter bool    `json:"isCenter"`
	Selected bool    `json:"selected,omitempty"`
}

// MapEdge connects the center node to one satellite.
type MapEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Layout arranges study points radially around a center node: satellite i
// of n sits at angle i*2π/n − π/2 (index 0 straight up) on a circle of
// radius max(200, 25n). At most the first 12 points are used.
func Layout(points []string, title string) ([]MapNode, []MapEdge) {
	if len(points) == 0 {
		return nil, nil
	}
	if len(points) > maxMapPoints {
		points = points[:maxMapPoints]
	}
	if title == "" {
		title = defaultMapTitle
	}

	nodes := make([]MapNode, 0, len(points)+1)
	nodes = append(nodes, MapNode{
		ID:       centerNodeID,
		Label:    title,
		FullText: title,
		X:        centerX,
		Y:        centerNodeY,
		IsCenter: true,
	})

	radius := math.Max(minRadius, float64(len(points))*radiusPerNode)
	angleStep := 2 * math.Pi / float64(len(points))

	edges := make([]MapEdge, 0, len(points))
	for i, point := range points {
		angle := float64(i)*angleStep - math.Pi/2
		x := centerX + radius*math.Cos(angle)
		y := centerY + radius*math.Sin(angle)

		id := fmt.Sprintf("point-%d", i)
		nodes = append(nodes, MapNode{
			ID:       id,
			Label:    truncateLabel(point),
			FullText: point,
			X:        x - nodeHalfW,
			Y:        y,
		})
		edges = append(edges, MapEdge{
			ID:     fmt.Sprintf("edge-%d", i),
			Source: centerNodeID,
			Target: id,
		})
	}

	return nodes, edges
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) > labelLimit {
		return string(runes[:labelLimit]) + "..."
	}
	return s
}

// MindMap holds the interactive state layered over a computed layout:
// single-node selection and user-dragged positions. Dragged positions
// survive recomputation as long as the underlying points are unchanged.
type MindMap struct {
	mu sync.Mutex

	title    string
	points   []string
	nodes    []MapNode
	edges    []MapEdge
	selected string
	moved    map[string][2]float64
}

func NewMindMap(title string) *MindMap {
	return &MindMap{title: title, moved: make(map[string][2]float64)}
}

// SetPoints recomputes the layout when the points differ from the current
// ones. A change discards drag overrides and the selection; identical
// points leave both intact.
func (m *MindMap) SetPoints(points []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if samePoints(m.points, points) && m.nodes != nil {
		return
	}
	m.points = append([]string(nil), points...)
	m.nodes, m.edges = Layout(m.points, m.title)
	m.moved = make(map[string][2]float64)
	m.selected = ""
}

func samePoints(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Nodes returns the layout with drag overrides and the selection applied.
func (m *MindMap) Nodes() []MapNode {
	m.mu.Lock()
	defer m.mu.Unlock()
	nodes := make([]MapNode, len(m.nodes))
	copy(nodes, m.nodes)
	for i := range nodes {
		if pos, ok := m.moved[nodes[i].ID]; ok {
			nodes[i].X = pos[0]
			nodes[i].Y = pos[1]
		}
		nodes[i].Selected = nodes[i].ID == m.selected
	}
	return nodes
}

func (m *MindMap) Edges() []MapEdge {
	m.mu.Lock()
	defer m.mu.Unlock()
	edges := make([]MapEdge, len(m.edges))
	copy(edges, m.edges)
	return edges
}

// MoveNode records a user drag. Unknown node ids are rejected.
func (m *MindMap) MoveNode(id string, x, y float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.nodes {
		if m.nodes[i].ID == id {
			m.moved[id] = [2]float64{x, y}
			return true
		}
	}
	return false
}

// Select toggles the highlight on a node: selecting the selected node
// clears it, selecting another moves it. Reports whether the node ends up
// selected.
func (m *MindMap) Select(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == id {
		m.selected = ""
		return false
	}
	for i := range m.nodes {
		if m.nodes[i].ID == id {
			m.selected = id
			return true
		}
	}
	return false
}

// ClearSelection deselects any selected node (a click on empty canvas).
func (m *MindMap) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = ""
}

// Selected returns the selected node id, if any.
func (m *MindMap) Selected() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected, m.selected != ""
}
