// Command boxview is a small interactive demo: a handful of draggable,
// clickable colored boxes laid out in a box tree, routed through a
// responder.Router, with hover transitions logged via the standard log
// package (stderr) and one box
// continuously tweened via gween.
//
// Click a box to toggle its color; drag any box to move it.
package main

import (
	"flag"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/no-materials/understory/boxtree"
	"github.com/no-materials/understory/responder"
	"github.com/no-materials/understory/responder/boxtreeadapter"
)

const boxSize = 60

var (
	windowW     = flag.Int("width", 640, "window width")
	windowH     = flag.Int("height", 480, "window height")
	windowTitle = flag.String("title", "understory — boxview", "window title")
)

type demoBox struct {
	id       boxtree.NodeId
	x, y     float64
	primary  color.RGBA
	alt      color.RGBA
	usingAlt bool
}

func (b *demoBox) color() color.RGBA {
	if b.usingAlt {
		return b.alt
	}
	return b.primary
}

// widgetLookup maps box tree nodes to a demo-local widget index, purely
// so the responder dispatch sequence carries something a toolkit could
// use to look up UI state.
type widgetLookup struct {
	indexOf map[boxtree.NodeId]int
}

func (w widgetLookup) WidgetOf(id boxtree.NodeId) (int, bool) {
	idx, ok := w.indexOf[id]
	return idx, ok
}

type game struct {
	tree   *boxtree.Tree
	router *responder.Router[boxtree.NodeId, int, struct{}]
	hover  *responder.HoverState[boxtree.NodeId]

	boxes  []*demoBox
	byID   map[boxtree.NodeId]*demoBox

	dragging  boxtree.NodeId
	isDragging bool
	dragFromX, dragFromY float64

	spinID    boxtree.NodeId
	spinTween *gween.Tween
	spinBase  float64
}

func newGame() *game {
	tree := boxtree.NewTree()

	palette := []struct{ primary, alt color.RGBA }{
		{color.RGBA{R: 230, G: 76, B: 76, A: 255}, color.RGBA{R: 255, G: 179, B: 51, A: 255}},
		{color.RGBA{R: 76, G: 179, B: 230, A: 255}, color.RGBA{R: 204, G: 76, B: 230, A: 255}},
		{color.RGBA{R: 76, G: 230, B: 128, A: 255}, color.RGBA{R: 230, G: 230, B: 76, A: 255}},
	}

	lookupIndex := map[boxtree.NodeId]int{}
	boxes := make([]*demoBox, 0, len(palette))
	byID := map[boxtree.NodeId]*demoBox{}

	for i, c := range palette {
		x := float64(120 + i*160)
		y := 200.0
		local := boxtree.NewLocalNode(boxtree.NewRect(0, 0, boxSize, boxSize))
		local.LocalTransform = boxtree.Affine{1, 0, 0, 1, x, y}
		local.ZIndex = int32(i)
		id := tree.Insert(nil, local)

		b := &demoBox{id: id, x: x, y: y, primary: c.primary, alt: c.alt}
		boxes = append(boxes, b)
		byID[id] = b
		lookupIndex[id] = i
	}

	// A fourth box spins continuously via gween, to exercise the
	// tweening/domain stack independent of pointer interaction.
	spinLocal := boxtree.NewLocalNode(boxtree.NewRect(-boxSize/2, -boxSize/2, boxSize/2, boxSize/2))
	spinLocal.LocalTransform = boxtree.Affine{1, 0, 0, 1, 500, 380}
	spinLocal.ZIndex = 10
	spinID := tree.Insert(nil, spinLocal)
	spinBox := &demoBox{id: spinID, x: 500, y: 380, primary: color.RGBA{R: 230, G: 230, B: 230, A: 255}, alt: color.RGBA{R: 130, G: 130, B: 230, A: 255}}
	boxes = append(boxes, spinBox)
	byID[spinID] = spinBox
	lookupIndex[spinID] = len(boxes) - 1

	tree.Commit()

	router := boxtreeadapter.NewRouter[int, struct{}](tree, widgetLookup{indexOf: lookupIndex})
	router.SetScope(func(id boxtree.NodeId) bool { return true })

	return &game{
		tree:      tree,
		router:    router,
		hover:     responder.NewHoverState[boxtree.NodeId](),
		boxes:     boxes,
		byID:      byID,
		spinID:    spinID,
		spinTween: gween.New(0, 360, 3, ease.Linear),
	}
}

func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if hit, ok := boxtreeadapter.TopHitForPoint[struct{}](g.tree, fx, fy, boxtree.QueryFilter{PickableOnly: true}); ok {
			if b, ok := g.byID[hit.Node]; ok {
				b.usingAlt = !b.usingAlt
			}
			g.dragging = hit.Node
			g.isDragging = true
			g.dragFromX, g.dragFromY = fx, fy
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.isDragging = false
	}
	if g.isDragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if b, ok := g.byID[g.dragging]; ok {
			dx, dy := fx-g.dragFromX, fy-g.dragFromY
			b.x += dx
			b.y += dy
			g.tree.SetLocalTransform(b.id, boxtree.Affine{1, 0, 0, 1, b.x, b.y})
			g.dragFromX, g.dragFromY = fx, fy
		}
	}

	// Advance the spin tween; fixed-step dt matches ebiten's default TPS.
	angle, finished := g.spinTween.Update(1.0 / 60.0)
	if finished {
		g.spinTween.Reset()
	}
	if spin, ok := g.byID[g.spinID]; ok {
		rad := float64(angle) * (3.14159265 / 180)
		cosA, sinA := cosApprox(rad), sinApprox(rad)
		g.tree.SetLocalTransform(spin.id, boxtree.Affine{cosA, sinA, -sinA, cosA, spin.x, spin.y})
	}

	g.tree.Commit()

	hits := []responder.ResolvedHit[boxtree.NodeId, struct{}]{}
	if hit, ok := boxtreeadapter.TopHitForPoint[struct{}](g.tree, fx, fy, boxtree.QueryFilter{PickableOnly: true}); ok {
		hits = append(hits, hit)
	}
	dispatch := g.router.HandleWithHits(hits)
	path := responder.PathFromDispatch(dispatch)
	for _, ev := range g.hover.UpdatePath(path) {
		if ev.Enter {
			log.Printf("hover enter: %v", ev.Node)
		} else {
			log.Printf("hover leave: %v", ev.Node)
		}
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 35, G: 30, B: 45, A: 255})

	hovered := boxtree.NodeId{}
	hasHovered := false
	if p := g.hover.CurrentPath(); len(p) > 0 {
		hovered = p[len(p)-1]
		hasHovered = true
	}

	for _, b := range g.boxes {
		wb, ok := g.tree.WorldBounds(b.id)
		if !ok || wb.IsEmpty() {
			continue
		}
		c := b.color()
		if hasHovered && hovered == b.id {
			c = brighten(c)
		}
		vector.DrawFilledRect(screen, float32(wb.MinX), float32(wb.MinY), float32(wb.Width()), float32(wb.Height()), c, true)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return *windowW, *windowH
}

func brighten(c color.RGBA) color.RGBA {
	lift := func(v uint8) uint8 {
		n := int(v) + 40
		if n > 255 {
			n = 255
		}
		return uint8(n)
	}
	return color.RGBA{R: lift(c.R), G: lift(c.G), B: lift(c.B), A: c.A}
}

func cosApprox(rad float64) float64 { return math.Cos(rad) }
func sinApprox(rad float64) float64 { return math.Sin(rad) }

func main() {
	flag.Parse()

	ebiten.SetWindowSize(*windowW, *windowH)
	ebiten.SetWindowTitle(*windowTitle)

	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
