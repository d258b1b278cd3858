// cmd/curve_viewer/main.go
// Plots scalar animation tracks with a moving playhead that samples Evaluate(t).
//
// Usage:
//
//	go run ./cmd/curve_viewer
//	go run ./cmd/curve_viewer --tracks=tracks.yaml
//
// Keys: Space pauses, Left/Right scrub, Up/Down change speed, R restarts.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-anim/engine/clip"
	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 960
	screenHeight = 720
	marginX      = 60
	marginY      = 24
	plotSamples  = 240
)

var (
	tracksPath = flag.String("tracks", "", "YAML file with tracks to plot (built-in demo when empty)")
	wrapName   = flag.String("wrap", "loop", "playhead wrap mode: loop or once")

	backgroundColor = color.RGBA{0x18, 0x1a, 0x20, 0xff}
	axisColor       = color.RGBA{0x50, 0x55, 0x60, 0xff}
	curveColor      = color.RGBA{0x6c, 0xc4, 0xff, 0xff}
	keyColor        = color.RGBA{0xff, 0xd0, 0x60, 0xff}
	playheadColor   = color.RGBA{0xff, 0x60, 0x60, 0xff}
)

// Viewer is the ebiten.Game that draws one row per track.
type Viewer struct {
	tracks []plotTrack
	wrap   clip.WrapMode

	length float32
	time   float32
	speed  float32
	paused bool
}

// NewViewer creates a viewer for the tracks. The playhead spans the longest track.
func NewViewer(tracks []plotTrack, wrap clip.WrapMode) *Viewer {
	v := &Viewer{tracks: tracks, wrap: wrap, speed: 1}
	for _, t := range tracks {
		v.length = max(v.length, t.Track.Duration())
	}
	return v
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.time = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		v.speed = min(v.speed*2, 8)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		v.speed = max(v.speed/2, 0.125)
	}

	dt := float32(1) / float32(ebiten.TPS())
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		v.time -= dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		v.time += dt
	}
	if !v.paused {
		v.time += dt * v.speed
	}
	v.time, _ = v.wrap.WrapTime(v.time, v.length)
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if len(v.tracks) == 0 || v.length <= 0 {
		ebitenutil.DebugPrint(screen, "no tracks to plot")
		return
	}

	rowHeight := float32(screenHeight-marginY*2) / float32(len(v.tracks))
	plotWidth := float32(screenWidth - marginX*2)
	toX := func(t float32) float32 { return marginX + t/v.length*plotWidth }

	for i, pt := range v.tracks {
		top := marginY + float32(i)*rowHeight
		lo, hi := valueRange(pt.Track, v.length)
		toY := func(val float32) float32 {
			return top + rowHeight - 8 - (val-lo)/(hi-lo)*(rowHeight-24)
		}

		vector.StrokeLine(screen, marginX, top+rowHeight-4, marginX+plotWidth, top+rowHeight-4, 1, axisColor, false)

		prevX, prevY := toX(0), toY(pt.Track.Evaluate(0).V[0])
		for s := 1; s <= plotSamples; s++ {
			t := v.length * float32(s) / plotSamples
			x, y := toX(t), toY(pt.Track.Evaluate(t).V[0])
			vector.StrokeLine(screen, prevX, prevY, x, y, 2, curveColor, true)
			prevX, prevY = x, y
		}

		for _, k := range pt.Track.Keys() {
			vector.DrawFilledRect(screen, toX(k.Time)-3, toY(k.Value.V[0])-3, 6, 6, keyColor, false)
		}

		sample := pt.Track.Evaluate(v.time).V[0]
		vector.DrawFilledRect(screen, toX(v.time)-4, toY(sample)-4, 8, 8, playheadColor, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  v=%.3f", pt.Label, sample), marginX, int(top))
	}

	x := toX(v.time)
	vector.StrokeLine(screen, x, marginY, x, screenHeight-marginY, 1, playheadColor, false)

	state := "playing"
	if v.paused {
		state = "paused"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("t=%.3f / %.3f  speed=%.3gx  %s  wrap=%s",
		v.time, v.length, v.speed, state, v.wrap), marginX, screenHeight-marginY+4)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// valueRange returns a padded min/max of the sampled track so flat tracks still get a visible band.
func valueRange(t curve.Track, length float32) (float32, float32) {
	lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
	for s := 0; s <= plotSamples; s++ {
		val := t.Evaluate(length * float32(s) / plotSamples).V[0]
		lo, hi = min(lo, val), max(hi, val)
	}
	if hi-lo < 1e-3 {
		lo, hi = lo-0.5, hi+0.5
	}
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}

func main() {
	flag.Parse()

	tracks := builtinTracks()
	if *tracksPath != "" {
		loaded, err := loadTracks(*tracksPath)
		if err != nil {
			log.Fatalf("[CurveViewer] %v", err)
		}
		tracks = loaded
	}
	log.Printf("[CurveViewer] plotting %d tracks", len(tracks))

	wrap := clip.WrapModeLoop
	if *wrapName == "once" {
		wrap = clip.WrapModeOnce
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("oxy-anim curve viewer")
	if err := ebiten.RunGame(NewViewer(tracks, wrap)); err != nil {
		log.Fatal(err)
	}
}
