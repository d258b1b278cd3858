package engine

import (
	"context"
	"log"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anim/engine/scene"
)

// engine is the implementation of the Engine interface.
type engine struct {
	mu sync.RWMutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	scenes map[int]scene.Scene
}

// Engine drives animation scenes at a fixed tick rate.
//
// Each tick the engine advances every active scene in ascending key order and then calls the
// tick callback. The engine is headless; presentation is left to the caller, typically from the
// tick callback or from its own render loop reading animator poses.
type Engine interface {
	// EnableProfiler turns on periodic performance logging.
	EnableProfiler()

	// DisableProfiler turns off periodic performance logging.
	DisableProfiler()

	// SetTickRate changes the tick rate. Safe to call while running.
	//
	// Parameters:
	//   - fps: target ticks per second; values <= 0 select 60
	SetTickRate(fps float64)

	// SetTickCallback sets a function called after the scenes are updated on every tick.
	//
	// Parameters:
	//   - callback: the function receiving the tick's delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given key, replacing any scene already there.
	// Scenes are updated in ascending key order. A nil scene is ignored.
	//
	// Parameters:
	//   - key: the ordering key
	//   - s: the scene
	AddScene(key int, s scene.Scene)

	// RemoveScene unregisters the scene at key.
	//
	// Parameters:
	//   - key: the ordering key
	RemoveScene(key int)

	// Scene returns the scene at key, or nil.
	//
	// Parameters:
	//   - key: the ordering key
	//
	// Returns:
	//   - scene.Scene: the scene or nil
	Scene(key int) scene.Scene

	// Scenes returns a copy of the scene map.
	//
	// Returns:
	//   - map[int]scene.Scene: the scenes by key
	Scenes() map[int]scene.Scene

	// Step performs a single tick with the given delta time without waiting on the ticker.
	//
	// Parameters:
	//   - deltaTime: the time step in seconds
	//
	// Returns:
	//   - int: the number of cross-fades committed across all active scenes
	Step(deltaTime float32) int

	// Run ticks until Quit is called or ctx is cancelled.
	//
	// Parameters:
	//   - ctx: the context bounding the run
	//
	// Returns:
	//   - error: ctx.Err() if the context ended the run, nil after Quit
	Run(ctx context.Context) error

	// Quit stops a running engine. Safe to call more than once.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine and applies the options.
// The tick rate defaults to 60Hz.
//
// Parameters:
//   - options: variadic list of EngineBuilderOption functions to configure the Engine
//
// Returns:
//   - Engine: the new engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Run(ctx context.Context) error {
	e.mu.Lock()
	e.running = true
	rate := e.engineTickRate
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	log.Printf("[Engine] running at %v per tick", rate)
	lastTick := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

func (e *engine) Step(deltaTime float32) int {
	e.mu.RLock()
	keys := slices.Sorted(maps.Keys(e.scenes))
	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s != nil && s.Active() {
			active = append(active, s)
		}
	}
	callback := e.tickCallback
	profiling := e.profilingEnabled
	e.mu.RUnlock()

	commits, animators := 0, 0
	for _, s := range active {
		commits += s.Update(deltaTime)
		animators += s.Count()
	}

	if callback != nil {
		callback(deltaTime)
	}
	if profiling && e.profiler != nil {
		e.profiler.Tick(animators, commits)
	}
	return commits
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()
	if !running {
		return
	}

	select {
	case e.tickRateChannel <- newRate:
	default:
		// Replace a pending rate change that the loop has not picked up yet.
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	if s == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.scenes)
}
