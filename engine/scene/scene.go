package scene

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/metrics"
	"github.com/Carmen-Shannon/oxy-anim/engine/snapshot"
)

// ErrSnapshotKeyConflict is returned by SaveSnapshots when two animators would share a snapshot key.
var ErrSnapshotKeyConflict = errors.New("snapshot key conflict")

// Scene manages a set of Animators that are advanced together once per tick.
// Scenes can be hot-swapped via the Active flag; the engine only updates active scenes.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently updated by the engine.
	Active() bool

	// SetActive sets whether this scene is updated by the engine.
	SetActive(active bool)

	// Count returns the number of registered animators.
	//
	// Returns:
	//   - int: the animator count
	Count() int

	// Add registers an animator and returns its ID.
	//
	// Parameters:
	//   - a: the animator to add
	//
	// Returns:
	//   - uint64: the assigned ID
	Add(a animator.Animator) uint64

	// Get retrieves an animator by ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the animator ID
	//
	// Returns:
	//   - animator.Animator: the animator or nil
	Get(id uint64) animator.Animator

	// IDs returns the registered animator IDs in ascending order.
	//
	// Returns:
	//   - []uint64: the IDs
	IDs() []uint64

	// Remove unregisters an animator. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the animator ID
	Remove(id uint64)

	// Clear removes every animator from the scene.
	Clear()

	// Update advances every animator by deltaTime. Animators are updated in parallel on the scene's
	// worker pool and Update returns once all of them have finished.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	//
	// Returns:
	//   - int: the number of cross-fades committed during this update
	Update(deltaTime float32) int

	// SaveSnapshots stores a snapshot of every animator under "<scene>_<animator name>", or
	// "<scene>_<id>" for unnamed animators. Nothing is saved when two animators map to the same key.
	//
	// Parameters:
	//   - store: the snapshot store
	//
	// Returns:
	//   - error: ErrSnapshotKeyConflict for duplicate keys, or the first save error wrapped with the animator name
	SaveSnapshots(store snapshot.Store) error

	// LoadSnapshots restores every animator that has a stored snapshot.
	//
	// Parameters:
	//   - store: the snapshot store
	//
	// Returns:
	//   - int: the number of animators restored
	//   - error: the first load or restore error, wrapped with the animator name
	LoadSnapshots(store snapshot.Store) (int, error)

	// Release stops the scene's worker pool. The scene must not be updated afterwards.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry map[uint64]animator.Animator
	nextID   uint64

	// updatePool manages a bounded set of reusable goroutines for the parallel update phase.
	// Workers persist across ticks, avoiding per-tick goroutine spawn/teardown overhead.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int // stored so we can log/inspect the configured count
	released      bool
}

var _ Scene = &scene{}

// NewScene creates a new, inactive Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		registry:      make(map[uint64]animator.Animator),
		nextID:        1,
		updateWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithUpdateWorkers can override the default.
	// Queue size of 256 accommodates typical animator counts with headroom.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)
	metrics.Animators.WithLabelValues(s.name).Set(float64(len(s.registry)))

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(a animator.Animator) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.registry[id] = a
	metrics.Animators.WithLabelValues(s.name).Set(float64(len(s.registry)))
	return id
}

func (s *scene) Get(id uint64) animator.Animator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) IDs() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.registry))
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
	metrics.Animators.WithLabelValues(s.name).Set(float64(len(s.registry)))
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.registry)
	metrics.Animators.WithLabelValues(s.name).Set(0)
}

func (s *scene) Update(deltaTime float32) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.released || len(s.registry) == 0 {
		return 0
	}
	start := time.Now()

	// Submit each animator's update to the pool. Workers are reused across ticks.
	// A WaitGroup provides per-tick barrier sync since pool.Wait() blocks until
	// workers idle-exit which is unsuitable for tick-rate workloads.
	var wg sync.WaitGroup
	var commits atomic.Int64
	taskID := 0
	for _, a := range s.registry {
		wg.Add(1)
		aCap := a // capture for closure
		id := taskID
		taskID++
		s.updatePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				commits.Add(int64(aCap.Update(deltaTime)))
				return nil, nil
			},
		})
	}
	wg.Wait()

	n := int(commits.Load())
	metrics.UpdatesTotal.WithLabelValues(s.name).Add(float64(len(s.registry)))
	metrics.CrossFadeCommitsTotal.WithLabelValues(s.name).Add(float64(n))
	metrics.UpdateDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())
	return n
}

func (s *scene) SaveSnapshots(store snapshot.Store) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(s.registry))
	owners := make(map[string]uint64, len(ids))
	for _, id := range ids {
		key := s.snapshotKey(id, s.registry[id])
		if prev, ok := owners[key]; ok {
			return fmt.Errorf("scene %q animators %d and %d share snapshot key %q: %w", s.name, prev, id, key, ErrSnapshotKeyConflict)
		}
		owners[key] = id
	}

	for _, id := range ids {
		a := s.registry[id]
		if err := store.Save(s.snapshotKey(id, a), a.Snapshot()); err != nil {
			return fmt.Errorf("scene %q animator %q: %w", s.name, a.Name(), err)
		}
	}
	log.Printf("[Scene] %q saved %d animator snapshots", s.name, len(s.registry))
	return nil
}

func (s *scene) LoadSnapshots(store snapshot.Store) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	restored := 0
	for _, id := range slices.Sorted(maps.Keys(s.registry)) {
		a := s.registry[id]
		snap, ok, err := store.Load(s.snapshotKey(id, a))
		if err != nil {
			return restored, fmt.Errorf("scene %q animator %q: %w", s.name, a.Name(), err)
		}
		if !ok {
			continue
		}
		if err := a.Restore(snap); err != nil {
			return restored, fmt.Errorf("scene %q animator %q: %w", s.name, a.Name(), err)
		}
		restored++
	}
	log.Printf("[Scene] %q restored %d of %d animators", s.name, restored, len(s.registry))
	return restored, nil
}

// snapshotKey names an animator's snapshot by animator name, or by registry ID when unnamed.
func (s *scene) snapshotKey(id uint64, a animator.Animator) string {
	if a.Name() == "" {
		return fmt.Sprintf("%s_%d", s.name, id)
	}
	return s.name + "_" + a.Name()
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	s.released = true
	s.updatePool.Stop()
}
