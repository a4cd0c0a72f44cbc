package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered   uint64
	LoginsSucceeded   uint64
	LoginsFailed      uint64
	ProjectsCreated   uint64
	ProjectsUpdated   uint64
	ProjectsDeleted   uint64
	TasksCreated      uint64
	TasksUpdated      uint64
	TasksDeleted      uint64
	PointsCacheHits   uint64
	PointsCacheMisses uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	usersRegistered   uint64
	loginsSucceeded   uint64
	loginsFailed      uint64
	projectsCreated   uint64
	projectsUpdated   uint64
	projectsDeleted   uint64
	tasksCreated      uint64
	tasksUpdated      uint64
	tasksDeleted      uint64
	pointsCacheHits   uint64
	pointsCacheMisses uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:   atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded:   atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:      atomic.LoadUint64(&m.loginsFailed),
		ProjectsCreated:   atomic.LoadUint64(&m.projectsCreated),
		ProjectsUpdated:   atomic.LoadUint64(&m.projectsUpdated),
		ProjectsDeleted:   atomic.LoadUint64(&m.projectsDeleted),
		TasksCreated:      atomic.LoadUint64(&m.tasksCreated),
		TasksUpdated:      atomic.LoadUint64(&m.tasksUpdated),
		TasksDeleted:      atomic.LoadUint64(&m.tasksDeleted),
		PointsCacheHits:   atomic.LoadUint64(&m.pointsCacheHits),
		PointsCacheMisses: atomic.LoadUint64(&m.pointsCacheMisses),
	}
}

// IncUserRegistered increments the registered users counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncUserLogin increments the login counter for the given status.
func (m *InMemoryRecorder) IncUserLogin(status string) {
	if status == "success" {
		atomic.AddUint64(&m.loginsSucceeded, 1)
	} else {
		atomic.AddUint64(&m.loginsFailed, 1)
	}
}

// IncProjectCreated increments the project created counter.
func (m *InMemoryRecorder) IncProjectCreated() {
	atomic.AddUint64(&m.projectsCreated, 1)
}

// IncProjectUpdated increments the project updated counter.
func (m *InMemoryRecorder) IncProjectUpdated() {
	atomic.AddUint64(&m.projectsUpdated, 1)
}

// IncProjectDeleted increments the project deleted counter.
func (m *InMemoryRecorder) IncProjectDeleted() {
	atomic.AddUint64(&m.projectsDeleted, 1)
}

// IncTaskCreated increments the task created counter.
func (m *InMemoryRecorder) IncTaskCreated() {
	atomic.AddUint64(&m.tasksCreated, 1)
}

// IncTaskUpdated increments the task updated counter.
func (m *InMemoryRecorder) IncTaskUpdated() {
	atomic.AddUint64(&m.tasksUpdated, 1)
}

// IncTaskDeleted increments the task deleted counter.
func (m *InMemoryRecorder) IncTaskDeleted() {
	atomic.AddUint64(&m.tasksDeleted, 1)
}

// IncPointsCacheHit increments the points cache hit counter.
func (m *InMemoryRecorder) IncPointsCacheHit() {
	atomic.AddUint64(&m.pointsCacheHits, 1)
}

// IncPointsCacheMiss increments the points cache miss counter.
func (m *InMemoryRecorder) IncPointsCacheMiss() {
	atomic.AddUint64(&m.pointsCacheMisses, 1)
}
