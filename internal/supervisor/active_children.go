package supervisor

import "sync"

// ActiveChildren is a thread-safe registry of live compiler/linker PIDs,
// shared by the worker pool (which adds/removes entries around each spawn)
// and the cancellation path (which reads a snapshot to kill everything in
// flight). Mutated under a mutex, matching banksean-sand's pattern of
// guarding every shared map with its own sync.Mutex rather than a global
// lock.
type ActiveChildren struct {
	mu         sync.Mutex
	pids       map[int]bool
	useGroups  bool
}

// NewActiveChildren returns an empty registry. When useGroups is true,
// KillAll treats each tracked PID as also being its own process group's
// PGID (true whenever the child was spawned with
// SpawnOptions.NewProcessGroup) and signals the group instead of just the
// one process.
func NewActiveChildren(useGroups bool) *ActiveChildren {
	return &ActiveChildren{
		pids:      make(map[int]bool),
		useGroups: useGroups,
	}
}

// Add registers pid as live.
func (a *ActiveChildren) Add(pid int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pids[pid] = true
}

// Remove unregisters pid.
func (a *ActiveChildren) Remove(pid int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.pids, pid)
}

// Len reports how many PIDs are currently tracked.
func (a *ActiveChildren) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pids)
}

// KillAll signals every tracked PID, best-effort, and ignores errors. It
// iterates a snapshot so concurrent Add/Remove calls from workers racing to
// finish never deadlock against this call.
func (a *ActiveChildren) KillAll() {
	a.mu.Lock()
	snapshot := make([]int, 0, len(a.pids))
	for pid := range a.pids {
		snapshot = append(snapshot, pid)
	}
	a.mu.Unlock()

	for _, pid := range snapshot {
		if a.useGroups {
			KillGroup(pid)
		} else {
			Kill(pid)
		}
	}
}
