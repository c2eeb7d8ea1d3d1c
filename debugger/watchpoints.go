package debugger

import (
	"fmt"
	"sync"

	"github.com/knuth-mix/mix-emulator/vm"
)

// Watchpoint monitors a memory cell or register for value changes. The
// emulator has no separate read/write memory-access hooks, so (as in the
// reference debugger) every watchpoint is change-detection based: it fires
// whenever the monitored value differs from the value last observed.
type Watchpoint struct {
	ID         int
	Expression string
	Address    int
	IsRegister bool
	Register   string // "A", "X", "J", "I1".."I6"
	Enabled    bool
	LastValue  int64
	HitCount   int
}

// WatchpointManager manages all watchpoints for one debugging session.
type WatchpointManager struct {
	mu          sync.RWMutex
	watchpoints map[int]*Watchpoint
	nextID      int
}

// NewWatchpointManager creates an empty WatchpointManager.
func NewWatchpointManager() *WatchpointManager {
	return &WatchpointManager{
		watchpoints: make(map[int]*Watchpoint),
		nextID:      1,
	}
}

// AddWatchpoint adds a new watchpoint.
func (wm *WatchpointManager) AddWatchpoint(expression string, address int, isRegister bool, register string) *Watchpoint {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	wp := &Watchpoint{
		ID:         wm.nextID,
		Expression: expression,
		Address:    address,
		IsRegister: isRegister,
		Register:   register,
		Enabled:    true,
	}
	wm.watchpoints[wp.ID] = wp
	wm.nextID++
	return wp
}

// DeleteWatchpoint removes a watchpoint by ID.
func (wm *WatchpointManager) DeleteWatchpoint(id int) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	if _, exists := wm.watchpoints[id]; !exists {
		return fmt.Errorf("watchpoint %d not found", id)
	}
	delete(wm.watchpoints, id)
	return nil
}

// GetWatchpoint returns the watchpoint with the given ID, or nil.
func (wm *WatchpointManager) GetWatchpoint(id int) *Watchpoint {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.watchpoints[id]
}

// EnableWatchpoint enables a watchpoint by ID.
func (wm *WatchpointManager) EnableWatchpoint(id int) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wp, exists := wm.watchpoints[id]
	if !exists {
		return fmt.Errorf("watchpoint %d not found", id)
	}
	wp.Enabled = true
	return nil
}

// DisableWatchpoint disables a watchpoint by ID.
func (wm *WatchpointManager) DisableWatchpoint(id int) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wp, exists := wm.watchpoints[id]
	if !exists {
		return fmt.Errorf("watchpoint %d not found", id)
	}
	wp.Enabled = false
	return nil
}

// GetAllWatchpoints returns every watchpoint, in no particular order.
func (wm *WatchpointManager) GetAllWatchpoints() []*Watchpoint {
	wm.mu.RLock()
	defer wm.mu.RUnlock()

	result := make([]*Watchpoint, 0, len(wm.watchpoints))
	for _, wp := range wm.watchpoints {
		result = append(result, wp)
	}
	return result
}

// registerValue reads the named register from machine's CPU.
func registerValue(machine *vm.Machine, name string) (int64, error) {
	switch name {
	case "A":
		return machine.CPU.A.ToInt(), nil
	case "X":
		return machine.CPU.X.ToInt(), nil
	case "J":
		return int64(machine.CPU.JValue()), nil
	case "I1", "I2", "I3", "I4", "I5", "I6":
		n := int(name[1] - '0')
		return machine.CPU.IndexValue(n), nil
	default:
		return 0, fmt.Errorf("unknown register %q", name)
	}
}

// CheckWatchpoints returns the first enabled watchpoint whose monitored
// value differs from its last observed value, updating that value in the
// process, or (nil, false) if nothing changed.
func (wm *WatchpointManager) CheckWatchpoints(machine *vm.Machine) (*Watchpoint, bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	for _, wp := range wm.watchpoints {
		if !wp.Enabled {
			continue
		}

		var current int64
		var err error
		if wp.IsRegister {
			current, err = registerValue(machine, wp.Register)
		} else {
			var word vm.Word
			word, err = machine.Memory.Read(wp.Address)
			if err == nil {
				current = word.ToInt()
			}
		}
		if err != nil {
			continue
		}

		if current != wp.LastValue {
			wp.HitCount++
			wp.LastValue = current
			return wp, true
		}
	}
	return nil, false
}

// InitializeWatchpoint records the current value of a watchpoint's target
// so the first CheckWatchpoints call does not fire spuriously.
func (wm *WatchpointManager) InitializeWatchpoint(id int, machine *vm.Machine) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	wp, exists := wm.watchpoints[id]
	if !exists {
		return fmt.Errorf("watchpoint %d not found", id)
	}

	if wp.IsRegister {
		v, err := registerValue(machine, wp.Register)
		if err != nil {
			return err
		}
		wp.LastValue = v
		return nil
	}

	word, err := machine.Memory.Read(wp.Address)
	if err != nil {
		return fmt.Errorf("failed to initialize watchpoint: %w", err)
	}
	wp.LastValue = word.ToInt()
	return nil
}

// Clear removes every watchpoint.
func (wm *WatchpointManager) Clear() {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.watchpoints = make(map[int]*Watchpoint)
}

// Count returns the number of watchpoints.
func (wm *WatchpointManager) Count() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return len(wm.watchpoints)
}
