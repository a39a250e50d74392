package detector

import (
	"sync"
	"sync/atomic"
)

// StageState tells whether a stage has produced its memoized result
type StageState int

const (
	StageNotRun StageState = iota
	StageRan
)

func (s StageState) String() string {
	if s == StageRan {
		return "ran"
	}
	return "not run"
}

// Stage names, also used as event names
const (
	StagePackageManager = "detectPackageManager"
	StageWorkspace      = "detectWorkspaces"
	StageBuildSystems   = "detectBuildSystems"
	StageFrameworks     = "detectFrameworks"
	StageSettings       = "detectSettings"
)

// Stages lists the stage names in dependency order
var Stages = []string{StagePackageManager, StageWorkspace, StageBuildSystems, StageFrameworks, StageSettings}

// stage memoizes one result. Concurrent first callers block on the same run.
type stage[T any] struct {
	once  sync.Once
	ran   atomic.Bool
	value T
}

// get runs fn on the first call only; run must not panic
func (s *stage[T]) get(run func() T) T {
	s.once.Do(func() {
		s.value = run()
		s.ran.Store(true)
	})
	return s.value
}

func (s *stage[T]) state() StageState {
	if s.ran.Load() {
		return StageRan
	}
	return StageNotRun
}
