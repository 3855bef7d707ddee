package pipeline

// Stage names one of Compile's internal phases, for progress reporting.
type Stage uint8

const (
	StageDesugar Stage = iota
	StageNamespace
	StageSignatures
	StageBodies
	StageLowering
)

func (s Stage) String() string {
	switch s {
	case StageDesugar:
		return "desugaring"
	case StageNamespace:
		return "building namespace"
	case StageSignatures:
		return "resolving signatures"
	case StageBodies:
		return "resolving bodies"
	case StageLowering:
		return "lowering"
	default:
		return "stage(?)"
	}
}

// Status is a Stage's progress within one module's compilation.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports one module's progress through one Stage. Module is the
// module name (Event.Module, not Event.File, since this pipeline compiles
// one in-memory ast.Module at a time rather than reading files itself).
type Event struct {
	Module string
	Stage  Stage
	Status Status
}

func emit(events chan<- Event, module string, stage Stage, status Status) {
	if events == nil {
		return
	}
	events <- Event{Module: module, Stage: stage, Status: status}
}
