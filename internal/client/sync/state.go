package sync

// State стадия цикла синхронизации
type State int32

const (
	StateIdle State = iota
	StatePulling
	StateMergingRemote
	StateResolvingConflicts
	StatePushingLocal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePulling:
		return "pulling"
	case StateMergingRemote:
		return "merging remote"
	case StateResolvingConflicts:
		return "resolving conflicts"
	case StatePushingLocal:
		return "pushing local"
	default:
		return "unknown"
	}
}
