package sigconsts

const (
	N_LANES = 4
)

// Default green durations in seconds, assigned by position in the
// activation cycle: the busiest lane gets the long slot, the last lane
// the short one, everything in between the mid slot.
const (
	GREEN_LONG  = 8
	GREEN_MID   = 6
	GREEN_SHORT = 4
	GREEN_FLOOR = 4
)

type Phase int

const (
	None Phase = iota // 0, lane has never been driven
	Green
	Yellow
	Red
)

func (p Phase) String() string {
	switch p {
	case None:
		return "P_None"
	case Green:
		return "P_Green"
	case Yellow:
		return "P_Yellow"
	case Red:
		return "P_Red"
	default:
		return "P_UNDEFINED"
	}
}
