package sigstatus

import (
	"github.com/Ndubireagan/Traffic-light-control/internal/sigevent"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigmetadata"
)

const (
	BUFFER_LENGTH = 1024 //for receiving and transmitting
)

// StatusSnapshot is the telemetry frame broadcast over UDP. It is
// fire-and-forget monitoring data, not coordination state.
type StatusSnapshot struct {
	MetaData      sigmetadata.ControllerMetaData `json:"metadata"`
	Connected     bool                           `json:"connected"`
	LastGreenLane int                            `json:"last_green_lane"`
	Counts        []int                          `json:"counts"`
}

// SnapshotFunc produces the current snapshot at broadcast time
type SnapshotFunc func() StatusSnapshot

type StatusNetwork struct {
	Broadcast *StatusBroadcast
	Listen    *StatusListen
}

func NewStatusNetwork(metaData *sigmetadata.ControllerMetaData, snapshot SnapshotFunc, eventChannel chan<- sigevent.SignalEvent) *StatusNetwork {
	return &StatusNetwork{
		Broadcast: NewStatusBroadcast(metaData, snapshot),
		Listen:    NewStatusListen(metaData, eventChannel),
	}
}
