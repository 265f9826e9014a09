package sigmetadata

import (
	"encoding/json"
	"fmt"

	"github.com/Ndubireagan/Traffic-light-control/internal/logger"
)

var Log = logger.GetLogger()

type ControllerMetaData struct {
	SoftwareVersion string `json:"software_version"`
	IpAddress       string `json:"ip_address"`
	PortNumber      uint16 `json:"port_number"`
	Identifier      string `json:"identifier"`
	TransportPath   string `json:"transport_path"`
	BaudRate        int    `json:"baud_rate"`
	NumLanes        int    `json:"num_lanes"`
}

func (metaData *ControllerMetaData) String() string {
	jsonData, err := json.Marshal(metaData)

	if err != nil {
		Log.Error().Msg("Error Serialising ControllerMetaData Object to JSON")
		return ""
	}
	return string(jsonData)
}

func (metaData *ControllerMetaData) GetIPAddressPort() string {
	return fmt.Sprintf("%s:%d", metaData.IpAddress, metaData.PortNumber)
}
