package utils

import "github.com/denisbrodbeck/machineid"

// HWID is a stable, privacy-preserving identifier for this machine. Falls
// back to "unknown" on platforms where the machine id is unavailable.
var HWID = getHWID()

func getHWID() string {
	id, err := machineid.ProtectedID("mirrorbox")
	if err != nil {
		return "unknown"
	}
	return id
}
