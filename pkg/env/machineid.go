package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// MachineID retrieves the unique ID identifying the machine.
// The host name is used when the platform doesn't provide one.
func MachineID() string {
	id, err := machineid.ProtectedID("squidhub")
	if err == nil {
		return id[:16]
	}
	glog.Warningf("machine id unavailable: %v", err)
	if id, err = os.Hostname(); err != nil {
		panic(err)
	}
	return id
}
