package demux

import (
	"fmt"
	"sort"
	"strings"
)

// Role names one output stream.
type Role string

const (
	EEG1 Role = "EEG_1"
	EMG2 Role = "EMG_2"
	EMG3 Role = "EMG_3"
	IMU1 Role = "IMU_1"
	IMU2 Role = "IMU_2"
	IMU3 Role = "IMU_3"
)

// Kind is the modality family of a stream.
type Kind int

const (
	KindEXG Kind = iota
	KindIMU
)

func (k Kind) String() string {
	switch k {
	case KindEXG:
		return "exg"
	case KindIMU:
		return "imu"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsEEG reports whether r is an EEG role.
func (r Role) IsEEG() bool { return strings.HasPrefix(string(r), "EEG_") }

// IsEMG reports whether r is an EMG role.
func (r Role) IsEMG() bool { return strings.HasPrefix(string(r), "EMG_") }

// IsIMU reports whether r is an IMU role.
func (r Role) IsIMU() bool { return strings.HasPrefix(string(r), "IMU_") }

// Kind returns the modality family of r.
func (r Role) Kind() Kind {
	if r.IsIMU() {
		return KindIMU
	}
	return KindEXG
}

// DeviceRoles is the pair of roles one device contributes.
type DeviceRoles struct {
	EXG Role
	IMU Role
}

// RoleMap assigns stream roles to device identifiers. It is immutable
// once built.
type RoleMap struct {
	devices []int
	roles   map[int]DeviceRoles
}

// NewRoleMap copies m into a RoleMap.
func NewRoleMap(m map[int]DeviceRoles) RoleMap {
	rm := RoleMap{roles: make(map[int]DeviceRoles, len(m))}
	for id, r := range m {
		rm.devices = append(rm.devices, id)
		rm.roles[id] = r
	}
	sort.Ints(rm.devices)
	return rm
}

// DefaultRoleMap returns the fixed three-device assignment: device 1
// records EEG, devices 2 and 3 record EMG, each with its own IMU.
func DefaultRoleMap() RoleMap {
	return NewRoleMap(map[int]DeviceRoles{
		1: {EXG: EEG1, IMU: IMU1},
		2: {EXG: EMG2, IMU: IMU2},
		3: {EXG: EMG3, IMU: IMU3},
	})
}

// Devices returns the mapped device identifiers in ascending order.
func (m RoleMap) Devices() []int {
	out := make([]int, len(m.devices))
	copy(out, m.devices)
	return out
}

// Roles returns the role pair for device id.
func (m RoleMap) Roles(id int) (DeviceRoles, bool) {
	r, ok := m.roles[id]
	return r, ok
}
