// Package stations implements the station registry: CRUD and signal-value
// updates for the hackable network stations.
package stations

// OwnerTeamReset is the sentinel team id accepted by update operations to
// clear station ownership.
const OwnerTeamReset int64 = -1

// Station is a named network node holding a bounded signal gauge and
// ownership/attack flags. SignalValue is kept within
// [default-threshold, default+threshold] by the signal engine; administrative
// edits may set it outside that range transiently.
type Station struct {
	ID                int64
	Name              string
	SignalValue       int
	IsActive          bool
	OwnerTeamID       *int64
	IsUnderAttack     bool
	CalibrationReward int
}
