package auth

// Privilege levels are ordinal: a command is allowed when the caller's level
// is at least the command's required level.
const (
	LevelAnonymous = 0
	LevelUser      = 1
	LevelModerator = 2
	LevelAdmin     = 3
)

// Command names for every externally reachable operation.
const (
	CommandStationsGet    = "stations.get"
	CommandStationsList   = "stations.list"
	CommandStationsCreate = "stations.create"
	CommandStationsUpdate = "stations.update"
	CommandStationsDelete = "stations.delete"

	CommandRoundGet    = "round.get"
	CommandRoundUpdate = "round.update"

	CommandTeamsList = "teams.list"

	CommandHackStart = "hack.start"
	CommandHackGuess = "hack.guess"

	CommandCredentialsRegister = "credentials.register"
	CommandCredentialsAddFake  = "credentials.add_fake"
)

// requiredLevels maps each command to its minimum privilege level. The table
// is built once at startup and never mutated at runtime.
func requiredLevels() map[string]int {
	return map[string]int{
		CommandStationsGet:    LevelAnonymous,
		CommandStationsList:   LevelAnonymous,
		CommandStationsCreate: LevelAdmin,
		CommandStationsUpdate: LevelAdmin,
		CommandStationsDelete: LevelAdmin,

		CommandRoundGet:    LevelAnonymous,
		CommandRoundUpdate: LevelAdmin,

		CommandTeamsList: LevelAnonymous,

		CommandHackStart: LevelUser,
		CommandHackGuess: LevelUser,

		CommandCredentialsRegister: LevelAdmin,
		CommandCredentialsAddFake:  LevelAdmin,
	}
}
