package topics

const (
	// Picks
	PicksComputed = "picks_computed"

	// Redis Pub/Sub (archiver -> odds-service/ws)
	PicksBroadcast = "shark_picks_broadcast"

	// Consumer groups
	PicksArchiverGroup = "picks-archiver"
)
