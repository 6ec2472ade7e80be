package datastructure

// OriginDestination is one generated test query: a source vertex and a
// destination vertex, optionally annotated with the Dijkstra rank that was
// used to pick the destination (0 = not rank-annotated).
type OriginDestination struct {
	origin       Index
	destination  Index
	dijkstraRank int
}

func NewOriginDestination(origin, destination Index) OriginDestination {
	return OriginDestination{origin: origin, destination: destination}
}

func NewOriginDestinationWithRank(origin, destination Index, dijkstraRank int) OriginDestination {
	return OriginDestination{origin: origin, destination: destination, dijkstraRank: dijkstraRank}
}

func (od OriginDestination) GetOrigin() Index {
	return od.origin
}

func (od OriginDestination) GetDestination() Index {
	return od.destination
}

func (od OriginDestination) GetDijkstraRank() int {
	return od.dijkstraRank
}
