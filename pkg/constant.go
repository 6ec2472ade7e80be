package pkg

// enum of cost_type
type CostType uint8

const (
	COST_TRAVEL_TIME CostType = iota
	COST_LENGTH
)

func GetCostType(costMode string) CostType {
	switch costMode {
	case "length":
		return COST_LENGTH
	default:
		return COST_TRAVEL_TIME
	}
}

const (
	INF_WEIGHT float64 = 1e15
)

const (
	// DEFAULT_SEED keeps workloads comparable across machines when no seed is given.
	DEFAULT_SEED int64 = 19900325

	DEFAULT_MAX_RETRIES = 50
)

const (
	DEBUG = false
)
