package game

// Fixed business catalog: 20 businesses across two tiers. Costs are a hand
// tuned escalation, not a formula, and must not drift.

var businessCosts = [BusinessCount]uint64{
	// Basic tier (0-9)
	500,     // Lemonade Stand
	1000,    // Food Truck
	2500,    // Coffee Shop
	5000,    // Retail Store
	10000,   // Restaurant
	20000,   // Franchise
	50000,   // Tech Startup
	100000,  // Manufacturing
	250000,  // Real Estate
	500000,  // Investment Firm
	// Enhanced tier (10-19)
	1000000,  // AI Company
	2000000,  // Biotech Lab
	3000000,  // Space Tourism
	5000000,  // Quantum Computing
	7500000,  // Neural Interface
	10000000, // Fusion Energy
	15000000, // Nanotech Corp
	20000000, // Time Travel Inc
	30000000, // Multiverse LLC
	50000000, // Reality Engine
}

var businessNames = [BusinessCount]string{
	"Lemonade Stand", "Food Truck", "Coffee Shop", "Retail Store", "Restaurant",
	"Franchise", "Tech Startup", "Manufacturing", "Real Estate", "Investment Firm",
	"AI Company", "Biotech Lab", "Space Tourism", "Quantum Computing", "Neural Interface",
	"Fusion Energy", "Nanotech Corp", "Time Travel Inc", "Multiverse LLC", "Reality Engine",
}

// BusinessCost returns the catalog price for one business id.
func BusinessCost(id uint8) (uint64, error) {
	if int(id) >= BusinessCount {
		return 0, ErrInvalidBusinessID
	}
	return businessCosts[id], nil
}

// BusinessName returns the display name for one business id.
func BusinessName(id uint8) (string, error) {
	if int(id) >= BusinessCount {
		return "", ErrInvalidBusinessID
	}
	return businessNames[id], nil
}

// MaxSlots is the active-business capacity implied by a work-frequency level.
func MaxSlots(workFrequencyLevel uint8) int {
	switch workFrequencyLevel {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		return 3
	case 3:
		return 4
	case 4:
		return 5
	default:
		return 1
	}
}

// PurchaseBusiness debits the catalog cost, records ownership, and
// auto-assigns the business to an active slot when capacity allows. The
// auto-assignment is best effort: a full slot list is not an error.
func PurchaseBusiness(ps *PlayerState, id uint8) (uint64, error) {
	cost, err := BusinessCost(id)
	if err != nil {
		return 0, err
	}
	if ownsBusiness(ps, id) {
		return 0, ErrAlreadyOwned
	}
	if ps.Credits < cost {
		return 0, ErrInsufficientCredits
	}

	ps.Credits -= cost
	ps.BusinessesOwned = append(ps.BusinessesOwned, id)
	if len(ps.ActiveBusinessSlots) < MaxSlots(ps.WorkFrequencyLevel) {
		ps.ActiveBusinessSlots = append(ps.ActiveBusinessSlots, id)
	}
	return cost, nil
}

// SetActiveSlots replaces the active-slot list. Every id must be owned and
// distinct, and the list must fit the capacity for the current level.
func SetActiveSlots(ps *PlayerState, slots []uint8) error {
	if len(slots) > MaxSlots(ps.WorkFrequencyLevel) {
		return ErrMaxSlotsReached
	}
	seen := make(map[uint8]bool, len(slots))
	for _, id := range slots {
		if int(id) >= BusinessCount {
			return ErrInvalidBusinessID
		}
		if seen[id] {
			return ErrInvalidParameters
		}
		seen[id] = true
		if !ownsBusiness(ps, id) {
			return ErrNotOwned
		}
	}
	ps.ActiveBusinessSlots = append([]uint8(nil), slots...)
	return nil
}

func ownsBusiness(ps *PlayerState, id uint8) bool {
	for _, owned := range ps.BusinessesOwned {
		if owned == id {
			return true
		}
	}
	return false
}
