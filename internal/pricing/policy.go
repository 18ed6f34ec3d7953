package pricing

import "github.com/OldStager01/airfare-pricer/pkg/models"

// Policy is the set of rule-based factors composed on top of the model
// multiplier. Each operation answers a different what-if question, so the
// set differs per operation.
type Policy uint8

const (
	FactorSeat Policy = 1 << iota
	FactorDemand
)

const (
	PolicyPoint       Policy = 0
	PolicyDaysSweep   Policy = 0
	PolicySeatSweep   Policy = FactorSeat
	PolicyDemandSweep Policy = FactorDemand
	PolicyExplain     Policy = FactorSeat | FactorDemand
	PolicySearch      Policy = FactorSeat | FactorDemand
)

func (p Policy) Has(f Policy) bool {
	return p&f == f
}

func (p Policy) String() string {
	switch p {
	case 0:
		return "ml_only"
	case FactorSeat:
		return "seat"
	case FactorDemand:
		return "demand"
	case FactorSeat | FactorDemand:
		return "seat+demand"
	default:
		return "unknown"
	}
}

// PolicyFor returns the factor set each API operation prices with.
func PolicyFor(op models.Operation) Policy {
	switch op {
	case models.OperationSimulateSeats:
		return PolicySeatSweep
	case models.OperationSimulateDemand:
		return PolicyDemandSweep
	case models.OperationExplain:
		return PolicyExplain
	case models.OperationSearch:
		return PolicySearch
	default:
		return PolicyPoint
	}
}
