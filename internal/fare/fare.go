// Package fare computes the fare breakdown for a trip.
package fare

import "math"

// Inputs are the six non-negative fare components entered for a trip.
// The caller is responsible for rejecting negative values before calling;
// Calculate itself has no error conditions.
type Inputs struct {
	PricePerKm         float64
	TotalKm            float64
	WaitingChargePerHr float64
	WaitingHrs         float64
	TollParking        float64
	Bata               float64
}

// Breakdown is the computed fare split.
type Breakdown struct {
	BaseFare   float64
	WaitingFee float64
	TotalFee   float64
}

// Calculate maps trip inputs to a fare breakdown:
//
//	baseFare   = pricePerKm * totalKm
//	waitingFee = waitingChargePerHr * waitingHrs
//	totalFee   = baseFare + tollParking + bata + waitingFee
//
// Values keep full double precision; rounding happens only at presentation
// time via Round2.
func Calculate(in Inputs) Breakdown {
	baseFare := in.PricePerKm * in.TotalKm
	waitingFee := in.WaitingChargePerHr * in.WaitingHrs
	return Breakdown{
		BaseFare:   baseFare,
		WaitingFee: waitingFee,
		TotalFee:   baseFare + in.TollParking + in.Bata + waitingFee,
	}
}

// Round2 rounds a monetary value to two decimal places for display on
// PDFs and exports. Stored values are never rounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
