package mapmodel

import "sort"

// sortedKeys* return every map key in ascending order. Determinism (spec
// §4.9: "iteration uses sorted keys") requires this anywhere a map is
// walked during a mutation, a hash computation, or a snapshot.
func sortedKeysI(m map[IntersectionID]*Intersection) []IntersectionID {
	out := make([]IntersectionID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeysR(m map[RoadID]*Road) []RoadID {
	out := make([]RoadID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeysL(m map[LaneID]*Lane) []LaneID {
	out := make([]LaneID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeysB(m map[BuildingID]*Building) []BuildingID {
	out := make([]BuildingID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeysLot(m map[LotID]*Lot) []LotID {
	out := make([]LotID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeysSpot(m map[ParkingSpotID]*ParkingSpot) []ParkingSpotID {
	out := make([]ParkingSpotID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
