package world

import "sort"

// World owns every entity, typed by kind (spec §9). All creation goes
// through its constructors so EntityID stays unique across kinds.
type World struct {
	vehicles        map[EntityID]*Vehicle
	wagons          map[EntityID]*Wagon
	trains          map[EntityID]*Train
	humans          map[EntityID]*Human
	companies       map[EntityID]*Company
	freightStations map[EntityID]*FreightStation

	kindOf map[EntityID]Kind
	nextID int64
}

// New returns an empty world.
func New() *World {
	return &World{
		vehicles:        make(map[EntityID]*Vehicle),
		wagons:          make(map[EntityID]*Wagon),
		trains:          make(map[EntityID]*Train),
		humans:          make(map[EntityID]*Human),
		companies:       make(map[EntityID]*Company),
		freightStations: make(map[EntityID]*FreightStation),
		kindOf:          make(map[EntityID]Kind),
	}
}

func (w *World) allocate(k Kind) EntityID {
	w.nextID++
	id := EntityID(w.nextID)
	w.kindOf[id] = k
	return id
}

// KindOf reports the kind of a live entity, or ok=false if id is unknown
// or has been removed (spec §7 "Reference-stale").
func (w *World) KindOf(id EntityID) (Kind, bool) {
	k, ok := w.kindOf[id]
	return k, ok
}

// NewVehicle allocates and stores a vehicle, returning its ID.
func (w *World) NewVehicle(v Vehicle) EntityID {
	id := w.allocate(KindVehicle)
	v.ID = id
	w.vehicles[id] = &v
	return id
}

// NewWagon allocates and stores a wagon.
func (w *World) NewWagon(wg Wagon) EntityID {
	id := w.allocate(KindWagon)
	wg.ID = id
	w.wagons[id] = &wg
	return id
}

// NewTrain allocates and stores a train.
func (w *World) NewTrain(tr Train) EntityID {
	id := w.allocate(KindTrain)
	tr.ID = id
	w.trains[id] = &tr
	return id
}

// NewHuman allocates and stores a human.
func (w *World) NewHuman(h Human) EntityID {
	id := w.allocate(KindHuman)
	h.ID = id
	w.humans[id] = &h
	return id
}

// NewCompany allocates and stores a company.
func (w *World) NewCompany(c Company) EntityID {
	id := w.allocate(KindCompany)
	c.ID = id
	w.companies[id] = &c
	return id
}

// NewFreightStation allocates and stores a freight station.
func (w *World) NewFreightStation(f FreightStation) EntityID {
	id := w.allocate(KindFreightStation)
	f.ID = id
	w.freightStations[id] = &f
	return id
}

// Accessors return nil when id is absent or of the wrong kind (spec §7
// "Reference-stale": all component lookups return an optional).
func (w *World) Vehicle(id EntityID) *Vehicle               { return w.vehicles[id] }
func (w *World) Wagon(id EntityID) *Wagon                   { return w.wagons[id] }
func (w *World) Train(id EntityID) *Train                   { return w.trains[id] }
func (w *World) Human(id EntityID) *Human                   { return w.humans[id] }
func (w *World) Company(id EntityID) *Company               { return w.companies[id] }
func (w *World) FreightStation(id EntityID) *FreightStation { return w.freightStations[id] }

// Remove deletes id from whichever typed store owns it.
func (w *World) Remove(id EntityID) {
	switch w.kindOf[id] {
	case KindVehicle:
		delete(w.vehicles, id)
	case KindWagon:
		delete(w.wagons, id)
	case KindTrain:
		delete(w.trains, id)
	case KindHuman:
		delete(w.humans, id)
	case KindCompany:
		delete(w.companies, id)
	case KindFreightStation:
		delete(w.freightStations, id)
	}
	delete(w.kindOf, id)
}

// VehicleIDs, HumanIDs, etc. return every live ID of that kind, sorted
// ascending for deterministic iteration (spec §4.9).
func (w *World) VehicleIDs() []EntityID        { return sortedIDs(w.vehicles) }
func (w *World) TrainIDs() []EntityID          { return sortedIDs(w.trains) }
func (w *World) HumanIDs() []EntityID          { return sortedIDs(w.humans) }
func (w *World) CompanyIDs() []EntityID        { return sortedIDs(w.companies) }
func (w *World) FreightStationIDs() []EntityID { return sortedIDs(w.freightStations) }

func sortedIDs[V any](m map[EntityID]V) []EntityID {
	out := make([]EntityID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
