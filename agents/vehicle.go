package agents

import (
	"math"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/parking"
	"github.com/citysim/engine/pathing"
	"github.com/citysim/engine/trafficcontrol"
	"github.com/citysim/engine/world"
)

// gridlockThreshold is the per-tick speed below which a vehicle's stall
// counter increments (spec §4.7 "if velocity < epsilon for a tick,
// increment flag").
const gridlockThreshold = 0.05

// gridlockFlagLimit is how many consecutive stalled ticks trigger panic
// rerouting.
const gridlockFlagLimit = 200

// timeToPark is the duration a RoadToPark transition interpolates over
// (spec §4.7 "interpolates position along a pre-built spline over
// TIME_TO_PARK seconds").
const timeToPark = 3.0

func laneSpeedLimit(kind mapmodel.LaneKind) float64 {
	switch kind {
	case mapmodel.LaneDriving:
		return 13.4 // ~48 km/h default urban limit
	case mapmodel.LaneRail:
		return 20.0
	case mapmodel.LaneBus:
		return 11.0
	default:
		return 1.4
	}
}

// TickVehicle runs one perceive/decide/integrate pass for v (spec §4.7).
// m supplies lane/traffic-control lookups, grid the transport-grid
// snapshot, pk the parking manager for park/unpark transitions.
func TickVehicle(m *mapmodel.Map, grid *TransportGrid, pk *parking.Manager, v *world.Vehicle, dt, now float64) {
	switch v.State {
	case world.VehicleParked:
		return
	case world.VehicleRoadToPark:
		tickParkingTransition(v, dt, now)
		return
	case world.VehiclePanicking:
		// Waits for the routing system to hand it a fresh itinerary; once it
		// does, the caller resets State to VehicleDriving.
		return
	}

	obstacleDist, hasObstacle := perceiveVehicle(grid, v)
	desiredSpeed, desiredDir := decideVehicle(m, v, obstacleDist, hasObstacle, now)
	integrateVehicle(v, desiredSpeed, desiredDir, dt)
	detectGridlock(v, dt)
}

const vehiclePerceiveRadius = 60.0

func perceiveVehicle(grid *TransportGrid, v *world.Vehicle) (float64, bool) {
	obstacle, found := grid.NearestAhead(v.ID, v.Pos, v.Dir, vehiclePerceiveRadius)
	if !found {
		return 0, false
	}
	return obstacle.Distance, true
}

// obstacleYieldSpeed converts a perceived gap into a speed cap: the closer
// the obstacle, the lower the cap, reaching 0 at the vehicle's own length
// (spec §4.7 "obstacle_yield_speed").
func obstacleYieldSpeed(v *world.Vehicle, dist float64) float64 {
	safeGap := v.Class.Length
	if dist <= safeGap {
		return 0
	}
	closingBudget := dist - safeGap
	return math.Min(v.Class.MaxSpeedMultiplier*v.Class.Cruising*laneSpeedLimit(mapmodel.LaneDriving), closingBudget)
}

func decideVehicle(m *mapmodel.Map, v *world.Vehicle, obstacleDist float64, hasObstacle bool, now float64) (float64, geom.Vec2) {
	itinSpeed := laneSpeedLimit(mapmodel.LaneDriving)
	laneYield := laneYieldSpeed(m, v, now)

	desired := v.Class.Cruising * v.Class.MaxSpeedMultiplier * itinSpeed
	if desired > itinSpeed {
		desired = itinSpeed
	}
	if hasObstacle {
		if oy := obstacleYieldSpeed(v, obstacleDist); oy < desired {
			desired = oy
		}
	}
	if laneYield < desired {
		desired = laneYield
	}
	if desired < 0 {
		desired = 0
	}

	dir := v.Dir
	if point, ok := v.Itinerary.GetPoint(); ok {
		toPoint := point.XY().Sub(v.Pos.XY())
		if toPoint.Len2() > 1e-9 {
			dir = toPoint.Normalized()
			if toPoint.Len() < 1.0 {
				v.Itinerary.Advance()
			}
		}
	}
	return desired, dir
}

// laneYieldSpeed looks up the current lane's traffic control at the
// vehicle's approach to an intersection and returns 0 if it must yield,
// otherwise +Inf, i.e. no cap (spec §4.5's CanPass predicate
// consumed here as a speed cap rather than a boolean, so integrate still
// smoothly decelerates rather than halting instantly).
func laneYieldSpeed(m *mapmodel.Map, v *world.Vehicle, now float64) float64 {
	lane := currentApproachLane(m, v)
	if lane == nil {
		return math.Inf(1)
	}
	decision := trafficcontrol.CanPass(lane.Control, now, nil)
	if decision == trafficcontrol.Pass {
		return math.Inf(1)
	}
	return 0
}

// currentApproachLane resolves the lane the vehicle's itinerary terminal
// traversable refers to, when it names a lane (used only to read its
// traffic control, not to mutate anything).
func currentApproachLane(m *mapmodel.Map, v *world.Vehicle) *mapmodel.Lane {
	if v.Itinerary.Kind != pathing.ItineraryRoute {
		return nil
	}
	if v.Itinerary.Terminal.IsTurn {
		return nil
	}
	return m.Lane(mapmodel.LaneID(v.Itinerary.Terminal.LaneID))
}

func integrateVehicle(v *world.Vehicle, desiredSpeed float64, desiredDir geom.Vec2, dt float64) {
	if desiredSpeed > v.Speed {
		v.Speed += math.Min(desiredSpeed-v.Speed, v.Class.Acceleration*dt)
	} else {
		v.Speed -= math.Min(v.Speed-desiredSpeed, v.Class.Deceleration*dt)
	}
	if v.Speed < 0 {
		v.Speed = 0
	}

	if desiredDir.Len2() > 1e-9 {
		v.Dir = rotateToward(v.Dir, desiredDir, v.Class.AngAcc*dt)
	}

	v.Pos = v.Pos.Add(geom.FromXY(v.Dir.Scale(v.Speed*dt), 0))
}

// rotateToward turns from toward to by at most maxAngle radians.
func rotateToward(from, to geom.Vec2, maxAngle float64) geom.Vec2 {
	fromN, toN := from.Normalized(), to.Normalized()
	if fromN.Len2() < 1e-9 {
		return toN
	}
	angle := geom.AngleBetween(fromN, toN)
	if angle <= maxAngle {
		return toN
	}
	sign := 1.0
	if fromN.Cross(toN) < 0 {
		sign = -1.0
	}
	return fromN.RotatedBy(sign * maxAngle)
}

func detectGridlock(v *world.Vehicle, dt float64) {
	if v.Speed < gridlockThreshold {
		v.GridlockFlag++
	} else {
		v.GridlockFlag = 0
	}
	if v.GridlockFlag > gridlockFlagLimit {
		v.State = world.VehiclePanicking
		v.Itinerary = pathing.None()
		v.GridlockFlag = 0
	}
}

// BeginParking starts a vehicle's RoadToPark transition along a spline
// from its current pose to the spot's resting pose (spec §4.7 "entering
// RoadToPark state interpolates position along a pre-built spline").
func BeginParking(v *world.Vehicle, spot mapmodel.ParkingSpotID, spotPos geom.Vec3, spotHeading float64, now float64) {
	toDir := geom.Vec2{X: math.Cos(spotHeading), Y: math.Sin(spotHeading)}
	v.ParkSpline = geom.NewSpline(v.Pos, spotPos, v.Dir, toDir, 0.3)
	v.ParkSpot = spot
	v.ParkStartTime = now
	v.State = world.VehicleRoadToPark
}

func tickParkingTransition(v *world.Vehicle, dt, now float64) {
	t := (now - v.ParkStartTime) / timeToPark
	if t >= 1 {
		v.Pos = v.ParkSpline.To
		v.Speed = 0
		v.State = world.VehicleParked
		return
	}
	v.Pos = v.ParkSpline.Point(t)
	tangent := v.ParkSpline.Tangent(t)
	if tangent.Len2() > 1e-9 {
		v.Dir = tangent.XY().Normalized()
	}
}

// Unpark frees v's reserved spot and returns it to the driving state with
// a collider in the transport grid (spec §4.7 "exiting calls unpark,
// which frees the spot and inserts the vehicle into the transport grid
// with a collider" — insertion happens naturally on the next grid
// Rebuild, since the vehicle's State is no longer Parked).
func Unpark(pk *parking.Manager, v *world.Vehicle, reservation parking.Reservation) {
	pk.Free(reservation)
	v.State = world.VehicleDriving
}
