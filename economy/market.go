package economy

import (
	"sort"
	"sync"

	"github.com/citysim/engine/geom"
	"github.com/samber/lo"
)

// allGoods enumerates every tradeable kind in a fixed, deterministic order
// so MatchTick's per-good loop needs no further sorting (spec §4.9).
var allGoods = []GoodKind{GoodFood, GoodGoods, GoodMaterials}

// FreightDemand is a delivery task enqueued by a matched trade, consumed by
// the dispatcher (spec §4.8 "enqueues a freight-delivery task"; §4.6).
type FreightDemand struct {
	Good     GoodKind
	Quantity int
	From, To geom.Vec2
	BuySoul  int64
	SellSoul int64
}

// Market matches every soul's standing orders once per tick (spec §4.8).
type Market struct {
	mu      sync.Mutex
	souls   map[int64]*Soul
	demands []FreightDemand
}

// NewMarket returns an empty market.
func NewMarket() *Market {
	return &Market{souls: make(map[int64]*Soul)}
}

// Register adds or replaces a soul.
func (m *Market) Register(s *Soul) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.souls[s.ID] = s
}

// Soul returns the soul with id, or nil.
func (m *Market) Soul(id int64) *Soul {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.souls[id]
}

func (m *Market) sortedSoulIDs() []int64 {
	ids := lo.Keys(m.souls)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SoulIDs returns every registered soul's ID in sorted order (spec §4.9
// determinism requirement), for callers that need to walk the whole
// population deterministically (e.g. internal/save's resource snapshot).
func (m *Market) SoulIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedSoulIDs()
}

// MatchTick pairs every good's buy orders against its sell orders by
// nearest-compatible location, transfers capital, and enqueues a
// FreightDemand per fill (spec §4.8 "matches orders by nearest-compatible
// pair, transfers capital, and enqueues a freight-delivery task").
//
// Grounded on ecosim/economy.go's CalculateConsumption: walk candidates in
// a fixed order, cap each fill by remaining inventory (here: the seller's
// order quantity) and by the buyer's remaining capital, and apply partial
// fills rather than requiring an exact match.
func (m *Market) MatchTick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	soulIDs := m.sortedSoulIDs()
	for _, good := range allGoods {
		buys := m.collectOrders(soulIDs, good, true)
		sells := m.collectOrders(soulIDs, good, false)

		for bi := range buys {
			buy := &buys[bi]
			buyer := m.souls[buy.SoulID]

			order := nearestSellOrder(sells, buy.Location)
			for _, si := range order {
				sell := &sells[si]
				if sell.Quantity <= 0 || buy.Quantity <= 0 {
					continue
				}
				if sell.SoulID == buy.SoulID {
					continue
				}
				if sell.LimitPrice > buy.LimitPrice {
					continue
				}
				seller := m.souls[sell.SoulID]

				qty := minInt(buy.Quantity, sell.Quantity)
				price := sell.LimitPrice
				affordable := int(buyer.Capital / price)
				if price <= 0 {
					affordable = qty
				}
				qty = minInt(qty, affordable)
				if qty <= 0 {
					continue
				}

				cost := price * float64(qty)
				buyer.Capital -= cost
				seller.Capital += cost
				buy.Quantity -= qty
				sell.Quantity -= qty

				m.demands = append(m.demands, FreightDemand{
					Good: good, Quantity: qty,
					From: sell.Location, To: buy.Location,
					BuySoul: buy.SoulID, SellSoul: sell.SoulID,
				})
			}
		}

		m.writeBackOrders(good, buys, sells)
	}
}

// nearestSellOrder returns sells' indices sorted by distance from at, so a
// buy order fills against the nearest-compatible seller first (spec §4.8
// "matches orders by nearest-compatible pair"). Ties break by index, which
// traces back to sorted soul-ID order, keeping the result deterministic.
func nearestSellOrder(sells []Order, at geom.Vec2) []int {
	order := make([]int, len(sells))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sells[order[i]].Location.Distance(at) < sells[order[j]].Location.Distance(at)
	})
	return order
}

// collectOrders flattens every soul's standing orders for good, in sorted
// soul-ID order, so matching is deterministic run to run.
func (m *Market) collectOrders(soulIDs []int64, good GoodKind, buySide bool) []Order {
	var out []Order
	for _, id := range soulIDs {
		s := m.souls[id]
		var book []Order
		if buySide {
			book = s.Buy[good]
		} else {
			book = s.Sell[good]
		}
		out = append(out, book...)
	}
	return out
}

// writeBackOrders replaces each soul's order book for good with whatever
// quantity remains after matching, dropping orders that filled completely.
func (m *Market) writeBackOrders(good GoodKind, buys, sells []Order) {
	remaining := func(orders []Order, books map[int64]map[GoodKind][]Order) {
		for _, o := range orders {
			if o.Quantity <= 0 {
				continue
			}
			perSoul := books[o.SoulID]
			if perSoul == nil {
				perSoul = make(map[GoodKind][]Order)
				books[o.SoulID] = perSoul
			}
			perSoul[good] = append(perSoul[good], o)
		}
	}

	buyBooks := make(map[int64]map[GoodKind][]Order)
	sellBooks := make(map[int64]map[GoodKind][]Order)
	remaining(buys, buyBooks)
	remaining(sells, sellBooks)

	for id, s := range m.souls {
		s.Buy[good] = buyBooks[id][good]
		s.Sell[good] = sellBooks[id][good]
	}
}

// DrainFreightDemands returns and clears every FreightDemand enqueued since
// the last drain, for the dispatcher/tick driver to act on.
func (m *Market) DrainFreightDemands() []FreightDemand {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.demands
	m.demands = nil
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
