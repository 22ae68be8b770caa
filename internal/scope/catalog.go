// Package scope holds the static catalog of transformation scope tiles.
// The catalog is the source of truth for tile IDs, display names and the
// category grouping used by the dashboard. It is never mutated at runtime.
package scope

// Tile is an atomic unit of proposed project scope.
type Tile struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Category groups tiles for display. Tile order is display order.
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Tiles []Tile `json:"tiles" yaml:"tiles"`
}

var catalog = []Category{
	{
		Name: "Finance",
		Tiles: []Tile{
			{ID: "FIN-MDM", Name: "Master Data Management"},
			{ID: "FIN-CTRL", Name: "Controllership (e.g., Accounting, Product Costing)"},
			{ID: "FIN-FPA", Name: "Financial Planning, Budgeting and Forecasting"},
			{ID: "FIN-TCM", Name: "Treasury and Cash Management"},
			{ID: "FIN-P2P", Name: "Procure-to-Pay"},
		},
	},
	{
		Name: "Supply Chain and Logistics",
		Tiles: []Tile{
			{ID: "SCM-DPF", Name: "Demand Planning And Forecasting"},
			{ID: "SCM-IM", Name: "Inventory Management"},
			{ID: "SCM-WMS", Name: "Warehouse and Distribution Operations"},
			{ID: "SCM-TRA", Name: "Transportation and Logistics"},
		},
	},
	{
		Name: "Operations",
		Tiles: []Tile{
			{ID: "OPS-PP", Name: "Production Planning"},
			{ID: "OPS-EXEC", Name: "Manufacturing Execution"},
			{ID: "OPS-QM", Name: "Quality Management"},
			{ID: "OPS-PM", Name: "Asset and Plant Maintenance"},
		},
	},
	{
		Name: "Customer Order Management",
		Tiles: []Tile{
			{ID: "COM-ATP", Name: "Available-to-Promise"},
			{ID: "COM-OM", Name: "Order Fullfillment & Management"},
			{ID: "COM-INV", Name: "Invoice Management (including e-invoice)"},
			{ID: "COM-RAR", Name: "Revenue Recognition & Reporting (RAR)"},
		},
	},
}

// index maps tile ID -> (category index, tile index).
var index = buildIndex()

type position struct {
	category int
	tile     int
}

func buildIndex() map[string]position {
	idx := make(map[string]position)
	for ci, cat := range catalog {
		for ti, tile := range cat.Tiles {
			idx[tile.ID] = position{category: ci, tile: ti}
		}
	}
	return idx
}

// Categories returns the catalog in display order.
// The result is a deep copy; callers may modify it freely.
func Categories() []Category {
	out := make([]Category, len(catalog))
	for i, cat := range catalog {
		tiles := make([]Tile, len(cat.Tiles))
		copy(tiles, cat.Tiles)
		out[i] = Category{Name: cat.Name, Tiles: tiles}
	}
	return out
}

// Lookup returns the tile with the given ID.
func Lookup(id string) (Tile, bool) {
	pos, ok := index[id]
	if !ok {
		return Tile{}, false
	}
	return catalog[pos.category].Tiles[pos.tile], true
}

// TileCount returns the number of tiles across all categories.
func TileCount() int {
	return len(index)
}
