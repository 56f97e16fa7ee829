package domain

// CartLine references one inventory item with a requested quantity.
// Item fields are snapshotted at the time of addition; duplicate items
// produce duplicate lines with distinct line IDs.
type CartLine struct {
	ID        string `json:"id"`
	ItemID    uint   `json:"item_id"`
	Kode      string `json:"kode"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Stock     int    `json:"stock"`
	Quantity  int    `json:"quantity"`
	LineTotal int    `json:"line_total"`
}

// Cart is the in-session collection of lines pending checkout.
// Insertion order is display order.
type Cart struct {
	Lines []CartLine `json:"lines"`
	Total int        `json:"total"`
}

// RecomputeTotal sets Total to the sum of the current line totals.
// The total is always recomputed from scratch, never adjusted
// incrementally, so it cannot drift from the lines.
func (c *Cart) RecomputeTotal() {
	total := 0
	for _, line := range c.Lines {
		total += line.LineTotal
	}
	c.Total = total
}
