package models

// CartRow is the shape of the shopping_cart/product join.
type CartRow struct {
	ID          int64
	Amount      int
	ProductID   int64
	ProductName string
	Price       *float64
	Stock       int
}

type CartItem struct {
	ID          int64    `json:"id"`
	ProductID   int64    `json:"product_id"`
	ProductName string   `json:"product_name"`
	Price       *float64 `json:"price"`
	Stock       int      `json:"stock"`
	Amount      int      `json:"amount"`
	TotalPrice  *float64 `json:"total_price"`
}

func NewCartItem(row CartRow) CartItem {
	item := CartItem{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Stock:       row.Stock,
		Amount:      row.Amount,
	}
	if row.Price != nil {
		price := *row.Price
		total := price * float64(row.Amount)
		item.Price = &price
		item.TotalPrice = &total
	}
	return item
}

func NewCartItems(rows []CartRow) []CartItem {
	items := make([]CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, NewCartItem(row))
	}
	return items
}
