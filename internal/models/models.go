package models

type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null"                 json:"name"`
	Email    string `gorm:"uniqueIndex;not null"     json:"email"`
	Password string `gorm:"not null"                 json:"-"`
}

func (User) TableName() string {
	return "users"
}

type Product struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"not null"                 json:"name"`
	Price    float64 `gorm:"not null"                 json:"price"`
	Stock    int     `gorm:"not null"                 json:"stock"`
	Currency string  `gorm:"not null"                 json:"currency"`
	Vat      int64   `gorm:"not null"                 json:"vat"`
}

func (Product) TableName() string {
	return "product"
}

// CartLine is one row of shopping_cart. There is at most one line per
// (user, product) pair and its amount stays positive.
type CartLine struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"                    json:"id"`
	UserID    int64 `gorm:"uniqueIndex:idx_cart_user_product;not null"  json:"user_id"`
	ProductID int64 `gorm:"uniqueIndex:idx_cart_user_product;not null"  json:"product_id"`
	Amount    int   `gorm:"not null;check:amount > 0"                   json:"amount"`
}

func (CartLine) TableName() string {
	return "shopping_cart"
}

type Vat struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string  `gorm:"not null"                 json:"description"`
	Amount      float64 `gorm:"not null"                 json:"amount"`
	Region      string  `gorm:"not null"                 json:"region"`
}

func (Vat) TableName() string {
	return "vats"
}

// Tables lists every table model in migration order.
func Tables() []any {
	return []any{&User{}, &Vat{}, &Product{}, &CartLine{}}
}
