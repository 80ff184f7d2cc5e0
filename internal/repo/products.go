package repo

import "github.com/Skotchmaster/storefront/internal/models"

const productColumns = `id, name, price, stock, currency, vat`

func (s *Session) ListProducts() ([]models.Product, error) {
	products := []models.Product{}
	if err := s.Select(&products, `SELECT `+productColumns+` FROM product ORDER BY id`); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Session) ProductByID(id int64) (models.Product, bool, error) {
	var p models.Product
	found, err := s.Get(&p, `SELECT `+productColumns+` FROM product WHERE id = ?`, id)
	return p, found, err
}

func (s *Session) ProductExists(id int64) (bool, error) {
	var found int64
	return s.Get(&found, `SELECT id FROM product WHERE id = ?`, id)
}

func (s *Session) InsertProduct(p models.Product) (models.Product, error) {
	var created models.Product
	_, err := s.Get(&created,
		`INSERT INTO product (name, price, stock, currency, vat) VALUES (?, ?, ?, ?, ?) RETURNING `+productColumns,
		p.Name, p.Price, p.Stock, p.Currency, p.Vat,
	)
	return created, err
}

func (s *Session) DeleteProduct(id int64) (int64, error) {
	return s.Exec(`DELETE FROM product WHERE id = ?`, id)
}
