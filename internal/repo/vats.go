package repo

import "github.com/Skotchmaster/storefront/internal/models"

func (s *Session) ListVats() ([]models.Vat, error) {
	vats := []models.Vat{}
	if err := s.Select(&vats, `SELECT id, description, amount, region FROM vats ORDER BY id`); err != nil {
		return nil, err
	}
	return vats, nil
}

func (s *Session) InsertVat(v models.Vat) (models.Vat, error) {
	var created models.Vat
	_, err := s.Get(&created,
		`INSERT INTO vats (description, amount, region) VALUES (?, ?, ?) RETURNING id, description, amount, region`,
		v.Description, v.Amount, v.Region,
	)
	return created, err
}

// UpdateVat is a no-op when id does not exist.
func (s *Session) UpdateVat(id int64, v models.Vat) (int64, error) {
	return s.Exec(
		`UPDATE vats SET description = ?, amount = ?, region = ? WHERE id = ?`,
		v.Description, v.Amount, v.Region, id,
	)
}
