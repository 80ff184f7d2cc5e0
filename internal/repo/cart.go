package repo

import "github.com/Skotchmaster/storefront/internal/models"

func (s *Session) CartRows(userID int64) ([]models.CartRow, error) {
	rows := []models.CartRow{}
	err := s.Select(&rows, `
		SELECT
			sc.id,
			sc.amount,
			p.id   AS product_id,
			p.name AS product_name,
			p.price,
			p.stock
		FROM shopping_cart sc
		JOIN product p ON sc.product_id = p.id
		WHERE sc.user_id = ?
		ORDER BY sc.id`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AddToCart creates the line or grows it by amount in one statement.
func (s *Session) AddToCart(userID, productID int64, amount int) error {
	_, err := s.Exec(`
		INSERT INTO shopping_cart (user_id, product_id, amount)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET amount = shopping_cart.amount + excluded.amount`,
		userID, productID, amount,
	)
	return err
}

// RemoveFromCart shrinks the line by amount, or deletes it when amount
// covers everything left. It reports false when there was no line.
func (s *Session) RemoveFromCart(userID, productID int64, amount int) (bool, error) {
	n, err := s.Exec(`
		UPDATE shopping_cart
		SET amount = amount - ?
		WHERE user_id = ? AND product_id = ? AND amount > ?`,
		amount, userID, productID, amount,
	)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	n, err = s.Exec(`DELETE FROM shopping_cart WHERE user_id = ? AND product_id = ?`, userID, productID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
