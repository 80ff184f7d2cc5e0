package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const (
	MsgProductIDRequired = "Please provide product_id."
	MsgProductIDInteger  = "Product id must be an integer."
	MsgAmountInteger     = "Amount must be an integer."
	MsgAmountPositive    = "Amount must be greater than 0."
)

type CartService struct {
	Gateway *repo.Gateway
	Events  mykafka.Publisher
}

// CartChange is a validated add or remove request.
type CartChange struct {
	ProductID int64
	Amount    int
}

func (s *CartService) Items(ctx context.Context, userID int64) ([]models.CartItem, error) {
	var rows []models.CartRow
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		rows, err = tx.CartRows(userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return models.NewCartItems(rows), nil
}

func (s *CartService) Add(ctx context.Context, userID int64, req transport.CartRequest) (CartChange, error) {
	change, err := ParseCartRequest(req)
	if err != nil {
		return CartChange{}, err
	}

	err = s.Gateway.Scope(ctx, func(tx *repo.Session) error {
		exists, err := tx.ProductExists(change.ProductID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("product %d: %w", change.ProductID, ErrNotFound)
		}
		return tx.AddToCart(userID, change.ProductID, change.Amount)
	})
	if err != nil {
		return change, err
	}

	s.published(ctx, userID, "cart_item_added", change)
	return change, nil
}

// Remove takes amount units off the line; removing at least what is left
// deletes the line.
func (s *CartService) Remove(ctx context.Context, userID int64, req transport.CartRequest) (CartChange, error) {
	change, err := ParseCartRequest(req)
	if err != nil {
		return CartChange{}, err
	}

	err = s.Gateway.Scope(ctx, func(tx *repo.Session) error {
		found, err := tx.RemoveFromCart(userID, change.ProductID, change.Amount)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("cart line for product %d: %w", change.ProductID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return change, err
	}

	s.published(ctx, userID, "cart_item_removed", change)
	return change, nil
}

func (s *CartService) published(ctx context.Context, userID int64, typ string, change CartChange) {
	publish(ctx, s.Events, mykafka.TopicCart, strconv.FormatInt(userID, 10), typ, map[string]any{
		"user_id":    userID,
		"product_id": change.ProductID,
		"amount":     change.Amount,
	})
}

// ParseCartRequest checks product_id for presence and requires it to be an
// integer or an integer string. amount is coerced the way a lenient int
// conversion would: integral numbers, truncated decimals, numeric strings
// and booleans are accepted. An absent amount means 1.
func ParseCartRequest(req transport.CartRequest) (CartChange, error) {
	productRaw, ok := decodeValue(req.ProductID)
	if !ok || !truthy(productRaw) {
		return CartChange{}, invalid(MsgProductIDRequired)
	}
	productID, ok := parseID(productRaw)
	if !ok {
		return CartChange{}, invalid(MsgProductIDInteger)
	}

	amount := int64(1)
	if req.Amount != nil {
		v, _ := decodeValue(req.Amount)
		if amount, ok = coerceInt(v); !ok {
			return CartChange{}, invalid(MsgAmountInteger)
		}
	}
	if amount <= 0 {
		return CartChange{}, invalid(MsgAmountPositive)
	}
	if amount > math.MaxInt32 {
		return CartChange{}, invalid(MsgAmountInteger)
	}

	return CartChange{ProductID: productID, Amount: int(amount)}, nil
}

func decodeValue(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	}
	return true
}

// parseID never rounds, so a fractional id can not name another product.
func parseID(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		i, err := x.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func coerceInt(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		f, err := x.Float64()
		if err != nil || math.IsNaN(f) || math.Abs(f) >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return i, err == nil
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
