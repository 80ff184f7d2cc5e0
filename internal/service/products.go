package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service/search"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

const (
	MsgProductFieldsRequired = "Please provide all required fields: name, price, stock, currency, vat"
	MsgSearchQueryRequired   = "Please provide a search query."
)

type ProductService struct {
	Gateway *repo.Gateway
	Events  mykafka.Publisher
	Search  search.Index
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		products, err = tx.ListProducts()
		return err
	})
	return products, err
}

func (s *ProductService) Get(ctx context.Context, id int64) (models.Product, error) {
	var (
		product models.Product
		found   bool
	)
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		product, found, err = tx.ProductByID(id)
		return err
	})
	if err != nil {
		return models.Product{}, err
	}
	if !found {
		return models.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, req transport.CreateProductRequest) (models.Product, error) {
	if err := validate.Struct(req); err != nil {
		return models.Product{}, invalid(MsgProductFieldsRequired)
	}

	var created models.Product
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		created, err = tx.InsertProduct(models.Product{
			Name:     req.Name,
			Price:    *req.Price,
			Stock:    *req.Stock,
			Currency: *req.Currency,
			Vat:      *req.Vat,
		})
		return err
	})
	if err != nil {
		return models.Product{}, err
	}

	publish(ctx, s.Events, mykafka.TopicProducts, strconv.FormatInt(created.ID, 10), "product_created", created)
	if s.Search != nil {
		if err := s.Search.IndexProduct(ctx, created); err != nil {
			logging.FromContext(ctx).Error("index_product_failed", "product_id", created.ID, "error", err)
		}
	}
	return created, nil
}

// Delete does not check that the product existed.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	var deleted int64
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		deleted, err = tx.DeleteProduct(id)
		return err
	})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return nil
	}

	publish(ctx, s.Events, mykafka.TopicProducts, strconv.FormatInt(id, 10), "product_deleted", map[string]any{"id": id})
	if s.Search != nil {
		if err := s.Search.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Error("unindex_product_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

// Find runs a full text query; page is 1-based.
func (s *ProductService) Find(ctx context.Context, query string, page, size int) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid(MsgSearchQueryRequired)
	}
	from, limit := util.Calculate(page, size)
	return s.Search.Search(ctx, query, from, limit)
}
