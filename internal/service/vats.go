package service

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const MsgVatFieldsRequired = "Please provide all required fields: description, amount, region."

type VatService struct {
	Gateway *repo.Gateway
	Events  mykafka.Publisher
}

func (s *VatService) List(ctx context.Context) ([]models.Vat, error) {
	var vats []models.Vat
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		vats, err = tx.ListVats()
		return err
	})
	return vats, err
}

func (s *VatService) Create(ctx context.Context, req transport.VatRequest) (models.Vat, error) {
	if err := validate.Struct(req); err != nil {
		return models.Vat{}, invalid(MsgVatFieldsRequired)
	}

	var created models.Vat
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		created, err = tx.InsertVat(vatFrom(req))
		return err
	})
	if err != nil {
		return models.Vat{}, err
	}

	publish(ctx, s.Events, mykafka.TopicVats, strconv.FormatInt(created.ID, 10), "vat_created", created)
	return created, nil
}

// Update is a no-op for an unknown id.
func (s *VatService) Update(ctx context.Context, id int64, req transport.VatRequest) error {
	if err := validate.Struct(req); err != nil {
		return invalid(MsgVatFieldsRequired)
	}

	vat := vatFrom(req)
	var updated int64
	err := s.Gateway.Scope(ctx, func(tx *repo.Session) (err error) {
		updated, err = tx.UpdateVat(id, vat)
		return err
	})
	if err != nil {
		return err
	}

	if updated > 0 {
		vat.ID = id
		publish(ctx, s.Events, mykafka.TopicVats, strconv.FormatInt(id, 10), "vat_updated", vat)
	}
	return nil
}

func vatFrom(req transport.VatRequest) models.Vat {
	return models.Vat{Description: req.Description, Amount: *req.Amount, Region: req.Region}
}
