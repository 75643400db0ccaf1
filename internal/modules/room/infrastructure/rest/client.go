// Package rest implements the room service client over its REST resource
// at /salles.
package rest

import (
	"context"
	"strconv"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/room/domain"
	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/apiclient"
)

const basePath = "/salles"

type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

func (c *Client) List(ctx context.Context) ([]domain.Salle, error) {
	var out []domain.Salle
	if err := c.api.Get(ctx, basePath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (domain.Salle, error) {
	var out domain.Salle
	if err := c.api.Get(ctx, basePath+"/"+strconv.FormatInt(id, 10), &out); err != nil {
		return domain.Salle{}, err
	}
	return out, nil
}

// Create validates locally, then submits. The returned entity carries the
// server-assigned id.
func (c *Client) Create(ctx context.Context, dto domain.CreateSalleDTO) (domain.Salle, error) {
	if err := dto.Validate(); err != nil {
		return domain.Salle{}, err
	}
	var out domain.Salle
	if err := c.api.Post(ctx, basePath, dto, &out); err != nil {
		return domain.Salle{}, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id int64, dto domain.UpdateSalleDTO) (domain.Salle, error) {
	if err := dto.Validate(); err != nil {
		return domain.Salle{}, err
	}
	var out domain.Salle
	if err := c.api.Put(ctx, basePath+"/"+strconv.FormatInt(id, 10), dto, &out); err != nil {
		return domain.Salle{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, basePath+"/"+strconv.FormatInt(id, 10))
}
