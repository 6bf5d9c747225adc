// internal/api/plants.go
//
// Catalog endpoints, public and admin.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lralston/verdant/internal/shop"
)

// PlantInput is the create/update body for admin plant management.
type PlantInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
}

// Plants returns the public catalog.
func (c *Client) Plants(ctx context.Context) ([]shop.Plant, error) {
	var plants []shop.Plant
	err := c.do(ctx, http.MethodGet, "/plants", nil, nil, &plants)
	return plants, err
}

// Plant returns one catalog entry.
func (c *Client) Plant(ctx context.Context, id int64) (shop.Plant, error) {
	var plant shop.Plant
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/plants/%d", id), nil, nil, &plant)
	return plant, err
}

// AdminPlants returns the full, unpaginated admin listing.
func (c *Client) AdminPlants(ctx context.Context) ([]shop.Plant, error) {
	var plants []shop.Plant
	err := c.do(ctx, http.MethodGet, "/admin/plants", nil, nil, &plants)
	return plants, err
}

// PaginatedPlants returns one page of the admin listing.
func (c *Client) PaginatedPlants(ctx context.Context, page, size int, sortBy string) (shop.PlantPage, error) {
	query := url.Values{
		"page":   {strconv.Itoa(page)},
		"size":   {strconv.Itoa(size)},
		"sortBy": {sortBy},
	}
	var result shop.PlantPage
	err := c.do(ctx, http.MethodGet, "/admin/plants/paginated", query, nil, &result)
	return result, err
}

// SearchPlants filters the admin listing by name.
func (c *Client) SearchPlants(ctx context.Context, name string) ([]shop.Plant, error) {
	var plants []shop.Plant
	err := c.do(ctx, http.MethodGet, "/admin/plants/search", url.Values{"name": {name}}, nil, &plants)
	return plants, err
}

// CreatePlant adds a catalog entry.
func (c *Client) CreatePlant(ctx context.Context, input PlantInput) (shop.Plant, error) {
	var plant shop.Plant
	err := c.do(ctx, http.MethodPost, "/admin/plants", nil, input, &plant)
	return plant, err
}

// UpdatePlant replaces a catalog entry.
func (c *Client) UpdatePlant(ctx context.Context, id int64, input PlantInput) (shop.Plant, error) {
	var plant shop.Plant
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/plants/%d", id), nil, input, &plant)
	return plant, err
}

// DeletePlant removes a catalog entry.
func (c *Client) DeletePlant(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/plants/%d", id), nil, nil, nil)
}
