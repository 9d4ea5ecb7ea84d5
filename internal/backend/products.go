package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
)

// GetProduct fetches one product. Concurrent lookups of the same id share a
// single request.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	v, err, _ := c.sfg.Do("product:"+id, func() (interface{}, error) {
		var p domain.Product
		if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &p, requestOptions{}); err != nil {
			return domain.Product{}, err
		}
		return p, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return v.(domain.Product), nil
}

type ProductQuery struct {
	Category string
	Search   string
	Featured bool
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	path := "/products"
	if q.Featured {
		path = "/products/featured"
	}
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products, requestOptions{}); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories returns the categories in display order.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &cats, requestOptions{}); err != nil {
		return nil, err
	}
	return cats, nil
}
