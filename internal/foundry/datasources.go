package foundry

import (
	"context"

	"github.com/raster-foundry/raster-foundry-go-client/internal/model"
)

// ListDatasources returns every datasource visible to the authenticated
// caller.
//
// The API paginates the collection; ListDatasources walks all pages and
// returns the accumulated records in server order.
//
// Example:
//
//	datasources, err := client.ListDatasources(ctx)
//	for _, ds := range datasources {
//	    fmt.Printf("%s (%d bands)\n", ds.Name, len(ds.Bands))
//	}
func (c *Client) ListDatasources(ctx context.Context) ([]model.Datasource, error) {
	var datasources []model.Datasource

	for page, hasNext := 0, true; hasNext; {
		var resp model.DatasourcePage
		if err := c.http.GetJSON(ctx, c.pagedEndpoint("/datasources", page), &resp); err != nil {
			return nil, classify(err)
		}
		datasources = append(datasources, resp.Results...)
		hasNext = resp.HasNext
		page = resp.Page + 1
	}

	return datasources, nil
}

// GetDatasource returns one datasource by identifier.
//
// Returns ErrNotFound when no datasource with the given id exists
// server-side.
func (c *Client) GetDatasource(ctx context.Context, id string) (*model.Datasource, error) {
	var ds model.Datasource
	if err := c.http.GetJSON(ctx, c.endpoint("/datasources/"+id), &ds); err != nil {
		return nil, classify(err)
	}
	return &ds, nil
}

// CreateDatasource registers a new datasource from a name and an ordered
// sequence of bands, returning the created record including its
// server-assigned id.
//
// Band order is preserved exactly as supplied. Returns a
// *ValidationError when the server rejects the fields.
//
// Example:
//
//	ds, err := client.CreateDatasource(ctx, "Test Datasource 1", []model.Band{
//	    model.NewBand("red", "0", 100.0),
//	    model.NewBand("green", "1", 200.0),
//	    model.NewBand("blue", "2", 300.0),
//	})
func (c *Client) CreateDatasource(ctx context.Context, name string, bands []model.Band) (*model.Datasource, error) {
	payload := model.DatasourceCreate{Name: name, Bands: bands}

	var ds model.Datasource
	if err := c.http.PostJSON(ctx, c.endpoint("/datasources"), payload, &ds); err != nil {
		return nil, classify(err)
	}
	return &ds, nil
}

// UpdateDatasource applies a partial field-level mutation to an existing
// datasource. Only non-nil fields of the update are changed.
//
// Returns ErrNotFound when the id is absent and *ValidationError when
// the server rejects the new field values. The updated record is not
// returned; fetch it again if the new state is needed.
func (c *Client) UpdateDatasource(ctx context.Context, id string, update model.DatasourceUpdate) error {
	return classify(c.http.PutJSON(ctx, c.endpoint("/datasources/"+id), update))
}

// DeleteDatasource removes a datasource server-side.
//
// Whether deleting an unknown id is an error is server-defined; any such
// error is passed through classified.
func (c *Client) DeleteDatasource(ctx context.Context, id string) error {
	return classify(c.http.Delete(ctx, c.endpoint("/datasources/"+id)))
}
