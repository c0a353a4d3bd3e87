package foundry

import (
	"context"

	"github.com/raster-foundry/raster-foundry-go-client/internal/model"
)

// ListProjects returns every project visible to the authenticated
// caller, walking all pages of the collection.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project

	for page, hasNext := 0, true; hasNext; {
		var resp model.ProjectPage
		if err := c.http.GetJSON(ctx, c.pagedEndpoint("/projects", page), &resp); err != nil {
			return nil, classify(err)
		}
		projects = append(projects, resp.Results...)
		hasNext = resp.HasNext
		page = resp.Page + 1
	}

	return projects, nil
}

// GetProject returns one project by identifier.
//
// Returns ErrNotFound when no project with the given id exists.
func (c *Client) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	if err := c.http.GetJSON(ctx, c.endpoint("/projects/"+id), &p); err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

// TileTemplate returns the TMS URL template for a project, suitable for
// handing to a map widget:
//
//	https://tiles.rasterfoundry.com/tiles/<id>/{z}/{x}/{y}/
func (c *Client) TileTemplate(p *model.Project) string {
	return p.TileTemplate(c.scheme, c.tileHost)
}

// FetchTile downloads one rendered tile of a project at the given
// zoom/column/row. The returned bytes are PNG-encoded imagery.
//
// Example:
//
//	data, err := client.FetchTile(ctx, project, 10, 163, 395)
func (c *Client) FetchTile(ctx context.Context, p *model.Project, z, x, y int) ([]byte, error) {
	data, err := c.http.Get(ctx, c.tileURL(p.TilePath(z, x, y)))
	if err != nil {
		return nil, classify(err)
	}
	return data, nil
}
