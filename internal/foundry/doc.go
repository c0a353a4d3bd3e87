// Package foundry implements the typed client for the Raster Foundry
// REST API.
//
// A Client is constructed from either a long-lived refresh token (which
// is exchanged for a session token at construction time) or an API token
// supplied directly:
//
//	client, err := foundry.New(ctx, foundry.Config{
//	    RefreshToken: os.Getenv("RF_REFRESH_TOKEN"),
//	})
//
// # Datasources
//
// Datasources are the primary resource: named, ordered collections of
// spectral bands. The client exposes the full lifecycle:
//
//	ds, err := client.CreateDatasource(ctx, "Landsat 8", bands)
//	ds, err = client.GetDatasource(ctx, ds.ID)
//	err = client.UpdateDatasource(ctx, ds.ID, update)
//	err = client.DeleteDatasource(ctx, ds.ID)
//
// # Errors
//
// API failures are classified into a small taxonomy: ErrNotFound for
// unknown identifiers, *ValidationError for malformed input,
// *AuthError for credential problems. Anything else (including network
// failures) is returned as-is. There is no retry or caching; every call
// is one synchronous request.
package foundry
