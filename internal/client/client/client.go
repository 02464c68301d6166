package client

import (
	"context"

	"github.com/dmitrijs2005/countrytap/internal/client/models"
)

// Client is the read-only contract of the remote country directory.
type Client interface {
	FetchAll(ctx context.Context) ([]models.Country, error)
	FetchByName(ctx context.Context, name string) ([]models.Country, error)
	FetchByRegion(ctx context.Context, region string) ([]models.Country, error)
	FetchByCode(ctx context.Context, code string) (models.Country, error)
	FetchByCodes(ctx context.Context, codes []string) ([]models.Country, error)
	Search(ctx context.Context, mode models.SearchMode, query string) ([]models.Country, error)
}
