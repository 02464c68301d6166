package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/countrytap/internal/client/client"
	"github.com/dmitrijs2005/countrytap/internal/client/config"
	"github.com/dmitrijs2005/countrytap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/countrytap/internal/client/store"
	"github.com/dmitrijs2005/countrytap/internal/dbx"
	"github.com/dmitrijs2005/countrytap/internal/logging"
)

// openStore builds the persistence store for the configured backend. The
// returned close func releases the backend and is never nil.
func openStore(ctx context.Context, cfg *config.Config, log logging.Logger) (*store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageType {
	case config.StorageSQLite, "":
		db, err := client.InitDatabase(ctx, client.DriverSQLite, cfg.DatabaseDSN)
		if err != nil {
			return nil, noop, err
		}
		bind := func(tx dbx.DBTX) metadata.Repository { return metadata.NewSQLiteRepository(tx) }
		st := store.New(metadata.NewSQLiteRepository(db), log, store.WithSQLTx(db, bind))
		return st, db.Close, nil

	case config.StoragePostgres:
		db, err := client.InitDatabase(ctx, client.DriverPostgres, cfg.DatabaseDSN)
		if err != nil {
			return nil, noop, err
		}
		bind := func(tx dbx.DBTX) metadata.Repository { return metadata.NewPostgresRepository(tx) }
		st := store.New(metadata.NewPostgresRepository(db), log, store.WithSQLTx(db, bind))
		return st, db.Close, nil

	case config.StorageS3:
		repo, err := metadata.NewS3Repository(ctx, metadata.S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Prefix:       cfg.S3Prefix,
		})
		if err != nil {
			return nil, noop, err
		}
		return store.New(repo, log), noop, nil

	case config.StorageMemory:
		return store.New(metadata.NewMemoryRepository(), log), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}
