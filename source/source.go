// Package source provides the places member records are loaded from.
package source

import (
	"context"
	"fmt"

	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/config"
	"github.com/paulvitic/members-admin/table"
)

// CloseFunc releases what a source holds on to.
type CloseFunc func(context.Context) error

func noClose(context.Context) error { return nil }

// New builds the source the configuration asks for.
func New(ctx context.Context, cfg config.Source, logger *admin.Logger) (table.Source, CloseFunc, error) {
	switch cfg.Kind {
	case config.SourceHTTP:
		return NewHTTP(cfg.URL, nil, logger), noClose, nil
	case config.SourceFile:
		return NewFile(cfg.File), noClose, nil
	case config.SourceMongo:
		m, err := NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, logger)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown source kind %q", table.ErrNoSource, cfg.Kind)
}
