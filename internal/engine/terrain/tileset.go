package terrain

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/terravista/internal/engine/scene"
	"github.com/Faultbox/terravista/internal/logger"
)

// Loader fetches and parses one tile into a scene node tree. Implemented
// by the tile I/O collaborator.
type Loader interface {
	Load(ctx context.Context, url string) (scene.Node, error)
}

// LoadTileSet fetches and rewrites tiles strictly in input order: each
// tile's fetch, rewrite and bounds union complete before the next fetch
// begins, so tile order and the final bounding box are deterministic.
// postRotation is applied to every rewritten tile; pass frames
// TileOrientation to reframe geocentric tiles for the renderer, or the
// identity quaternion to leave them as-is.
//
// Any fetch or parse failure aborts the whole call and no partial tile set
// is returned. Tiles whose meshes are all unsupported are skipped with a
// warning and do not appear in the result.
func LoadTileSet(ctx context.Context, urls []string, loader Loader, proj Projector, postRotation mgl64.Quat) (Bounds, []*Tile, error) {
	bounds := EmptyBounds()
	tiles := make([]*Tile, 0, len(urls))

	for _, url := range urls {
		root, err := loader.Load(ctx, url)
		if err != nil {
			return Bounds{}, nil, fmt.Errorf("loading tile %s: %w", url, err)
		}

		tile := RewriteTile(url, root, proj)
		if tile == nil {
			logger.Warn("tile produced no supported geometry", zap.String("tile", url))
			continue
		}

		tile.ApplyRotation(postRotation)
		bounds = bounds.Union(tile.Bounds)
		tiles = append(tiles, tile)

		logger.Debug("tile rewritten",
			zap.String("tile", url),
			zap.Int("vertices", len(tile.Positions)),
		)
	}

	return bounds, tiles, nil
}
