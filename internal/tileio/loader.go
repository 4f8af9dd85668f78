// Package tileio fetches terrain tile documents over HTTP or from disk and
// parses them into scene node trees for the rewriter.
package tileio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/terravista/internal/engine/scene"
)

// Loader fetches and parses tile documents. A nil Client uses a default
// with a 30 second timeout.
type Loader struct {
	Client *http.Client
}

// NewLoader returns a loader with the default HTTP client.
func NewLoader() *Loader {
	return &Loader{
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load fetches one tile document and parses it into a scene node tree.
// URLs with an http or https scheme are fetched over the network; anything
// else is read as a file path.
func (l *Loader) Load(ctx context.Context, url string) (scene.Node, error) {
	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	node, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return node, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return os.ReadFile(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// tileDoc is the on-disk tile document layout.
type tileDoc struct {
	Name  string    `json:"name"`
	Nodes []nodeDoc `json:"nodes"`
}

type nodeDoc struct {
	Name       string    `json:"name"`
	Matrix     []float64 `json:"matrix"` // 16 values, row-major; identity if absent
	Positions  []float64 `json:"positions"`
	Components int       `json:"components"`
	Indices    []uint32  `json:"indices"`
	Children   []nodeDoc `json:"children"`
}

// Parse decodes a tile document into a scene node tree. Nodes carrying a
// position buffer become meshes, all others become groups.
func Parse(data []byte) (scene.Node, error) {
	var doc tileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	root := &scene.Group{
		Name:      doc.Name,
		Transform: mgl64.Ident4(),
	}
	for i := range doc.Nodes {
		child, err := buildNode(&doc.Nodes[i])
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
	}
	return root, nil
}

func buildNode(d *nodeDoc) (scene.Node, error) {
	transform, err := parseMatrix(d.Matrix)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", d.Name, err)
	}

	if d.Positions != nil {
		if len(d.Children) > 0 {
			return nil, fmt.Errorf("node %q: mesh nodes cannot have children", d.Name)
		}
		components := d.Components
		if components == 0 {
			components = 3
		}
		return &scene.Mesh{
			Name:       d.Name,
			Transform:  transform,
			Positions:  d.Positions,
			Components: components,
			Indices:    d.Indices,
		}, nil
	}

	group := &scene.Group{
		Name:      d.Name,
		Transform: transform,
	}
	for i := range d.Children {
		child, err := buildNode(&d.Children[i])
		if err != nil {
			return nil, err
		}
		group.Children = append(group.Children, child)
	}
	return group, nil
}

// parseMatrix converts the document's row-major 16-value matrix into a
// column-major mgl64.Mat4. An absent matrix is the identity.
func parseMatrix(values []float64) (mgl64.Mat4, error) {
	if values == nil {
		return mgl64.Ident4(), nil
	}
	if len(values) != 16 {
		return mgl64.Mat4{}, fmt.Errorf("matrix has %d values, want 16", len(values))
	}

	var m mgl64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[col*4+row] = values[row*4+col]
		}
	}
	return m, nil
}
