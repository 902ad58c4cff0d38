package sink

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/observability"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// Item is one primitive held by a [Canvas].
type Item struct {
	Handle    component.Handle `json:"handle"`
	Layer     string           `json:"layer"`
	Primitive shape.Primitive  `json:"primitive"`

	seq int
}

func (it Item) String() string { return fmt.Sprintf("%s@%s", it.Handle, it.Layer) }

// Canvas is an in-memory drawing surface. It satisfies [component.Renderer]
// and the design package's layer registry, and is the input to every sink in
// this package. A Canvas is not safe for concurrent use.
type Canvas struct {
	layers []string
	items  map[component.Handle]Item
	seq    int
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{items: make(map[component.Handle]Item)}
}

// AddLayer registers a layer. Registering the same name twice is a no-op.
func (c *Canvas) AddLayer(name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeParameter, "layer name is empty")
	}
	if !slices.Contains(c.layers, name) {
		c.layers = append(c.layers, name)
	}
	return nil
}

// Draw stores p on layer and returns a fresh handle for it. Unknown layers are
// registered on first use.
func (c *Canvas) Draw(p shape.Primitive, layer string) (component.Handle, error) {
	if len(p.Points) < 3 {
		return "", errors.New(errors.ErrCodeParameter, "primitive has %d points", len(p.Points))
	}
	if err := c.AddLayer(layer); err != nil {
		return "", err
	}
	h := component.Handle(uuid.NewString())
	c.seq++
	c.items[h] = Item{Handle: h, Layer: layer, Primitive: p, seq: c.seq}
	observability.Render().OnDraw(context.Background(), layer, len(p.Points))
	return h, nil
}

// Clear removes the primitive behind h.
func (c *Canvas) Clear(h component.Handle) error {
	if _, ok := c.items[h]; !ok {
		return errors.New(errors.ErrCodeParameter, "unknown handle %q", h)
	}
	delete(c.items, h)
	observability.Render().OnClear(context.Background())
	return nil
}

// Layers returns the registered layers in registration order.
func (c *Canvas) Layers() []string { return append([]string(nil), c.layers...) }

// Len returns the number of primitives on the canvas.
func (c *Canvas) Len() int { return len(c.items) }

// Items returns the primitives grouped by layer in registration order, each
// layer in draw order.
func (c *Canvas) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	rank := make(map[string]int, len(c.layers))
	for i, l := range c.layers {
		rank[l] = i
	}
	slices.SortFunc(out, func(a, b Item) int {
		if d := rank[a.Layer] - rank[b.Layer]; d != 0 {
			return d
		}
		return a.seq - b.seq
	})
	return out
}

// Layer returns the primitives on one layer in draw order.
func (c *Canvas) Layer(name string) []shape.Primitive {
	var out []shape.Primitive
	for _, it := range c.Items() {
		if it.Layer == name {
			out = append(out, it.Primitive)
		}
	}
	return out
}

// Bounds returns the bounding box of everything on the canvas.
func (c *Canvas) Bounds() shape.Rect {
	r := shape.EmptyRect()
	for _, it := range c.items {
		r = r.Union(it.Primitive.Bounds())
	}
	return r
}
