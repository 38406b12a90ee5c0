package level

import "fmt"

// Catalog is an ordered, read-only collection of level definitions keyed
// by integer ID. Identifiers need not be contiguous; listing preserves the
// order the definitions were loaded in.
type Catalog struct {
	byID  map[int]Definition
	order []int
}

// NewCatalog builds a catalog from the given definitions. Definitions are
// validated and duplicate IDs rejected.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[int]Definition, len(defs)),
	}

	for _, d := range defs {
		if err := Validate(d); err != nil {
			return nil, err
		}
		if _, exists := c.byID[d.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate level id %d", ErrInvalidLevel, d.ID)
		}
		c.byID[d.ID] = d
		c.order = append(c.order, d.ID)
	}

	return c, nil
}

// Get looks up a level definition by ID.
func (c *Catalog) Get(id int) (Definition, error) {
	d, ok := c.byID[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: id %d", ErrLevelNotFound, id)
	}
	return d, nil
}

// List enumerates all levels in load order, without their cell data.
func (c *Catalog) List() []Info {
	infos := make([]Info, 0, len(c.order))
	for _, id := range c.order {
		d := c.byID[id]
		infos = append(infos, Info{ID: d.ID, Width: d.Width, Height: d.Height})
	}
	return infos
}

// First returns the first level in load order. The second return value is
// false for an empty catalog.
func (c *Catalog) First() (Definition, bool) {
	if len(c.order) == 0 {
		return Definition{}, false
	}
	return c.byID[c.order[0]], true
}

// Count returns the number of levels in the catalog.
func (c *Catalog) Count() int {
	return len(c.order)
}
