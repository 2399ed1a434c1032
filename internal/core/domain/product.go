package domain

import "slices"

type Product struct {
	ID    ID      `json:"id"`
	Name  string  `json:"name"`
	Brand string  `json:"brand"`
	Price float64 `json:"price"`
	Link  string  `json:"link"`
}

// ProductDraft is the raw form input for a product. Price stays as text so
// that an unparseable value can be rejected instead of read as zero.
type ProductDraft struct {
	Name  string `json:"name" validate:"notblank"`
	Brand string `json:"brand" validate:"notblank"`
	Price string `json:"price" validate:"notblank"`
	Link  string `json:"link" validate:"notblank"`
}

// ProductPatch holds the fields of an edit. Nil fields keep their value.
type ProductPatch struct {
	Name  *string
	Brand *string
	Price *string
	Link  *string
}

// Apply returns d with every supplied patch field written over it.
func (p ProductPatch) Apply(d ProductDraft) ProductDraft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Brand != nil {
		d.Brand = *p.Brand
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Link != nil {
		d.Link = *p.Link
	}
	return d
}

// Catalog is an immutable, insertion-ordered sequence of products.
// Every mutating method returns a new Catalog and leaves the receiver intact.
type Catalog struct {
	products []Product
}

func NewCatalog(products []Product) Catalog {
	return Catalog{products: slices.Clone(products)}
}

func (c Catalog) Products() []Product {
	if c.products == nil {
		return []Product{}
	}
	return slices.Clone(c.products)
}

func (c Catalog) Len() int {
	return len(c.products)
}

func (c Catalog) Find(id ID) (Product, bool) {
	i := c.index(id)
	if i < 0 {
		return Product{}, false
	}
	return c.products[i], true
}

func (c Catalog) Append(p Product) Catalog {
	next := make([]Product, 0, len(c.products)+1)
	next = append(next, c.products...)
	return Catalog{products: append(next, p)}
}

// Remove drops every product with the given id. The bool is false when
// nothing matched, in which case the returned Catalog equals the receiver.
func (c Catalog) Remove(id ID) (Catalog, bool) {
	if c.index(id) < 0 {
		return c, false
	}
	next := slices.DeleteFunc(slices.Clone(c.products), func(p Product) bool {
		return p.ID == id
	})
	return Catalog{products: next}, true
}

// Replace swaps the product sharing p's id in place, keeping its position.
func (c Catalog) Replace(p Product) (Catalog, bool) {
	i := c.index(p.ID)
	if i < 0 {
		return c, false
	}
	next := slices.Clone(c.products)
	next[i] = p
	return Catalog{products: next}, true
}

func (c Catalog) index(id ID) int {
	return slices.IndexFunc(c.products, func(p Product) bool {
		return p.ID == id
	})
}
