package catalog

// Family is the top level of the three-level catalog hierarchy. Children are
// referenced by id to keep ownership acyclic.
type Family struct {
	ID          string
	Name        string
	Description string
	CategoryIDs []string
}

func NewFamily(id, name, description string) *Family {
	return &Family{ID: id, Name: name, Description: description}
}

func (f *Family) AddCategory(categoryID string) {
	f.CategoryIDs = append(f.CategoryIDs, categoryID)
}

// Category groups products under a family.
type Category struct {
	ID          string
	Name        string
	Description string
	FamilyID    string
	ProductIDs  []string
}

func NewCategory(id, name, description string, family *Family) *Category {
	c := &Category{ID: id, Name: name, Description: description, FamilyID: family.ID}
	family.AddCategory(id)
	return c
}

func (c *Category) AddProduct(productID string) {
	c.ProductIDs = append(c.ProductIDs, productID)
}

func (f *Family) Clone() *Family {
	if f == nil {
		return nil
	}
	clone := *f
	clone.CategoryIDs = append([]string(nil), f.CategoryIDs...)
	return &clone
}

func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	clone := *c
	clone.ProductIDs = append([]string(nil), c.ProductIDs...)
	return &clone
}
