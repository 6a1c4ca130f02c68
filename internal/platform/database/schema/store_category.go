package schema

// StoreCategoryTable represents the 'store.category' table
type StoreCategoryTable struct {
	Table string
	ID    string
	Slug  string
	Name  string
}

// StoreCategory is the schema definition for store.category
var StoreCategory = StoreCategoryTable{
	Table: "store.category",
	ID:    "id",
	Slug:  "slug",
	Name:  "name",
}

func (t StoreCategoryTable) Columns() []string { return []string{t.ID, t.Slug, t.Name} }
