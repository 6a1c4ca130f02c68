package schema

// StorePetTable represents the 'store.pet' table
type StorePetTable struct {
	Table      string
	ID         string
	CategoryID string
	Name       string
	PhotoURLs  string
	Tags       string
	Status     string
	CreatedAt  string
	UpdatedAt  string
}

// StorePet is the schema definition for store.pet
var StorePet = StorePetTable{
	Table:      "store.pet",
	ID:         "id",
	CategoryID: "categoryid",
	Name:       "name",
	PhotoURLs:  "photourls",
	Tags:       "tags",
	Status:     "status",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t StorePetTable) Columns() []string {
	return []string{t.ID, t.CategoryID, t.Name, t.PhotoURLs, t.Tags, t.Status}
}
