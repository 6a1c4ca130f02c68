package schema

// StoreOrderTable represents the 'store.purchaseorder' table
type StoreOrderTable struct {
	Table     string
	ID        string
	PetID     string
	Quantity  string
	ShipDate  string
	Status    string
	PlacedBy  string
	CreatedAt string
}

// StoreOrder is the schema definition for store.purchaseorder
var StoreOrder = StoreOrderTable{
	Table:     "store.purchaseorder",
	ID:        "id",
	PetID:     "petid",
	Quantity:  "quantity",
	ShipDate:  "shipdate",
	Status:    "status",
	PlacedBy:  "placedby",
	CreatedAt: "createdat",
}

func (t StoreOrderTable) Columns() []string {
	return []string{t.ID, t.PetID, t.Quantity, t.ShipDate, t.Status, t.PlacedBy}
}
