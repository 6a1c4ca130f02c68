package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Username  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Username:  "username",
	FirstName: "firstname",
	LastName:  "lastname",
	Email:     "email",
	Phone:     "phone",
	Password:  "passwordhash",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.FirstName, t.LastName, t.Email, t.Phone, t.Password}
}
