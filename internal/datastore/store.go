package datastore

// Person is a single stored record. ID is assigned by the database.
type Person struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age" yaml:"age"`
}

// Store defines the interface for local person storage.
// Every method reports failures explicitly; callers decide what to surface.
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// Migrate applies the schema. Safe to call on every open.
	Migrate() error

	// InsertPerson appends a new record and returns its assigned id
	InsertPerson(name string, age int) (int64, error)

	// AllPersons returns every stored record in storage order
	AllPersons() ([]Person, error)

	// DeletePerson removes the record with the given id and returns the number of rows removed
	DeletePerson(id int64) (int64, error)

	// BatchInsertPersons inserts several records in one transaction and returns their ids
	BatchInsertPersons(persons []Person) ([]int64, error)

	// Close closes the connection to the data store
	Close() error
}
