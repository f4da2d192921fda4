package badgerfx

// Entity is a value stored by Repository.
//
// StorageKey is the primary key of the entity. StorageIndexes are secondary keys
// pointing back to StorageKey; they are rewritten on every Write.
type Entity interface {
	StorageKey() string
	StorageIndexes() []string

	MarshalStorage() ([]byte, error)
	UnmarshalStorage(data []byte) error
}
