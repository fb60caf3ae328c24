package filestorage

// Store is the blob-store boundary the workflow services write through.
// Save returns the stored path ("/{folder}/{name}") that entities persist;
// Delete returns how many of the named blobs actually existed and were
// removed.
type Store interface {
	Save(folder, name string, data []byte) (string, error)
	Delete(folder string, names ...string) (int, error)
	Exists(path string) bool
}
