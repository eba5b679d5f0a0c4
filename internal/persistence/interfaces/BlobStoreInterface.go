package interfaces

// BlobStoreInterface is the durable key-value port of the daemon: whole
// named blobs are read and replaced wholesale, no partial updates. Read
// returns (nil, nil) for a blob that does not exist yet.
type BlobStoreInterface interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}
