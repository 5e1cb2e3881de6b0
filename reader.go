package pyxis

import "os"

// Reader loads raw configuration text from a path-addressed source. Readers
// are selected through the factory's registry by path syntax, e.g. a scheme
// prefix.
type Reader interface {
	Read(path string) (string, error)
}

// LocalFilePriority orders the local filesystem reader behind scheme-specific
// readers so that prefixed paths such as s3://... are claimed first.
const LocalFilePriority = 200

// LocalFileReader reads configuration files from the local filesystem. It
// accepts any path and is registered at LocalFilePriority as the fallback
// reader.
type LocalFileReader struct{}

// Read returns the file contents as text.
func (LocalFileReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
