// Package cloudwriter buffers objects and uploads them to cloud storage on Close.
package cloudwriter

import "io"

type CloudWriter interface {
	io.WriteCloser
	// Location is the URI of the object once it has been closed.
	Location() string
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath, contentType string) (CloudWriter, error)
}
