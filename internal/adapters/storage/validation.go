package storage

import (
	"fmt"
	"strings"
)

// Scheme prefixes object references in source strings.
const Scheme = "s3://"

// DatasetContentTypes are the MIME types accepted for dataset uploads.
var DatasetContentTypes = map[string]bool{
	"text/csv":                 true,
	"text/plain":               true,
	"application/csv":          true,
	"application/octet-stream": true,
}

// ObjectRef addresses one object in a bucket.
type ObjectRef struct {
	Bucket string
	Key    string
}

// String renders the reference as s3://bucket/key.
func (r ObjectRef) String() string {
	return Scheme + r.Bucket + "/" + r.Key
}

// IsObjectRef reports whether source uses the s3:// scheme.
func IsObjectRef(source string) bool {
	return strings.HasPrefix(source, Scheme)
}

// ParseObjectRef parses "s3://bucket/key/with/slashes".
func ParseObjectRef(source string) (ObjectRef, error) {
	if !IsObjectRef(source) {
		return ObjectRef{}, fmt.Errorf("not an object reference: %q", source)
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(source, Scheme), "/")
	if !ok || bucket == "" || strings.Trim(key, "/") == "" {
		return ObjectRef{}, fmt.Errorf("object reference must look like s3://bucket/key: %q", source)
	}

	return ObjectRef{Bucket: bucket, Key: key}, nil
}

// ValidateContentType checks if the content type is allowed for datasets.
func ValidateContentType(contentType string) error {
	base := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !DatasetContentTypes[base] {
		return fmt.Errorf("content type %q is not allowed for datasets", contentType)
	}
	return nil
}
