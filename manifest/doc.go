// Package manifest loads YAML manifests describing batches of boot.dat
// container builds: which payload to wrap, which loader variant to tag it
// with, and where to write the output. Output paths are single-brace {VAR}
// templates expanded per entry.
package manifest
