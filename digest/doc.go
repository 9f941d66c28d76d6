// Package digest computes SHA-256 digests of in-memory buffers and files.
// File digests can be stored in companion .digest files alongside the
// original, enabling skip-if-unchanged checks for container outputs.
package digest
