// Package gallery provides an in-memory content/media catalog loaded from a
// tabular source, plus on-demand resolution of media payloads.
//
// The catalog is built once at startup: a TabularReader produces two ordered
// row tables (contents, media), the entity builder turns rows into Content
// and Media values with content-addressed ids, and the Repository indexes
// them for read-only queries. The Resolver turns a media id into a
// transport-ready payload by loading the backing blob through a BlobFetcher,
// sniffing its MIME type and base64-encoding it.
//
// Implementations of TabularReader (spreadsheet, CSV, in-memory) and
// BlobFetcher (local file, HTTP, S3) live under subpackages.
package gallery
