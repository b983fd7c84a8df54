// Package userdata fetches the cloud-config document from a local file, an
// S3 object or the metadata service, and decompresses gzip payloads.
package userdata
