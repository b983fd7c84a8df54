// Package keygen generates the RSA key pair an administrator injects as the
// instance's SSH key and later uses to decrypt the provisioned password.
//
// Keys are produced in PEM format (private) and OpenSSH authorized_keys
// format (public).
package keygen
