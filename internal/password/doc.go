// Package password resolves, encrypts and publishes the password of the
// provisioned account.
//
// [Resolver] chooses the plaintext from exactly one source: the admin
// password injected by the metadata service, a password created earlier in
// the same run, or a freshly generated one. [EncryptPassword] encrypts it
// with the administrator's SSH RSA public key so it can be echoed back to the
// metadata service, and [Guard] makes sure that happens at most once.
package password
