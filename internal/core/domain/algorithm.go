package domain

// Algorithm names a supported digest algorithm. SHA-1 is the fast path used
// for library and asset manifests; SHA-512 covers bundle-style downloads.
type Algorithm string

const (
	AlgoSHA1   Algorithm = "sha1"
	AlgoSHA512 Algorithm = "sha512"
)
