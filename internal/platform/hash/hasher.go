package hash

// Hasher hashes plaintext credentials and verifies them against stored hashes.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
}
