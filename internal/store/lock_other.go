//go:build !unix

package store

// No advisory locking outside unix; the atomic rename still applies.
func lockDir(string) (Unlock, error) {
	return noUnlock, nil
}
