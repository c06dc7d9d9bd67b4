package ports

// ReferenceRegistry resolves named references declared in the build file.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type ReferenceRegistry interface {
	// Lookup returns the string form of the named reference.
	Lookup(name string) (string, bool)
}
