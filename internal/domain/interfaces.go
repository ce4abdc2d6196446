package domain

// TypeResolver classifies apps by ID. Implementations decide where the data
// comes from; App.Type only needs the answer.
type TypeResolver interface {
	// ResolveType returns the app's type. An app missing from the catalog is
	// AppTypeUnknown with a nil error.
	ResolveType(appID int) (AppType, error)
}

// TypeResolverFunc adapts a function to TypeResolver.
type TypeResolverFunc func(appID int) (AppType, error)

func (f TypeResolverFunc) ResolveType(appID int) (AppType, error) { return f(appID) }
