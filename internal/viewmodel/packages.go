// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package viewmodel

import (
	"context"

	"travelgo/cli/internal/backend"
	"travelgo/cli/internal/repository"
)

// Catalog is satisfied by *repository.TravelRepository.
type Catalog interface {
	Packages(ctx context.Context) repository.Result[[]backend.Package]
	Package(ctx context.Context, id int64) repository.Result[backend.Package]
}

// PackagesViewModel loads the package listing.
type PackagesViewModel struct {
	*ViewModel[[]backend.Package]
	catalog Catalog
}

func NewPackagesViewModel(catalog Catalog) *PackagesViewModel {
	return &PackagesViewModel{ViewModel: New[[]backend.Package](), catalog: catalog}
}

func (p *PackagesViewModel) Load(ctx context.Context) *Job {
	return p.Launch(ctx, p.catalog.Packages)
}

// PackageViewModel loads a single package.
type PackageViewModel struct {
	*ViewModel[backend.Package]
	catalog Catalog
}

func NewPackageViewModel(catalog Catalog) *PackageViewModel {
	return &PackageViewModel{ViewModel: New[backend.Package](), catalog: catalog}
}

func (p *PackageViewModel) Load(ctx context.Context, id int64) *Job {
	return p.Launch(ctx, func(ctx context.Context) repository.Result[backend.Package] {
		return p.catalog.Package(ctx, id)
	})
}
