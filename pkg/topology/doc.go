// Package topology models the four repository shapes repokit knows how to
// configure and plans the files each one needs.
//
// Package is a closed union: OnePackageRepo, MonoRepo, SubRepo and Top.
// Plan switches on the concrete type; there are no type-guard helpers.
package topology
