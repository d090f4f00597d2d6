// Package mocks provides test doubles for the service interfaces consumed
// by the HTTP layer. Each mock asserts at compile time that it satisfies
// the interface it stands in for.
package mocks
