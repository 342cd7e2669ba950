// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Permissions describes the way a transaction may touch a state key.
type Permissions byte

// Keys maps a state key to the union of permissions declared for it. By
// default, initialization of Keys with a duplicate key will not work. To
// prevent duplicate insertions from overriding the original permissions,
// use the Add function below.
type Keys map[string]Permissions

// Add takes the union of the already-declared permissions for [name] and
// [permission].
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Has returns true if [p] has all the permissions that are contained in
// [require].
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}
