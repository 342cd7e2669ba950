// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// Typed is implemented by any value wired through a [TypeParser]. The TypeID
// is the single byte prepended to the value's serialization.
type Typed interface {
	GetTypeID() uint8
}

// TypeParser maps single byte TypeIDs to decoding funcs. It is how the
// transaction codec knows which concrete action, auth, or output type a byte
// stream holds.
type TypeParser[T Typed] struct {
	registered map[uint8]struct{}
	decoders   map[uint8]func(*Packer) (T, error)
}

func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		registered: map[uint8]struct{}{},
		decoders:   map[uint8]func(*Packer) (T, error){},
	}
}

// Register assigns o's TypeID to decoder f. It errors if the TypeID was
// already claimed; explicit IDs avoid accidental remapping when types are
// added.
func (p *TypeParser[T]) Register(o T, f func(*Packer) (T, error)) error {
	typeID := o.GetTypeID()
	if _, ok := p.registered[typeID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateItem, typeID)
	}
	p.registered[typeID] = struct{}{}
	p.decoders[typeID] = f
	return nil
}

// Unmarshal reads a TypeID byte from p and dispatches to the registered
// decoder.
func (p *TypeParser[T]) Unmarshal(up *Packer) (T, error) {
	var empty T
	typeID := up.UnpackByte()
	if err := up.Err(); err != nil {
		return empty, err
	}
	f, ok := p.decoders[typeID]
	if !ok {
		return empty, fmt.Errorf("%w: %d", ErrUnknownType, typeID)
	}
	return f(up)
}
