package types

import (
	"fmt"

	"fortio.org/safecast"

	"glint/internal/ident"
	"glint/internal/source"
)

// StructureField is one resolved field of a structure type.
type StructureField struct {
	Name ident.Identifier
	Type TypeID
}

// StructureInfo is a structure type's info-handle payload: its declared
// name, fields, own type parameters (if generic), and a link to its
// associated namespace (holding inherent member functions), set by the
// namespace builder once the struct's namespace exists.
type StructureInfo struct {
	Name       ident.Identifier
	Decl       source.Span
	Fields     []StructureField
	TypeParams []TypeID
	Namespace  uint32 // opaque key into the namespace package's table; 0 if unset
}

// RegisterStructure allocates a new (initially empty) structure type.
// Fields are attached later with SetStructureFields once the struct's
// definition has been resolved, so that mutually recursive struct
// definitions can reference each other's TypeIDs before either is
// complete.
func (in *Interner) RegisterStructure(name ident.Identifier, decl source.Span) TypeID {
	slot := in.appendStructureInfo(StructureInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindStructure, Payload: slot})
}

// StructureInfo returns the metadata for a structure TypeID.
func (in *Interner) StructureInfo(id TypeID) (*StructureInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindStructure {
		return nil, false
	}
	return &in.structures[t.Payload], true
}

// SetStructureFields records a structure's resolved fields.
func (in *Interner) SetStructureFields(id TypeID, fields []StructureField) {
	info, ok := in.StructureInfo(id)
	if !ok {
		return
	}
	info.Fields = append([]StructureField(nil), fields...)
}

// SetStructureNamespace links a structure type to its associated namespace.
func (in *Interner) SetStructureNamespace(id TypeID, ns uint32) {
	info, ok := in.StructureInfo(id)
	if !ok {
		return
	}
	info.Namespace = ns
}

func (in *Interner) appendStructureInfo(info StructureInfo) uint32 {
	slot, err := safecast.Conv[uint32](len(in.structures))
	if err != nil {
		panic(fmt.Errorf("types: structure info overflow: %w", err))
	}
	in.structures = append(in.structures, info)
	return slot
}

// EnumerationVariant is one constructor of an enumeration type.
// PayloadType is NoTypeID for a unit (no-payload) variant.
type EnumerationVariant struct {
	Name        ident.Identifier
	PayloadType TypeID
}

// EnumerationInfo is an enumeration type's info-handle payload.
type EnumerationInfo struct {
	Name       ident.Identifier
	Decl       source.Span
	Variants   []EnumerationVariant
	TypeParams []TypeID
	Namespace  uint32
}

// RegisterEnumeration allocates a new (initially empty) enumeration type.
func (in *Interner) RegisterEnumeration(name ident.Identifier, decl source.Span) TypeID {
	slot := in.appendEnumerationInfo(EnumerationInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindEnumeration, Payload: slot})
}

// EnumerationInfo returns the metadata for an enumeration TypeID.
func (in *Interner) EnumerationInfo(id TypeID) (*EnumerationInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEnumeration {
		return nil, false
	}
	return &in.enumerations[t.Payload], true
}

// SetEnumerationVariants records an enumeration's resolved variants.
func (in *Interner) SetEnumerationVariants(id TypeID, variants []EnumerationVariant) {
	info, ok := in.EnumerationInfo(id)
	if !ok {
		return
	}
	info.Variants = append([]EnumerationVariant(nil), variants...)
}

// SetEnumerationNamespace links an enumeration type to its associated namespace.
func (in *Interner) SetEnumerationNamespace(id TypeID, ns uint32) {
	info, ok := in.EnumerationInfo(id)
	if !ok {
		return
	}
	info.Namespace = ns
}

func (in *Interner) appendEnumerationInfo(info EnumerationInfo) uint32 {
	slot, err := safecast.Conv[uint32](len(in.enumerations))
	if err != nil {
		panic(fmt.Errorf("types: enumeration info overflow: %w", err))
	}
	in.enumerations = append(in.enumerations, info)
	return slot
}
