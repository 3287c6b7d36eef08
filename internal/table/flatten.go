package table

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/kunalshah912/resc/internal/fb"
)

// formatVersion is the whole-table blob version.
const formatVersion = 1

// Flatten serializes the whole table to one FlatBuffers blob. Unlike
// multi-record entries, the result carries no record count or header.
func Flatten(t *Table) []byte {
	builder := flatbuffers.NewBuilder(1024)

	// Build packages in reverse order (FlatBuffers requirement).
	pkgOffsets := make([]flatbuffers.UOffsetT, len(t.Packages))
	for i := len(t.Packages) - 1; i >= 0; i-- {
		pkgOffsets[i] = flattenPackage(builder, t.Packages[i])
	}

	fb.TableStartPackagesVector(builder, len(pkgOffsets))
	for i := len(pkgOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(pkgOffsets[i])
	}
	packagesOffset := builder.EndVector(len(pkgOffsets))

	fb.TableStart(builder)
	fb.TableAddVersion(builder, formatVersion)
	fb.TableAddPackages(builder, packagesOffset)
	builder.Finish(fb.TableEnd(builder))

	return builder.FinishedBytes()
}

func flattenPackage(builder *flatbuffers.Builder, p *Package) flatbuffers.UOffsetT {
	typeOffsets := make([]flatbuffers.UOffsetT, len(p.Types))
	for i := len(p.Types) - 1; i >= 0; i-- {
		typeOffsets[i] = flattenTypeGroup(builder, p.Types[i])
	}

	fb.PackageStartTypesVector(builder, len(typeOffsets))
	for i := len(typeOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(typeOffsets[i])
	}
	typesOffset := builder.EndVector(len(typeOffsets))

	nameOffset := builder.CreateString(p.Name)

	fb.PackageStart(builder)
	fb.PackageAddName(builder, nameOffset)
	fb.PackageAddId(builder, p.ID)
	fb.PackageAddHasId(builder, p.HasID)
	fb.PackageAddTypes(builder, typesOffset)
	return fb.PackageEnd(builder)
}

func flattenTypeGroup(builder *flatbuffers.Builder, tg *TypeGroup) flatbuffers.UOffsetT {
	entryOffsets := make([]flatbuffers.UOffsetT, len(tg.Entries))
	for i := len(tg.Entries) - 1; i >= 0; i-- {
		entryOffsets[i] = flattenEntry(builder, tg.Entries[i])
	}

	fb.TypeGroupStartEntriesVector(builder, len(entryOffsets))
	for i := len(entryOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(entryOffsets[i])
	}
	entriesOffset := builder.EndVector(len(entryOffsets))

	nameOffset := builder.CreateString(tg.Name)

	fb.TypeGroupStart(builder)
	fb.TypeGroupAddName(builder, nameOffset)
	fb.TypeGroupAddEntries(builder, entriesOffset)
	return fb.TypeGroupEnd(builder)
}

func flattenEntry(builder *flatbuffers.Builder, e *Entry) flatbuffers.UOffsetT {
	valueOffsets := make([]flatbuffers.UOffsetT, len(e.Values))
	for i := len(e.Values) - 1; i >= 0; i-- {
		valueOffsets[i] = flattenValue(builder, e.Values[i])
	}

	fb.EntryStartValuesVector(builder, len(valueOffsets))
	for i := len(valueOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(valueOffsets[i])
	}
	valuesOffset := builder.EndVector(len(valueOffsets))

	nameOffset := builder.CreateString(e.Name)

	fb.EntryStart(builder)
	fb.EntryAddName(builder, nameOffset)
	fb.EntryAddId(builder, e.ID)
	fb.EntryAddHasId(builder, e.HasID)
	fb.EntryAddValues(builder, valuesOffset)
	return fb.EntryEnd(builder)
}

func flattenValue(builder *flatbuffers.Builder, v *Value) flatbuffers.UOffsetT {
	itemOffsets := make([]flatbuffers.UOffsetT, len(v.Items))
	for i := len(v.Items) - 1; i >= 0; i-- {
		quantityOffset := builder.CreateString(v.Items[i].Quantity)
		valueOffset := builder.CreateString(v.Items[i].Value)
		fb.PluralItemStart(builder)
		fb.PluralItemAddQuantity(builder, quantityOffset)
		fb.PluralItemAddValue(builder, valueOffset)
		itemOffsets[i] = fb.PluralItemEnd(builder)
	}

	var itemsOffset flatbuffers.UOffsetT
	if len(itemOffsets) > 0 {
		fb.ConfigValueStartItemsVector(builder, len(itemOffsets))
		for i := len(itemOffsets) - 1; i >= 0; i-- {
			builder.PrependUOffsetT(itemOffsets[i])
		}
		itemsOffset = builder.EndVector(len(itemOffsets))
	}

	configOffset := builder.CreateString(v.Config.String())
	dataOffset := builder.CreateString(v.Data)
	rawOffset := builder.CreateString(v.Raw)

	fb.ConfigValueStart(builder)
	fb.ConfigValueAddConfig(builder, configOffset)
	fb.ConfigValueAddValueType(builder, v.Kind)
	fb.ConfigValueAddData(builder, dataOffset)
	fb.ConfigValueAddRaw(builder, rawOffset)
	fb.ConfigValueAddWeak(builder, v.Weak)
	fb.ConfigValueAddTranslatable(builder, v.Translatable)
	if itemsOffset != 0 {
		fb.ConfigValueAddItems(builder, itemsOffset)
	}
	return fb.ConfigValueEnd(builder)
}
