// Package resc compiles UI resource source files into a binary
// intermediate form consumed by a later linking stage.
//
// Inputs are organized under a type+configuration directory convention,
// e.g. res/layout-land/main.xml or res/values-en-rUS/strings.xml. Each
// input is classified by its path, dispatched to a type-specific pipeline
// (value tables, markup documents, images, opaque files), and committed as
// one entry of an output archive.
//
// # Quick start
//
// Compile an explicit file list into a directory of per-input outputs:
//
//	w, err := resc.NewDirWriter("out")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = resc.Compile(ctx, []string{"res/values/strings.xml"}, w)
//
// Or scan a resource tree into a single container:
//
//	w, err := resc.NewZipWriter("out.zip")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = resc.CompileDir(ctx, "res", w,
//	    resc.WithPseudolocalize(true),
//	)
//
// # Output format
//
// Most entries hold one or more compiled-file records: a little-endian
// record count, then per record a FlatBuffers metadata block and the
// payload bytes. Entries for whole value tables hold a single serialized
// table blob with no framing. See the internal/container package for the
// exact layout.
//
// # Error model
//
// Malformed paths, unrecognized resource types and scan failures abort the
// whole run. Everything else (unreadable sources, codec errors, write
// errors) fails only the affected input; Compile reports the aggregate via
// ErrCompileFailed.
package resc
