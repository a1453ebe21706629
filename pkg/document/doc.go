// Package document provides the dynamically-typed document tree produced by
// evaluating a configuration script.
//
// The central type is [Value], a tagged variant holding one of null, bool,
// number, string, list or [Mapping]. Mappings preserve insertion order so
// rendered manifests follow the order fields were written in the script.
//
// Field access is explicit and fallible: [Value.StringField] and friends
// return errors wrapping [kluarserrors.ErrShape] instead of zero values, so
// each pipeline stage can report exactly which field it needed.
package document
