// Package validation implements schema-validated construction: raw
// positional and keyword arguments are bound against a declared parameter
// list, defaults are filled in, the result is validated and coerced by a
// Schema, and only then is the real constructor invoked.
//
// The package has no knowledge of transforms; any type can be built
// through a Factory.
package validation
