// Package core defines the value domain shared by the expression packages.
//
// This package contains:
//   - FieldType, the scalar type an expression evaluates to, and its groups
//   - Value, the tagged literal carried by constant nodes
//   - the process-wide default maximum text length
//
// pkg/core imports only the standard library. token, dialect and expr
// depend on core, not the reverse.
package core
