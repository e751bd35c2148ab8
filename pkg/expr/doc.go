// Package expr implements SQL scalar and boolean expression trees.
//
// Nodes live in an Arena and are addressed through Expr handles. A handle is
// a small value; two handles are equal (==) exactly when they address the same
// node. Typed views (Unary, Binary, NArg, Const, Function, Variable,
// QueryParameter) are obtained with the As* methods and carry the mutation API.
//
// Trees keep these rules after every mutation:
//   - a node is never installed directly inside itself;
//   - a node has at most one parent; installing it elsewhere moves it;
//   - the same node occupies at most one position of an argument list;
//   - moving a node between the two operands of a binary expression empties
//     the slot it came from.
//
// Rejected mutations leave the tree unchanged, return one of the Err* values
// and log a warning on the arena logger. Cycles built by combining subtrees
// are detected by every walk: rendering prints <CYCLE!> and validation fails.
//
// An Arena is not safe for concurrent use.
package expr
