// Package transform defines the class model shared by every augmentation:
// a Class owns an explicit method table, instances dispatch through it with
// Invoke, and classes are discovered through a Registry. Concrete
// transforms live in the geometric, color and compose subpackages and
// register themselves from init().
package transform
