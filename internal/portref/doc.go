// internal/portref/doc.go

/*
Package portref parses the textual endpoint references used by dependency
declarations in schedule definition files.

A reference names a node and, optionally, one of its ports:

	spam        the "all" port of child node spam
	spam.out    port out of child node spam
	.           the "all" port of the declaring node itself
	.eggs       port eggs of the declaring node itself
	*           the "all" port of every child node

Which direction the named port has is not part of the reference. It is
decided by the side of the dependency the reference appears on.
*/
package portref
