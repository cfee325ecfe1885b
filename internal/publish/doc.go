// Package publish uploads rendered schedule documents to an S3 compatible
// bucket.
//
// Objects are keyed by schedule name and document hash:
//
//	<prefix>/<schedule>/<sha256><ext>
//
// An object that already exists is not uploaded again, so publishing an
// unchanged schedule is a single HEAD request. After every upload the
// `<prefix>/<schedule>/latest` object is rewritten with the key of the newest
// document.
package publish
