// Package forum implements the post lifecycle: creating, reading and deleting
// posts, and threading moderated comments onto them.
package forum
