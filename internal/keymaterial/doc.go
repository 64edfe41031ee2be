// Package keymaterial decodes the base64url encoded numeric fields of a JSON Web
// Key (RFC 7518 section 2, "Base64urlUInt") into bytes and big integers.
package keymaterial
