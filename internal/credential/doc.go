// Package credential persists the GitHub access token in an INI file.
//
// The file holds a single section with a single key:
//
//	[GitHub]
//	token = <value>
//
// A missing or malformed file is treated as "no token stored".
package credential
