// Package hostaccounts enumerates the local accounts of the current host.
//
// ShadowEnumerator reads the passwd and shadow databases and consults lastlog
// for logon history. NetAPIEnumerator queries the Windows NetUserEnum API. Both
// produce accounts.AccountRecord values with absent timestamps left nil.
package hostaccounts
