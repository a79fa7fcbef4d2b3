// Package auth implements the credential store and the session gate that guards every write.
//
// # Credential Store
//
// [Credentials] keeps the single administrator identity. Passwords are stored as bcrypt hashes
// ([Credentials.SetPassword]) and checked with [bcrypt.CompareHashAndPassword], which compares in
// constant time. [Credentials.UpsertAdmin] creates the identity on first use and updates it in place afterwards.
//
// # Session Gate
//
// A request is either [Anonymous] or [Authenticated]. The resolved state is a [Caller] value that
// handlers pass explicitly to every write operation; [Authorize] turns an anonymous caller into
// [shared.ErrUnauthorized].
//
// [Gate.Login] moves a caller from Anonymous to Authenticated and returns a signed session token.
// Failures never reveal whether the username or the password was wrong. Attempts pass through a
// token-bucket limiter before credentials are checked.
//
// Session tokens are HS256 JWTs ([JWTSigner]) naming the identity ID; there is no server-side
// session table. [Gate.Resolve] turns a token back into a Caller and treats every invalid, expired or
// stale token as Anonymous.
package auth
