// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID and publish token generation.

# Publish Tokens

Publish tokens are random 18-byte (144-bit) secrets minted when a form is
published:

	token, err := auth.GeneratePublishToken()

Tokens are URL-safe base64 encoded without padding and embedded in the
share link. The stored token gates every respondent operation; comparison
happens in constant time:

	if !auth.TokenEqual(presented, stored) { ... }

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(8)  // 16 hex characters
*/
package auth
