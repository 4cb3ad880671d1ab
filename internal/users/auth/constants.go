// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package auth

// RefreshTokenLength is the byte length of the random refresh token.
const RefreshTokenLength = 32
