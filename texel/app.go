// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/app.go
// Summary: Re-exports the core app contract for shells and apps.

package texel

import texelcore "github.com/framegrace/texelcine/texelui/core"

// Core app types.
type App = texelcore.App
type Cell = texelcore.Cell
type MouseHandler = texelcore.MouseHandler
type PasteHandler = texelcore.PasteHandler
