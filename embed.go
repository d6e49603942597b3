package docsite

import "embed"

// EmbeddedAssets contains the stylesheet and search script every page loads
// from /_docsite/.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
