package web

import "embed"

// staticFS holds the embedded panel pages.
//
//go:embed static/*
var staticFS embed.FS
