// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the contact book service.
//
// Configuration is assembled from multiple sources. The first source that
// provides a non-zero value for a field wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetStructuredConfig]. The resulting
// [StructuredConfig] is built once at process start and passed explicitly to
// the constructors that need it; nothing reads configuration globally.
package config
