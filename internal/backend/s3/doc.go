// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package s3 implements the preferences backend on an S3 bucket.
package s3
