// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/tempoworks/tempo/cmd"

func main() {
	cmd.Execute()
}
